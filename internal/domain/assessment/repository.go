package assessment

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines assessment data access
type Repository interface {
	Create(ctx context.Context, a *Assessment) error
	TypeExists(ctx context.Context, id uuid.UUID) (bool, error)
	ListTypes(ctx context.Context) ([]Type, error)
	ListResidents(ctx context.Context) ([]ResidentOption, error)
	ListByRecord(ctx context.Context, recordID uuid.UUID) ([]*Assessment, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates assessment repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Assessment) error {
	query := `
		INSERT INTO resident_assessments (
			id, resident_id, assessment_type_id, record_id, assessment_date,
			status, risk_level, overall_outcome, assessor,
			medical_needs, mobility, nutrition, mental_health, personal_care, social_needs,
			follow_up_required, follow_up_notes, created_at, updated_at
		) VALUES (
			:id, :resident_id, :assessment_type_id, :record_id, :assessment_date,
			:status, :risk_level, :overall_outcome, :assessor,
			:medical_needs, :mobility, :nutrition, :mental_health, :personal_care, :social_needs,
			:follow_up_required, :follow_up_notes, :created_at, :updated_at
		)
	`
	_, err := r.db.NamedExecContext(ctx, query, a)
	return err
}

func (r *repository) TypeExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM assessment_types WHERE id = $1)`, id)
	return exists, err
}

func (r *repository) ListTypes(ctx context.Context) ([]Type, error) {
	types := []Type{}
	if err := r.db.SelectContext(ctx, &types, `SELECT id, name FROM assessment_types ORDER BY name`); err != nil {
		return nil, err
	}
	return types, nil
}

// ListResidents returns residents linked to enquiries, named from their latest enquiry
func (r *repository) ListResidents(ctx context.Context) ([]ResidentOption, error) {
	query := `
		SELECT id, name FROM (
			SELECT DISTINCT ON (resident_id)
				resident_id AS id,
				COALESCE(NULLIF(resident_name, ''), first_name || ' ' || last_name) AS name
			FROM enquiries
			WHERE resident_id IS NOT NULL
			ORDER BY resident_id, updated_at DESC
		) residents
		ORDER BY name
	`
	residents := []ResidentOption{}
	if err := r.db.SelectContext(ctx, &residents, query); err != nil {
		return nil, err
	}
	return residents, nil
}

func (r *repository) ListByRecord(ctx context.Context, recordID uuid.UUID) ([]*Assessment, error) {
	query := `
		SELECT id, resident_id, assessment_type_id, record_id, assessment_date,
			status, risk_level, overall_outcome, assessor,
			medical_needs, mobility, nutrition, mental_health, personal_care, social_needs,
			follow_up_required, follow_up_notes, created_at, updated_at
		FROM resident_assessments
		WHERE record_id = $1
		ORDER BY created_at DESC
	`
	assessments := []*Assessment{}
	if err := r.db.SelectContext(ctx, &assessments, query, recordID); err != nil {
		return nil, err
	}
	return assessments, nil
}
