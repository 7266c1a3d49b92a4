package enquiry

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines enquiry data access
type Repository interface {
	Create(ctx context.Context, e *Enquiry) error
	PropertyName(ctx context.Context, id uuid.UUID) (string, error)
	ListPropertyOptions(ctx context.Context) ([]PropertyOption, error)
	CountByStatus(ctx context.Context) (map[Status]int, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates enquiry repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *Enquiry) error {
	query := `
		INSERT INTO enquiries (
			id, first_name, last_name, email, phone,
			enquiry_type, care_type, admission_type, source, message,
			resident_name, interests, needs, respite_start_date, respite_end_date,
			property_id, resident_id, status, ip_address, user_agent,
			created_at, updated_at
		) VALUES (
			:id, :first_name, :last_name, :email, :phone,
			:enquiry_type, :care_type, :admission_type, :source, :message,
			:resident_name, :interests, :needs, :respite_start_date, :respite_end_date,
			:property_id, :resident_id, :status, :ip_address, :user_agent,
			:created_at, :updated_at
		)
	`
	_, err := r.db.NamedExecContext(ctx, query, e)
	return err
}

// PropertyName returns "" when the property does not exist
func (r *repository) PropertyName(ctx context.Context, id uuid.UUID) (string, error) {
	var name string
	err := r.db.GetContext(ctx, &name, `SELECT name FROM properties WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return name, nil
}

func (r *repository) ListPropertyOptions(ctx context.Context) ([]PropertyOption, error) {
	options := []PropertyOption{}
	if err := r.db.SelectContext(ctx, &options, `SELECT id, name FROM properties ORDER BY name`); err != nil {
		return nil, err
	}
	return options, nil
}

func (r *repository) CountByStatus(ctx context.Context) (map[Status]int, error) {
	query := `SELECT status, COUNT(*) AS count FROM enquiries GROUP BY status`

	type row struct {
		Status Status `db:"status"`
		Count  int    `db:"count"`
	}

	var rows []row
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	counts := make(map[Status]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
