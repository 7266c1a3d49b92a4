package survey

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// Repository defines survey data access
type Repository interface {
	ActiveSurvey(ctx context.Context) (*Survey, error)
	CreateResponse(ctx context.Context, resp *Response) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates survey repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// ActiveSurvey returns the newest active survey, or nil when none is active
func (r *repository) ActiveSurvey(ctx context.Context) (*Survey, error) {
	var s Survey
	query := `SELECT id, name FROM surveys WHERE active ORDER BY created_at DESC LIMIT 1`
	if err := r.db.GetContext(ctx, &s, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) CreateResponse(ctx context.Context, resp *Response) error {
	query := `
		INSERT INTO survey_responses (
			id, record_id, resident_id, survey_id,
			food_rating, cleanliness_rating, staff_rating, activities_rating, overall_rating,
			comments, response_date, created_at
		) VALUES (
			:id, :record_id, :resident_id, :survey_id,
			:food_rating, :cleanliness_rating, :staff_rating, :activities_rating, :overall_rating,
			:comments, :response_date, :created_at
		)
	`
	_, err := r.db.NamedExecContext(ctx, query, resp)
	return err
}
