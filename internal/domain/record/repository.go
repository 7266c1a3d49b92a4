package record

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository reads enquiry records
type Repository interface {
	GetContext(ctx context.Context, id uuid.UUID) (*Context, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetContext(ctx context.Context, id uuid.UUID) (*Context, error) {
	query := `
		SELECT id, resident_id, respite_start_date, respite_end_date, status
		FROM enquiries WHERE id = $1
	`
	var c Context
	if err := r.db.GetContext(ctx, &c, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
