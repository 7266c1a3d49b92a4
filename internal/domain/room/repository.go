package room

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines room data access
type Repository interface {
	FindAvailable(ctx context.Context, propertyID *uuid.UUID, start civil.Date, end *civil.Date) ([]*Room, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Room, error)
	Preferences(ctx context.Context, residentID uuid.UUID) (*Preferences, error)
	SetImageKey(ctx context.Context, id uuid.UUID, key string) error
	CountByStatus(ctx context.Context) (map[Status]int, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates room repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const roomColumns = `
	r.id, r.property_id, p.name AS property_name, r.name, r.base_weekly_rate,
	r.image_key, r.ensuite, r.garden_view, r.ground_floor, r.status, r.created_at`

// FindAvailable returns rooms marked available with no confirmed booking overlapping [start, end].
// A nil end means open ended.
func (r *repository) FindAvailable(ctx context.Context, propertyID *uuid.UUID, start civil.Date, end *civil.Date) ([]*Room, error) {
	var endArg interface{}
	if end != nil {
		endArg = end.String()
	}
	args := []interface{}{start.String(), endArg}

	where := ""
	if propertyID != nil {
		where = " AND r.property_id = $3"
		args = append(args, *propertyID)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM rooms r
		JOIN properties p ON p.id = r.property_id
		WHERE r.status = 'available'%s
		AND NOT EXISTS (
			SELECT 1 FROM bookings b
			WHERE b.room_id = r.id
			AND b.status = 'confirmed'
			AND b.start_date <= COALESCE($2::date, 'infinity'::date)
			AND COALESCE(b.end_date, 'infinity'::date) >= $1::date
		)
		ORDER BY r.base_weekly_rate, r.name
	`, roomColumns, where)

	var rooms []*Room
	if err := r.db.SelectContext(ctx, &rooms, query, args...); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms r JOIN properties p ON p.id = r.property_id WHERE r.id = $1`

	var room Room
	if err := r.db.GetContext(ctx, &room, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

// Preferences returns nil when the resident has none recorded
func (r *repository) Preferences(ctx context.Context, residentID uuid.UUID) (*Preferences, error) {
	query := `
		SELECT resident_id, requires_ensuite, prefers_garden_view, requires_ground_floor
		FROM resident_preferences WHERE resident_id = $1
	`
	var p Preferences
	if err := r.db.GetContext(ctx, &p, query, residentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) SetImageKey(ctx context.Context, id uuid.UUID, key string) error {
	query := `UPDATE rooms SET image_key = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, key)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	return nil
}

func (r *repository) CountByStatus(ctx context.Context) (map[Status]int, error) {
	query := `SELECT status, COUNT(*) AS count FROM rooms GROUP BY status`

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
