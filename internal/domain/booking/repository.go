package booking

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines booking data access
type Repository interface {
	// Create inserts a confirmed booking and marks the enquiry record booked in one transaction
	Create(ctx context.Context, b *Booking) error
	ListByRecord(ctx context.Context, recordID uuid.UUID) ([]*Booking, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates booking repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, b *Booking) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Serialises concurrent confirmations for the same room
	var locked uuid.UUID
	if err := tx.GetContext(ctx, &locked, `SELECT id FROM rooms WHERE id = $1 FOR UPDATE`, b.RoomID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRoomNotFound
		}
		return err
	}

	if err := tx.GetContext(ctx, &b.ResidentID, `SELECT resident_id FROM enquiries WHERE id = $1`, b.RecordID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRecordNotFound
		}
		return err
	}

	var endArg interface{}
	if b.EndDate != nil {
		endArg = b.EndDate.String()
	}

	var overlapping bool
	overlapQuery := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE room_id = $1
			AND status = 'confirmed'
			AND start_date <= COALESCE($3::date, 'infinity'::date)
			AND COALESCE(end_date, 'infinity'::date) >= $2::date
		)
	`
	if err := tx.GetContext(ctx, &overlapping, overlapQuery, b.RoomID, b.StartDate.String(), endArg); err != nil {
		return err
	}
	if overlapping {
		return ErrRoomUnavailable
	}

	insert := `
		INSERT INTO bookings (
			id, record_id, room_id, resident_id, final_price, base_weekly_rate,
			start_date, end_date, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = tx.ExecContext(ctx, insert,
		b.ID, b.RecordID, b.RoomID, b.ResidentID, b.FinalPrice, b.BaseWeeklyRate,
		b.StartDate.String(), endArg, b.Status, b.CreatedAt,
	)
	if err != nil {
		return mapConstraint(err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE enquiries SET status = 'booked', updated_at = NOW() WHERE id = $1`, b.RecordID); err != nil {
		return err
	}

	return tx.Commit()
}

// mapConstraint turns unique and exclusion violations into ErrRoomUnavailable
func mapConstraint(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505", "23P01":
			return ErrRoomUnavailable
		}
	}
	return err
}

func (r *repository) ListByRecord(ctx context.Context, recordID uuid.UUID) ([]*Booking, error) {
	query := `
		SELECT id, record_id, room_id, resident_id, final_price, base_weekly_rate,
			start_date, end_date, status, created_at
		FROM bookings WHERE record_id = $1
		ORDER BY created_at DESC
	`
	bookings := []*Booking{}
	if err := r.db.SelectContext(ctx, &bookings, query, recordID); err != nil {
		return nil, err
	}
	return bookings, nil
}
