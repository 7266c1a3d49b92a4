package booking

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

// Status represents booking status
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Booking is a confirmed room allocation for an enquiry record
type Booking struct {
	ID             uuid.UUID     `db:"id" json:"id"`
	RecordID       uuid.UUID     `db:"record_id" json:"record_id"`
	RoomID         uuid.UUID     `db:"room_id" json:"room_id"`
	ResidentID     uuid.NullUUID `db:"resident_id" json:"resident_id"`
	FinalPrice     float64       `db:"final_price" json:"final_price"`
	BaseWeeklyRate float64       `db:"base_weekly_rate" json:"base_weekly_rate"`
	StartDate      civil.Date    `db:"start_date" json:"start_date"`
	EndDate        *civil.Date   `db:"end_date" json:"end_date,omitempty"`
	Status         Status        `db:"status" json:"status"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
}

// Discount is the difference between the list rate and the agreed price
func (b *Booking) Discount() float64 {
	return b.BaseWeeklyRate - b.FinalPrice
}
