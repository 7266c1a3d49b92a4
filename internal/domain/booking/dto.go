package booking

import (
	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

// ConfirmRequest carries the agreed terms for one booking
type ConfirmRequest struct {
	RecordID   uuid.UUID
	RoomID     uuid.UUID
	FinalPrice float64
	StartDate  civil.Date
	EndDate    *civil.Date
}
