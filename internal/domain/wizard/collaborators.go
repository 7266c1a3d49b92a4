package wizard

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

// RoomSearcher returns candidate rooms for a record
type RoomSearcher interface {
	FindRooms(ctx context.Context, recordID uuid.UUID, residentID *uuid.UUID, startDate civil.Date) ([]RoomOption, error)
}

// BookingConfirmer persists a confirmed booking
type BookingConfirmer interface {
	ConfirmBooking(ctx context.Context, req BookingRequest) error
}

// RecordContextProvider supplies pre-filled fields and accepts the stale signal after a booking
type RecordContextProvider interface {
	RecordContext(ctx context.Context, recordID uuid.UUID) (*RecordContext, error)
	MarkStale(ctx context.Context, recordID uuid.UUID) error
}
