package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/carehome/carehome-api/internal/domain/room"
	"github.com/carehome/carehome-api/internal/pkg/logger"
	"github.com/carehome/carehome-api/internal/pkg/metrics"
)

// RoomGetter loads a room by id
type RoomGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*room.Room, error)
}

// SearchInvalidator drops cached room searches
type SearchInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Service handles booking business logic
type Service struct {
	repo    Repository
	rooms   RoomGetter
	cache   SearchInvalidator
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewService creates booking service. cache and m may be nil.
func NewService(repo Repository, rooms RoomGetter, cache SearchInvalidator, m *metrics.Metrics) *Service {
	return &Service{
		repo:    repo,
		rooms:   rooms,
		cache:   cache,
		metrics: m,
		now:     time.Now,
	}
}

// Confirm books the room at the agreed price and marks the record booked
func (s *Service) Confirm(ctx context.Context, req ConfirmRequest) (*Booking, error) {
	b, err := s.confirm(ctx, req)
	s.metrics.ObserveBooking(outcome(err))
	return b, err
}

func (s *Service) confirm(ctx context.Context, req ConfirmRequest) (*Booking, error) {
	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return nil, ErrInvalidDates
	}

	rm, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		return nil, bookingFailed(err)
	}
	if rm == nil {
		return nil, ErrRoomNotFound
	}
	if rm.Status != room.StatusAvailable {
		return nil, ErrRoomUnavailable
	}

	b := &Booking{
		ID:             uuid.New(),
		RecordID:       req.RecordID,
		RoomID:         req.RoomID,
		FinalPrice:     req.FinalPrice,
		BaseWeeklyRate: rm.BaseWeeklyRate,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Status:         StatusConfirmed,
		CreatedAt:      s.now().UTC(),
	}

	if err := s.repo.Create(ctx, b); err != nil {
		var bookingErr *Error
		if errors.As(err, &bookingErr) {
			return nil, err
		}
		return nil, bookingFailed(err)
	}

	logger.LogInfo(ctx, "Booking confirmed",
		"booking_id", b.ID.String(),
		"room_id", b.RoomID.String(),
		"final_price", b.FinalPrice,
		"discount", b.Discount(),
	)

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			logger.LogWarn(ctx, "Failed to invalidate room search cache", "error", err.Error())
		}
	}
	return b, nil
}

// ListByRecord returns bookings made for an enquiry record, newest first
func (s *Service) ListByRecord(ctx context.Context, recordID uuid.UUID) ([]*Booking, error) {
	return s.repo.ListByRecord(ctx, recordID)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "confirmed"
	case errors.Is(err, ErrRoomUnavailable):
		return "unavailable"
	case errors.Is(err, ErrRoomNotFound), errors.Is(err, ErrRecordNotFound), errors.Is(err, ErrInvalidDates):
		return "rejected"
	default:
		return "error"
	}
}
