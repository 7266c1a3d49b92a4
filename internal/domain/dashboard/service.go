package dashboard

import (
	"context"
	"fmt"

	"github.com/carehome/carehome-api/internal/domain/enquiry"
	"github.com/carehome/carehome-api/internal/domain/room"
)

// EnquiryCounter counts enquiries per pipeline stage
type EnquiryCounter interface {
	CountByStatus(ctx context.Context) (map[enquiry.Status]int, error)
}

// RoomCounter counts rooms per status
type RoomCounter interface {
	CountByStatus(ctx context.Context) (map[room.Status]int, error)
}

// Service provides dashboard statistics
type Service struct {
	enquiries EnquiryCounter
	rooms     RoomCounter
}

// NewService creates dashboard service
func NewService(enquiries EnquiryCounter, rooms RoomCounter) *Service {
	return &Service{enquiries: enquiries, rooms: rooms}
}

// Get returns current dashboard data
func (s *Service) Get(ctx context.Context) (*Data, error) {
	pipeline, err := s.enquiries.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count enquiries: %w", err)
	}
	rooms, err := s.rooms.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count rooms: %w", err)
	}
	return Build(pipeline, rooms), nil
}
