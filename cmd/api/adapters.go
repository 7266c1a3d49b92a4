package main

import (
	"context"
	"errors"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/carehome/carehome-api/internal/domain/booking"
	"github.com/carehome/carehome-api/internal/domain/record"
	"github.com/carehome/carehome-api/internal/domain/room"
	"github.com/carehome/carehome-api/internal/domain/wizard"
)

// Adapters bridging domain services to the room finder collaborators

type roomFinder interface {
	FindRooms(ctx context.Context, recordID uuid.UUID, residentID *uuid.UUID, startDate civil.Date) ([]room.Match, error)
}

type roomSearcher struct {
	rooms roomFinder
}

func (a *roomSearcher) FindRooms(ctx context.Context, recordID uuid.UUID, residentID *uuid.UUID, startDate civil.Date) ([]wizard.RoomOption, error) {
	matches, err := a.rooms.FindRooms(ctx, recordID, residentID, startDate)
	if err != nil {
		return nil, err
	}

	options := make([]wizard.RoomOption, 0, len(matches))
	for _, m := range matches {
		options = append(options, wizard.RoomOption{
			RoomID:         m.ID.String(),
			Name:           m.Name,
			PropertyName:   m.PropertyName,
			BaseWeeklyRate: m.BaseWeeklyRate,
			DisplayImage:   m.ImageURL,
			Ensuite:        m.Ensuite,
			GardenView:     m.GardenView,
			GroundFloor:    m.GroundFloor,
			MatchScore:     m.Score,
			FormattedRate:  m.FormattedRate,
		})
	}
	return options, nil
}

type bookingService interface {
	Confirm(ctx context.Context, req booking.ConfirmRequest) (*booking.Booking, error)
}

type bookingConfirmer struct {
	bookings bookingService
}

func (a *bookingConfirmer) ConfirmBooking(ctx context.Context, req wizard.BookingRequest) error {
	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		return booking.ErrRoomNotFound
	}

	_, err = a.bookings.Confirm(ctx, booking.ConfirmRequest{
		RecordID:   req.RecordID,
		RoomID:     roomID,
		FinalPrice: req.FinalPrice,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	})
	return err
}

type recordService interface {
	Get(ctx context.Context, id uuid.UUID) (*record.Context, error)
	MarkStale(ctx context.Context, id uuid.UUID) error
}

type recordProvider struct {
	records recordService
}

func (a *recordProvider) RecordContext(ctx context.Context, recordID uuid.UUID) (*wizard.RecordContext, error) {
	c, err := a.records.Get(ctx, recordID)
	if errors.Is(err, record.ErrRecordNotFound) {
		return nil, wizard.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &wizard.RecordContext{
		RecordID:   c.RecordID,
		ResidentID: c.Resident(),
		StartDate:  c.StartDate,
		EndDate:    c.EndDate,
	}, nil
}

func (a *recordProvider) MarkStale(ctx context.Context, recordID uuid.UUID) error {
	return a.records.MarkStale(ctx, recordID)
}
