package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carehome/carehome-api/internal/domain/room"
	"github.com/carehome/carehome-api/internal/pkg/metrics"
)

type fakeRepo struct {
	created []*Booking
	err     error
}

func (f *fakeRepo) Create(ctx context.Context, b *Booking) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, b)
	return nil
}

func (f *fakeRepo) ListByRecord(ctx context.Context, recordID uuid.UUID) ([]*Booking, error) {
	var out []*Booking
	for _, b := range f.created {
		if b.RecordID == recordID {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeRooms map[uuid.UUID]*room.Room

func (f fakeRooms) GetByID(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	return f[id], nil
}

type fakeCache struct{ invalidations int }

func (f *fakeCache) Invalidate(ctx context.Context) error {
	f.invalidations++
	return nil
}

var (
	roomID   = uuid.New()
	recordID = uuid.New()
	start    = civil.Date{Year: 2024, Month: time.June, Day: 1}
)

func newTestService(repo *fakeRepo, status room.Status) (*Service, *fakeCache, *prometheus.Registry) {
	cache := &fakeCache{}
	reg := prometheus.NewRegistry()
	rooms := fakeRooms{roomID: {ID: roomID, Name: "Rose", BaseWeeklyRate: 950, Status: status}}
	return NewService(repo, rooms, cache, metrics.New(reg)), cache, reg
}

func TestConfirmCreatesBookingAndInvalidatesCache(t *testing.T) {
	repo := &fakeRepo{}
	svc, cache, _ := newTestService(repo, room.StatusAvailable)

	b, err := svc.Confirm(context.Background(), ConfirmRequest{RecordID: recordID, RoomID: roomID, FinalPrice: 900, StartDate: start})

	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Equal(t, StatusConfirmed, b.Status)
	assert.Equal(t, 950.0, b.BaseWeeklyRate)
	assert.Equal(t, 50.0, b.Discount())
	assert.Equal(t, 1, cache.invalidations)
}

func TestConfirmRejections(t *testing.T) {
	before := start.AddDays(-1)

	tests := []struct {
		name    string
		status  room.Status
		req     ConfirmRequest
		repoErr error
		want    *Error
	}{
		{"end before start", room.StatusAvailable, ConfirmRequest{RoomID: roomID, StartDate: start, EndDate: &before}, nil, ErrInvalidDates},
		{"unknown room", room.StatusAvailable, ConfirmRequest{RoomID: uuid.New(), StartDate: start}, nil, ErrRoomNotFound},
		{"room occupied", room.StatusOccupied, ConfirmRequest{RoomID: roomID, StartDate: start}, nil, ErrRoomUnavailable},
		{"overlap detected in store", room.StatusAvailable, ConfirmRequest{RoomID: roomID, StartDate: start}, ErrRoomUnavailable, ErrRoomUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, cache, _ := newTestService(&fakeRepo{err: tt.repoErr}, tt.status)

			_, err := svc.Confirm(context.Background(), tt.req)

			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, cache.invalidations)
		})
	}
}

func TestConfirmWrapsStoreFailures(t *testing.T) {
	svc, _, reg := newTestService(&fakeRepo{err: errors.New("deadlock detected")}, room.StatusAvailable)

	_, err := svc.Confirm(context.Background(), ConfirmRequest{RecordID: recordID, RoomID: roomID, StartDate: start})

	var bookingErr *Error
	require.ErrorAs(t, err, &bookingErr)
	assert.Equal(t, "BOOKING_FAILED", bookingErr.ErrorCode())
	assert.Equal(t, "Unable to confirm booking. Please try again.", bookingErr.UserMessage())
	count, err := testutil.GatherAndCount(reg, "carehome_booking_confirmations_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRoomUnavailableMessage(t *testing.T) {
	assert.Equal(t, "Room no longer available", ErrRoomUnavailable.UserMessage())
	assert.Equal(t, "ROOM_UNAVAILABLE", ErrRoomUnavailable.ErrorCode())
}
