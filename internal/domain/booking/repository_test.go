package booking

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })
	return sqlx.NewDb(raw, "postgres"), mock
}

func newBooking() *Booking {
	return &Booking{
		ID:             uuid.New(),
		RecordID:       recordID,
		RoomID:         roomID,
		FinalPrice:     900,
		BaseWeeklyRate: 950,
		StartDate:      start,
		Status:         StatusConfirmed,
		CreatedAt:      time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC),
	}
}

func expectLocks(mock sqlmock.Sqlmock, residentID interface{}) {
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM rooms WHERE id = $1 FOR UPDATE")).
		WithArgs(roomID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(roomID.String()))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT resident_id FROM enquiries")).
		WithArgs(recordID).
		WillReturnRows(sqlmock.NewRows([]string{"resident_id"}).AddRow(residentID))
}

func TestCreateCommitsBookingAndRecordStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)
	b := newBooking()
	residentID := uuid.New()

	expectLocks(mock, residentID.String())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs(roomID, "2024-06-01", nil).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).
		WithArgs(b.ID, recordID, roomID, sqlmock.AnyArg(), 900.0, 950.0, "2024-06-01", nil, "confirmed", b.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE enquiries SET status = 'booked'")).
		WithArgs(recordID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), b))
	assert.Equal(t, uuid.NullUUID{UUID: residentID, Valid: true}, b.ResidentID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRejectsOverlap(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	expectLocks(mock, nil)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), newBooking())

	assert.ErrorIs(t, err, ErrRoomUnavailable)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMapsExclusionViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	expectLocks(mock, nil)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).
		WillReturnError(&pq.Error{Code: "23P01", Message: "conflicting key value violates exclusion constraint"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), newBooking())

	assert.ErrorIs(t, err, ErrRoomUnavailable)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUnknownRecord(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(roomID.String()))
	mock.ExpectQuery(regexp.QuoteMeta("FROM enquiries")).
		WillReturnRows(sqlmock.NewRows([]string{"resident_id"}))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), newBooking())

	assert.ErrorIs(t, err, ErrRecordNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByRecord(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	rows := sqlmock.NewRows([]string{
		"id", "record_id", "room_id", "resident_id", "final_price", "base_weekly_rate",
		"start_date", "end_date", "status", "created_at",
	}).AddRow(uuid.New().String(), recordID.String(), roomID.String(), nil, 900.0, 950.0, "2024-06-01", "2024-06-14", "confirmed", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE record_id = $1")).
		WithArgs(recordID).
		WillReturnRows(rows)

	bookings, err := repo.ListByRecord(context.Background(), recordID)

	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.False(t, bookings[0].ResidentID.Valid)
	assert.Equal(t, start, bookings[0].StartDate)
	require.NotNil(t, bookings[0].EndDate)
	assert.Equal(t, "2024-06-14", bookings[0].EndDate.String())
}
