package wizard

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/carehome/carehome-api/internal/domain/notification"
	"github.com/carehome/carehome-api/internal/pkg/logger"
)

type fakeRooms struct {
	mu      sync.Mutex
	calls   int
	rooms   []RoomOption
	err     error
	started chan struct{}
	release chan struct{}
	lastRes *uuid.UUID
	lastDay civil.Date
}

func (f *fakeRooms) FindRooms(ctx context.Context, recordID uuid.UUID, residentID *uuid.UUID, startDate civil.Date) ([]RoomOption, error) {
	f.mu.Lock()
	f.calls++
	f.lastRes = residentID
	f.lastDay = startDate
	f.mu.Unlock()
	if f.started != nil {
		f.started <- struct{}{}
		<-f.release
	}
	return f.rooms, f.err
}

func (f *fakeRooms) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeBookings struct {
	mu       sync.Mutex
	requests []BookingRequest
	err      error
}

func (f *fakeBookings) ConfirmBooking(ctx context.Context, req BookingRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.err
}

type fakeRecords struct {
	rc     *RecordContext
	err    error
	stale  []uuid.UUID
	staleE error
}

func (f *fakeRecords) RecordContext(ctx context.Context, recordID uuid.UUID) (*RecordContext, error) {
	return f.rc, f.err
}

func (f *fakeRecords) MarkStale(ctx context.Context, recordID uuid.UUID) error {
	f.stale = append(f.stale, recordID)
	return f.staleE
}

// userError mimics a collaborator error carrying a display message
type userError struct {
	msg  string
	code string
}

func (e *userError) Error() string       { return "booking: " + e.msg }
func (e *userError) UserMessage() string { return e.msg }
func (e *userError) ErrorCode() string   { return e.code }

var fixedNow = time.Date(2024, 5, 20, 9, 30, 0, 0, time.UTC)

type harness struct {
	w         *Wizard
	rooms     *fakeRooms
	bookings  *fakeBookings
	records   *fakeRecords
	collector *notification.Collector
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		rooms:     &fakeRooms{},
		bookings:  &fakeBookings{},
		records:   &fakeRecords{},
		collector: notification.NewCollector(),
	}
	h.w = New(uuid.New(), Dependencies{
		Rooms:    h.rooms,
		Bookings: h.bookings,
		Records:  h.records,
		Sink:     h.collector,
		Now:      func() time.Time { return fixedNow },
	})
	return h
}

func date(s string) civil.Date {
	d, err := civil.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func assertOneStepActive(t *testing.T, v View) {
	t.Helper()
	if v.IsStep1 == v.IsStep2 {
		t.Fatalf("exactly one step must be active: step1=%v step2=%v", v.IsStep1, v.IsStep2)
	}
}

func (h *harness) lastNotification(t *testing.T) notification.Notification {
	t.Helper()
	items := h.collector.Notifications()
	if len(items) == 0 {
		t.Fatal("expected a notification")
	}
	return items[len(items)-1]
}

func TestFindRoomsEmptyResultShowsNoRooms(t *testing.T) {
	h := newHarness(t)
	if err := h.w.SetField("start_date", "2024-06-01"); err != nil {
		t.Fatalf("set start date: %v", err)
	}

	if err := h.w.FindRooms(context.Background()); err != nil {
		t.Fatalf("find rooms: %v", err)
	}

	v := h.w.View()
	if v.Busy || len(v.Rooms) != 0 || !v.NoRooms || !v.Searched {
		t.Fatalf("unexpected view: %+v", v)
	}
	if v.Rooms == nil {
		t.Fatal("rooms must serialize as an empty list")
	}
	n := h.lastNotification(t)
	if n.Severity != notification.SeverityWarning || n.Message != MsgNoResident {
		t.Fatalf("expected no-resident warning, got %+v", n)
	}
	if h.rooms.lastDay != date("2024-06-01") {
		t.Fatalf("search used %v", h.rooms.lastDay)
	}
	assertOneStepActive(t, v)
}

func TestSelectRoomSeedsFinalPrice(t *testing.T) {
	h := newHarness(t)
	h.rooms.rooms = []RoomOption{{RoomID: "R1", Name: "Rose", BaseWeeklyRate: 450}}
	h.w.Initialize(context.Background())

	if err := h.w.FindRooms(context.Background()); err != nil {
		t.Fatalf("find rooms: %v", err)
	}
	if got := h.w.View().Rooms[0].FormattedRate; got != "£450.00" {
		t.Fatalf("expected formatted rate £450.00, got %q", got)
	}

	if err := h.w.SelectRoom("R1"); err != nil {
		t.Fatalf("select: %v", err)
	}

	v := h.w.View()
	if v.Step != StepConfirm || !v.IsStep2 || v.FinalPrice == nil || *v.FinalPrice != 450 {
		t.Fatalf("unexpected view after select: %+v", v)
	}
	if v.SelectedRoom == nil || v.SelectedRoom.RoomID != "R1" {
		t.Fatalf("expected R1 selected, got %+v", v.SelectedRoom)
	}
	assertOneStepActive(t, v)
}

func TestConfirmBookingWithAdjustedPrice(t *testing.T) {
	h := newHarness(t)
	h.records.rc = &RecordContext{StartDate: ptr(date("2024-06-01")), EndDate: ptr(date("2024-06-15"))}
	h.rooms.rooms = []RoomOption{{RoomID: "R1", BaseWeeklyRate: 450}}
	h.w.Initialize(context.Background())
	mustFind(t, h.w)
	mustOK(t, h.w.SelectRoom("R1"))

	mustOK(t, h.w.AdjustPrice(475))
	mustOK(t, h.w.ConfirmBooking(context.Background()))

	if len(h.bookings.requests) != 1 {
		t.Fatalf("expected one booking request, got %d", len(h.bookings.requests))
	}
	req := h.bookings.requests[0]
	if req.FinalPrice != 475 || req.RoomID != "R1" || req.RecordID != h.w.RecordID() {
		t.Fatalf("unexpected request: %+v", req)
	}
	if req.StartDate != date("2024-06-01") || req.EndDate == nil || *req.EndDate != date("2024-06-15") {
		t.Fatalf("unexpected dates: %+v", req)
	}

	n := h.lastNotification(t)
	if n.Severity != notification.SeveritySuccess || n.Message != MsgBookingConfirmed {
		t.Fatalf("expected success notification, got %+v", n)
	}
	v := h.w.View()
	if v.Step != StepConfirm || !v.Booked || v.SelectedRoom == nil {
		t.Fatalf("wizard must stay on confirm after booking: %+v", v)
	}
	if len(h.records.stale) != 1 || h.records.stale[0] != h.w.RecordID() {
		t.Fatalf("expected record marked stale, got %v", h.records.stale)
	}
}

func TestConfirmBookingFailureKeepsStep(t *testing.T) {
	h := newHarness(t)
	h.rooms.rooms = []RoomOption{{RoomID: "R1", BaseWeeklyRate: 450}}
	h.bookings.err = &userError{msg: "Room no longer available", code: "ROOM_UNAVAILABLE"}
	h.w.Initialize(context.Background())
	mustFind(t, h.w)
	mustOK(t, h.w.SelectRoom("R1"))

	err := h.w.ConfirmBooking(context.Background())

	var se *ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if se.Message != "Room no longer available" || se.Code != "ROOM_UNAVAILABLE" {
		t.Fatalf("unexpected service error: %+v", se)
	}
	n := h.lastNotification(t)
	if n.Message != "Room no longer available" || n.Severity != notification.SeverityError {
		t.Fatalf("expected verbatim error notification, got %+v", n)
	}
	v := h.w.View()
	if v.Step != StepConfirm || v.Busy || v.Booked {
		t.Fatalf("unexpected view after failure: %+v", v)
	}
	if len(h.records.stale) != 0 {
		t.Fatal("record must not be marked stale on failure")
	}

	// retry succeeds
	h.bookings.err = nil
	mustOK(t, h.w.ConfirmBooking(context.Background()))
	if len(h.bookings.requests) != 2 {
		t.Fatalf("expected retry to submit, got %d requests", len(h.bookings.requests))
	}
}

func TestFindRoomsWithoutStartDateMakesNoCall(t *testing.T) {
	h := newHarness(t)
	mustOK(t, h.w.SetField("start_date", ""))

	err := h.w.FindRooms(context.Background())

	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Message != "missing start date" {
		t.Fatalf("expected missing start date validation error, got %v", err)
	}
	if h.rooms.callCount() != 0 {
		t.Fatal("room search must not be called")
	}
	n := h.lastNotification(t)
	if n.Message != MsgMissingStartDate || n.Severity != notification.SeverityError {
		t.Fatalf("unexpected notification %+v", n)
	}
	if v := h.w.View(); v.Searched || v.Step != StepSearch {
		t.Fatalf("state must not change: %+v", v)
	}
}

func TestFindRoomsFailureKeepsPreviousRooms(t *testing.T) {
	h := newHarness(t)
	h.rooms.rooms = []RoomOption{{RoomID: "R1", BaseWeeklyRate: 450}}
	h.w.Initialize(context.Background())
	mustFind(t, h.w)

	h.rooms.err = errors.New("search backend unavailable")
	err := h.w.FindRooms(context.Background())

	var se *ServiceError
	if !errors.As(err, &se) || se.Message != "search backend unavailable" {
		t.Fatalf("expected service error with message, got %v", err)
	}
	v := h.w.View()
	if len(v.Rooms) != 1 || v.Busy {
		t.Fatalf("rooms must be unchanged and busy cleared: %+v", v)
	}
}

func TestCollaboratorFailuresLogAsExternalServiceErrors(t *testing.T) {
	h := newHarness(t)
	h.rooms.rooms = []RoomOption{{RoomID: "R1", BaseWeeklyRate: 450}}
	h.w.Initialize(context.Background())

	var buf bytes.Buffer
	l := zerolog.New(&buf)
	ctx := logger.WithContext(context.Background(), &l)

	h.rooms.err = errors.New("search backend unavailable")
	if err := h.w.FindRooms(ctx); err == nil {
		t.Fatal("expected search failure")
	}
	for _, want := range []string{`"external_service":"room_search"`, `"operation":"find_rooms"`, h.w.RecordID().String()} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("search failure log missing %s: %s", want, buf.String())
		}
	}

	buf.Reset()
	h.rooms.err = nil
	mustFind(t, h.w)
	mustOK(t, h.w.SelectRoom("R1"))
	h.bookings.err = errors.New("quote service down")
	if err := h.w.ConfirmBooking(ctx); err == nil {
		t.Fatal("expected booking failure")
	}
	for _, want := range []string{`"external_service":"booking"`, `"operation":"confirm_booking"`, `"room_id":"R1"`} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("booking failure log missing %s: %s", want, buf.String())
		}
	}
}

func TestFindRoomsPassesResident(t *testing.T) {
	h := newHarness(t)
	residentID := uuid.New()
	h.records.rc = &RecordContext{ResidentID: &residentID}
	h.w.Initialize(context.Background())

	mustFind(t, h.w)

	if h.rooms.lastRes == nil || *h.rooms.lastRes != residentID {
		t.Fatalf("expected resident passed to search, got %v", h.rooms.lastRes)
	}
	for _, n := range h.collector.Notifications() {
		if n.Severity == notification.SeverityWarning {
			t.Fatalf("no warning expected with a resident: %+v", n)
		}
	}
}

func TestBusyRejectsDuplicateSubmissions(t *testing.T) {
	h := newHarness(t)
	h.rooms.started = make(chan struct{})
	h.rooms.release = make(chan struct{})
	h.w.Initialize(context.Background())

	done := make(chan error, 1)
	go func() { done <- h.w.FindRooms(context.Background()) }()
	<-h.rooms.started

	if !h.w.View().Busy {
		t.Fatal("expected busy while search in flight")
	}
	if err := h.w.FindRooms(context.Background()); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	if err := h.w.ConfirmBooking(context.Background()); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy for confirm, got %v", err)
	}
	if err := h.w.SetField("start_date", "2024-07-01"); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy for set field, got %v", err)
	}

	close(h.rooms.release)
	if err := <-done; err != nil {
		t.Fatalf("find rooms: %v", err)
	}
	if h.rooms.callCount() != 1 {
		t.Fatalf("expected exactly one remote call, got %d", h.rooms.callCount())
	}
	if h.w.View().Busy {
		t.Fatal("busy must clear after completion")
	}
}

func TestSelectRoomUnknownIDIsNoop(t *testing.T) {
	h := newHarness(t)
	h.rooms.rooms = []RoomOption{{RoomID: "R1", BaseWeeklyRate: 450}}
	h.w.Initialize(context.Background())
	mustFind(t, h.w)

	mustOK(t, h.w.SelectRoom("R9"))

	v := h.w.View()
	if v.Step != StepSearch || v.SelectedRoom != nil {
		t.Fatalf("unknown id must not change state: %+v", v)
	}
}

func TestSelectRoomIsIdempotentOnPrice(t *testing.T) {
	h := newHarness(t)
	h.rooms.rooms = []RoomOption{{RoomID: "R1", BaseWeeklyRate: 450}}
	h.w.Initialize(context.Background())
	mustFind(t, h.w)

	mustOK(t, h.w.SelectRoom("R1"))
	first := *h.w.View().FinalPrice
	_ = h.w.SelectRoom("R1")
	second := *h.w.View().FinalPrice

	if first != second || second != 450 {
		t.Fatalf("final price changed: %v -> %v", first, second)
	}
}

func TestAdjustPriceOnlyInConfirmStep(t *testing.T) {
	h := newHarness(t)
	if err := h.w.AdjustPrice(500); !errors.Is(err, ErrWrongStep) {
		t.Fatalf("expected ErrWrongStep, got %v", err)
	}
	if err := h.w.SetField("final_price", "500"); !errors.Is(err, ErrWrongStep) {
		t.Fatalf("expected ErrWrongStep via SetField, got %v", err)
	}
}

func TestGoBackDiscardsSelection(t *testing.T) {
	h := newHarness(t)
	h.rooms.rooms = []RoomOption{{RoomID: "R1", BaseWeeklyRate: 450}}
	h.w.Initialize(context.Background())
	mustFind(t, h.w)
	mustOK(t, h.w.SelectRoom("R1"))
	mustOK(t, h.w.AdjustPrice(300))

	mustOK(t, h.w.GoBack())

	v := h.w.View()
	if v.Step != StepSearch || v.SelectedRoom != nil || v.FinalPrice != nil {
		t.Fatalf("unexpected view after back: %+v", v)
	}
	assertOneStepActive(t, v)
	if err := h.w.ConfirmBooking(context.Background()); !errors.Is(err, ErrWrongStep) {
		t.Fatalf("confirm from search step must fail, got %v", err)
	}

	mustOK(t, h.w.SelectRoom("R1"))
	if *h.w.View().FinalPrice != 450 {
		t.Fatal("reselecting must reseed price from the base rate")
	}
}

func TestConfirmTwiceSubmitsOnce(t *testing.T) {
	h := newHarness(t)
	h.rooms.rooms = []RoomOption{{RoomID: "R1", BaseWeeklyRate: 450}}
	h.w.Initialize(context.Background())
	mustFind(t, h.w)
	mustOK(t, h.w.SelectRoom("R1"))
	mustOK(t, h.w.ConfirmBooking(context.Background()))

	if err := h.w.ConfirmBooking(context.Background()); !errors.Is(err, ErrAlreadyBooked) {
		t.Fatalf("expected ErrAlreadyBooked, got %v", err)
	}
	if err := h.w.AdjustPrice(10); !errors.Is(err, ErrAlreadyBooked) {
		t.Fatalf("expected ErrAlreadyBooked for price change, got %v", err)
	}
	if len(h.bookings.requests) != 1 {
		t.Fatalf("expected one booking, got %d", len(h.bookings.requests))
	}
}

func TestInitializeDefaultsToToday(t *testing.T) {
	h := newHarness(t)
	h.records.err = errors.New("record not found")

	h.w.Initialize(context.Background())

	if got := h.w.View().StartDate; got != "2024-05-20" {
		t.Fatalf("expected today's date, got %q", got)
	}
}

func TestInitializeSeedsFromRecord(t *testing.T) {
	h := newHarness(t)
	residentID := uuid.New()
	h.records.rc = &RecordContext{ResidentID: &residentID, StartDate: ptr(date("2024-09-01")), EndDate: ptr(date("2024-09-14"))}

	h.w.Initialize(context.Background())

	v := h.w.View()
	if v.StartDate != "2024-09-01" || v.EndDate != "2024-09-14" || v.ResidentID == nil || *v.ResidentID != residentID {
		t.Fatalf("unexpected seeded view: %+v", v)
	}
}

func TestSetField(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   string
		wantErr bool
	}{
		{"start date", "start_date", "2024-06-01", false},
		{"end date", "end_date", "2024-06-30", false},
		{"clear end date", "end_date", "", false},
		{"bad date", "start_date", "01/06/2024", true},
		{"unknown field", "resident_id", "x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			err := h.w.SetField(tt.field, tt.value)
			var ve *ValidationError
			if tt.wantErr != errors.As(err, &ve) {
				t.Fatalf("SetField(%s, %q) error = %v", tt.field, tt.value, err)
			}
		})
	}
}

func TestSetFinalPriceInConfirmStep(t *testing.T) {
	h := newHarness(t)
	h.rooms.rooms = []RoomOption{{RoomID: "R1", BaseWeeklyRate: 450}}
	h.w.Initialize(context.Background())
	mustFind(t, h.w)
	mustOK(t, h.w.SelectRoom("R1"))

	mustOK(t, h.w.SetField("final_price", "£1,025.50"))

	v := h.w.View()
	if *v.FinalPrice != 1025.5 || v.FormattedFinalPrice != "£1,025.50" {
		t.Fatalf("unexpected price view: %v %q", *v.FinalPrice, v.FormattedFinalPrice)
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"475", 475, false},
		{" 475.25 ", 475.25, false},
		{"£450", 450, false},
		{"1,200", 1200, false},
		{"-10", -10, false},
		{"abc", 0, true},
		{"NaN", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParsePrice(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParsePrice(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestOutcome(t *testing.T) {
	cases := map[string]error{
		"ok":         nil,
		"busy":       ErrBusy,
		"validation": &ValidationError{Message: "x"},
		"service":    &ServiceError{Message: "x"},
		"rejected":   ErrWrongStep,
	}
	for want, err := range cases {
		if got := Outcome(err); got != want {
			t.Errorf("Outcome(%v) = %q, want %q", err, got, want)
		}
	}
}

func mustFind(t *testing.T, w *Wizard) {
	t.Helper()
	if err := w.FindRooms(context.Background()); err != nil {
		t.Fatalf("find rooms: %v", err)
	}
}

func mustOK(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func ptr[T any](v T) *T {
	return &v
}
