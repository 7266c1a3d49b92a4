package wizard

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/carehome/carehome-api/internal/domain/notification"
	"github.com/carehome/carehome-api/internal/pkg/errorhandler"
	"github.com/carehome/carehome-api/internal/pkg/logger"
	"github.com/carehome/carehome-api/internal/pkg/metrics"
	"github.com/carehome/carehome-api/internal/pkg/money"
)

// User-facing notification texts
const (
	MsgMissingStartDate = "Please select a start date"
	MsgNoResident       = "No Resident linked to this Enquiry. Showing all available rooms."
	MsgBookingConfirmed = "Booking Confirmed! Quote and Contract created."
)

// Dependencies are the collaborators a Wizard calls. Records, Sink, Formatter,
// Metrics and Now are optional.
type Dependencies struct {
	Rooms     RoomSearcher
	Bookings  BookingConfirmer
	Records   RecordContextProvider
	Sink      notification.Sink
	Formatter *money.Formatter
	Metrics   *metrics.Metrics
	Now       func() time.Time
}

// Wizard drives one room search and booking flow for a record.
//
// The mutex guards state only; it is released during collaborator calls,
// and busy rejects overlapping FindRooms and ConfirmBooking calls meanwhile.
type Wizard struct {
	recordID uuid.UUID
	deps     Dependencies

	mu           sync.Mutex
	step         Step
	busy         bool
	booked       bool
	searched     bool
	residentID   *uuid.UUID
	startDate    civil.Date
	endDate      civil.Date
	rooms        []RoomOption
	selected     *RoomOption
	finalPrice   float64
	lastActivity time.Time
}

func New(recordID uuid.UUID, deps Dependencies) *Wizard {
	if deps.Formatter == nil {
		deps.Formatter = money.Must("GBP", "en-GB")
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Sink == nil {
		deps.Sink = notification.ContextSink{}
	}
	return &Wizard{
		recordID:     recordID,
		deps:         deps,
		step:         StepSearch,
		rooms:        []RoomOption{},
		lastActivity: deps.Now(),
	}
}

// RecordID returns the host record this wizard books for
func (w *Wizard) RecordID() uuid.UUID {
	return w.recordID
}

// Initialize seeds resident and dates from the record context.
// The start date falls back to today when the record has none.
// Only ErrRecordNotFound is returned; other lookup failures fall back to defaults.
func (w *Wizard) Initialize(ctx context.Context) error {
	var rc *RecordContext
	if w.deps.Records != nil {
		var err error
		rc, err = w.deps.Records.RecordContext(ctx, w.recordID)
		if errors.Is(err, ErrRecordNotFound) {
			return err
		}
		if err != nil {
			logger.LogWarn(ctx, "Record context unavailable, using defaults",
				"record_id", w.recordID.String(), "error", err.Error())
			rc = nil
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.startDate = civil.DateOf(w.deps.Now())
	if rc == nil {
		return nil
	}
	w.residentID = rc.ResidentID
	if rc.StartDate != nil {
		w.startDate = *rc.StartDate
	}
	if rc.EndDate != nil {
		w.endDate = *rc.EndDate
	}
	return nil
}

type setter func(w *Wizard, value string) error

// setters maps an input name to its field assignment.
// Callers hold w.mu.
var setters = map[string]setter{
	"start_date": func(w *Wizard, value string) error {
		d, err := parseDate("start_date", value)
		if err != nil {
			return err
		}
		w.startDate = d
		return nil
	},
	"end_date": func(w *Wizard, value string) error {
		d, err := parseDate("end_date", value)
		if err != nil {
			return err
		}
		w.endDate = d
		return nil
	},
	"final_price": func(w *Wizard, value string) error {
		if w.step != StepConfirm {
			return ErrWrongStep
		}
		if w.booked {
			return ErrAlreadyBooked
		}
		price, err := ParsePrice(value)
		if err != nil {
			return err
		}
		w.finalPrice = price
		return nil
	},
}

// SetField assigns one input by name. An empty date clears it.
func (w *Wizard) SetField(name, value string) error {
	set, ok := setters[name]
	if !ok {
		return &ValidationError{Field: name, Message: "unknown field " + name}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.busy {
		return ErrBusy
	}
	w.touch()
	return set(w, strings.TrimSpace(value))
}

func parseDate(field, value string) (civil.Date, error) {
	if value == "" {
		return civil.Date{}, nil
	}
	d, err := civil.ParseDate(value)
	if err != nil || !d.IsValid() {
		return civil.Date{}, &ValidationError{Field: field, Message: "invalid date " + value}
	}
	return d, nil
}

// ParsePrice accepts any numeric-looking amount, with an optional £ sign and thousands separators.
// There is no range check.
func ParsePrice(value string) (float64, error) {
	cleaned := strings.TrimSpace(value)
	cleaned = strings.TrimPrefix(cleaned, "£")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	price, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, &ValidationError{Field: "final_price", Message: "invalid price " + value}
	}
	return price, nil
}

// FindRooms searches for rooms from the current start date.
// On failure the room list is left as it was.
func (w *Wizard) FindRooms(ctx context.Context) error {
	const op = "find_rooms"

	w.mu.Lock()
	switch {
	case w.busy:
		w.mu.Unlock()
		w.observe(op, ErrBusy)
		return ErrBusy
	case w.step != StepSearch:
		w.mu.Unlock()
		w.observe(op, ErrWrongStep)
		return ErrWrongStep
	case w.startDate.IsZero():
		w.mu.Unlock()
		err := &ValidationError{Field: "start_date", Message: "missing start date"}
		w.notify(ctx, notification.SeverityError, "Error", MsgMissingStartDate)
		w.observe(op, err)
		return err
	}
	residentID := w.residentID
	startDate := w.startDate
	w.busy = true
	w.touch()
	w.mu.Unlock()

	if residentID == nil {
		w.notify(ctx, notification.SeverityWarning, "Warning", MsgNoResident)
	}

	started := time.Now()
	rooms, err := w.deps.Rooms.FindRooms(ctx, w.recordID, residentID, startDate)
	w.deps.Metrics.ObserveCollaborator(op, time.Since(started).Seconds())

	w.mu.Lock()
	w.busy = false
	w.touch()
	if err == nil {
		w.rooms = w.formatRooms(rooms)
		w.searched = true
	}
	count := len(w.rooms)
	w.mu.Unlock()

	if err != nil {
		se := newServiceError(op, err)
		errorhandler.LogExternalServiceError(logger.With(ctx, "record_id", w.recordID.String()), "room_search", op, err)
		w.notify(ctx, notification.SeverityError, "Error", se.Message)
		w.observe(op, se)
		return se
	}

	logger.LogInfo(ctx, "Rooms found", "record_id", w.recordID.String(), "count", count)
	w.observe(op, nil)
	return nil
}

func (w *Wizard) formatRooms(rooms []RoomOption) []RoomOption {
	out := make([]RoomOption, len(rooms))
	for i, r := range rooms {
		r.FormattedRate = w.deps.Formatter.Format(r.BaseWeeklyRate)
		out[i] = r
	}
	return out
}

// SelectRoom moves to the confirm step with roomID selected and the price seeded from its rate.
// An id not in the current list is ignored.
func (w *Wizard) SelectRoom(roomID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.busy {
		return ErrBusy
	}
	if w.step != StepSearch {
		return ErrWrongStep
	}
	for i := range w.rooms {
		if w.rooms[i].RoomID == roomID {
			room := w.rooms[i]
			w.selected = &room
			w.finalPrice = room.BaseWeeklyRate
			w.step = StepConfirm
			w.booked = false
			w.touch()
			return nil
		}
	}
	return nil
}

// AdjustPrice overwrites the final price. Only valid in the confirm step.
func (w *Wizard) AdjustPrice(price float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch {
	case w.busy:
		return ErrBusy
	case w.step != StepConfirm:
		return ErrWrongStep
	case w.booked:
		return ErrAlreadyBooked
	case math.IsNaN(price) || math.IsInf(price, 0):
		return &ValidationError{Field: "final_price", Message: "invalid price"}
	}
	w.finalPrice = price
	w.touch()
	return nil
}

// GoBack returns to the search step and discards the selection and price.
func (w *Wizard) GoBack() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.busy {
		return ErrBusy
	}
	w.step = StepSearch
	w.selected = nil
	w.finalPrice = 0
	w.booked = false
	w.touch()
	return nil
}

// ConfirmBooking submits the booking for the selected room.
// On success the wizard stays on the confirm step showing the booked room.
func (w *Wizard) ConfirmBooking(ctx context.Context) error {
	const op = "confirm_booking"

	w.mu.Lock()
	var reject error
	switch {
	case w.busy:
		reject = ErrBusy
	case w.step != StepConfirm || w.selected == nil:
		reject = ErrWrongStep
	case w.booked:
		reject = ErrAlreadyBooked
	}
	if reject != nil {
		w.mu.Unlock()
		w.observe(op, reject)
		return reject
	}
	if w.startDate.IsZero() {
		w.mu.Unlock()
		err := &ValidationError{Field: "start_date", Message: "missing start date"}
		w.notify(ctx, notification.SeverityError, "Error", MsgMissingStartDate)
		w.observe(op, err)
		return err
	}

	req := BookingRequest{
		RecordID:   w.recordID,
		RoomID:     w.selected.RoomID,
		FinalPrice: w.finalPrice,
		StartDate:  w.startDate,
	}
	if !w.endDate.IsZero() {
		end := w.endDate
		req.EndDate = &end
	}
	w.busy = true
	w.touch()
	w.mu.Unlock()

	started := time.Now()
	err := w.deps.Bookings.ConfirmBooking(ctx, req)
	w.deps.Metrics.ObserveCollaborator(op, time.Since(started).Seconds())

	w.mu.Lock()
	w.busy = false
	if err == nil {
		w.booked = true
	}
	w.touch()
	w.mu.Unlock()

	if err != nil {
		se := newServiceError(op, err)
		errorhandler.LogExternalServiceError(logger.With(ctx, "record_id", w.recordID.String(), "room_id", req.RoomID),
			"booking", op, err)
		w.notify(ctx, notification.SeverityError, "Error", se.Message)
		w.observe(op, se)
		return se
	}

	logger.LogInfo(ctx, "Booking confirmed",
		"record_id", w.recordID.String(), "room_id", req.RoomID, "final_price", req.FinalPrice)
	w.notify(ctx, notification.SeveritySuccess, "Success", MsgBookingConfirmed)
	if w.deps.Records != nil {
		if err := w.deps.Records.MarkStale(ctx, w.recordID); err != nil {
			logger.LogWarn(ctx, "Failed to signal stale record", "record_id", w.recordID.String(), "error", err.Error())
		}
	}
	w.observe(op, nil)
	return nil
}

// View returns a snapshot of the state a client renders
func (w *Wizard) View() View {
	w.mu.Lock()
	defer w.mu.Unlock()

	v := View{
		RecordID:   w.recordID,
		Step:       w.step,
		IsStep1:    w.step == StepSearch,
		IsStep2:    w.step == StepConfirm,
		Busy:       w.busy,
		Booked:     w.booked,
		Searched:   w.searched,
		ResidentID: w.residentID,
		Rooms:      make([]RoomOption, len(w.rooms)),
		NoRooms:    !w.busy && len(w.rooms) == 0,
	}
	copy(v.Rooms, w.rooms)
	if !w.startDate.IsZero() {
		v.StartDate = w.startDate.String()
	}
	if !w.endDate.IsZero() {
		v.EndDate = w.endDate.String()
	}
	if w.step == StepConfirm && w.selected != nil {
		room := *w.selected
		price := w.finalPrice
		v.SelectedRoom = &room
		v.FinalPrice = &price
		v.FormattedFinalPrice = w.deps.Formatter.Format(price)
	}
	return v
}

// Busy reports whether a collaborator call is in flight
func (w *Wizard) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.busy
}

// LastActivity returns when the wizard was last used
func (w *Wizard) LastActivity() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastActivity
}

// touch requires w.mu
func (w *Wizard) touch() {
	w.lastActivity = w.deps.Now()
}

func (w *Wizard) notify(ctx context.Context, severity notification.Severity, title, message string) {
	w.deps.Sink.Notify(ctx, notification.New(w.recordID, severity, title, message))
}

func (w *Wizard) observe(op string, err error) {
	w.deps.Metrics.ObserveWizard(op, Outcome(err))
}

// Outcome classifies err for metrics labels
func Outcome(err error) string {
	var ve *ValidationError
	var se *ServiceError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrBusy):
		return "busy"
	case errors.As(err, &ve):
		return "validation"
	case errors.As(err, &se):
		return "service"
	default:
		return "rejected"
	}
}
