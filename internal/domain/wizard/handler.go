package wizard

import (
	"errors"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/carehome/carehome-api/internal/domain/notification"
	"github.com/carehome/carehome-api/internal/pkg/errorhandler"
	"github.com/carehome/carehome-api/internal/pkg/logger"
	"github.com/carehome/carehome-api/internal/pkg/response"
	"github.com/carehome/carehome-api/internal/pkg/validator"
)

// CodeRoomUnavailable is the collaborator code mapped to 409
const CodeRoomUnavailable = "ROOM_UNAVAILABLE"

// Handler exposes room finder sessions over HTTP
type Handler struct {
	registry *Registry
}

func NewHandler(registry *Registry) *Handler {
	return &Handler{registry: registry}
}

// operation runs one wizard call with a notification collector attached
type operation func(r *http.Request, w *Wizard) error

func (h *Handler) run(rw http.ResponseWriter, r *http.Request, op operation) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		response.BadRequest(rw, "Invalid session ID")
		return
	}
	wiz, err := h.registry.Get(sessionID)
	if err != nil {
		response.NotFound(rw, "Room finder session not found")
		return
	}

	collector := notification.NewCollector()
	ctx := logger.With(r.Context(), "session_id", sessionID.String(), "record_id", wiz.RecordID().String())
	ctx = notification.WithCollector(ctx, collector)

	opErr := op(r.WithContext(ctx), wiz)
	result := &Result{
		SessionID:     sessionID,
		View:          wiz.View(),
		Notifications: collector.Notifications(),
	}
	if opErr != nil {
		writeError(rw, r, opErr, result)
		return
	}
	response.OK(rw, result)
}

func writeError(rw http.ResponseWriter, r *http.Request, err error, result *Result) {
	var ve *ValidationError
	var se *ServiceError

	switch {
	case errors.As(err, &ve):
		errorhandler.LogValidationError(r.Context(), map[string]string{ve.Field: ve.Message})
		response.ErrorWithData(rw, http.StatusUnprocessableEntity, "VALIDATION_ERROR", ve.Message,
			map[string]string{ve.Field: ve.Message}, result)
	case errors.As(err, &se):
		if se.Code == CodeRoomUnavailable {
			response.Conflict(rw, CodeRoomUnavailable, se.Message, result)
			return
		}
		response.BadGateway(rw, se.Message, result)
	case errors.Is(err, ErrBusy):
		response.Conflict(rw, "BUSY", "A request for this session is already in progress", result)
	case errors.Is(err, ErrWrongStep):
		response.Conflict(rw, "WRONG_STEP", err.Error(), result)
	case errors.Is(err, ErrAlreadyBooked):
		response.Conflict(rw, "ALREADY_BOOKED", err.Error(), result)
	default:
		errorhandler.HandleError(r.Context(), rw, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", err)
	}
}

// Start handles POST /records/{recordID}/room-finder
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	recordID, err := uuid.Parse(chi.URLParam(r, "recordID"))
	if err != nil {
		response.BadRequest(w, "Invalid record ID")
		return
	}

	collector := notification.NewCollector()
	ctx := notification.WithCollector(r.Context(), collector)
	sessionID, wiz, err := h.registry.Start(ctx, recordID)
	if errors.Is(err, ErrRecordNotFound) {
		response.NotFound(w, "Record not found")
		return
	}
	if err != nil {
		errorhandler.HandleError(ctx, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to start room finder", err)
		return
	}

	logger.LogInfo(ctx, "Room finder session started", "session_id", sessionID.String(), "record_id", recordID.String())
	response.Created(w, &Result{
		SessionID:     sessionID,
		View:          wiz.View(),
		Notifications: collector.Notifications(),
	})
}

// Get handles GET /room-finder/{sessionID}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(*http.Request, *Wizard) error { return nil })
}

// SetFields handles PATCH /room-finder/{sessionID}/fields
func (h *Handler) SetFields(w http.ResponseWriter, r *http.Request) {
	var req SetFieldsRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if len(req) == 0 {
		response.ValidationError(w, map[string]string{"fields": "At least one field is required"})
		return
	}

	names := make([]string, 0, len(req))
	for name := range req {
		names = append(names, name)
	}
	sort.Strings(names)

	h.run(w, r, func(_ *http.Request, wiz *Wizard) error {
		for _, name := range names {
			if err := wiz.SetField(name, req[name]); err != nil {
				return err
			}
		}
		return nil
	})
}

// Search handles POST /room-finder/{sessionID}/search
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(r *http.Request, wiz *Wizard) error {
		return wiz.FindRooms(r.Context())
	})
}

// Select handles POST /room-finder/{sessionID}/select
func (h *Handler) Select(w http.ResponseWriter, r *http.Request) {
	var req SelectRoomRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	h.run(w, r, func(_ *http.Request, wiz *Wizard) error {
		return wiz.SelectRoom(req.RoomID)
	})
}

// AdjustPrice handles PUT /room-finder/{sessionID}/price
func (h *Handler) AdjustPrice(w http.ResponseWriter, r *http.Request) {
	var req AdjustPriceRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			response.ValidationError(w, map[string]string{ve.Field: ve.Message})
			return
		}
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	h.run(w, r, func(_ *http.Request, wiz *Wizard) error {
		return wiz.AdjustPrice(float64(*req.FinalPrice))
	})
}

// Back handles POST /room-finder/{sessionID}/back
func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(_ *http.Request, wiz *Wizard) error {
		return wiz.GoBack()
	})
}

// Confirm handles POST /room-finder/{sessionID}/confirm
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(r *http.Request, wiz *Wizard) error {
		return wiz.ConfirmBooking(r.Context())
	})
}

// End handles DELETE /room-finder/{sessionID}
func (h *Handler) End(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		response.BadRequest(w, "Invalid session ID")
		return
	}
	if !h.registry.Remove(sessionID) {
		response.NotFound(w, "Room finder session not found")
		return
	}
	response.NoContent(w)
}
