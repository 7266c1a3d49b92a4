package room

import (
	"errors"
	"net/http"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/carehome/carehome-api/internal/pkg/errorhandler"
	"github.com/carehome/carehome-api/internal/pkg/imaging"
	"github.com/carehome/carehome-api/internal/pkg/response"
	"github.com/carehome/carehome-api/internal/pkg/storage"
)

// Handler handles room HTTP requests
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Available handles GET /rooms/available?start_date=&end_date=&resident_id=&property_id=
func (h *Handler) Available(w http.ResponseWriter, r *http.Request) {
	q, details := parseQuery(r)
	if len(details) > 0 {
		errorhandler.LogValidationError(r.Context(), details)
		response.ValidationError(w, details)
		return
	}

	matches, err := h.service.Search(r.Context(), q)
	if err != nil {
		if errors.Is(err, ErrInvalidQuery) {
			response.ValidationMessage(w, "end_date must not be before start_date")
			return
		}
		var roomErr *Error
		if errors.As(err, &roomErr) {
			errorhandler.HandleError(r.Context(), w, http.StatusBadGateway, roomErr.Code, roomErr.Message, err)
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to search rooms", err)
		return
	}

	response.WithTotal(w, matches, len(matches))
}

func parseQuery(r *http.Request) (Query, map[string]string) {
	values := r.URL.Query()
	details := map[string]string{}
	var q Query

	start, err := civil.ParseDate(values.Get("start_date"))
	if err != nil {
		details["start_date"] = "start_date must be a date (YYYY-MM-DD)"
	}
	q.StartDate = start

	if v := values.Get("end_date"); v != "" {
		end, err := civil.ParseDate(v)
		if err != nil {
			details["end_date"] = "end_date must be a date (YYYY-MM-DD)"
		} else {
			q.EndDate = &end
		}
	}
	if v := values.Get("resident_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			details["resident_id"] = "resident_id must be a valid UUID"
		} else {
			q.ResidentID = &id
		}
	}
	if v := values.Get("property_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			details["property_id"] = "property_id must be a valid UUID"
		} else {
			q.PropertyID = &id
		}
	}
	return q, details
}

// UploadImage handles POST /rooms/{roomID}/image (multipart field "file")
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	roomID, err := uuid.Parse(chi.URLParam(r, "roomID"))
	if err != nil {
		response.BadRequest(w, "Invalid room ID")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxImageSize+1<<20)
	file, _, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Missing image file")
		return
	}
	defer file.Close()

	resp, err := h.service.UploadImage(r.Context(), roomID, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrRoomNotFound):
			response.NotFound(w, "Room not found")
		case errors.Is(err, storage.ErrFileTooLarge), errors.Is(err, storage.ErrInvalidMimeType), errors.Is(err, storage.ErrEmptyFile):
			response.ValidationMessage(w, err.Error())
		case errors.Is(err, imaging.ErrUndecodable):
			response.ValidationMessage(w, imaging.ErrUndecodable.Error())
		case errors.Is(err, ErrStorageUnavailable):
			response.Error(w, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "Image storage is not configured")
		default:
			errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to upload image", err)
		}
		return
	}

	response.Created(w, resp)
}
