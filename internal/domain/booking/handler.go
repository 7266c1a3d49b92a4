package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/carehome/carehome-api/internal/pkg/response"
)

// Handler handles booking HTTP requests
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListByRecord handles GET /records/{recordID}/bookings
func (h *Handler) ListByRecord(w http.ResponseWriter, r *http.Request) {
	recordID, err := uuid.Parse(chi.URLParam(r, "recordID"))
	if err != nil {
		response.BadRequest(w, "Invalid record ID")
		return
	}

	bookings, err := h.service.ListByRecord(r.Context(), recordID)
	if err != nil {
		log.Error().Err(err).Str("record_id", recordID.String()).Msg("Failed to list bookings")
		response.InternalError(w)
		return
	}

	response.WithTotal(w, bookings, len(bookings))
}
