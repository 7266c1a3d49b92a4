package record

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/carehome/carehome-api/internal/pkg/errorhandler"
	"github.com/carehome/carehome-api/internal/pkg/response"
)

// Handler handles record HTTP requests
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetContext handles GET /records/{recordID}/context
func (h *Handler) GetContext(w http.ResponseWriter, r *http.Request) {
	recordID, err := uuid.Parse(chi.URLParam(r, "recordID"))
	if err != nil {
		response.BadRequest(w, "Invalid record ID")
		return
	}

	c, err := h.service.Get(r.Context(), recordID)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			response.NotFound(w, "Enquiry record not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load record", err)
		return
	}

	response.OK(w, c)
}

// RegisterRecordRoutes adds record endpoints to a router serving /records
func (h *Handler) RegisterRecordRoutes(r chi.Router) {
	r.Get("/records/{recordID}/context", h.GetContext)
}
