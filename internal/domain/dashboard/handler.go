package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carehome/carehome-api/internal/pkg/errorhandler"
	"github.com/carehome/carehome-api/internal/pkg/response"
)

// Handler handles dashboard HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates new dashboard handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Get handles GET /dashboard
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.Get(r.Context())
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load dashboard", err)
		return
	}
	response.OK(w, data)
}

// Routes returns dashboard routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Get)
	return r
}
