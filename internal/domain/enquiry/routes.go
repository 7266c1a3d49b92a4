package enquiry

import "github.com/go-chi/chi/v5"

// Routes are mounted under /enquiries
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Submit)
	r.Get("/properties", h.Properties)
	return r
}
