package property

import "github.com/go-chi/chi/v5"

// Routes are mounted under /properties
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/markers", h.Markers)
	return r
}
