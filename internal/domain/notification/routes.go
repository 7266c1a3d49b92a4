package notification

import "github.com/go-chi/chi/v5"

// WSRoutes are mounted under /ws
func (h *Handler) WSRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/records/{recordID}/notifications", h.WebSocket)
	return r
}

// RegisterHistory adds the history endpoint to an /api/v1 router
func (h *Handler) RegisterHistory(r chi.Router) {
	r.Get("/records/{recordID}/notifications", h.History)
}
