package wizard

import "github.com/go-chi/chi/v5"

// Routes are mounted under /room-finder
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/{sessionID}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Delete("/", h.End)
		r.Patch("/fields", h.SetFields)
		r.Post("/search", h.Search)
		r.Post("/select", h.Select)
		r.Put("/price", h.AdjustPrice)
		r.Post("/back", h.Back)
		r.Post("/confirm", h.Confirm)
	})

	return r
}

// RegisterRecordRoutes adds the session start endpoint to a router serving /records
func (h *Handler) RegisterRecordRoutes(r chi.Router) {
	r.Post("/records/{recordID}/room-finder", h.Start)
}
