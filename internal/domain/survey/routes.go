package survey

import "github.com/go-chi/chi/v5"

// RegisterRecordRoutes adds survey endpoints to a router serving /records
func (h *Handler) RegisterRecordRoutes(r chi.Router) {
	r.Get("/records/{recordID}/survey", h.Initial)
	r.Post("/records/{recordID}/survey", h.Submit)
}
