package booking

import "github.com/go-chi/chi/v5"

// RegisterRecordRoutes adds booking endpoints to a router serving /records
func (h *Handler) RegisterRecordRoutes(r chi.Router) {
	r.Get("/records/{recordID}/bookings", h.ListByRecord)
}
