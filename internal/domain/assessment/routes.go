package assessment

import "github.com/go-chi/chi/v5"

// Routes are mounted under /assessments
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/types", h.Types)
	r.Get("/residents", h.Residents)
	return r
}

// RegisterRecordRoutes adds assessment endpoints to a router serving /records
func (h *Handler) RegisterRecordRoutes(r chi.Router) {
	r.Get("/records/{recordID}/assessments", h.ListByRecord)
}
