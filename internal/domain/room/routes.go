package room

import "github.com/go-chi/chi/v5"

// Routes are mounted under /rooms
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/available", h.Available)
	r.Post("/{roomID}/image", h.UploadImage)
	return r
}
