// internal/app/features/projects/routes.go
package projects

import "github.com/go-chi/chi/v5"

// MountRoutes registers the project idea board endpoints.
func MountRoutes(r chi.Router, h *Handler) {
	r.Route("/api/projects", func(r chi.Router) {
		r.Get("/", h.ServeList)
		r.Post("/", h.ServeCreate)
		r.Get("/{id}", h.ServeView)
		r.Delete("/{id}", h.ServeDelete)
	})
}
