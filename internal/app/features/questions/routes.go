// internal/app/features/questions/routes.go
package questions

import "github.com/go-chi/chi/v5"

// MountRoutes registers the interview question bank endpoints.
func MountRoutes(r chi.Router, h *Handler) {
	r.Route("/api/questions", func(r chi.Router) {
		r.Get("/", h.ServeList)
		r.Post("/", h.ServeCreate)
		r.Delete("/{id}", h.ServeDelete)
	})
}
