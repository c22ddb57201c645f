// internal/app/features/opportunities/routes.go
package opportunities

import "github.com/go-chi/chi/v5"

// MountRoutes registers the work opportunity endpoints.
func MountRoutes(r chi.Router, h *Handler) {
	r.Route("/api/opportunities", func(r chi.Router) {
		r.Get("/", h.ServeList)
		r.Post("/", h.ServeCreate)
		r.Get("/{id}", h.ServeView)
		r.Delete("/{id}", h.ServeDelete)
		r.Post("/{id}/apply", h.ServeApply)
		r.Get("/{id}/applications", h.ServeApplications)
	})
}
