// internal/app/features/groups/routes.go
package groups

import "github.com/go-chi/chi/v5"

// MountRoutes registers the study group endpoints.
func MountRoutes(r chi.Router, h *Handler) {
	r.Route("/api/groups", func(r chi.Router) {
		r.Get("/", h.ServeList)
		r.Post("/", h.ServeCreate)
		r.Get("/mine", h.ServeMine)
		r.Get("/{id}", h.ServeView)
		r.Post("/{id}/join", h.ServeRequestJoin)
		r.Post("/{id}/requests/{userID}/approve", h.ServeApprove)
		r.Post("/{id}/requests/{userID}/reject", h.ServeReject)
	})
}
