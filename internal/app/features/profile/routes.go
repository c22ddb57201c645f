// internal/app/features/profile/routes.go
package profile

import "github.com/go-chi/chi/v5"

// MountRoutes registers the profile endpoints. Handlers gate on the session
// themselves, so no route-level middleware is needed here.
func MountRoutes(r chi.Router, h *Handler) {
	r.Get("/api/profile", h.ServeGet)
	r.Put("/api/profile", h.ServeUpdate)
}
