// internal/app/features/authn/routes.go
package authn

import "github.com/go-chi/chi/v5"

// MountRoutes registers the authentication endpoints under /auth.
func MountRoutes(r chi.Router, h *Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.ServeRegister)
		r.Post("/login", h.ServeLogin)
		r.Post("/logout", h.ServeLogout)
	})
}
