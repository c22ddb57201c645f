// internal/app/features/assistant/routes.go
package assistant

import "github.com/go-chi/chi/v5"

// MountRoutes registers the career assistant endpoint.
func MountRoutes(r chi.Router, h *Handler) {
	r.Post("/api/assistant/chat", h.ServeChat)
}
