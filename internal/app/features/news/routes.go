// internal/app/features/news/routes.go
package news

import "github.com/go-chi/chi/v5"

// MountRoutes registers the news feed endpoints.
func MountRoutes(r chi.Router, h *Handler) {
	r.Get("/api/news", h.ServeList)
	r.Post("/api/admin/news/refresh", h.ServeRefresh)
}
