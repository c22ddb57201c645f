// internal/app/features/audittrail/routes.go
package audittrail

import "github.com/go-chi/chi/v5"

// MountRoutes registers the admin audit trail endpoint.
func MountRoutes(r chi.Router, h *Handler) {
	r.Get("/api/admin/audit", h.ServeList)
}
