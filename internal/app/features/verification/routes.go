// internal/app/features/verification/routes.go
package verification

import "github.com/go-chi/chi/v5"

// MountRoutes registers the verification endpoints. The admin review queue
// lives under /api/admin.
func MountRoutes(r chi.Router, h *Handler) {
	r.Post("/api/verification", h.ServeSubmit)
	r.Get("/api/verification", h.ServeStatus)

	r.Route("/api/admin/verifications", func(r chi.Router) {
		r.Get("/", h.ServeAdminList)
		r.Post("/{id}/approve", h.ServeApprove)
		r.Post("/{id}/reject", h.ServeReject)
	})
}
