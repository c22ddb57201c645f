// internal/app/features/verification/handler.go
package verification

import (
	userstore "github.com/campuslink/careerhub/internal/app/store/users"
	verificationstore "github.com/campuslink/careerhub/internal/app/store/verifications"
	"github.com/campuslink/careerhub/internal/app/system/auditlog"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for identity verification.
// Decisions write the user document first; the request document carries the
// audit trail.
type Handler struct {
	Requests *verificationstore.Store
	Users    *userstore.Store
	Audit    *auditlog.Logger
	Log      *zap.Logger
}

// NewHandler constructs a verification handler.
func NewHandler(requests *verificationstore.Store, users *userstore.Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Requests: requests,
		Users:    users,
		Audit:    audit,
		Log:      logger,
	}
}
