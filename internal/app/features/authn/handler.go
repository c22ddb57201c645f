// internal/app/features/authn/handler.go
package authn

import (
	userstore "github.com/campuslink/careerhub/internal/app/store/users"
	"github.com/campuslink/careerhub/internal/app/system/auth"
	"github.com/campuslink/careerhub/internal/app/system/auditlog"
	"github.com/campuslink/careerhub/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for account registration and
// session management.
type Handler struct {
	Users      *userstore.Store
	Sessions   *auth.SessionManager
	Audit      *auditlog.Logger
	LoginLimit *ratelimit.LoginLimiter
	Log        *zap.Logger
}

// NewHandler constructs an authn handler bound to the users store and
// session manager.
func NewHandler(users *userstore.Store, sessions *auth.SessionManager, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:      users,
		Sessions:   sessions,
		Audit:      audit,
		LoginLimit: ratelimit.NewLoginLimiter(),
		Log:        logger,
	}
}
