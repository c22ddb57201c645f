// internal/app/features/groups/handler.go
package groups

import (
	groupstore "github.com/campuslink/careerhub/internal/app/store/groups"
	"github.com/campuslink/careerhub/internal/app/system/auditlog"
	"github.com/campuslink/careerhub/internal/app/system/safety"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for study groups.
type Handler struct {
	Groups *groupstore.Store
	Safety *safety.Scanner
	Audit  *auditlog.Logger
	Log    *zap.Logger
}

// NewHandler constructs a groups handler.
func NewHandler(groups *groupstore.Store, scanner *safety.Scanner, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Groups: groups,
		Safety: scanner,
		Audit:  audit,
		Log:    logger,
	}
}
