// internal/app/features/opportunities/handler.go
package opportunities

import (
	opportunitystore "github.com/campuslink/careerhub/internal/app/store/opportunities"
	"github.com/campuslink/careerhub/internal/app/system/safety"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for work opportunity listings.
type Handler struct {
	Opportunities *opportunitystore.Store
	Safety        *safety.Scanner
	Log           *zap.Logger
}

// NewHandler constructs an opportunities handler.
func NewHandler(opportunities *opportunitystore.Store, scanner *safety.Scanner, logger *zap.Logger) *Handler {
	return &Handler{
		Opportunities: opportunities,
		Safety:        scanner,
		Log:           logger,
	}
}
