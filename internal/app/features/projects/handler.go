// internal/app/features/projects/handler.go
package projects

import (
	projectstore "github.com/campuslink/careerhub/internal/app/store/projects"
	"github.com/campuslink/careerhub/internal/app/system/safety"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for the project idea board.
type Handler struct {
	Projects *projectstore.Store
	Safety   *safety.Scanner
	Log      *zap.Logger
}

// NewHandler constructs a projects handler.
func NewHandler(projects *projectstore.Store, scanner *safety.Scanner, logger *zap.Logger) *Handler {
	return &Handler{
		Projects: projects,
		Safety:   scanner,
		Log:      logger,
	}
}
