// internal/app/features/assistant/handler.go
package assistant

import (
	"github.com/campuslink/careerhub/internal/app/services/textgen"
	"github.com/campuslink/careerhub/internal/app/system/safety"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for the career assistant.
type Handler struct {
	Generator *textgen.Client
	Safety    *safety.Scanner
	Log       *zap.Logger
}

// NewHandler constructs an assistant handler.
func NewHandler(generator *textgen.Client, scanner *safety.Scanner, logger *zap.Logger) *Handler {
	return &Handler{
		Generator: generator,
		Safety:    scanner,
		Log:       logger,
	}
}
