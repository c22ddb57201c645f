// internal/app/features/questions/handler.go
package questions

import (
	questionstore "github.com/campuslink/careerhub/internal/app/store/questions"
	"github.com/campuslink/careerhub/internal/app/system/safety"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for the interview question bank.
type Handler struct {
	Questions *questionstore.Store
	Safety    *safety.Scanner
	Log       *zap.Logger
}

// NewHandler constructs a questions handler.
func NewHandler(questions *questionstore.Store, scanner *safety.Scanner, logger *zap.Logger) *Handler {
	return &Handler{
		Questions: questions,
		Safety:    scanner,
		Log:       logger,
	}
}
