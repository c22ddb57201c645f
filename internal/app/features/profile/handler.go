// internal/app/features/profile/handler.go
package profile

import (
	userstore "github.com/campuslink/careerhub/internal/app/store/users"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for the current user's profile.
type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

// NewHandler constructs a profile handler bound to the users store.
func NewHandler(users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Users: users,
		Log:   logger,
	}
}
