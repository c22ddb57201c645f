// internal/app/features/authn/logout.go
package authn

import (
	"net/http"

	"github.com/campuslink/careerhub/internal/app/system/auth"
	"github.com/campuslink/careerhub/internal/app/system/httpjson"
	"go.uber.org/zap"
)

// ServeLogout handles POST /auth/logout. Signing out an anonymous session
// is a no-op that still returns 200.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	user, signedIn := auth.CurrentUser(r)
	if err := h.Sessions.SignOut(w, r); err != nil {
		h.Log.Warn("logout: clearing session failed", zap.Error(err))
	}
	if signedIn {
		h.Audit.Logout(r.Context(), r, user.ID)
	}
	httpjson.OK(w, map[string]any{"signed_out": true})
}
