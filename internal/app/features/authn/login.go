// internal/app/features/authn/login.go
package authn

import (
	"context"
	"net/http"
	"time"

	userstore "github.com/campuslink/careerhub/internal/app/store/users"
	"github.com/campuslink/careerhub/internal/app/system/httpjson"
	"github.com/campuslink/careerhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ServeLogin handles POST /auth/login.
// A successful login also runs the graduation check so students whose
// graduation year has passed come back as alumni immediately.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "Invalid request body.")
		return
	}
	if req.Email == "" || req.Password == "" {
		httpjson.BadRequest(w, "Email and password are required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if h.LoginLimit != nil {
		if ok, reason := h.LoginLimit.Check(r, req.Email); !ok {
			h.Audit.LoginRateLimited(ctx, r, req.Email)
			httpjson.Error(w, http.StatusTooManyRequests, httpjson.CodeRateLimited, reason)
			return
		}
	}

	u, err := h.Users.Authenticate(ctx, req.Email, req.Password)
	if err == userstore.ErrBadCredentials {
		h.Audit.LoginFailed(ctx, r, req.Email)
		httpjson.Error(w, http.StatusUnauthorized, httpjson.CodeUnauthorized, "Invalid email or password.")
		return
	}
	if err != nil {
		h.Log.Error("login: authenticate failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	upgraded, err := h.Users.PromoteIfGraduated(ctx, u.ID, time.Now())
	if err != nil {
		// The login still succeeds; the hourly sweep will catch up.
		h.Log.Warn("login: graduation check failed", zap.String("user_id", u.ID.Hex()), zap.Error(err))
	}
	if upgraded {
		h.Log.Info("student promoted to alumni at login", zap.String("user_id", u.ID.Hex()))
		u, err = h.Users.GetByID(ctx, u.ID)
		if err != nil {
			h.Log.Error("login: reload after promotion failed", zap.Error(err))
			httpjson.ServerError(w)
			return
		}
	}

	if err := h.Sessions.SignIn(w, r, u.ID.Hex()); err != nil {
		h.Log.Error("login: sign-in failed", zap.String("user_id", u.ID.Hex()), zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	if h.LoginLimit != nil {
		h.LoginLimit.ResetEmail(req.Email)
	}
	h.Audit.LoginSuccess(ctx, r, u.ID, u.Email)
	httpjson.OK(w, toUserResponse(u))
}
