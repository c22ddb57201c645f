// internal/app/features/authn/register.go
package authn

import (
	"context"
	"net/http"
	"net/mail"
	"strings"

	userstore "github.com/campuslink/careerhub/internal/app/store/users"
	"github.com/campuslink/careerhub/internal/app/system/httpjson"
	"github.com/campuslink/careerhub/internal/app/system/normalize"
	"github.com/campuslink/careerhub/internal/app/system/timeouts"
	"github.com/campuslink/careerhub/internal/domain/models"
	"go.uber.org/zap"
)

const minPasswordLen = 8

type registerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID                 string `json:"id"`
	FullName           string `json:"full_name"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	VerificationStatus string `json:"verification_status"`
	GradYear           *int   `json:"grad_year,omitempty"`
	Bio                string `json:"bio,omitempty"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:                 u.ID.Hex(),
		FullName:           u.FullName,
		Email:              u.Email,
		Role:               u.Role,
		VerificationStatus: u.VerificationStatus,
		GradYear:           u.GradYear,
		Bio:                u.Bio,
	}
}

// ServeRegister handles POST /auth/register.
// New accounts start unverified; role assignment happens through the
// verification workflow.
func (h *Handler) ServeRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "Invalid request body.")
		return
	}

	fullName := normalize.Name(req.FullName)
	email := normalize.Email(req.Email)

	if fullName == "" {
		httpjson.BadRequest(w, "Full name is required.")
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		httpjson.BadRequest(w, "A valid email address is required.")
		return
	}
	if len(strings.TrimSpace(req.Password)) < minPasswordLen {
		httpjson.BadRequest(w, "Password must be at least 8 characters.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.Create(ctx, models.User{
		FullName: fullName,
		Email:    email,
	}, req.Password)
	if err == userstore.ErrDuplicateEmail {
		httpjson.Conflict(w, httpjson.CodeConflict, "An account with this email already exists.")
		return
	}
	if err != nil {
		h.Log.Error("register: create user failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	if err := h.Sessions.SignIn(w, r, u.ID.Hex()); err != nil {
		h.Log.Error("register: sign-in failed", zap.String("user_id", u.ID.Hex()), zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	h.Audit.Registered(ctx, r, u.ID, u.Email)
	h.Log.Info("user registered", zap.String("user_id", u.ID.Hex()))
	httpjson.Write(w, http.StatusCreated, toUserResponse(&u))
}
