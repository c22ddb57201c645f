// internal/app/features/profile/profile.go
package profile

import (
	"context"
	"net/http"
	"time"

	userstore "github.com/campuslink/careerhub/internal/app/store/users"
	"github.com/campuslink/careerhub/internal/app/system/gates"
	"github.com/campuslink/careerhub/internal/app/system/htmlsanitize"
	"github.com/campuslink/careerhub/internal/app/system/httpjson"
	"github.com/campuslink/careerhub/internal/app/system/normalize"
	"github.com/campuslink/careerhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type profileResponse struct {
	ID                 string `json:"id"`
	FullName           string `json:"full_name"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	VerificationStatus string `json:"verification_status"`
	GradYear           *int   `json:"grad_year,omitempty"`
	Bio                string `json:"bio,omitempty"`
}

// ServeGet handles GET /api/profile.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, res.UserID)
	if err == mongo.ErrNoDocuments {
		httpjson.NotFound(w, "Profile not found.")
		return
	}
	if err != nil {
		h.Log.Error("profile: load failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	httpjson.OK(w, profileResponse{
		ID:                 u.ID.Hex(),
		FullName:           u.FullName,
		Email:              u.Email,
		Role:               u.Role,
		VerificationStatus: u.VerificationStatus,
		GradYear:           u.GradYear,
		Bio:                u.Bio,
	})
}

type updateRequest struct {
	FullName string `json:"full_name"`
	GradYear *int   `json:"grad_year"`
	Bio      string `json:"bio"`
}

// ServeUpdate handles PUT /api/profile.
// The bio is sanitized so stored markup is safe to render anywhere.
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "Invalid request body.")
		return
	}

	if normalize.Name(req.FullName) == "" {
		httpjson.BadRequest(w, "Full name is required.")
		return
	}
	if req.GradYear != nil {
		year := *req.GradYear
		if year < 1900 || year > time.Now().Year()+10 {
			httpjson.BadRequest(w, "Graduation year is out of range.")
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Users.UpdateProfile(ctx, res.UserID, userstore.ProfileUpdate{
		FullName: req.FullName,
		GradYear: req.GradYear,
		Bio:      htmlsanitize.Sanitize(req.Bio),
	})
	if err == mongo.ErrNoDocuments {
		httpjson.NotFound(w, "Profile not found.")
		return
	}
	if err != nil {
		h.Log.Error("profile: update failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	h.ServeGet(w, r)
}
