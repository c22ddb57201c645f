// internal/app/features/verification/admin.go
package verification

import (
	"context"
	"net/http"

	userstore "github.com/campuslink/careerhub/internal/app/store/users"
	"github.com/campuslink/careerhub/internal/app/system/gates"
	"github.com/campuslink/careerhub/internal/app/system/httpjson"
	"github.com/campuslink/careerhub/internal/app/system/timeouts"
	"github.com/campuslink/careerhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const pendingLimit = 200

// ServeAdminList handles GET /api/admin/verifications, the pending review
// queue in submission order.
func (h *Handler) ServeAdminList(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAdmin(w, r, "Only admins review verification requests.")
	if !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	reqs, err := h.Requests.ListPending(ctx, pendingLimit)
	if err != nil {
		h.Log.Error("verification: list pending failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	out := make([]requestResponse, 0, len(reqs))
	for i := range reqs {
		out = append(out, toRequestResponse(&reqs[i]))
	}
	httpjson.OK(w, map[string]any{"requests": out})
}

type approveRequest struct {
	Role string `json:"role"`
}

// loadPending resolves the request ID and checks it is still pending.
func (h *Handler) loadPending(ctx context.Context, w http.ResponseWriter, r *http.Request) (*models.VerificationRequest, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "Verification request not found.")
		return nil, false
	}

	req, err := h.Requests.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		httpjson.NotFound(w, "Verification request not found.")
		return nil, false
	}
	if err != nil {
		h.Log.Error("verification: load request failed", zap.Error(err))
		httpjson.ServerError(w)
		return nil, false
	}
	if req.Status != models.VerificationPending {
		httpjson.Conflict(w, httpjson.CodeConflict, "This request has already been decided.")
		return nil, false
	}
	return req, true
}

// ServeApprove handles POST /api/admin/verifications/{id}/approve.
// The body may override the requested role; the user document is the
// authority and is updated first, then the request is stamped.
func (h *Handler) ServeApprove(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAdmin(w, r, "Only admins review verification requests.")
	if !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	req, ok := h.loadPending(ctx, w, r)
	if !ok {
		return
	}

	role := req.RequestedRole
	if r.ContentLength > 0 {
		var body approveRequest
		if err := httpjson.Decode(r, &body); err != nil {
			httpjson.BadRequest(w, "Invalid request body.")
			return
		}
		if body.Role != "" {
			role = body.Role
		}
	}
	if !models.IsAssignableRole(role) {
		httpjson.BadRequest(w, `Role must be "student", "alumni", or "professor".`)
		return
	}

	err := h.Users.ApproveVerification(ctx, req.UserID, role)
	if err == userstore.ErrNotPendingReview {
		httpjson.Conflict(w, httpjson.CodeConflict, "This request has already been decided.")
		return
	}
	if err != nil {
		h.Log.Error("verification: approve user failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	if err := h.Requests.MarkDecided(ctx, req.ID, models.VerificationOK, res.UserID); err != nil {
		// The user is already verified; only the audit stamp is at risk.
		h.Log.Warn("verification: stamping approved request failed",
			zap.String("request_id", req.ID.Hex()), zap.Error(err))
	}

	h.Audit.VerificationDecided(ctx, r, res.UserID, req.UserID, req.ID, true, role)
	h.Log.Info("verification approved",
		zap.String("user_id", req.UserID.Hex()),
		zap.String("role", role),
		zap.String("decided_by", res.UserID.Hex()))
	httpjson.OK(w, map[string]any{"status": models.VerificationOK, "role": role})
}

// ServeReject handles POST /api/admin/verifications/{id}/reject. The user
// keeps their current role and may resubmit later.
func (h *Handler) ServeReject(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAdmin(w, r, "Only admins review verification requests.")
	if !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	req, ok := h.loadPending(ctx, w, r)
	if !ok {
		return
	}

	err := h.Users.RejectVerification(ctx, req.UserID)
	if err == userstore.ErrNotPendingReview {
		httpjson.Conflict(w, httpjson.CodeConflict, "This request has already been decided.")
		return
	}
	if err != nil {
		h.Log.Error("verification: reject user failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	if err := h.Requests.MarkDecided(ctx, req.ID, models.VerificationDenied, res.UserID); err != nil {
		h.Log.Warn("verification: stamping rejected request failed",
			zap.String("request_id", req.ID.Hex()), zap.Error(err))
	}

	h.Audit.VerificationDecided(ctx, r, res.UserID, req.UserID, req.ID, false, "")
	h.Log.Info("verification rejected",
		zap.String("user_id", req.UserID.Hex()),
		zap.String("decided_by", res.UserID.Hex()))
	httpjson.OK(w, map[string]any{"status": models.VerificationDenied})
}
