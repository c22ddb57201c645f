// internal/app/features/verification/submit.go
package verification

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/campuslink/careerhub/internal/app/system/authz"
	"github.com/campuslink/careerhub/internal/app/system/gates"
	"github.com/campuslink/careerhub/internal/app/system/httpjson"
	"github.com/campuslink/careerhub/internal/app/system/limits"
	"github.com/campuslink/careerhub/internal/app/system/timeouts"
	"github.com/campuslink/careerhub/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type submitRequest struct {
	RequestedRole string `json:"requested_role"`
	DocumentName  string `json:"document_name"`
	Document      string `json:"document"` // base64
}

type requestResponse struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id"`
	RequestedRole string `json:"requested_role"`
	DocumentName  string `json:"document_name,omitempty"`
	Status        string `json:"status"`
	SubmittedAt   string `json:"submitted_at"`
	DecidedAt     string `json:"decided_at,omitempty"`
}

func toRequestResponse(req *models.VerificationRequest) requestResponse {
	resp := requestResponse{
		ID:            req.ID.Hex(),
		UserID:        req.UserID.Hex(),
		RequestedRole: req.RequestedRole,
		DocumentName:  req.DocumentName,
		Status:        req.Status,
		SubmittedAt:   req.SubmittedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if req.DecidedAt != nil {
		resp.DecidedAt = req.DecidedAt.Format("2006-01-02T15:04:05Z07:00")
	}
	return resp
}

// ServeSubmit handles POST /api/verification. An account may hold one open
// request at a time; resubmission is allowed after a rejection. The user
// document flips to pending_review first so the eligibility check and the
// status change are one conditional write.
func (h *Handler) ServeSubmit(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	var req submitRequest
	if err := httpjson.DecodeLimited(r, &req, limits.MaxDocumentBody); err != nil {
		httpjson.BadRequest(w, "Invalid request body.")
		return
	}

	if !models.IsAssignableRole(req.RequestedRole) {
		httpjson.BadRequest(w, `Requested role must be "student", "alumni", or "professor".`)
		return
	}
	doc, err := base64.StdEncoding.DecodeString(req.Document)
	if err != nil || len(doc) == 0 {
		httpjson.BadRequest(w, "A base64-encoded supporting document is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Users.SetVerificationPending(ctx, res.UserID); err != nil {
		if err == mongo.ErrNoDocuments {
			status, _ := authz.VerificationStatus(r)
			if status == models.VerificationPending || status == models.VerificationOK {
				httpjson.Conflict(w, httpjson.CodeConflict, "Your account is already pending review or verified.")
				return
			}
			httpjson.Conflict(w, httpjson.CodeConflict, "Your account is not eligible for verification right now.")
			return
		}
		h.Log.Error("verification: mark pending failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	created, err := h.Requests.Submit(ctx, models.VerificationRequest{
		UserID:        res.UserID,
		Document:      doc,
		DocumentName:  strings.TrimSpace(req.DocumentName),
		DocumentKey:   uuid.NewString(),
		RequestedRole: req.RequestedRole,
	})
	if err != nil {
		h.Log.Error("verification: submit failed", zap.String("user_id", res.UserID.Hex()), zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	h.Audit.VerificationSubmitted(ctx, r, res.UserID, created.ID, req.RequestedRole)
	h.Log.Info("verification submitted",
		zap.String("user_id", res.UserID.Hex()),
		zap.String("requested_role", req.RequestedRole))
	httpjson.Write(w, http.StatusCreated, toRequestResponse(&created))
}

// ServeStatus handles GET /api/verification, the caller's open request.
func (h *Handler) ServeStatus(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	status, _ := authz.VerificationStatus(r)

	req, err := h.Requests.GetOpenForUser(ctx, res.UserID)
	if err == mongo.ErrNoDocuments {
		httpjson.OK(w, map[string]any{
			"verification_status": status,
			"open_request":        nil,
		})
		return
	}
	if err != nil {
		h.Log.Error("verification: load status failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	httpjson.OK(w, map[string]any{
		"verification_status": status,
		"open_request":        toRequestResponse(req),
	})
}
