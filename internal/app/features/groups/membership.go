// internal/app/features/groups/membership.go
package groups

import (
	"context"
	"net/http"

	"github.com/campuslink/careerhub/internal/app/policy/accesspolicy"
	"github.com/campuslink/careerhub/internal/app/policy/grouppolicy"
	groupstore "github.com/campuslink/careerhub/internal/app/store/groups"
	"github.com/campuslink/careerhub/internal/app/system/gates"
	"github.com/campuslink/careerhub/internal/app/system/httpjson"
	"github.com/campuslink/careerhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Conflict codes for the join workflow.
const (
	codeAlreadyRequested = "already_requested"
	codeAlreadyMember    = "already_member"
	codeNotPending       = "not_pending"
)

// ServeRequestJoin handles POST /api/groups/{id}/join. Only students
// request membership; the request sits in the pending queue until the
// owner or an admin decides.
func (h *Handler) ServeRequestJoin(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	if !accesspolicy.CanRequestJoin(res.Role) {
		httpjson.Forbidden(w, "Only students can join study groups.")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "Group not found.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	switch err := h.Groups.RequestJoin(ctx, id, res.UserID); err {
	case nil:
	case groupstore.ErrAlreadyMember:
		httpjson.Conflict(w, codeAlreadyMember, "You are already a member of this group.")
		return
	case groupstore.ErrAlreadyRequested:
		httpjson.Conflict(w, codeAlreadyRequested, "You already have a pending request for this group.")
		return
	case mongo.ErrNoDocuments:
		httpjson.NotFound(w, "Group not found.")
		return
	default:
		h.Log.Error("groups: join request failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	h.Audit.JoinRequested(ctx, r, res.UserID, id)
	h.Log.Info("join requested",
		zap.String("group_id", id.Hex()), zap.String("user_id", res.UserID.Hex()))
	httpjson.Write(w, http.StatusAccepted, map[string]any{"status": "pending"})
}

// decide loads the group, checks moderation rights, then applies the
// approve or reject mutation.
func (h *Handler) decide(w http.ResponseWriter, r *http.Request, action string,
	mutate func(ctx context.Context, groupID, userID primitive.ObjectID) error) {

	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	groupID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "Group not found.")
		return
	}
	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
	if err != nil {
		httpjson.NotFound(w, "User not found.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.Groups.GetByID(ctx, groupID)
	if err == mongo.ErrNoDocuments {
		httpjson.NotFound(w, "Group not found.")
		return
	}
	if err != nil {
		h.Log.Error("groups: load for decision failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	if !grouppolicy.CanModerateGroup(r, g) {
		httpjson.Forbidden(w, "Only the group owner or an admin can decide join requests.")
		return
	}

	switch err := mutate(ctx, groupID, userID); err {
	case nil:
	case groupstore.ErrNotPending:
		httpjson.Conflict(w, codeNotPending, "This user has no pending request for the group.")
		return
	case mongo.ErrNoDocuments:
		httpjson.NotFound(w, "Group not found.")
		return
	default:
		h.Log.Error("groups: decision failed", zap.String("action", action), zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	h.Audit.JoinDecided(ctx, r, res.UserID, userID, groupID, action == "approved")
	h.Log.Info("join request decided",
		zap.String("action", action),
		zap.String("group_id", groupID.Hex()),
		zap.String("user_id", userID.Hex()),
		zap.String("decided_by", res.UserID.Hex()))
	httpjson.OK(w, map[string]any{"status": action})
}

// ServeApprove handles POST /api/groups/{id}/requests/{userID}/approve.
func (h *Handler) ServeApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "approved", h.Groups.ApproveRequest)
}

// ServeReject handles POST /api/groups/{id}/requests/{userID}/reject.
func (h *Handler) ServeReject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "rejected", h.Groups.RejectRequest)
}
