// internal/app/features/groups/create.go
package groups

import (
	"context"
	"net/http"
	"strings"

	"github.com/campuslink/careerhub/internal/app/policy/accesspolicy"
	groupstore "github.com/campuslink/careerhub/internal/app/store/groups"
	"github.com/campuslink/careerhub/internal/app/system/authz"
	"github.com/campuslink/careerhub/internal/app/system/gates"
	"github.com/campuslink/careerhub/internal/app/system/htmlsanitize"
	"github.com/campuslink/careerhub/internal/app/system/httpjson"
	"github.com/campuslink/careerhub/internal/app/system/timeouts"
	"github.com/campuslink/careerhub/internal/domain/models"
	"go.uber.org/zap"
)

type createRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type groupResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	OwnerID         string   `json:"owner_id"`
	Members         []string `json:"members"`
	PendingRequests []string `json:"pending_requests,omitempty"`
	CreatedAt       string   `json:"created_at"`
}

// toGroupResponse renders a group. Pending requests are only included when
// the viewer moderates the group.
func toGroupResponse(g *models.Group, includePending bool) groupResponse {
	members := make([]string, 0, len(g.Members))
	for _, id := range g.Members {
		members = append(members, id.Hex())
	}
	resp := groupResponse{
		ID:          g.ID.Hex(),
		Name:        g.Name,
		Description: g.Description,
		OwnerID:     g.OwnerID.Hex(),
		Members:     members,
		CreatedAt:   g.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if includePending {
		pending := make([]string, 0, len(g.PendingRequests))
		for _, id := range g.PendingRequests {
			pending = append(pending, id.Hex())
		}
		resp.PendingRequests = pending
	}
	return resp
}

// ServeCreate handles POST /api/groups. Only students create study groups;
// the creator becomes owner and sole member.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	status, _ := authz.VerificationStatus(r)
	if err := accesspolicy.RequireCreate(accesspolicy.KindGroup, res.Role, status); err != nil {
		httpjson.Forbidden(w, "Only students can create study groups.")
		return
	}

	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "Invalid request body.")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		httpjson.BadRequest(w, "Group name is required.")
		return
	}
	if term := h.Safety.CheckAll(name, req.Description); term != "" {
		httpjson.Error(w, http.StatusUnprocessableEntity, httpjson.CodeContentFlagged, "Content contains blocked material.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.Groups.Create(ctx, models.Group{
		Name:        name,
		Description: htmlsanitize.Sanitize(req.Description),
		OwnerID:     res.UserID,
	})
	if err == groupstore.ErrDuplicateName {
		httpjson.Conflict(w, httpjson.CodeConflict, "A group with this name already exists.")
		return
	}
	if err != nil {
		h.Log.Error("groups: create failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	h.Log.Info("group created", zap.String("group_id", g.ID.Hex()), zap.String("owner_id", res.UserID.Hex()))
	httpjson.Write(w, http.StatusCreated, toGroupResponse(&g, true))
}
