// internal/app/features/groups/list.go
package groups

import (
	"context"
	"net/http"

	"github.com/campuslink/careerhub/internal/app/policy/grouppolicy"
	"github.com/campuslink/careerhub/internal/app/system/gates"
	"github.com/campuslink/careerhub/internal/app/system/httpjson"
	"github.com/campuslink/careerhub/internal/app/system/normalize"
	"github.com/campuslink/careerhub/internal/app/system/paging"
	"github.com/campuslink/careerhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ServeList handles GET /api/groups (with optional ?q= name prefix).
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	limit := paging.ParseLimit(r)
	gs, err := h.Groups.List(ctx, normalize.QueryParam(r.URL.Query().Get("q")), paging.LookAhead(limit))
	if err != nil {
		h.Log.Error("groups: list failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	hasMore := paging.Trim(&gs, limit)
	out := make([]groupResponse, 0, len(gs))
	for i := range gs {
		out = append(out, toGroupResponse(&gs[i], false))
	}
	httpjson.OK(w, map[string]any{"groups": out, "has_more": hasMore})
}

// ServeMine handles GET /api/groups/mine, the groups the caller belongs to.
func (h *Handler) ServeMine(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	gs, err := h.Groups.ListForMember(ctx, res.UserID)
	if err != nil {
		h.Log.Error("groups: list mine failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	out := make([]groupResponse, 0, len(gs))
	for i := range gs {
		out = append(out, toGroupResponse(&gs[i], grouppolicy.CanModerateGroup(r, &gs[i])))
	}
	httpjson.OK(w, map[string]any{"groups": out})
}

// ServeView handles GET /api/groups/{id}. Moderators additionally see the
// pending request queue.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "Group not found.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	g, err := h.Groups.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		httpjson.NotFound(w, "Group not found.")
		return
	}
	if err != nil {
		h.Log.Error("groups: load failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	httpjson.OK(w, toGroupResponse(g, grouppolicy.CanModerateGroup(r, g)))
}
