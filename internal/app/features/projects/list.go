// internal/app/features/projects/list.go
package projects

import (
	"context"
	"net/http"

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

// ServeList handles GET /api/projects (with optional ?tag= filter).
// Any authenticated user may browse the board.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	limit := paging.ParseLimit(r)
	ideas, err := h.Projects.List(ctx, normalize.QueryParam(r.URL.Query().Get("tag")), paging.LookAhead(limit))
	if err != nil {
		h.Log.Error("projects: list failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	hasMore := paging.Trim(&ideas, limit)
	out := make([]ideaResponse, 0, len(ideas))
	for _, p := range ideas {
		out = append(out, toIdeaResponse(p))
	}
	httpjson.OK(w, map[string]any{"projects": out, "has_more": hasMore})
}

// ServeView handles GET /api/projects/{id}.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "Project idea not found.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	idea, err := h.Projects.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		httpjson.NotFound(w, "Project idea not found.")
		return
	}
	if err != nil {
		h.Log.Error("projects: load failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	httpjson.OK(w, toIdeaResponse(*idea))
}
