// internal/app/features/projects/delete.go
package projects

import (
	"context"
	"net/http"

	"github.com/campuslink/careerhub/internal/app/system/authz"
	"github.com/campuslink/careerhub/internal/app/system/gates"
	"github.com/campuslink/careerhub/internal/app/system/httpjson"
	"github.com/campuslink/careerhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ServeDelete handles DELETE /api/projects/{id}. The owner or an admin may
// remove an idea.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "Project idea not found.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	idea, err := h.Projects.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		httpjson.NotFound(w, "Project idea not found.")
		return
	}
	if err != nil {
		h.Log.Error("projects: load for delete failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	if idea.OwnerID != res.UserID && !authz.IsAdmin(r) {
		httpjson.Forbidden(w, "Only the owner or an admin can delete this idea.")
		return
	}

	if err := h.Projects.Delete(ctx, id); err != nil && err != mongo.ErrNoDocuments {
		h.Log.Error("projects: delete failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	httpjson.OK(w, map[string]any{"deleted": true})
}
