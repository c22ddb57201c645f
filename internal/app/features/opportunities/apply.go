// internal/app/features/opportunities/apply.go
package opportunities

import (
	"context"
	"net/http"
	"strings"

	"github.com/campuslink/careerhub/internal/app/policy/accesspolicy"
	opportunitystore "github.com/campuslink/careerhub/internal/app/store/opportunities"
	"github.com/campuslink/careerhub/internal/app/system/authz"
	"github.com/campuslink/careerhub/internal/app/system/gates"
	"github.com/campuslink/careerhub/internal/app/system/httpjson"
	"github.com/campuslink/careerhub/internal/app/system/timeouts"
	"github.com/campuslink/careerhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type applyRequest struct {
	Note string `json:"note"`
}

type applicationResponse struct {
	ID            string `json:"id"`
	OpportunityID string `json:"opportunity_id"`
	UserID        string `json:"user_id"`
	Note          string `json:"note,omitempty"`
	CreatedAt     string `json:"created_at"`
}

func toApplicationResponse(a models.OpportunityApplication) applicationResponse {
	return applicationResponse{
		ID:            a.ID.Hex(),
		OpportunityID: a.OpportunityID.Hex(),
		UserID:        a.UserID.Hex(),
		Note:          a.Note,
		CreatedAt:     a.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ServeApply handles POST /api/opportunities/{id}/apply. Only students
// apply; a second application to the same listing is a conflict.
func (h *Handler) ServeApply(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	if !accesspolicy.CanApply(res.Role) {
		httpjson.Forbidden(w, "Only students can apply to opportunities.")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "Opportunity not found.")
		return
	}

	var req applyRequest
	if r.ContentLength > 0 {
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.BadRequest(w, "Invalid request body.")
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	app, err := h.Opportunities.Apply(ctx, id, res.UserID, strings.TrimSpace(req.Note))
	switch err {
	case nil:
	case opportunitystore.ErrAlreadyApplied:
		httpjson.Conflict(w, httpjson.CodeConflict, "You have already applied to this opportunity.")
		return
	case mongo.ErrNoDocuments:
		httpjson.NotFound(w, "Opportunity not found.")
		return
	default:
		h.Log.Error("opportunities: apply failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	httpjson.Write(w, http.StatusCreated, toApplicationResponse(app))
}

// ServeApplications handles GET /api/opportunities/{id}/applications.
// Only the posting owner or an admin sees applicants.
func (h *Handler) ServeApplications(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "Opportunity not found.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	opp, err := h.Opportunities.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		httpjson.NotFound(w, "Opportunity not found.")
		return
	}
	if err != nil {
		h.Log.Error("opportunities: load for applications failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	if opp.OwnerID != res.UserID && !authz.IsAdmin(r) {
		httpjson.Forbidden(w, "Only the posting owner or an admin can view applications.")
		return
	}

	apps, err := h.Opportunities.ListApplications(ctx, id)
	if err != nil {
		h.Log.Error("opportunities: list applications failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	out := make([]applicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, toApplicationResponse(a))
	}
	httpjson.OK(w, map[string]any{"applications": out})
}
