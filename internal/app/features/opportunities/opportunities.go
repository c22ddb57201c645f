// internal/app/features/opportunities/opportunities.go
package opportunities

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/campuslink/careerhub/internal/app/policy/accesspolicy"
	"github.com/campuslink/careerhub/internal/app/system/authz"
	"github.com/campuslink/careerhub/internal/app/system/gates"
	"github.com/campuslink/careerhub/internal/app/system/htmlsanitize"
	"github.com/campuslink/careerhub/internal/app/system/httpjson"
	"github.com/campuslink/careerhub/internal/app/system/normalize"
	"github.com/campuslink/careerhub/internal/app/system/paging"
	"github.com/campuslink/careerhub/internal/app/system/timeouts"
	"github.com/campuslink/careerhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type createRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
	Location    string `json:"location"`
	ApplyURL    string `json:"apply_url"`
}

type opportunityResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	ApplyURL    string `json:"apply_url,omitempty"`
	OwnerID     string `json:"owner_id"`
	OwnerName   string `json:"owner_name"`
	CreatedAt   string `json:"created_at"`
}

func toOpportunityResponse(o models.WorkOpportunity) opportunityResponse {
	return opportunityResponse{
		ID:          o.ID.Hex(),
		Title:       o.Title,
		Company:     o.Company,
		Description: o.Description,
		Location:    o.Location,
		ApplyURL:    o.ApplyURL,
		OwnerID:     o.OwnerID.Hex(),
		OwnerName:   o.OwnerName,
		CreatedAt:   o.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ServeCreate handles POST /api/opportunities. Professors and alumni post
// listings.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	status, _ := authz.VerificationStatus(r)
	if err := accesspolicy.RequireCreate(accesspolicy.KindWorkOpportunity, res.Role, status); err != nil {
		httpjson.Forbidden(w, "Only professors and alumni can post work opportunities.")
		return
	}

	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "Invalid request body.")
		return
	}

	title := strings.TrimSpace(req.Title)
	company := strings.TrimSpace(req.Company)
	if title == "" || company == "" {
		httpjson.BadRequest(w, "Title and company are required.")
		return
	}
	if req.ApplyURL != "" {
		u, err := url.Parse(req.ApplyURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			httpjson.BadRequest(w, "Apply URL must be a valid http(s) URL.")
			return
		}
	}
	if term := h.Safety.CheckAll(title, req.Description); term != "" {
		httpjson.Error(w, http.StatusUnprocessableEntity, httpjson.CodeContentFlagged, "Content contains blocked material.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	opp, err := h.Opportunities.Create(ctx, models.WorkOpportunity{
		Title:       title,
		Company:     company,
		Description: htmlsanitize.Sanitize(req.Description),
		Location:    strings.TrimSpace(req.Location),
		ApplyURL:    req.ApplyURL,
		OwnerID:     res.UserID,
		OwnerName:   res.Name,
	})
	if err != nil {
		h.Log.Error("opportunities: create failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	httpjson.Write(w, http.StatusCreated, toOpportunityResponse(opp))
}

// ServeList handles GET /api/opportunities (with optional ?company= filter).
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	limit := paging.ParseLimit(r)
	opps, err := h.Opportunities.List(ctx, normalize.QueryParam(r.URL.Query().Get("company")), paging.LookAhead(limit))
	if err != nil {
		h.Log.Error("opportunities: list failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	hasMore := paging.Trim(&opps, limit)
	out := make([]opportunityResponse, 0, len(opps))
	for _, o := range opps {
		out = append(out, toOpportunityResponse(o))
	}
	httpjson.OK(w, map[string]any{"opportunities": out, "has_more": hasMore})
}

// ServeView handles GET /api/opportunities/{id}.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "Opportunity not found.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	opp, err := h.Opportunities.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		httpjson.NotFound(w, "Opportunity not found.")
		return
	}
	if err != nil {
		h.Log.Error("opportunities: load failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	httpjson.OK(w, toOpportunityResponse(*opp))
}

// ServeDelete handles DELETE /api/opportunities/{id}. The owner or an admin
// may remove a listing; its applications go with it.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
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
		h.Log.Error("opportunities: load for delete failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	if opp.OwnerID != res.UserID && !authz.IsAdmin(r) {
		httpjson.Forbidden(w, "Only the owner or an admin can delete this listing.")
		return
	}

	if err := h.Opportunities.Delete(ctx, id); err != nil && err != mongo.ErrNoDocuments {
		h.Log.Error("opportunities: delete failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	httpjson.OK(w, map[string]any{"deleted": true})
}
