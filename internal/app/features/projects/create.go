// internal/app/features/projects/create.go
package projects

import (
	"context"
	"net/http"
	"strings"

	"github.com/campuslink/careerhub/internal/app/policy/accesspolicy"
	"github.com/campuslink/careerhub/internal/app/system/authz"
	"github.com/campuslink/careerhub/internal/app/system/gates"
	"github.com/campuslink/careerhub/internal/app/system/htmlsanitize"
	"github.com/campuslink/careerhub/internal/app/system/httpjson"
	"github.com/campuslink/careerhub/internal/app/system/timeouts"
	"github.com/campuslink/careerhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.uber.org/zap"
)

type createRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

type ideaResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	OwnerID     string   `json:"owner_id"`
	OwnerName   string   `json:"owner_name"`
	CreatedAt   string   `json:"created_at"`
}

func toIdeaResponse(p models.ProjectIdea) ideaResponse {
	return ideaResponse{
		ID:          p.ID.Hex(),
		Title:       p.Title,
		Description: p.Description,
		Tags:        p.Tags,
		OwnerID:     p.OwnerID.Hex(),
		OwnerName:   p.OwnerName,
		CreatedAt:   p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ServeCreate handles POST /api/projects. Only professors post project
// ideas.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	status, _ := authz.VerificationStatus(r)
	if err := accesspolicy.RequireCreate(accesspolicy.KindProjectIdea, res.Role, status); err != nil {
		httpjson.Forbidden(w, "Only professors can post project ideas.")
		return
	}

	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "Invalid request body.")
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		httpjson.BadRequest(w, "Title is required.")
		return
	}
	if term := h.Safety.CheckAll(title, req.Description); term != "" {
		httpjson.Error(w, http.StatusUnprocessableEntity, httpjson.CodeContentFlagged, "Content contains blocked material.")
		return
	}

	tags := make([]string, 0, len(req.Tags))
	for _, tag := range req.Tags {
		if t := text.Fold(tag); t != "" {
			tags = append(tags, t)
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	idea, err := h.Projects.Create(ctx, models.ProjectIdea{
		Title:       title,
		Description: htmlsanitize.Sanitize(req.Description),
		Tags:        tags,
		OwnerID:     res.UserID,
		OwnerName:   res.Name,
	})
	if err != nil {
		h.Log.Error("projects: create failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	httpjson.Write(w, http.StatusCreated, toIdeaResponse(idea))
}
