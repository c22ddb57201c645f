// internal/app/features/news/list.go
package news

import (
	"context"
	"net/http"

	"github.com/campuslink/careerhub/internal/app/system/gates"
	"github.com/campuslink/careerhub/internal/app/system/httpjson"
	"github.com/campuslink/careerhub/internal/app/system/normalize"
	"github.com/campuslink/careerhub/internal/app/system/paging"
	"github.com/campuslink/careerhub/internal/app/system/timeouts"
	"github.com/campuslink/careerhub/internal/domain/models"
	"go.uber.org/zap"
)

type itemResponse struct {
	ID          string `json:"id"`
	Source      string `json:"source,omitempty"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Summary     string `json:"summary,omitempty"`
	PublishedAt string `json:"published_at"`
}

func toItemResponse(n models.NewsItem) itemResponse {
	return itemResponse{
		ID:          n.ID.Hex(),
		Source:      n.Source,
		Title:       n.Title,
		URL:         n.URL,
		Summary:     n.Summary,
		PublishedAt: n.PublishedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ServeList handles GET /api/news (with optional ?source= filter), serving
// the local cache only.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	limit := paging.ParseLimit(r)
	items, err := h.News.List(ctx, normalize.QueryParam(r.URL.Query().Get("source")), paging.LookAhead(limit))
	if err != nil {
		h.Log.Error("news: list failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	hasMore := paging.Trim(&items, limit)
	out := make([]itemResponse, 0, len(items))
	for _, n := range items {
		out = append(out, toItemResponse(n))
	}
	httpjson.OK(w, map[string]any{"news": out, "has_more": hasMore})
}

// ServeRefresh handles POST /api/admin/news/refresh, a manual pull for
// admins who don't want to wait on the schedule.
func (h *Handler) ServeRefresh(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAdmin(w, r, "Only admins can refresh the news feed.")
	if !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Refresh(ctx); err != nil {
		h.Log.Error("news: manual refresh failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}
	h.Audit.NewsRefreshed(ctx, r, res.UserID)
	httpjson.OK(w, map[string]any{"refreshed": true})
}
