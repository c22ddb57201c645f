// internal/app/features/news/handler.go
package news

import (
	"context"
	"time"

	"github.com/campuslink/careerhub/internal/app/services/newsapi"
	newsstore "github.com/campuslink/careerhub/internal/app/store/news"
	"github.com/campuslink/careerhub/internal/app/system/auditlog"
	"go.uber.org/zap"
)

// retention bounds how long fetched stories stay in the cache.
const retention = 90 * 24 * time.Hour

// Handler is the feature-level entry point for the news feed.
type Handler struct {
	News   *newsstore.Store
	Client *newsapi.Client
	Audit  *auditlog.Logger
	Log    *zap.Logger
}

// NewHandler constructs a news handler. Client may be nil when no upstream
// feed is configured; browsing the cache still works.
func NewHandler(news *newsstore.Store, client *newsapi.Client, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		News:   news,
		Client: client,
		Audit:  audit,
		Log:    logger,
	}
}

// Refresh pulls the upstream feed into the cache and prunes stale items.
// Run by the scheduler; safe to call concurrently since items upsert by URL.
func (h *Handler) Refresh(ctx context.Context) error {
	if h.Client == nil {
		return nil
	}

	items, err := h.Client.Fetch(ctx)
	if err != nil {
		return err
	}

	inserted := 0
	for _, item := range items {
		isNew, err := h.News.Upsert(ctx, item)
		if err != nil {
			return err
		}
		if isNew {
			inserted++
		}
	}

	pruned, err := h.News.PruneOlderThan(ctx, time.Now().UTC().Add(-retention))
	if err != nil {
		return err
	}

	h.Log.Info("news refreshed",
		zap.Int("fetched", len(items)),
		zap.Int("new", inserted),
		zap.Int64("pruned", pruned))
	return nil
}
