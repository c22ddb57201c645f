// Package newsapi fetches career and industry headlines from an upstream
// JSON feed so they can be cached locally.
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/campuslink/careerhub/internal/domain/models"
)

// Config configures the upstream feed endpoint and HTTP behavior.
type Config struct {
	FeedURL    string
	APIKey     string
	HTTPClient *http.Client
}

type Client struct {
	cfg Config
}

// New builds a feed client. A nil HTTPClient gets a 15 second timeout.
func New(cfg Config) *Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{cfg: cfg}
}

type feedResponse struct {
	Articles []feedArticle `json:"articles"`
}

type feedArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	PublishedAt time.Time `json:"publishedAt"`
}

// Fetch pulls the current articles from the feed. Articles without a URL or
// title are dropped.
func (c *Client) Fetch(ctx context.Context) ([]models.NewsItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.FeedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	if c.cfg.APIKey != "" {
		req.Header.Set("X-Api-Key", c.cfg.APIKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	var body feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode feed response: %w", err)
	}

	items := make([]models.NewsItem, 0, len(body.Articles))
	for _, a := range body.Articles {
		if a.URL == "" || a.Title == "" {
			continue
		}
		items = append(items, models.NewsItem{
			Source:      a.Source.Name,
			Title:       a.Title,
			URL:         a.URL,
			Summary:     a.Description,
			PublishedAt: a.PublishedAt,
		})
	}
	return items, nil
}
