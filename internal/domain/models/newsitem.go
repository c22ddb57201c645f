// internal/domain/models/newsitem.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewsItem is one cached article from the upstream news feed. The URL is
// unique so re-fetching the feed is idempotent.
type NewsItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Source      string             `bson:"source" json:"source"`
	Title       string             `bson:"title" json:"title"`
	URL         string             `bson:"url" json:"url"`
	Summary     string             `bson:"summary,omitempty" json:"summary,omitempty"` // sanitized HTML
	PublishedAt time.Time          `bson:"published_at" json:"published_at"`
	FetchedAt   time.Time          `bson:"fetched_at" json:"fetched_at"`
}
