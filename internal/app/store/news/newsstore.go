// internal/app/store/news/newsstore.go
package newsstore

import (
	"context"
	"time"

	"github.com/campuslink/careerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("news_items")}
}

// Upsert stores a fetched item keyed by URL so refresh runs never duplicate
// a story. Returns true when the item was newly inserted.
func (s *Store) Upsert(ctx context.Context, item models.NewsItem) (bool, error) {
	item.FetchedAt = time.Now().UTC()
	res, err := s.c.UpdateOne(ctx, bson.M{"url": item.URL}, bson.M{
		"$set": bson.M{
			"source":       item.Source,
			"title":        item.Title,
			"summary":      item.Summary,
			"published_at": item.PublishedAt,
			"fetched_at":   item.FetchedAt,
		},
		"$setOnInsert": bson.M{"_id": primitive.NewObjectID()},
	}, options.Update().SetUpsert(true))
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}

// List returns stored items newest first by publication time.
func (s *Store) List(ctx context.Context, source string, limit int64) ([]models.NewsItem, error) {
	filter := bson.M{}
	if source != "" {
		filter["source"] = source
	}
	opts := options.Find().SetSort(bson.D{{Key: "published_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.NewsItem
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PruneOlderThan drops items whose publication time is before the cutoff.
func (s *Store) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"published_at": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
