// internal/app/store/projects/projectstore.go
package projectstore

import (
	"context"
	"time"

	"github.com/campuslink/careerhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("project_ideas")}
}

// Create inserts a new project idea.
func (s *Store) Create(ctx context.Context, p models.ProjectIdea) (models.ProjectIdea, error) {
	p.ID = primitive.NewObjectID()
	p.TitleCI = text.Fold(p.Title)
	p.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.ProjectIdea{}, err
	}
	return p, nil
}

// GetByID loads a project idea by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ProjectIdea, error) {
	var p models.ProjectIdea
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns project ideas newest first, optionally filtered by tag.
func (s *Store) List(ctx context.Context, tag string, limit int64) ([]models.ProjectIdea, error) {
	filter := bson.M{}
	if tag != "" {
		filter["tags"] = text.Fold(tag)
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ProjectIdea
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a project idea. The caller decides whether the user may.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
