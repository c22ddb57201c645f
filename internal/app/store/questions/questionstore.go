// internal/app/store/questions/questionstore.go
package questionstore

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
	return &Store{c: db.Collection("interview_questions")}
}

// Create inserts a new interview question.
func (s *Store) Create(ctx context.Context, q models.InterviewQuestion) (models.InterviewQuestion, error) {
	q.ID = primitive.NewObjectID()
	q.CompanyCI = text.Fold(q.Company)
	q.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, q); err != nil {
		return models.InterviewQuestion{}, err
	}
	return q, nil
}

// GetByID loads an interview question by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.InterviewQuestion, error) {
	var q models.InterviewQuestion
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&q); err != nil {
		return nil, err
	}
	return &q, nil
}

// List returns questions newest first, optionally filtered by company
// and/or topic.
func (s *Store) List(ctx context.Context, company, topic string, limit int64) ([]models.InterviewQuestion, error) {
	filter := bson.M{}
	if company != "" {
		filter["company_ci"] = text.Fold(company)
	}
	if topic != "" {
		filter["topic"] = topic
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

	var out []models.InterviewQuestion
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes an interview question.
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
