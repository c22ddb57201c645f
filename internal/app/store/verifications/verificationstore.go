// internal/app/store/verifications/verificationstore.go
package verificationstore

import (
	"context"
	"errors"
	"time"

	"github.com/campuslink/careerhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("verification_requests")}
}

// ErrRequestExists is returned when a user already has an open verification
// request. Backed by the unique partial index on (user_id, open).
var ErrRequestExists = errors.New("user already has an open verification request")

// Submit records a new verification request for the user.
func (s *Store) Submit(ctx context.Context, req models.VerificationRequest) (models.VerificationRequest, error) {
	req.ID = primitive.NewObjectID()
	req.Status = models.VerificationPending
	req.SubmittedAt = time.Now().UTC()
	req.DecidedAt = nil
	req.DecidedBy = nil
	if _, err := s.c.InsertOne(ctx, req); err != nil {
		if wafflemongo.IsDup(err) {
			return models.VerificationRequest{}, ErrRequestExists
		}
		return models.VerificationRequest{}, err
	}
	return req, nil
}

// GetByID loads a verification request by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.VerificationRequest, error) {
	var req models.VerificationRequest
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// GetOpenForUser returns the user's pending request, if any.
func (s *Store) GetOpenForUser(ctx context.Context, userID primitive.ObjectID) (*models.VerificationRequest, error) {
	var req models.VerificationRequest
	err := s.c.FindOne(ctx, bson.M{
		"user_id": userID,
		"status":  models.VerificationPending,
	}).Decode(&req)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ListPending returns pending requests oldest first so reviewers work the
// queue in submission order.
func (s *Store) ListPending(ctx context.Context, limit int64) ([]models.VerificationRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, bson.M{"status": models.VerificationPending}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.VerificationRequest
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkDecided stamps the request with the reviewer's decision. The filter
// matches only pending requests so a second decision is a no-op; the user
// document is the authority and is updated first by the caller, so losing
// the race here only costs the audit stamp.
func (s *Store) MarkDecided(ctx context.Context, id primitive.ObjectID, status string, decidedBy primitive.ObjectID) error {
	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx, bson.M{
		"_id":    id,
		"status": models.VerificationPending,
	}, bson.M{"$set": bson.M{
		"status":     status,
		"decided_at": now,
		"decided_by": decidedBy,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
