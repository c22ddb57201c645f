// internal/app/store/opportunities/opportunitystore.go
package opportunitystore

import (
	"context"
	"errors"
	"time"

	"github.com/campuslink/careerhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	opportunities *mongo.Collection
	applications  *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		opportunities: db.Collection("work_opportunities"),
		applications:  db.Collection("opportunity_applications"),
	}
}

// ErrAlreadyApplied is returned when a user applies twice to the same
// opportunity. Backed by the unique (opportunity_id, user_id) index.
var ErrAlreadyApplied = errors.New("user has already applied to this opportunity")

// Create inserts a new work opportunity.
func (s *Store) Create(ctx context.Context, o models.WorkOpportunity) (models.WorkOpportunity, error) {
	o.ID = primitive.NewObjectID()
	o.TitleCI = text.Fold(o.Title)
	o.CreatedAt = time.Now().UTC()
	if _, err := s.opportunities.InsertOne(ctx, o); err != nil {
		return models.WorkOpportunity{}, err
	}
	return o, nil
}

// GetByID loads a work opportunity by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.WorkOpportunity, error) {
	var o models.WorkOpportunity
	if err := s.opportunities.FindOne(ctx, bson.M{"_id": id}).Decode(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

// List returns opportunities newest first, optionally filtered by folded
// company name.
func (s *Store) List(ctx context.Context, company string, limit int64) ([]models.WorkOpportunity, error) {
	filter := bson.M{}
	if company != "" {
		filter["company"] = company
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.opportunities.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.WorkOpportunity
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a work opportunity and its applications.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.opportunities.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	_, err = s.applications.DeleteMany(ctx, bson.M{"opportunity_id": id})
	return err
}

// Apply records a user's application to an opportunity. The opportunity is
// checked first so a vanished listing surfaces as mongo.ErrNoDocuments
// rather than a dangling application.
func (s *Store) Apply(ctx context.Context, opportunityID, userID primitive.ObjectID, note string) (models.OpportunityApplication, error) {
	if err := s.opportunities.FindOne(ctx, bson.M{"_id": opportunityID},
		options.FindOne().SetProjection(bson.M{"_id": 1})).Err(); err != nil {
		return models.OpportunityApplication{}, err
	}

	app := models.OpportunityApplication{
		ID:            primitive.NewObjectID(),
		OpportunityID: opportunityID,
		UserID:        userID,
		Note:          note,
		CreatedAt:     time.Now().UTC(),
	}
	if _, err := s.applications.InsertOne(ctx, app); err != nil {
		if wafflemongo.IsDup(err) {
			return models.OpportunityApplication{}, ErrAlreadyApplied
		}
		return models.OpportunityApplication{}, err
	}
	return app, nil
}

// ListApplications returns the applications for an opportunity, newest
// first. Used by the posting owner and admins.
func (s *Store) ListApplications(ctx context.Context, opportunityID primitive.ObjectID) ([]models.OpportunityApplication, error) {
	cur, err := s.applications.Find(ctx, bson.M{"opportunity_id": opportunityID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.OpportunityApplication
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
