// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"errors"
	"time"

	"github.com/campuslink/careerhub/internal/app/system/search"
	"github.com/campuslink/careerhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
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
	return &Store{c: db.Collection("groups")}
}

var (
	// ErrDuplicateName is returned when creating a group whose folded name
	// already exists.
	ErrDuplicateName = errors.New("a group with this name already exists")
	// ErrAlreadyMember is returned when the requester is already a member
	// of the group.
	ErrAlreadyMember = errors.New("user is already a member of this group")
	// ErrAlreadyRequested is returned when the requester already has a
	// pending join request for the group.
	ErrAlreadyRequested = errors.New("user already has a pending request for this group")
	// ErrNotPending is returned when approving or rejecting a user who has
	// no pending request on the group.
	ErrNotPending = errors.New("user has no pending request for this group")
)

// Create inserts a new group. The owner starts as the sole member.
func (s *Store) Create(ctx context.Context, g models.Group) (models.Group, error) {
	g.ID = primitive.NewObjectID()
	g.NameCI = text.Fold(g.Name)
	g.Members = []primitive.ObjectID{g.OwnerID}
	g.PendingRequests = []primitive.ObjectID{}
	if g.Status == "" {
		g.Status = "active"
	}
	now := time.Now().UTC()
	g.CreatedAt = now
	g.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, g); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Group{}, ErrDuplicateName
		}
		return models.Group{}, err
	}
	return g, nil
}

// GetByID loads a group by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		return nil, err
	}
	return &g, nil
}

// List returns groups newest first, optionally filtered by a folded
// name prefix.
func (s *Store) List(ctx context.Context, nameQuery string, limit int64) ([]models.Group, error) {
	filter := bson.M{}
	if nameQuery != "" {
		filter["name_ci"] = bson.M{"$regex": search.PrefixPattern(text.Fold(nameQuery))}
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

	var out []models.Group
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListForMember returns the groups the user belongs to.
func (s *Store) ListForMember(ctx context.Context, userID primitive.ObjectID) ([]models.Group, error) {
	cur, err := s.c.Find(ctx, bson.M{"members": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Group
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RequestJoin records a pending join request for the user. The filter
// carries the preconditions (not already a member, no pending request, not
// the owner) so concurrent requests collapse to a single $addToSet and the
// arrays never pick up duplicates. When the update matches nothing the group
// is re-read once to classify the failure.
func (s *Store) RequestJoin(ctx context.Context, groupID, userID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx, bson.M{
		"_id":              groupID,
		"members":          bson.M{"$ne": userID},
		"pending_requests": bson.M{"$ne": userID},
	}, bson.M{
		"$addToSet": bson.M{"pending_requests": userID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}
	return s.classifyJoinFailure(ctx, groupID, userID)
}

func (s *Store) classifyJoinFailure(ctx context.Context, groupID, userID primitive.ObjectID) error {
	g, err := s.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if g.HasMember(userID) {
		return ErrAlreadyMember
	}
	if g.HasPendingRequest(userID) {
		return ErrAlreadyRequested
	}
	// Raced with a reject between the update and the re-read. Report the
	// pending case; the caller can retry.
	return ErrAlreadyRequested
}

// ApproveRequest moves a user from pending_requests to members in one
// update. Matching on pending_requests makes approval of a withdrawn or
// already-decided request a no-op reported as ErrNotPending.
func (s *Store) ApproveRequest(ctx context.Context, groupID, userID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx, bson.M{
		"_id":              groupID,
		"pending_requests": userID,
	}, bson.M{
		"$pull":     bson.M{"pending_requests": userID},
		"$addToSet": bson.M{"members": userID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return s.pendingFailure(ctx, groupID)
	}
	return nil
}

// RejectRequest drops a user's pending join request.
func (s *Store) RejectRequest(ctx context.Context, groupID, userID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx, bson.M{
		"_id":              groupID,
		"pending_requests": userID,
	}, bson.M{
		"$pull": bson.M{"pending_requests": userID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return s.pendingFailure(ctx, groupID)
	}
	return nil
}

func (s *Store) pendingFailure(ctx context.Context, groupID primitive.ObjectID) error {
	if err := s.c.FindOne(ctx, bson.M{"_id": groupID},
		options.FindOne().SetProjection(bson.M{"_id": 1})).Err(); err != nil {
		return err
	}
	return ErrNotPending
}

