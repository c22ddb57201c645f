// internal/app/store/audit/store.go
package audit

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Event categories
const (
	CategoryAuth       = "auth"
	CategoryMembership = "membership"
	CategoryAdmin      = "admin"
)

// Auth event types
const (
	EventRegistered          = "user_registered"
	EventLoginSuccess        = "login_success"
	EventLoginFailed         = "login_failed"
	EventLoginRateLimited    = "login_rate_limited"
	EventLogout              = "logout"
	EventVerificationSubmit  = "verification_submitted"
)

// Membership event types
const (
	EventJoinRequested = "join_requested"
	EventJoinApproved  = "join_approved"
	EventJoinRejected  = "join_rejected"
)

// Admin event types
const (
	EventVerificationApproved = "verification_approved"
	EventVerificationRejected = "verification_rejected"
	EventNewsRefreshed        = "news_refreshed"
)

// Event represents an audit event.
type Event struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Timestamp time.Time          `bson:"timestamp"`

	// Event classification
	Category  string `bson:"category"`
	EventType string `bson:"event_type"`

	// Who
	UserID  *primitive.ObjectID `bson:"user_id,omitempty"`  // affected user
	ActorID *primitive.ObjectID `bson:"actor_id,omitempty"` // who performed the action

	// What (workflow target: group, verification request, etc.)
	TargetID *primitive.ObjectID `bson:"target_id,omitempty"`

	// Context
	IP        string `bson:"ip"`
	UserAgent string `bson:"user_agent,omitempty"`

	// Outcome
	Success       bool   `bson:"success"`
	FailureReason string `bson:"failure_reason,omitempty"`

	// Additional details (varies by event type)
	Details map[string]string `bson:"details,omitempty"`
}

// QueryFilter defines filters for querying audit events.
type QueryFilter struct {
	UserID    *primitive.ObjectID
	Category  string
	EventType string
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int64
}

// Store manages audit event records.
type Store struct {
	c *mongo.Collection
}

// New creates a new audit Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("audit_events")}
}

// Log inserts a single audit event. The timestamp is stamped here when the
// caller leaves it zero.
func (s *Store) Log(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, event)
	return err
}

// Query returns events matching the filter, most recent first.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	q := bson.M{}
	if filter.UserID != nil {
		q["user_id"] = *filter.UserID
	}
	if filter.Category != "" {
		q["category"] = filter.Category
	}
	if filter.EventType != "" {
		q["event_type"] = filter.EventType
	}
	if filter.StartTime != nil || filter.EndTime != nil {
		t := bson.M{}
		if filter.StartTime != nil {
			t["$gte"] = *filter.StartTime
		}
		if filter.EndTime != nil {
			t["$lte"] = *filter.EndTime
		}
		q["timestamp"] = t
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, q, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// PruneOlderThan deletes events with a timestamp before cutoff and reports
// how many were removed.
func (s *Store) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"timestamp": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
