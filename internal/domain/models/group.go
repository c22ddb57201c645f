// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group represents a student study group.
//
// Members and PendingRequests live on the group document and are mutated
// only through guarded $addToSet/$pull updates so that concurrent join
// requests cannot lose each other's writes.
//
// Invariants:
//   - OwnerID is always present in Members.
//   - A user appears in at most one of Members/PendingRequests.
type Group struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"-"`
	Description string             `bson:"description" json:"description"`
	OwnerID     primitive.ObjectID `bson:"owner_id" json:"owner_id"`

	Members         []primitive.ObjectID `bson:"members" json:"members"`
	PendingRequests []primitive.ObjectID `bson:"pending_requests" json:"pending_requests"`

	Status string `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasMember reports whether the given user is in the member list.
func (g *Group) HasMember(userID primitive.ObjectID) bool {
	for _, id := range g.Members {
		if id == userID {
			return true
		}
	}
	return false
}

// HasPendingRequest reports whether the given user has a pending join request.
func (g *Group) HasPendingRequest(userID primitive.ObjectID) bool {
	for _, id := range g.PendingRequests {
		if id == userID {
			return true
		}
	}
	return false
}
