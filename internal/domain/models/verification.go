// internal/domain/models/verification.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VerificationRequest holds a user's uploaded proof-of-affiliation document
// awaiting admin review. One active request per user; resubmission after
// rejection overwrites the previous document (no history is kept).
type VerificationRequest struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`

	Document      []byte `bson:"document" json:"-"` // base64-decoded bytes at rest
	DocumentName  string `bson:"document_name" json:"document_name"`
	DocumentKey   string `bson:"document_key" json:"-"` // opaque storage key
	RequestedRole string `bson:"requested_role" json:"requested_role"`

	Status string `bson:"status" json:"status"` // pending_review | verified | rejected

	SubmittedAt time.Time           `bson:"submitted_at" json:"submitted_at"`
	DecidedAt   *time.Time          `bson:"decided_at,omitempty" json:"decided_at,omitempty"`
	DecidedBy   *primitive.ObjectID `bson:"decided_by,omitempty" json:"decided_by,omitempty"`
}
