// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents every account in the system: students, alumni,
// professors, admins, and newly registered accounts that have not
// been verified yet.
//
// NOTE:
//   - Role and VerificationStatus are independent fields. Verification
//     approval sets both together, but the graduate auto-upgrade mutates
//     Role alone and nothing re-derives one from the other.
//   - Group membership is not embedded on User; groups carry their own
//     member and pending-request lists.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName     string             `bson:"full_name" json:"full_name"`
	FullNameCI   string             `bson:"full_name_ci" json:"-"` // lowercase, diacritics-stripped
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash,omitempty" json:"-"`

	Role               string `bson:"role" json:"role"`                               // unverified | student | alumni | professor | admin
	VerificationStatus string `bson:"verification_status" json:"verification_status"` // none | pending_review | verified | rejected

	// GradYear drives the student → alumni auto-upgrade. Optional; nil for
	// accounts that never supplied a graduation year.
	GradYear *int `bson:"grad_year,omitempty" json:"grad_year,omitempty"`

	Bio    string `bson:"bio,omitempty" json:"bio,omitempty"` // sanitized HTML
	Status string `bson:"status,omitempty" json:"status,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
