// internal/domain/models/opportunity.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkOpportunity is a job or internship listing posted by a professor or
// an alumnus. Students apply through OpportunityApplication records.
type WorkOpportunity struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	TitleCI     string             `bson:"title_ci" json:"-"`
	Company     string             `bson:"company" json:"company"`
	Description string             `bson:"description" json:"description"` // sanitized HTML
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	ApplyURL    string             `bson:"apply_url,omitempty" json:"apply_url,omitempty"`
	OwnerID     primitive.ObjectID `bson:"owner_id" json:"owner_id"`
	OwnerName   string             `bson:"owner_name" json:"owner_name"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// OpportunityApplication records a student applying to a work opportunity.
// Exactly one document per (opportunity_id, user_id).
type OpportunityApplication struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OpportunityID primitive.ObjectID `bson:"opportunity_id" json:"opportunity_id"`
	UserID        primitive.ObjectID `bson:"user_id" json:"user_id"`
	Note          string             `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}
