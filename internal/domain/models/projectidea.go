// internal/domain/models/projectidea.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectIdea is a project suggestion posted by a professor for students
// to pick up. Readable by any authenticated user; immutable after creation.
type ProjectIdea struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	TitleCI     string             `bson:"title_ci" json:"-"`
	Description string             `bson:"description" json:"description"` // sanitized HTML
	Tags        []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	OwnerID     primitive.ObjectID `bson:"owner_id" json:"owner_id"`
	OwnerName   string             `bson:"owner_name" json:"owner_name"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
