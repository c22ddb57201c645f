// internal/domain/models/question.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InterviewQuestion is an entry in the interview question bank, posted by
// professors and alumni. Readable by any authenticated user.
type InterviewQuestion struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Question  string             `bson:"question" json:"question"`
	Answer    string             `bson:"answer,omitempty" json:"answer,omitempty"` // sanitized HTML
	Company   string             `bson:"company,omitempty" json:"company,omitempty"`
	CompanyCI string             `bson:"company_ci,omitempty" json:"-"`
	Topic     string             `bson:"topic,omitempty" json:"topic,omitempty"`
	OwnerID   primitive.ObjectID `bson:"owner_id" json:"owner_id"`
	OwnerName string             `bson:"owner_name" json:"owner_name"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
