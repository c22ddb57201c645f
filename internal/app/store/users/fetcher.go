// internal/app/store/users/fetcher.go
package userstore

import (
	"context"

	"github.com/campuslink/careerhub/internal/app/system/auth"
	"github.com/campuslink/careerhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Fetcher implements auth.UserFetcher on top of the users collection so the
// session middleware sees role and verification changes on the next request.
type Fetcher struct {
	store *Store
}

func NewFetcher(store *Store) *Fetcher {
	return &Fetcher{store: store}
}

// FetchUser loads a fresh snapshot of the user for session resolution.
// Missing, malformed, or disabled users resolve to nil (anonymous).
func (f *Fetcher) FetchUser(ctx context.Context, userID string) *auth.SessionUser {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	var doc struct {
		FullName           string `bson:"full_name"`
		Email              string `bson:"email"`
		Role               string `bson:"role"`
		VerificationStatus string `bson:"verification_status"`
		Status             string `bson:"status"`
	}
	err = f.store.c.FindOne(ctx, bson.M{"_id": oid}, options.FindOne().SetProjection(bson.M{
		"full_name":           1,
		"email":               1,
		"role":                1,
		"verification_status": 1,
		"status":              1,
	})).Decode(&doc)
	if err != nil {
		return nil
	}
	if doc.Status == "disabled" {
		return nil
	}

	return &auth.SessionUser{
		ID:                 userID,
		Name:               doc.FullName,
		Email:              doc.Email,
		Role:               doc.Role,
		VerificationStatus: doc.VerificationStatus,
	}
}
