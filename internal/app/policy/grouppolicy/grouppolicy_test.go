package grouppolicy_test

import (
	"net/http/httptest"
	"testing"

	"github.com/campuslink/careerhub/internal/app/policy/grouppolicy"
	"github.com/campuslink/careerhub/internal/app/system/auth"
	"github.com/campuslink/careerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCanModerateGroup(t *testing.T) {
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	group := &models.Group{
		ID:      primitive.NewObjectID(),
		OwnerID: owner,
		Members: []primitive.ObjectID{owner},
	}

	tests := []struct {
		name string
		uid  primitive.ObjectID
		role string
		want bool
	}{
		{"owner", owner, "student", true},
		{"admin", stranger, "admin", true},
		{"member", stranger, "student", false},
		{"professor", stranger, "professor", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := auth.WithTestUser(httptest.NewRequest("POST", "/groups", nil), &auth.SessionUser{
				ID:   tt.uid.Hex(),
				Role: tt.role,
			})
			if got := grouppolicy.CanModerateGroup(req, group); got != tt.want {
				t.Errorf("CanModerateGroup = %v, want %v", got, tt.want)
			}
		})
	}

	// Anonymous callers can never moderate.
	if grouppolicy.CanModerateGroup(httptest.NewRequest("POST", "/groups", nil), group) {
		t.Error("anonymous caller must not moderate a group")
	}
}

func TestIsOwner(t *testing.T) {
	owner := primitive.NewObjectID()
	group := &models.Group{OwnerID: owner}

	if !grouppolicy.IsOwner(group, owner) {
		t.Error("expected owner to be recognized")
	}
	if grouppolicy.IsOwner(group, primitive.NewObjectID()) {
		t.Error("non-owner must not be recognized as owner")
	}
}
