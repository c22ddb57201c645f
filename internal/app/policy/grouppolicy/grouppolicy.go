// Package grouppolicy provides authorization policies for group membership
// moderation.
//
// Authorization rules:
//   - Admins may approve/reject join requests for any group
//   - The group's owner may approve/reject requests for their own group
//   - Nobody else may moderate a group
package grouppolicy

import (
	"net/http"

	"github.com/campuslink/careerhub/internal/app/system/authz"
	"github.com/campuslink/careerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CanModerateGroup reports whether the current request user may approve or
// reject join requests for the given group.
func CanModerateGroup(r *http.Request, group *models.Group) bool {
	role, _, uid, ok := authz.UserCtx(r)
	if !ok {
		return false
	}
	if role == models.RoleAdmin {
		return true
	}
	return uid == group.OwnerID
}

// IsOwner reports whether the given user owns the group.
func IsOwner(group *models.Group, userID primitive.ObjectID) bool {
	return group.OwnerID == userID
}
