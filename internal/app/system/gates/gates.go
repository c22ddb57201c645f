// Package gates provides authorization gate functions for HTTP handlers.
// Gates check authentication and authorization, writing the JSON error
// envelope when checks fail.
//
// Three tiers of authorization:
//
//  1. Route-level middleware (auth.RequireSignedIn, auth.RequireRole) in
//     routes.go files for coarse-grained access control.
//  2. Handler-level gates (this package) for handlers that need a different
//     role check than their route group, returning user context on success.
//  3. Policy layer (internal/app/policy/*) for checks that depend on the
//     specific resource being accessed.
//
// Don't use gates in handlers already behind an equivalent RequireRole;
// use authz.UserCtx there instead.
package gates

import (
	"net/http"

	"github.com/campuslink/careerhub/internal/app/system/authz"
	"github.com/campuslink/careerhub/internal/app/system/httpjson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Result contains the result of an authorization gate check.
type Result struct {
	Role   string
	Name   string
	UserID primitive.ObjectID
	OK     bool
}

// RequireAuth ensures a user is authenticated. On failure it writes a 401
// and returns OK=false.
func RequireAuth(w http.ResponseWriter, r *http.Request) Result {
	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Unauthorized(w)
		return Result{OK: false}
	}
	return Result{Role: role, Name: name, UserID: uid, OK: true}
}

// RequireAdmin ensures the user is authenticated and has the admin role.
func RequireAdmin(w http.ResponseWriter, r *http.Request, forbiddenMsg string) Result {
	return RequireAnyRole(w, r, forbiddenMsg, "admin")
}

// RequireAnyRole ensures the user is authenticated and has one of the given
// roles: 401 when not signed in, 403 otherwise.
func RequireAnyRole(w http.ResponseWriter, r *http.Request, forbiddenMsg string, allowedRoles ...string) Result {
	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Unauthorized(w)
		return Result{OK: false}
	}

	for _, allowed := range allowedRoles {
		if role == allowed {
			return Result{Role: role, Name: name, UserID: uid, OK: true}
		}
	}

	httpjson.Forbidden(w, forbiddenMsg)
	return Result{OK: false}
}
