package testutil

import (
	"net/http"
	"net/http/httptest"

	"github.com/campuslink/careerhub/internal/app/system/auth"
	"github.com/campuslink/careerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestUser represents user data for testing HTTP handlers.
type TestUser struct {
	ID                 string
	Name               string
	Email              string
	Role               string
	VerificationStatus string
}

// AdminUser returns a TestUser with admin role.
func AdminUser() TestUser {
	return TestUser{
		ID:                 primitive.NewObjectID().Hex(),
		Name:               "Test Admin",
		Email:              "admin@test.com",
		Role:               models.RoleAdmin,
		VerificationStatus: models.VerificationOK,
	}
}

// StudentUser returns a TestUser with student role.
func StudentUser() TestUser {
	return TestUser{
		ID:                 primitive.NewObjectID().Hex(),
		Name:               "Test Student",
		Email:              "student@test.com",
		Role:               models.RoleStudent,
		VerificationStatus: models.VerificationOK,
	}
}

// ProfessorUser returns a TestUser with professor role.
func ProfessorUser() TestUser {
	return TestUser{
		ID:                 primitive.NewObjectID().Hex(),
		Name:               "Test Professor",
		Email:              "professor@test.com",
		Role:               models.RoleProfessor,
		VerificationStatus: models.VerificationOK,
	}
}

// AlumniUser returns a TestUser with alumni role.
func AlumniUser() TestUser {
	return TestUser{
		ID:                 primitive.NewObjectID().Hex(),
		Name:               "Test Alumni",
		Email:              "alumni@test.com",
		Role:               models.RoleAlumni,
		VerificationStatus: models.VerificationOK,
	}
}

// UnverifiedUser returns a TestUser holding a fresh account.
func UnverifiedUser() TestUser {
	return TestUser{
		ID:                 primitive.NewObjectID().Hex(),
		Name:               "Test Unverified",
		Email:              "unverified@test.com",
		Role:               models.RoleUnverified,
		VerificationStatus: models.VerificationNone,
	}
}

// AsUser returns a TestUser wrapping an existing fixture user so handler
// tests can act as a user that exists in the database.
func AsUser(u models.User) TestUser {
	return TestUser{
		ID:                 u.ID.Hex(),
		Name:               u.FullName,
		Email:              u.Email,
		Role:               u.Role,
		VerificationStatus: u.VerificationStatus,
	}
}

// WithUser adds a user to the request context for testing authenticated handlers.
// This bypasses the session middleware and injects the user directly.
func WithUser(r *http.Request, user TestUser) *http.Request {
	sessionUser := &auth.SessionUser{
		ID:                 user.ID,
		Name:               user.Name,
		Email:              user.Email,
		Role:               user.Role,
		VerificationStatus: user.VerificationStatus,
	}
	return auth.WithTestUser(r, sessionUser)
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewAuthenticatedRequest creates an HTTP request with a user in context.
func NewAuthenticatedRequest(method, target string, user TestUser) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return WithUser(req, user)
}
