package authz_test

import (
	"net/http/httptest"
	"testing"

	"github.com/campuslink/careerhub/internal/app/system/auth"
	"github.com/campuslink/careerhub/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserCtx_NoUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)

	role, name, uid, ok := authz.UserCtx(req)
	if ok {
		t.Error("expected ok=false without a session user")
	}
	if role != "visitor" || name != "" || uid != primitive.NilObjectID {
		t.Errorf("unexpected zero values: role=%q name=%q uid=%v", role, name, uid)
	}
}

func TestUserCtx_MalformedID(t *testing.T) {
	req := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &auth.SessionUser{
		ID:   "not-an-object-id",
		Role: "admin",
	})

	_, _, _, ok := authz.UserCtx(req)
	if ok {
		t.Error("expected ok=false for a malformed user ID (fail closed)")
	}
}

func TestUserCtx_NormalizesRole(t *testing.T) {
	id := primitive.NewObjectID()
	req := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &auth.SessionUser{
		ID:   id.Hex(),
		Name: "Prof X",
		Role: "Professor",
	})

	role, name, uid, ok := authz.UserCtx(req)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if role != "professor" {
		t.Errorf("role: got %q, want %q", role, "professor")
	}
	if name != "Prof X" || uid != id {
		t.Errorf("unexpected name/uid: %q %v", name, uid)
	}
}

func TestRoleHelpers(t *testing.T) {
	id := primitive.NewObjectID().Hex()

	tests := []struct {
		role    string
		admin   bool
		student bool
		alumni  bool
		prof    bool
	}{
		{"admin", true, false, false, false},
		{"student", false, true, false, false},
		{"alumni", false, false, true, false},
		{"professor", false, false, false, true},
		{"unverified", false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			req := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &auth.SessionUser{ID: id, Role: tt.role})
			if got := authz.IsAdmin(req); got != tt.admin {
				t.Errorf("IsAdmin = %v, want %v", got, tt.admin)
			}
			if got := authz.IsStudent(req); got != tt.student {
				t.Errorf("IsStudent = %v, want %v", got, tt.student)
			}
			if got := authz.IsAlumni(req); got != tt.alumni {
				t.Errorf("IsAlumni = %v, want %v", got, tt.alumni)
			}
			if got := authz.IsProfessor(req); got != tt.prof {
				t.Errorf("IsProfessor = %v, want %v", got, tt.prof)
			}
		})
	}
}

func TestHasAnyRole(t *testing.T) {
	id := primitive.NewObjectID().Hex()
	req := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &auth.SessionUser{ID: id, Role: "alumni"})

	if !authz.HasAnyRole(req, "professor", "alumni") {
		t.Error("expected alumni to match [professor, alumni]")
	}
	if authz.HasAnyRole(req, "professor", "admin") {
		t.Error("alumni should not match [professor, admin]")
	}
	if authz.HasAnyRole(httptest.NewRequest("GET", "/", nil), "admin") {
		t.Error("unauthenticated request should never match")
	}
}
