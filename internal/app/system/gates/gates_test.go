package gates_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campuslink/careerhub/internal/app/system/auth"
	"github.com/campuslink/careerhub/internal/app/system/gates"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func authedRequest(role string) *http.Request {
	req := httptest.NewRequest("GET", "/", nil)
	return auth.WithTestUser(req, &auth.SessionUser{
		ID:   primitive.NewObjectID().Hex(),
		Name: "Test User",
		Role: role,
	})
}

func TestRequireAuth_NotSignedIn(t *testing.T) {
	rec := httptest.NewRecorder()

	res := gates.RequireAuth(rec, httptest.NewRequest("GET", "/", nil))
	if res.OK {
		t.Error("expected OK=false for anonymous request")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireAuth_SignedIn(t *testing.T) {
	rec := httptest.NewRecorder()

	res := gates.RequireAuth(rec, authedRequest("student"))
	if !res.OK {
		t.Fatal("expected OK=true")
	}
	if res.Role != "student" || res.UserID.IsZero() {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestRequireAdmin_WrongRole(t *testing.T) {
	rec := httptest.NewRecorder()

	res := gates.RequireAdmin(rec, authedRequest("professor"), "admins only")
	if res.OK {
		t.Error("expected OK=false for non-admin")
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestRequireAnyRole(t *testing.T) {
	rec := httptest.NewRecorder()
	res := gates.RequireAnyRole(rec, authedRequest("alumni"), "nope", "professor", "alumni")
	if !res.OK {
		t.Error("expected alumni to pass [professor, alumni]")
	}

	rec = httptest.NewRecorder()
	res = gates.RequireAnyRole(rec, authedRequest("student"), "nope", "professor", "alumni")
	if res.OK {
		t.Error("expected student to fail [professor, alumni]")
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
}
