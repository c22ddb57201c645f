package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campuslink/careerhub/internal/app/system/auth"
	"go.uber.org/zap"
)

func newManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	m, err := auth.NewSessionManager("0123456789abcdef0123456789abcdef", "careerhub-test", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	return m
}

func TestNewSessionManager_EmptyName(t *testing.T) {
	_, err := auth.NewSessionManager("key", "", "", false, zap.NewNop())
	if err == nil {
		t.Fatal("expected error for empty cookie name")
	}
}

func TestCurrentUser_NotSignedIn(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if _, ok := auth.CurrentUser(req); ok {
		t.Error("expected no user on a bare request")
	}
}

func TestWithTestUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "abc", Role: "student"})

	u, ok := auth.CurrentUser(req)
	if !ok {
		t.Fatal("expected user in context")
	}
	if u.ID != "abc" || u.Role != "student" {
		t.Errorf("unexpected user: %+v", u)
	}
}

func TestRequireSignedIn_Blocks(t *testing.T) {
	m := newManager(t)

	called := false
	h := m.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/groups", nil))

	if called {
		t.Error("handler should not run without a session user")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireSignedIn_Passes(t *testing.T) {
	m := newManager(t)

	called := false
	h := m.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := auth.WithTestUser(httptest.NewRequest("GET", "/groups", nil), &auth.SessionUser{ID: "u1", Role: "student"})
	h.ServeHTTP(httptest.NewRecorder(), req)

	if !called {
		t.Error("handler should run for a signed-in user")
	}
}

func TestRequireRole_WrongRole(t *testing.T) {
	m := newManager(t)

	h := m.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run for wrong role")
	}))

	req := auth.WithTestUser(httptest.NewRequest("GET", "/admin", nil), &auth.SessionUser{ID: "u1", Role: "student"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestRequireRole_CaseInsensitive(t *testing.T) {
	m := newManager(t)

	called := false
	h := m.RequireRole("Admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := auth.WithTestUser(httptest.NewRequest("GET", "/admin", nil), &auth.SessionUser{ID: "u1", Role: "ADMIN"})
	h.ServeHTTP(httptest.NewRecorder(), req)

	if !called {
		t.Error("role comparison should be case-insensitive")
	}
}

func TestSignInThenLoadSessionUser(t *testing.T) {
	m := newManager(t)
	m.SetUserFetcher(staticFetcher{"u-123": {ID: "u-123", Name: "Ada", Role: "student"}})

	// Sign in and capture the cookie.
	signinRec := httptest.NewRecorder()
	if err := m.SignIn(signinRec, httptest.NewRequest("POST", "/auth/login", nil), "u-123"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	cookies := signinRec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie")
	}

	// Replay the cookie through LoadSessionUser.
	var got *auth.SessionUser
	h := m.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
	}))
	req := httptest.NewRequest("GET", "/profile", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("expected user loaded from session")
	}
	if got.ID != "u-123" || got.Name != "Ada" {
		t.Errorf("unexpected user: %+v", got)
	}
}

func TestLoadSessionUser_StaleSession(t *testing.T) {
	m := newManager(t)
	m.SetUserFetcher(staticFetcher{}) // fetcher knows nobody

	signinRec := httptest.NewRecorder()
	if err := m.SignIn(signinRec, httptest.NewRequest("POST", "/auth/login", nil), "gone"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}

	h := m.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.CurrentUser(r); ok {
			t.Error("deleted user should not be signed in")
		}
	}))
	req := httptest.NewRequest("GET", "/profile", nil)
	for _, c := range signinRec.Result().Cookies() {
		req.AddCookie(c)
	}
	h.ServeHTTP(httptest.NewRecorder(), req)
}

// staticFetcher is an in-memory UserFetcher for tests.
type staticFetcher map[string]*auth.SessionUser

func (f staticFetcher) FetchUser(_ context.Context, userID string) *auth.SessionUser {
	return f[userID]
}
