package authn_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campuslink/careerhub/internal/app/features/authn"
	userstore "github.com/campuslink/careerhub/internal/app/store/users"
	"github.com/campuslink/careerhub/internal/app/system/auditlog"
	"github.com/campuslink/careerhub/internal/app/system/auth"
	"github.com/campuslink/careerhub/internal/domain/models"
	"github.com/campuslink/careerhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*authn.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	sessions, err := auth.NewSessionManager("test-session-key-0123456789abcdef", "careerhub-test", "", false, logger)
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	h := authn.NewHandler(userstore.New(db), sessions, auditlog.NewNopLogger(), logger)
	return h, testutil.NewFixtures(t, db)
}

func jsonRequest(t *testing.T, target string, payload any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		t.Fatalf("encode body: %v", err)
	}
	req := httptest.NewRequest("POST", target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegister_CreatesUnverifiedAccount(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rec := httptest.NewRecorder()
	h.ServeRegister(rec, jsonRequest(t, "/auth/register", map[string]string{
		"full_name": "Dana Chen",
		"email":     "Dana.Chen@Example.EDU",
		"password":  "correct horse battery",
	}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Role               string `json:"role"`
		Email              string `json:"email"`
		VerificationStatus string `json:"verification_status"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Role != models.RoleUnverified {
		t.Errorf("role = %q, want unverified", body.Role)
	}
	if body.VerificationStatus != models.VerificationNone {
		t.Errorf("verification_status = %q, want none", body.VerificationStatus)
	}
	if body.Email != "dana.chen@example.edu" {
		t.Errorf("email = %q, want normalized lowercase", body.Email)
	}

	// Registration signs the user in.
	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected a session cookie on register")
	}

	u, err := userstore.New(f.DB()).GetByEmail(ctx, "dana.chen@example.edu")
	if err != nil {
		t.Fatalf("load created user: %v", err)
	}
	if u.PasswordHash == "" || u.PasswordHash == "correct horse battery" {
		t.Error("password must be stored hashed")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	f.CreateStudent(ctx, "Existing", "taken@example.edu", nil)

	rec := httptest.NewRecorder()
	h.ServeRegister(rec, jsonRequest(t, "/auth/register", map[string]string{
		"full_name": "Dana Chen",
		"email":     "taken@example.edu",
		"password":  "correct horse battery",
	}))
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestRegister_Validation(t *testing.T) {
	h, _ := newTestHandler(t)

	cases := []map[string]string{
		{"full_name": "", "email": "a@example.edu", "password": "long enough pw"},
		{"full_name": "Dana", "email": "not-an-email", "password": "long enough pw"},
		{"full_name": "Dana", "email": "a@example.edu", "password": "short"},
	}
	for i, payload := range cases {
		rec := httptest.NewRecorder()
		h.ServeRegister(rec, jsonRequest(t, "/auth/register", payload))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("case %d: status = %d, want 400", i, rec.Code)
		}
	}
}

func TestLogin(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeRegister(rec, jsonRequest(t, "/auth/register", map[string]string{
		"full_name": "Dana Chen",
		"email":     "dana@example.edu",
		"password":  "correct horse battery",
	}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeLogin(rec, jsonRequest(t, "/auth/login", map[string]string{
		"email":    "dana@example.edu",
		"password": "wrong password",
	}))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: status = %d, want 401", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeLogin(rec, jsonRequest(t, "/auth/login", map[string]string{
		"email":    "Dana@Example.edu",
		"password": "correct horse battery",
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected a session cookie on login")
	}
}

func TestLogin_RateLimited(t *testing.T) {
	h, _ := newTestHandler(t)

	// The email limiter allows 5 attempts per window.
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.ServeLogin(rec, jsonRequest(t, "/auth/login", map[string]string{
			"email":    "target@example.edu",
			"password": "guess",
		}))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: status = %d, want 401", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	h.ServeLogin(rec, jsonRequest(t, "/auth/login", map[string]string{
		"email":    "target@example.edu",
		"password": "guess",
	}))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
}

func TestLogout_AnonymousOK(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeLogout(rec, httptest.NewRequest("POST", "/auth/logout", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
