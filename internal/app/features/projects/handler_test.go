package projects_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campuslink/careerhub/internal/app/features/projects"
	projectstore "github.com/campuslink/careerhub/internal/app/store/projects"
	"github.com/campuslink/careerhub/internal/app/system/safety"
	"github.com/campuslink/careerhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*projects.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := projects.NewHandler(projectstore.New(db), safety.NewScanner([]string{"blocked phrase"}), zap.NewNop())
	return h, testutil.NewFixtures(t, db)
}

func createRequest(t *testing.T, user testutil.TestUser, payload any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		t.Fatalf("encode body: %v", err)
	}
	req := httptest.NewRequest("POST", "/api/projects", &buf)
	req.Header.Set("Content-Type", "application/json")
	return testutil.WithUser(req, user)
}

func TestCreate_ProfessorOnly(t *testing.T) {
	h, _ := newTestHandler(t)

	payload := map[string]any{
		"title":       "Distributed tracing for campus services",
		"description": "Build a tracing pipeline.",
		"tags":        []string{"Go", "Observability"},
	}

	rec := httptest.NewRecorder()
	h.ServeCreate(rec, createRequest(t, testutil.ProfessorUser(), payload))
	if rec.Code != http.StatusCreated {
		t.Fatalf("professor: status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	for _, user := range []testutil.TestUser{
		testutil.StudentUser(),
		testutil.AlumniUser(),
		testutil.UnverifiedUser(),
	} {
		rec := httptest.NewRecorder()
		h.ServeCreate(rec, createRequest(t, user, payload))
		if rec.Code != http.StatusForbidden {
			t.Errorf("role %s: status = %d, want 403", user.Role, rec.Code)
		}
	}
}

func TestCreate_FoldsTags(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rec := httptest.NewRecorder()
	h.ServeCreate(rec, createRequest(t, testutil.ProfessorUser(), map[string]any{
		"title": "Search engine basics",
		"tags":  []string{"  Machine Learning ", ""},
	}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	ideas, err := projectstore.New(f.DB()).List(ctx, "machine learning", 10)
	if err != nil {
		t.Fatalf("list by folded tag: %v", err)
	}
	if len(ideas) != 1 {
		t.Fatalf("got %d ideas for folded tag, want 1", len(ideas))
	}
}

func TestCreate_FlaggedContent(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeCreate(rec, createRequest(t, testutil.ProfessorUser(), map[string]any{
		"title":       "Totally fine title",
		"description": "contains a Blocked Phrase in the body",
	}))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestDelete_OwnerOrAdmin(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	owner := f.CreateProfessor(ctx, "Prof Owner", "owner@example.edu")
	idea := f.CreateProjectIdea(ctx, "Compilers study project", owner)

	del := func(user testutil.TestUser) *httptest.ResponseRecorder {
		req := testutil.NewAuthenticatedRequest("DELETE", "/api/projects/"+idea.ID.Hex(), user)
		req = testutil.WithChiURLParam(req, "id", idea.ID.Hex())
		rec := httptest.NewRecorder()
		h.ServeDelete(rec, req)
		return rec
	}

	if rec := del(testutil.StudentUser()); rec.Code != http.StatusForbidden {
		t.Fatalf("stranger delete: status = %d, want 403", rec.Code)
	}
	if rec := del(testutil.AsUser(owner)); rec.Code != http.StatusOK {
		t.Fatalf("owner delete: status = %d, want 200", rec.Code)
	}
	// Already gone.
	if rec := del(testutil.AdminUser()); rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: status = %d, want 404", rec.Code)
	}
}
