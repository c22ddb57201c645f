package verification_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campuslink/careerhub/internal/app/features/verification"
	userstore "github.com/campuslink/careerhub/internal/app/store/users"
	verificationstore "github.com/campuslink/careerhub/internal/app/store/verifications"
	"github.com/campuslink/careerhub/internal/app/system/auditlog"
	"github.com/campuslink/careerhub/internal/domain/models"
	"github.com/campuslink/careerhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*verification.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := verification.NewHandler(verificationstore.New(db), userstore.New(db), auditlog.NewNopLogger(), zap.NewNop())
	return h, testutil.NewFixtures(t, db)
}

func submitBody(t *testing.T, role string) *bytes.Buffer {
	t.Helper()
	payload := map[string]string{
		"requested_role": role,
		"document_name":  "enrollment.pdf",
		"document":       base64.StdEncoding.EncodeToString([]byte("proof of enrollment")),
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		t.Fatalf("encode body: %v", err)
	}
	return &buf
}

func submitRequest(t *testing.T, user testutil.TestUser, role string) *http.Request {
	req := httptest.NewRequest("POST", "/api/verification", submitBody(t, role))
	req.Header.Set("Content-Type", "application/json")
	return testutil.WithUser(req, user)
}

func TestSubmit_FlipsUserToPending(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	u := f.CreateUnverifiedUser(ctx, "Fresh Account", "fresh@example.edu")

	rec := httptest.NewRecorder()
	h.ServeSubmit(rec, submitRequest(t, testutil.AsUser(u), models.RoleStudent))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	stored, err := userstore.New(f.DB()).GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if stored.VerificationStatus != models.VerificationPending {
		t.Fatalf("verification_status = %q, want pending_review", stored.VerificationStatus)
	}
	if stored.Role != models.RoleUnverified {
		t.Fatalf("role = %q, submission must not change the role", stored.Role)
	}

	// One open request at a time.
	rec = httptest.NewRecorder()
	h.ServeSubmit(rec, submitRequest(t, testutil.AsUser(*stored), models.RoleStudent))
	if rec.Code != http.StatusConflict {
		t.Fatalf("resubmit: status = %d, want 409", rec.Code)
	}
}

func TestSubmit_RejectsBadRole(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	u := f.CreateUnverifiedUser(ctx, "Fresh Account", "fresh@example.edu")

	rec := httptest.NewRecorder()
	h.ServeSubmit(rec, submitRequest(t, testutil.AsUser(u), "admin"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestApprove_AssignsRole(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	u := f.CreateUser(ctx, "Applicant", "applicant@example.edu",
		models.RoleUnverified, models.VerificationPending)
	req := f.CreateVerificationRequest(ctx, u.ID, models.RoleStudent)

	r := testutil.NewAuthenticatedRequest("POST",
		"/api/admin/verifications/"+req.ID.Hex()+"/approve", testutil.AdminUser())
	r = testutil.WithChiURLParam(r, "id", req.ID.Hex())

	rec := httptest.NewRecorder()
	h.ServeApprove(rec, r)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	stored, err := userstore.New(f.DB()).GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if stored.Role != models.RoleStudent {
		t.Fatalf("role = %q, want student", stored.Role)
	}
	if stored.VerificationStatus != models.VerificationOK {
		t.Fatalf("verification_status = %q, want verified", stored.VerificationStatus)
	}

	// A decided request cannot be decided again.
	rec = httptest.NewRecorder()
	r2 := testutil.NewAuthenticatedRequest("POST",
		"/api/admin/verifications/"+req.ID.Hex()+"/approve", testutil.AdminUser())
	r2 = testutil.WithChiURLParam(r2, "id", req.ID.Hex())
	h.ServeApprove(rec, r2)
	if rec.Code != http.StatusConflict {
		t.Fatalf("second decision: status = %d, want 409", rec.Code)
	}
}

func TestApprove_RoleOverride(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	u := f.CreateUser(ctx, "Applicant", "applicant@example.edu",
		models.RoleUnverified, models.VerificationPending)
	req := f.CreateVerificationRequest(ctx, u.ID, models.RoleStudent)

	body := bytes.NewBufferString(`{"role":"alumni"}`)
	r := httptest.NewRequest("POST", "/api/admin/verifications/"+req.ID.Hex()+"/approve", body)
	r.Header.Set("Content-Type", "application/json")
	r = testutil.WithUser(r, testutil.AdminUser())
	r = testutil.WithChiURLParam(r, "id", req.ID.Hex())

	rec := httptest.NewRecorder()
	h.ServeApprove(rec, r)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	stored, err := userstore.New(f.DB()).GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if stored.Role != models.RoleAlumni {
		t.Fatalf("role = %q, want alumni after override", stored.Role)
	}
}

func TestReject_KeepsRole(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	u := f.CreateUser(ctx, "Applicant", "applicant@example.edu",
		models.RoleUnverified, models.VerificationPending)
	req := f.CreateVerificationRequest(ctx, u.ID, models.RoleProfessor)

	r := testutil.NewAuthenticatedRequest("POST",
		"/api/admin/verifications/"+req.ID.Hex()+"/reject", testutil.AdminUser())
	r = testutil.WithChiURLParam(r, "id", req.ID.Hex())

	rec := httptest.NewRecorder()
	h.ServeReject(rec, r)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	stored, err := userstore.New(f.DB()).GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if stored.Role != models.RoleUnverified {
		t.Fatalf("role = %q, rejection must not change the role", stored.Role)
	}
	if stored.VerificationStatus != models.VerificationDenied {
		t.Fatalf("verification_status = %q, want rejected", stored.VerificationStatus)
	}
}

func TestAdminList_RequiresAdmin(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeAdminList(rec, testutil.NewAuthenticatedRequest("GET", "/api/admin/verifications", testutil.StudentUser()))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}
