package groups_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campuslink/careerhub/internal/app/features/groups"
	groupstore "github.com/campuslink/careerhub/internal/app/store/groups"
	"github.com/campuslink/careerhub/internal/app/system/auditlog"
	"github.com/campuslink/careerhub/internal/app/system/safety"
	"github.com/campuslink/careerhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*groups.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := groups.NewHandler(groupstore.New(db), safety.NewScanner(nil), auditlog.NewNopLogger(), zap.NewNop())
	return h, testutil.NewFixtures(t, db)
}

// errorCode decodes the standard error envelope and returns the code.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return body.Error.Code
}

func joinRequest(group primitive.ObjectID, user testutil.TestUser) *http.Request {
	req := testutil.NewAuthenticatedRequest("POST", "/api/groups/"+group.Hex()+"/join", user)
	return testutil.WithChiURLParam(req, "id", group.Hex())
}

func decideRequest(group, member primitive.ObjectID, user testutil.TestUser, action string) *http.Request {
	target := "/api/groups/" + group.Hex() + "/requests/" + member.Hex() + "/" + action
	req := testutil.NewAuthenticatedRequest("POST", target, user)
	req = testutil.WithChiURLParam(req, "id", group.Hex())
	return testutil.WithChiURLParam(req, "userID", member.Hex())
}

func TestRequestJoin_Student(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	owner := f.CreateStudent(ctx, "Owner", "owner@example.edu", nil)
	g := f.CreateGroup(ctx, "Robotics Club", owner.ID, nil, nil)
	student := f.CreateStudent(ctx, "Joiner", "joiner@example.edu", nil)

	rec := httptest.NewRecorder()
	h.ServeRequestJoin(rec, joinRequest(g.ID, testutil.AsUser(student)))

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusAccepted, rec.Body.String())
	}

	stored, err := groupstore.New(f.DB()).GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("reload group: %v", err)
	}
	if !stored.HasPendingRequest(student.ID) {
		t.Fatal("join request should be queued in pending_requests")
	}
	if stored.HasMember(student.ID) {
		t.Fatal("requester must not become a member before approval")
	}
}

func TestRequestJoin_NonStudentsForbidden(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	owner := f.CreateStudent(ctx, "Owner", "owner@example.edu", nil)
	g := f.CreateGroup(ctx, "Robotics Club", owner.ID, nil, nil)

	for _, user := range []testutil.TestUser{
		testutil.ProfessorUser(),
		testutil.AlumniUser(),
		testutil.UnverifiedUser(),
	} {
		rec := httptest.NewRecorder()
		h.ServeRequestJoin(rec, joinRequest(g.ID, user))
		if rec.Code != http.StatusForbidden {
			t.Errorf("role %s: status = %d, want %d", user.Role, rec.Code, http.StatusForbidden)
		}
	}
}

func TestRequestJoin_Conflicts(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	owner := f.CreateStudent(ctx, "Owner", "owner@example.edu", nil)
	member := f.CreateStudent(ctx, "Member", "member@example.edu", nil)
	waiting := f.CreateStudent(ctx, "Waiting", "waiting@example.edu", nil)
	g := f.CreateGroup(ctx, "Robotics Club", owner.ID,
		[]primitive.ObjectID{member.ID}, []primitive.ObjectID{waiting.ID})

	rec := httptest.NewRecorder()
	h.ServeRequestJoin(rec, joinRequest(g.ID, testutil.AsUser(member)))
	if rec.Code != http.StatusConflict {
		t.Fatalf("member join: status = %d, want 409", rec.Code)
	}
	if code := errorCode(t, rec); code != "already_member" {
		t.Errorf("member join: code = %q, want already_member", code)
	}

	rec = httptest.NewRecorder()
	h.ServeRequestJoin(rec, joinRequest(g.ID, testutil.AsUser(waiting)))
	if rec.Code != http.StatusConflict {
		t.Fatalf("repeat join: status = %d, want 409", rec.Code)
	}
	if code := errorCode(t, rec); code != "already_requested" {
		t.Errorf("repeat join: code = %q, want already_requested", code)
	}
}

func TestRequestJoin_MissingGroup(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	student := f.CreateStudent(ctx, "Joiner", "joiner@example.edu", nil)

	rec := httptest.NewRecorder()
	h.ServeRequestJoin(rec, joinRequest(primitive.NewObjectID(), testutil.AsUser(student)))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestApprove_OwnerMovesRequester(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	owner := f.CreateStudent(ctx, "Owner", "owner@example.edu", nil)
	waiting := f.CreateStudent(ctx, "Waiting", "waiting@example.edu", nil)
	g := f.CreateGroup(ctx, "Robotics Club", owner.ID, nil, []primitive.ObjectID{waiting.ID})

	rec := httptest.NewRecorder()
	h.ServeApprove(rec, decideRequest(g.ID, waiting.ID, testutil.AsUser(owner), "approve"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	stored, err := groupstore.New(f.DB()).GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("reload group: %v", err)
	}
	if !stored.HasMember(waiting.ID) {
		t.Fatal("approved requester should be a member")
	}
	if stored.HasPendingRequest(waiting.ID) {
		t.Fatal("approved requester should leave the pending queue")
	}

	// The queue entry is consumed; a second decision conflicts.
	rec = httptest.NewRecorder()
	h.ServeApprove(rec, decideRequest(g.ID, waiting.ID, testutil.AsUser(owner), "approve"))
	if rec.Code != http.StatusConflict {
		t.Fatalf("second approve: status = %d, want 409", rec.Code)
	}
	if code := errorCode(t, rec); code != "not_pending" {
		t.Errorf("second approve: code = %q, want not_pending", code)
	}
}

func TestApprove_NonModeratorForbidden(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	owner := f.CreateStudent(ctx, "Owner", "owner@example.edu", nil)
	waiting := f.CreateStudent(ctx, "Waiting", "waiting@example.edu", nil)
	outsider := f.CreateStudent(ctx, "Outsider", "outsider@example.edu", nil)
	g := f.CreateGroup(ctx, "Robotics Club", owner.ID, nil, []primitive.ObjectID{waiting.ID})

	rec := httptest.NewRecorder()
	h.ServeApprove(rec, decideRequest(g.ID, waiting.ID, testutil.AsUser(outsider), "approve"))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}

	stored, err := groupstore.New(f.DB()).GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("reload group: %v", err)
	}
	if !stored.HasPendingRequest(waiting.ID) {
		t.Fatal("request should still be pending after a forbidden decision")
	}
}

func TestReject_AdminAllowed(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	owner := f.CreateStudent(ctx, "Owner", "owner@example.edu", nil)
	waiting := f.CreateStudent(ctx, "Waiting", "waiting@example.edu", nil)
	g := f.CreateGroup(ctx, "Robotics Club", owner.ID, nil, []primitive.ObjectID{waiting.ID})

	rec := httptest.NewRecorder()
	h.ServeReject(rec, decideRequest(g.ID, waiting.ID, testutil.AdminUser(), "reject"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	stored, err := groupstore.New(f.DB()).GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("reload group: %v", err)
	}
	if stored.HasPendingRequest(waiting.ID) {
		t.Fatal("rejected request should leave the pending queue")
	}
	if stored.HasMember(waiting.ID) {
		t.Fatal("rejected requester must not become a member")
	}
}

func TestView_HidesPendingFromNonModerators(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	owner := f.CreateStudent(ctx, "Owner", "owner@example.edu", nil)
	waiting := f.CreateStudent(ctx, "Waiting", "waiting@example.edu", nil)
	g := f.CreateGroup(ctx, "Robotics Club", owner.ID, nil, []primitive.ObjectID{waiting.ID})

	view := func(user testutil.TestUser) map[string]any {
		req := testutil.NewAuthenticatedRequest("GET", "/api/groups/"+g.ID.Hex(), user)
		req = testutil.WithChiURLParam(req, "id", g.ID.Hex())
		rec := httptest.NewRecorder()
		h.ServeView(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("view as %s: status = %d", user.Role, rec.Code)
		}
		var body map[string]any
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode view: %v", err)
		}
		return body
	}

	if _, ok := view(testutil.AsUser(owner))["pending_requests"]; !ok {
		t.Error("owner should see the pending queue")
	}
	if _, ok := view(testutil.AsUser(waiting))["pending_requests"]; ok {
		t.Error("non-moderators should not see the pending queue")
	}
}
