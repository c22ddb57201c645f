package opportunitystore_test

import (
	"testing"

	opportunitystore "github.com/campuslink/careerhub/internal/app/store/opportunities"
	"github.com/campuslink/careerhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func newTestStore(t *testing.T) (*opportunitystore.Store, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Unique index the schema layer normally creates.
	_, err := db.Collection("opportunity_applications").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "opportunity_id", Value: 1}, {Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		t.Fatalf("CreateOne index failed: %v", err)
	}
	return opportunitystore.New(db), testutil.NewFixtures(t, db)
}

func TestApply(t *testing.T) {
	store, fixtures := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	prof := fixtures.CreateProfessor(ctx, "Prof Poster", "prof@example.com")
	student := fixtures.CreateStudent(ctx, "Applicant", "applicant@example.com", nil)
	opp := fixtures.CreateOpportunity(ctx, "Summer Internship", "Acme", prof)

	app, err := store.Apply(ctx, opp.ID, student.ID, "Very interested")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if app.OpportunityID != opp.ID || app.UserID != student.ID {
		t.Errorf("application keys: got (%v, %v)", app.OpportunityID, app.UserID)
	}

	// Applying twice is a conflict.
	if _, err := store.Apply(ctx, opp.ID, student.ID, "again"); err != opportunitystore.ErrAlreadyApplied {
		t.Errorf("expected ErrAlreadyApplied, got %v", err)
	}

	apps, err := store.ListApplications(ctx, opp.ID)
	if err != nil {
		t.Fatalf("ListApplications failed: %v", err)
	}
	if len(apps) != 1 {
		t.Errorf("applications: got %d, want 1", len(apps))
	}
}

func TestApply_MissingOpportunity(t *testing.T) {
	store, fixtures := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := fixtures.CreateStudent(ctx, "Applicant", "applicant@example.com", nil)

	_, err := store.Apply(ctx, primitive.NewObjectID(), student.ID, "note")
	if err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestDelete_RemovesApplications(t *testing.T) {
	store, fixtures := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	prof := fixtures.CreateProfessor(ctx, "Prof Poster", "prof@example.com")
	student := fixtures.CreateStudent(ctx, "Applicant", "applicant@example.com", nil)
	opp := fixtures.CreateOpportunity(ctx, "Doomed Role", "Acme", prof)

	if _, err := store.Apply(ctx, opp.ID, student.ID, ""); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if err := store.Delete(ctx, opp.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	count, err := fixtures.DB().Collection("opportunity_applications").CountDocuments(ctx, bson.M{"opportunity_id": opp.ID})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected applications to be removed, found %d", count)
	}
}
