package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/campuslink/careerhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given role and verification
// status. Returns the created user with its generated ID.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email, role, verificationStatus string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:                 primitive.NewObjectID(),
		FullName:           fullName,
		FullNameCI:         text.Fold(fullName),
		Email:              email,
		PasswordHash:       "$2a$10$testhashtesthashtesthashtesthashtesthashtesthashtest",
		Role:               role,
		VerificationStatus: verificationStatus,
		Status:             "active",
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateStudent creates a verified student, optionally with a graduation year.
func (f *Fixtures) CreateStudent(ctx context.Context, fullName, email string, gradYear *int) models.User {
	f.t.Helper()

	user := f.CreateUser(ctx, fullName, email, models.RoleStudent, models.VerificationOK)
	if gradYear != nil {
		_, err := f.db.Collection("users").UpdateOne(ctx,
			bson.M{"_id": user.ID},
			bson.M{"$set": bson.M{"grad_year": *gradYear}})
		if err != nil {
			f.t.Fatalf("failed to set grad_year: %v", err)
		}
		user.GradYear = gradYear
	}
	return user
}

// CreateProfessor creates a verified professor.
func (f *Fixtures) CreateProfessor(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleProfessor, models.VerificationOK)
}

// CreateAlumni creates a verified alumni user.
func (f *Fixtures) CreateAlumni(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleAlumni, models.VerificationOK)
}

// CreateAdmin creates a test admin user.
func (f *Fixtures) CreateAdmin(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleAdmin, models.VerificationOK)
}

// CreateUnverifiedUser creates a freshly registered account.
func (f *Fixtures) CreateUnverifiedUser(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleUnverified, models.VerificationNone)
}

// CreateGroup creates a test group owned by ownerID. The owner is the sole
// member and members/pendingRequests may be extended with the given IDs.
func (f *Fixtures) CreateGroup(ctx context.Context, name string, ownerID primitive.ObjectID, members, pending []primitive.ObjectID) models.Group {
	f.t.Helper()

	now := time.Now().UTC()
	group := models.Group{
		ID:              primitive.NewObjectID(),
		Name:            name,
		NameCI:          text.Fold(name),
		Description:     "Test group description",
		OwnerID:         ownerID,
		Members:         append([]primitive.ObjectID{ownerID}, members...),
		PendingRequests: pending,
		Status:          "active",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if group.PendingRequests == nil {
		group.PendingRequests = []primitive.ObjectID{}
	}

	_, err := f.db.Collection("groups").InsertOne(ctx, group)
	if err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}

	return group
}

// CreateProjectIdea creates a test project idea owned by the given user.
func (f *Fixtures) CreateProjectIdea(ctx context.Context, title string, owner models.User) models.ProjectIdea {
	f.t.Helper()

	idea := models.ProjectIdea{
		ID:        primitive.NewObjectID(),
		Title:     title,
		TitleCI:   text.Fold(title),
		Tags:      []string{"test"},
		OwnerID:   owner.ID,
		OwnerName: owner.FullName,
		CreatedAt: time.Now().UTC(),
	}

	_, err := f.db.Collection("project_ideas").InsertOne(ctx, idea)
	if err != nil {
		f.t.Fatalf("failed to create test project idea: %v", err)
	}

	return idea
}

// CreateOpportunity creates a test work opportunity owned by the given user.
func (f *Fixtures) CreateOpportunity(ctx context.Context, title, company string, owner models.User) models.WorkOpportunity {
	f.t.Helper()

	opp := models.WorkOpportunity{
		ID:        primitive.NewObjectID(),
		Title:     title,
		TitleCI:   text.Fold(title),
		Company:   company,
		OwnerID:   owner.ID,
		OwnerName: owner.FullName,
		CreatedAt: time.Now().UTC(),
	}

	_, err := f.db.Collection("work_opportunities").InsertOne(ctx, opp)
	if err != nil {
		f.t.Fatalf("failed to create test opportunity: %v", err)
	}

	return opp
}

// CreateVerificationRequest creates a pending verification request for the
// given user.
func (f *Fixtures) CreateVerificationRequest(ctx context.Context, userID primitive.ObjectID, requestedRole string) models.VerificationRequest {
	f.t.Helper()

	req := models.VerificationRequest{
		ID:            primitive.NewObjectID(),
		UserID:        userID,
		Document:      []byte("test document"),
		DocumentName:  "enrollment.pdf",
		DocumentKey:   primitive.NewObjectID().Hex(),
		RequestedRole: requestedRole,
		Status:        models.VerificationPending,
		SubmittedAt:   time.Now().UTC(),
	}

	_, err := f.db.Collection("verification_requests").InsertOne(ctx, req)
	if err != nil {
		f.t.Fatalf("failed to create test verification request: %v", err)
	}

	return req
}

// CreateNewsItem creates a stored news item.
func (f *Fixtures) CreateNewsItem(ctx context.Context, source, title, url string, publishedAt time.Time) models.NewsItem {
	f.t.Helper()

	item := models.NewsItem{
		ID:          primitive.NewObjectID(),
		Source:      source,
		Title:       title,
		URL:         url,
		Summary:     "Test summary",
		PublishedAt: publishedAt,
		FetchedAt:   time.Now().UTC(),
	}

	_, err := f.db.Collection("news_items").InsertOne(ctx, item)
	if err != nil {
		f.t.Fatalf("failed to create test news item: %v", err)
	}

	return item
}

// EnsureApplicationIndex creates the unique (opportunity_id, user_id) index
// that schema setup provides in production, for tests that exercise the
// duplicate-application path.
func (f *Fixtures) EnsureApplicationIndex(ctx context.Context) error {
	_, err := f.db.Collection("opportunity_applications").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "opportunity_id", Value: 1}, {Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
