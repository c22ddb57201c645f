// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/campuslink/careerhub/internal/app/system/normalize"
	"github.com/campuslink/careerhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost for password hashing.
const bcryptCost = 12

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when attempting to create a user with
	// an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrBadCredentials is returned when email/password authentication fails.
	// Unknown email and wrong password are indistinguishable on purpose.
	ErrBadCredentials = errors.New("invalid email or password")

	errBadRole = errors.New(`role must be "unverified"|"student"|"alumni"|"professor"|"admin"`)
)

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns
// mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing and validating fields, hashing
// the given plaintext password.
func (s *Store) Create(ctx context.Context, u models.User, password string) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.FullName = normalize.Name(u.FullName)
	u.FullNameCI = text.Fold(u.FullName)
	u.Email = normalize.Email(u.Email)
	if u.Role == "" {
		u.Role = models.RoleUnverified
	}
	if u.VerificationStatus == "" {
		u.VerificationStatus = models.VerificationNone
	}
	if u.Status == "" {
		u.Status = "active"
	}

	if !models.IsValidRole(u.Role) {
		return models.User{}, errBadRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return models.User{}, err
	}
	u.PasswordHash = string(hash)

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// Authenticate checks an email/password pair and returns the user on
// success. Disabled accounts fail with ErrBadCredentials.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.GetByEmail(ctx, email)
	if err == mongo.ErrNoDocuments {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if normalize.Status(u.Status) == "disabled" {
		return nil, ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrBadCredentials
	}
	return u, nil
}

// ProfileUpdate holds the fields a user may change on their own profile.
type ProfileUpdate struct {
	FullName string
	GradYear *int
	Bio      string // already sanitized by the caller
}

// UpdateProfile updates a user's own profile fields.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) error {
	set := bson.M{
		"full_name":    normalize.Name(upd.FullName),
		"full_name_ci": text.Fold(normalize.Name(upd.FullName)),
		"bio":          upd.Bio,
		"updated_at":   time.Now().UTC(),
	}
	update := bson.M{"$set": set}
	if upd.GradYear != nil {
		set["grad_year"] = *upd.GradYear
	} else {
		update["$unset"] = bson.M{"grad_year": ""}
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// PromoteIfGraduated upgrades a single student to alumni when their
// graduation year has passed. The filter carries the whole precondition, so
// the update is atomic and idempotent: a second call (or a race with the
// sweep) matches nothing and reports upgraded=false.
func (s *Store) PromoteIfGraduated(ctx context.Context, id primitive.ObjectID, now time.Time) (bool, error) {
	res, err := s.c.UpdateOne(ctx, bson.M{
		"_id":       id,
		"role":      models.RoleStudent,
		"grad_year": bson.M{"$ne": nil, "$lt": now.UTC().Year()},
	}, bson.M{"$set": bson.M{
		"role":       models.RoleAlumni,
		"updated_at": now.UTC(),
	}})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// PromoteGraduates upgrades every student whose graduation year has passed.
// Used by the periodic sweep; same filter as PromoteIfGraduated so the two
// paths converge. Returns the number of users upgraded.
func (s *Store) PromoteGraduates(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.c.UpdateMany(ctx, bson.M{
		"role":      models.RoleStudent,
		"grad_year": bson.M{"$ne": nil, "$lt": now.UTC().Year()},
	}, bson.M{"$set": bson.M{
		"role":       models.RoleAlumni,
		"updated_at": now.UTC(),
	}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// SetRole sets a user's role directly. Used by admin bootstrap; the
// verification workflow goes through ApproveVerification instead.
func (s *Store) SetRole(ctx context.Context, id primitive.ObjectID, role string) error {
	if !models.IsValidRole(role) {
		return errBadRole
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"role":       role,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetVerificationPending marks a user's verification status pending_review.
// Valid only from none/rejected; the conditional filter enforces it.
// Returns mongo.ErrNoDocuments when the user is missing or not in an
// eligible status.
func (s *Store) SetVerificationPending(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx, bson.M{
		"_id": id,
		"verification_status": bson.M{"$in": bson.A{
			models.VerificationNone, models.VerificationDenied,
		}},
	}, bson.M{"$set": bson.M{
		"verification_status": models.VerificationPending,
		"updated_at":          time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ErrNotPendingReview is returned by verification decisions when the target
// user is not currently pending review.
var ErrNotPendingReview = errors.New("user has no verification pending review")

// ApproveVerification marks the user verified and assigns the given role in
// one conditional update. Valid only while the user is pending_review.
func (s *Store) ApproveVerification(ctx context.Context, id primitive.ObjectID, assignedRole string) error {
	if !models.IsAssignableRole(assignedRole) {
		return errBadRole
	}
	res, err := s.c.UpdateOne(ctx, bson.M{
		"_id":                 id,
		"verification_status": models.VerificationPending,
	}, bson.M{"$set": bson.M{
		"verification_status": models.VerificationOK,
		"role":                assignedRole,
		"updated_at":          time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotPendingReview
	}
	return nil
}

// RejectVerification marks the user rejected, role unchanged. Valid only
// while the user is pending_review.
func (s *Store) RejectVerification(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx, bson.M{
		"_id":                 id,
		"verification_status": models.VerificationPending,
	}, bson.M{"$set": bson.M{
		"verification_status": models.VerificationDenied,
		"updated_at":          time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotPendingReview
	}
	return nil
}
