// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureGroups(ctx, db); err != nil {
		problems = append(problems, "groups: "+err.Error())
	}
	if err := ensureProjectIdeas(ctx, db); err != nil {
		problems = append(problems, "project_ideas: "+err.Error())
	}
	if err := ensureInterviewQuestions(ctx, db); err != nil {
		problems = append(problems, "interview_questions: "+err.Error())
	}
	if err := ensureOpportunities(ctx, db); err != nil {
		problems = append(problems, "work_opportunities: "+err.Error())
	}
	if err := ensureApplications(ctx, db); err != nil {
		problems = append(problems, "opportunity_applications: "+err.Error())
	}
	if err := ensureVerificationRequests(ctx, db); err != nil {
		problems = append(problems, "verification_requests: "+err.Error())
	}
	if err := ensureNewsItems(ctx, db); err != nil {
		problems = append(problems, "news_items: "+err.Error())
	}
	if err := ensureAuditEvents(ctx, db); err != nil {
		problems = append(problems, "audit_events: "+err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("ensure indexes: %s", strings.Join(problems, "; "))
	}
	zap.L().Info("schema indexes ensured")
	return nil
}

func create(ctx context.Context, db *mongo.Database, coll string, models []mongo.IndexModel) error {
	_, err := db.Collection(coll).Indexes().CreateMany(ctx, models)
	return err
}

// ensureUsers backs login (unique email) and the graduation sweep
// (role + grad_year).
func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "users", []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}, {Key: "grad_year", Value: 1}}},
	})
}

// ensureGroups backs the folded-name uniqueness rule and the "my groups"
// membership lookup.
func ensureGroups(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "groups", []mongo.IndexModel{
		{Keys: bson.D{{Key: "name_ci", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "members", Value: 1}}},
	})
}

func ensureProjectIdeas(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "project_ideas", []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
	})
}

func ensureInterviewQuestions(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "interview_questions", []mongo.IndexModel{
		{Keys: bson.D{{Key: "company_ci", Value: 1}, {Key: "created_at", Value: -1}}},
	})
}

func ensureOpportunities(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "work_opportunities", []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
}

// ensureApplications enforces one application per user per opportunity.
func ensureApplications(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "opportunity_applications", []mongo.IndexModel{
		{Keys: bson.D{{Key: "opportunity_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true)},
	})
}

// ensureVerificationRequests enforces one open request per user. The
// uniqueness is partial so decided requests don't block resubmission.
func ensureVerificationRequests(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "verification_requests", []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": "pending_review"})},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "submitted_at", Value: 1}}},
	})
}

// ensureNewsItems dedupes aggregated articles by URL.
func ensureNewsItems(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "news_items", []mongo.IndexModel{
		{Keys: bson.D{{Key: "url", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "published_at", Value: -1}}},
	})
}

func ensureAuditEvents(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "audit_events", []mongo.IndexModel{
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "event_type", Value: 1}, {Key: "timestamp", Value: -1}}},
	})
}
