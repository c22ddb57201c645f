// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	newsfeature "github.com/campuslink/careerhub/internal/app/features/news"
	"github.com/campuslink/careerhub/internal/app/services/newsapi"
	auditstore "github.com/campuslink/careerhub/internal/app/store/audit"
	newsstore "github.com/campuslink/careerhub/internal/app/store/news"
	userstore "github.com/campuslink/careerhub/internal/app/store/users"
	"github.com/campuslink/careerhub/internal/app/system/safety"
	"github.com/campuslink/careerhub/internal/app/system/tasks"
	"github.com/campuslink/careerhub/internal/app/system/timeouts"
	"github.com/campuslink/careerhub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// auditRetention bounds how long audit events are kept.
const auditRetention = 180 * 24 * time.Hour

// scheduler runs the recurring jobs for the lifetime of the process. It is
// created in Startup and stopped in Shutdown.
var scheduler *tasks.Scheduler

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. It
// configures shared system packages, ensures the bootstrap admin exists,
// and starts the background job scheduler.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{})
	if len(appCfg.BlockedTerms) > 0 {
		safety.Default().Add(appCfg.BlockedTerms)
	}

	users := userstore.New(deps.MongoDatabase)

	if appCfg.AdminEmail != "" {
		if err := ensureAdmin(ctx, users, appCfg, logger); err != nil {
			return err
		}
	}

	scheduler = tasks.NewScheduler(logger)

	// Hourly sweep promoting students whose graduation year has passed.
	// Idempotent alongside the same check at login.
	err := scheduler.Register(tasks.Job{
		Name:    "promote-graduates",
		Spec:    "@hourly",
		Timeout: timeouts.Long(),
		Run: func(ctx context.Context) error {
			n, err := users.PromoteGraduates(ctx, time.Now())
			if err != nil {
				return err
			}
			if n > 0 {
				logger.Info("graduation sweep promoted students", zap.Int64("count", n))
			}
			return nil
		},
	})
	if err != nil {
		return err
	}

	if appCfg.NewsFeedURL != "" {
		client := newsapi.New(newsapi.Config{
			FeedURL: appCfg.NewsFeedURL,
			APIKey:  appCfg.NewsAPIKey,
		})
		refresher := newsfeature.NewHandler(newsstore.New(deps.MongoDatabase), client, nil, logger)
		err := scheduler.Register(tasks.Job{
			Name:    "refresh-news",
			Spec:    appCfg.NewsRefreshSpec,
			Timeout: 2 * time.Minute,
			Run:     refresher.Refresh,
		})
		if err != nil {
			return err
		}
	}

	// Daily cleanup keeping the audit trail bounded.
	auditEvents := auditstore.New(deps.MongoDatabase)
	err = scheduler.Register(tasks.Job{
		Name:    "prune-audit",
		Spec:    "@daily",
		Timeout: timeouts.Long(),
		Run: func(ctx context.Context) error {
			n, err := auditEvents.PruneOlderThan(ctx, time.Now().UTC().Add(-auditRetention))
			if err != nil {
				return err
			}
			if n > 0 {
				logger.Info("audit trail pruned", zap.Int64("count", n))
			}
			return nil
		},
	})
	if err != nil {
		return err
	}

	scheduler.Start()
	return nil
}

// ensureAdmin promotes the configured account to admin, creating it first
// if it does not exist.
func ensureAdmin(ctx context.Context, users *userstore.Store, appCfg AppConfig, logger *zap.Logger) error {
	u, err := users.GetByEmail(ctx, appCfg.AdminEmail)
	if err == mongo.ErrNoDocuments {
		created, err := users.Create(ctx, models.User{
			FullName:           "Administrator",
			Email:              appCfg.AdminEmail,
			Role:               models.RoleAdmin,
			VerificationStatus: models.VerificationOK,
		}, appCfg.AdminPassword)
		if err != nil {
			return err
		}
		logger.Info("bootstrap admin created", zap.String("user_id", created.ID.Hex()))
		return nil
	}
	if err != nil {
		return err
	}

	if u.Role == models.RoleAdmin {
		return nil
	}
	if err := users.SetRole(ctx, u.ID, models.RoleAdmin); err != nil {
		return err
	}
	logger.Info("bootstrap admin promoted", zap.String("user_id", u.ID.Hex()))
	return nil
}
