// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	assistantfeature "github.com/campuslink/careerhub/internal/app/features/assistant"
	audittrailfeature "github.com/campuslink/careerhub/internal/app/features/audittrail"
	authnfeature "github.com/campuslink/careerhub/internal/app/features/authn"
	groupsfeature "github.com/campuslink/careerhub/internal/app/features/groups"
	healthfeature "github.com/campuslink/careerhub/internal/app/features/health"
	newsfeature "github.com/campuslink/careerhub/internal/app/features/news"
	opportunitiesfeature "github.com/campuslink/careerhub/internal/app/features/opportunities"
	profilefeature "github.com/campuslink/careerhub/internal/app/features/profile"
	projectsfeature "github.com/campuslink/careerhub/internal/app/features/projects"
	questionsfeature "github.com/campuslink/careerhub/internal/app/features/questions"
	userinfofeature "github.com/campuslink/careerhub/internal/app/features/userinfo"
	verificationfeature "github.com/campuslink/careerhub/internal/app/features/verification"
	"github.com/campuslink/careerhub/internal/app/services/newsapi"
	"github.com/campuslink/careerhub/internal/app/services/textgen"
	auditstore "github.com/campuslink/careerhub/internal/app/store/audit"
	groupstore "github.com/campuslink/careerhub/internal/app/store/groups"
	newsstore "github.com/campuslink/careerhub/internal/app/store/news"
	opportunitystore "github.com/campuslink/careerhub/internal/app/store/opportunities"
	projectstore "github.com/campuslink/careerhub/internal/app/store/projects"
	questionstore "github.com/campuslink/careerhub/internal/app/store/questions"
	userstore "github.com/campuslink/careerhub/internal/app/store/users"
	verificationstore "github.com/campuslink/careerhub/internal/app/store/verifications"
	"github.com/campuslink/careerhub/internal/app/system/auditlog"
	"github.com/campuslink/careerhub/internal/app/system/auth"
	"github.com/campuslink/careerhub/internal/app/system/safety"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. It creates the session manager, builds
// the stores and upstream clients, and mounts all feature routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Stores
	users := userstore.New(deps.MongoDatabase)
	groups := groupstore.New(deps.MongoDatabase)
	projects := projectstore.New(deps.MongoDatabase)
	questions := questionstore.New(deps.MongoDatabase)
	opportunities := opportunitystore.New(deps.MongoDatabase)
	verifications := verificationstore.New(deps.MongoDatabase)
	newsItems := newsstore.New(deps.MongoDatabase)
	auditEvents := auditstore.New(deps.MongoDatabase)

	// Set up the UserFetcher so LoadSessionUser fetches fresh user data on
	// each request. This ensures role changes from verification decisions
	// and graduation promotions take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(users))

	scanner := safety.Default()

	auditLogger := auditlog.New(auditEvents, logger, auditlog.Config{
		Auth:     appCfg.AuditAuth,
		Workflow: appCfg.AuditWorkflow,
	})

	var newsClient *newsapi.Client
	if appCfg.NewsFeedURL != "" {
		newsClient = newsapi.New(newsapi.Config{
			FeedURL: appCfg.NewsFeedURL,
			APIKey:  appCfg.NewsAPIKey,
		})
	}
	generator := textgen.New(textgen.Config{
		Endpoint: appCfg.TextGenEndpoint,
		APIKey:   appCfg.TextGenAPIKey,
		Model:    appCfg.TextGenModel,
	})

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Session identity
	userinfofeature.MountRoutes(r, userinfofeature.NewHandler())

	// Authentication
	authnfeature.MountRoutes(r, authnfeature.NewHandler(users, sessionMgr, auditLogger, logger))

	// Profile
	profilefeature.MountRoutes(r, profilefeature.NewHandler(users, logger))

	// Boards and listings
	projectsfeature.MountRoutes(r, projectsfeature.NewHandler(projects, scanner, logger))
	questionsfeature.MountRoutes(r, questionsfeature.NewHandler(questions, scanner, logger))
	opportunitiesfeature.MountRoutes(r, opportunitiesfeature.NewHandler(opportunities, scanner, logger))

	// Study groups
	groupsfeature.MountRoutes(r, groupsfeature.NewHandler(groups, scanner, auditLogger, logger))

	// Verification workflow (user submission + admin review)
	verificationfeature.MountRoutes(r, verificationfeature.NewHandler(verifications, users, auditLogger, logger))

	// News feed
	newsfeature.MountRoutes(r, newsfeature.NewHandler(newsItems, newsClient, auditLogger, logger))

	// Career assistant
	assistantfeature.MountRoutes(r, assistantfeature.NewHandler(generator, scanner, logger))

	// Admin audit trail
	audittrailfeature.MountRoutes(r, audittrailfeature.NewHandler(auditEvents, logger))

	return r, nil
}
