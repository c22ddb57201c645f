// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for CareerHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: CAREERHUB_MONGO_URI, CAREERHUB_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "careerhub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "careerhub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	// News aggregation
	{Name: "news_feed_url", Default: "", Desc: "Upstream news feed endpoint (blank disables aggregation)"},
	{Name: "news_api_key", Default: "", Desc: "API key for the upstream news feed"},
	{Name: "news_refresh_spec", Default: "@every 30m", Desc: "Cron spec for the news refresh job"},

	// Career assistant
	{Name: "textgen_endpoint", Default: "", Desc: "Chat-completions endpoint for the assistant (blank disables it)"},
	{Name: "textgen_api_key", Default: "", Desc: "Bearer token for the text generation endpoint"},
	{Name: "textgen_model", Default: "", Desc: "Model name to request from the generation endpoint"},

	// Content safety
	{Name: "blocked_terms", Default: "", Desc: "Comma-separated extra blocked terms for content screening"},

	// Audit logging
	{Name: "audit_auth", Default: "all", Desc: "Audit destination for auth events: all|db|log|off"},
	{Name: "audit_workflow", Default: "all", Desc: "Audit destination for membership/admin events: all|db|log|off"},

	// Admin bootstrap
	{Name: "admin_email", Default: "", Desc: "Email of the bootstrap admin (promotes/creates on startup)"},
	{Name: "admin_password", Default: "", Desc: "Initial password when the bootstrap admin account is created"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, CAREERHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CAREERHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),
		SessionKey:       appValues.String("session_key"),
		SessionName:      appValues.String("session_name"),
		SessionDomain:    appValues.String("session_domain"),

		// News aggregation
		NewsFeedURL:     appValues.String("news_feed_url"),
		NewsAPIKey:      appValues.String("news_api_key"),
		NewsRefreshSpec: appValues.String("news_refresh_spec"),

		// Career assistant
		TextGenEndpoint: appValues.String("textgen_endpoint"),
		TextGenAPIKey:   appValues.String("textgen_api_key"),
		TextGenModel:    appValues.String("textgen_model"),

		// Content safety
		BlockedTerms: splitTerms(appValues.String("blocked_terms")),

		// Audit logging
		AuditAuth:     appValues.String("audit_auth"),
		AuditWorkflow: appValues.String("audit_workflow"),

		// Admin bootstrap
		AdminEmail:    appValues.String("admin_email"),
		AdminPassword: appValues.String("admin_password"),
	}

	return coreCfg, appCfg, nil
}

func splitTerms(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	terms := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// CareerHub validates the MongoDB URI format to catch configuration errors
// early, before attempting to connect, and requires a password whenever a
// bootstrap admin is configured.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.AdminEmail != "" && appCfg.AdminPassword == "" {
		return fmt.Errorf("admin_email is set but admin_password is empty")
	}

	return nil
}
