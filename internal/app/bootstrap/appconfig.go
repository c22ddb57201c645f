// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level, CORS, and request limits. AppConfig is where
// everything specific to CareerHub lives.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: careerhub-session)
	SessionDomain string // Cookie domain (blank means current host)

	// News aggregation
	NewsFeedURL     string // Upstream JSON feed endpoint (blank disables aggregation)
	NewsAPIKey      string // API key for the upstream feed
	NewsRefreshSpec string // Cron spec for the refresh job (e.g., "@every 30m")

	// Career assistant text generation
	TextGenEndpoint string // Chat-completions endpoint (blank disables the assistant)
	TextGenAPIKey   string // Bearer token for the generation endpoint
	TextGenModel    string // Model name to request

	// Content safety
	BlockedTerms []string // Extra blocked terms merged into the default list

	// Audit logging destinations: "all", "db", "log", or "off"
	AuditAuth     string // Authentication events (register, login, logout)
	AuditWorkflow string // Membership and admin decision events

	// Admin bootstrap
	AdminEmail    string // Email of the bootstrap admin (created/promoted on startup)
	AdminPassword string // Initial password when the bootstrap admin is created
}
