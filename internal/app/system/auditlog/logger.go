// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"

	"github.com/campuslink/careerhub/internal/app/store/audit"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Config holds audit logging configuration.
type Config struct {
	// Auth controls logging for authentication events (register, login,
	// logout, verification submission).
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Auth string
	// Workflow controls logging for membership and admin decision events
	// (join requests, verification decisions, news refreshes).
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Workflow string
}

// Logger provides convenience methods for logging audit events.
// It logs to both MongoDB (via audit.Store) and structured logs (via zap).
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

// NewNopLogger returns a Logger that discards everything. Handler tests use
// it so audit calls don't need a database.
func NewNopLogger() *Logger {
	return &Logger{zapLog: zap.NewNop(), config: Config{Auth: "log", Workflow: "log"}}
}

// getClientIP extracts the client IP from the request.
func getClientIP(r *http.Request) string {
	// X-Forwarded-For first, for reverse proxies
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

// logToZap logs the event to zap with consistent structure.
func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}

	if event.UserID != nil {
		fields = append(fields, zap.String("user_id", event.UserID.Hex()))
	}
	if event.ActorID != nil {
		fields = append(fields, zap.String("actor_id", event.ActorID.Hex()))
	}
	if event.TargetID != nil {
		fields = append(fields, zap.String("target_id", event.TargetID.Hex()))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// If the logger is nil, this is a no-op (allows tests to use nil audit logger).
// Logging destination is controlled by config: "all", "db", "log", or "off".
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryMembership, audit.CategoryAdmin:
		setting = l.config.Workflow
	default:
		setting = "all"
	}

	if setting == "off" {
		return
	}

	if setting == "all" || setting == "log" {
		l.logToZap(event)
	}

	if setting == "all" || setting == "db" {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

// --- Authentication Events ---

// Registered logs a new account registration.
func (l *Logger) Registered(ctx context.Context, r *http.Request, userID primitive.ObjectID, email string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventRegistered,
		UserID:    &userID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details:   map[string]string{"email": email},
	})
}

// LoginSuccess logs a successful login.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, userID primitive.ObjectID, email string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginSuccess,
		UserID:    &userID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details:   map[string]string{"email": email},
	})
}

// LoginFailed logs a rejected login attempt. The store never reveals which
// check failed, so neither does the audit trail.
func (l *Logger) LoginFailed(ctx context.Context, r *http.Request, attemptedEmail string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailed,
		IP:            getClientIP(r),
		UserAgent:     r.UserAgent(),
		Success:       false,
		FailureReason: "bad credentials",
		Details:       map[string]string{"attempted_email": attemptedEmail},
	})
}

// LoginRateLimited logs a login attempt dropped by the rate limiter.
func (l *Logger) LoginRateLimited(ctx context.Context, r *http.Request, attemptedEmail string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginRateLimited,
		IP:            getClientIP(r),
		UserAgent:     r.UserAgent(),
		Success:       false,
		FailureReason: "rate limit exceeded",
		Details:       map[string]string{"attempted_email": attemptedEmail},
	})
}

// Logout logs a user logout. Accepts the string ID from SessionUser.
func (l *Logger) Logout(ctx context.Context, r *http.Request, userIDStr string) {
	var userID *primitive.ObjectID
	if oid, err := primitive.ObjectIDFromHex(userIDStr); err == nil {
		userID = &oid
	}

	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLogout,
		UserID:    userID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	})
}

// VerificationSubmitted logs an identity verification submission.
func (l *Logger) VerificationSubmitted(ctx context.Context, r *http.Request, userID, requestID primitive.ObjectID, requestedRole string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventVerificationSubmit,
		UserID:    &userID,
		TargetID:  &requestID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details:   map[string]string{"requested_role": requestedRole},
	})
}

// --- Membership Events ---

// JoinRequested logs a join request placed on a group.
func (l *Logger) JoinRequested(ctx context.Context, r *http.Request, userID, groupID primitive.ObjectID) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryMembership,
		EventType: audit.EventJoinRequested,
		UserID:    &userID,
		TargetID:  &groupID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	})
}

// JoinDecided logs an approve or reject decision on a pending join request.
// approved selects the event type; actorID is the moderator who decided.
func (l *Logger) JoinDecided(ctx context.Context, r *http.Request, actorID, userID, groupID primitive.ObjectID, approved bool) {
	eventType := audit.EventJoinRejected
	if approved {
		eventType = audit.EventJoinApproved
	}
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryMembership,
		EventType: eventType,
		UserID:    &userID,
		ActorID:   &actorID,
		TargetID:  &groupID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	})
}

// --- Admin Events ---

// VerificationDecided logs an admin decision on a verification request.
func (l *Logger) VerificationDecided(ctx context.Context, r *http.Request, actorID, userID, requestID primitive.ObjectID, approved bool, assignedRole string) {
	eventType := audit.EventVerificationRejected
	details := map[string]string(nil)
	if approved {
		eventType = audit.EventVerificationApproved
		details = map[string]string{"assigned_role": assignedRole}
	}
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: eventType,
		UserID:    &userID,
		ActorID:   &actorID,
		TargetID:  &requestID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details:   details,
	})
}

// NewsRefreshed logs a manual news feed refresh by an admin.
func (l *Logger) NewsRefreshed(ctx context.Context, r *http.Request, actorID primitive.ObjectID) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventNewsRefreshed,
		ActorID:   &actorID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	})
}
