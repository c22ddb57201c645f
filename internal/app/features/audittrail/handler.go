// internal/app/features/audittrail/handler.go
package audittrail

import (
	"context"
	"net/http"
	"time"

	"github.com/campuslink/careerhub/internal/app/store/audit"
	"github.com/campuslink/careerhub/internal/app/system/gates"
	"github.com/campuslink/careerhub/internal/app/system/httpjson"
	"github.com/campuslink/careerhub/internal/app/system/paging"
	"github.com/campuslink/careerhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the admin audit trail.
type Handler struct {
	Events *audit.Store
	Log    *zap.Logger
}

// NewHandler constructs an audittrail handler.
func NewHandler(events *audit.Store, logger *zap.Logger) *Handler {
	return &Handler{Events: events, Log: logger}
}

type eventResponse struct {
	ID            string            `json:"id"`
	Timestamp     string            `json:"timestamp"`
	Category      string            `json:"category"`
	EventType     string            `json:"event_type"`
	UserID        string            `json:"user_id,omitempty"`
	ActorID       string            `json:"actor_id,omitempty"`
	TargetID      string            `json:"target_id,omitempty"`
	IP            string            `json:"ip"`
	Success       bool              `json:"success"`
	FailureReason string            `json:"failure_reason,omitempty"`
	Details       map[string]string `json:"details,omitempty"`
}

func toEventResponse(e audit.Event) eventResponse {
	resp := eventResponse{
		ID:            e.ID.Hex(),
		Timestamp:     e.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
		Category:      e.Category,
		EventType:     e.EventType,
		IP:            e.IP,
		Success:       e.Success,
		FailureReason: e.FailureReason,
		Details:       e.Details,
	}
	if e.UserID != nil {
		resp.UserID = e.UserID.Hex()
	}
	if e.ActorID != nil {
		resp.ActorID = e.ActorID.Hex()
	}
	if e.TargetID != nil {
		resp.TargetID = e.TargetID.Hex()
	}
	return resp
}

// ServeList handles GET /api/admin/audit. Filters: ?user_id=, ?category=,
// ?event_type=, ?since= (RFC 3339), and the usual ?limit=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAdmin(w, r, "Only admins can read the audit trail.")
	if !res.OK {
		return
	}

	filter := audit.QueryFilter{
		Category:  r.URL.Query().Get("category"),
		EventType: r.URL.Query().Get("event_type"),
		Limit:     int64(paging.ParseLimit(r)),
	}
	if s := r.URL.Query().Get("user_id"); s != "" {
		oid, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			httpjson.BadRequest(w, "user_id must be a valid object ID.")
			return
		}
		filter.UserID = &oid
	}
	if s := r.URL.Query().Get("since"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			httpjson.BadRequest(w, "since must be an RFC 3339 timestamp.")
			return
		}
		filter.StartTime = &t
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	events, err := h.Events.Query(ctx, filter)
	if err != nil {
		h.Log.Error("audittrail: query failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResponse(e))
	}
	httpjson.OK(w, map[string]any{"events": out})
}
