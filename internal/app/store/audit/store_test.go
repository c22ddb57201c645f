package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/campuslink/careerhub/internal/app/store/audit"
	"github.com/campuslink/careerhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestStore(t *testing.T) *audit.Store {
	t.Helper()
	return audit.New(testutil.SetupTestDB(t))
}

func TestLogAndQuery(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userID := primitive.NewObjectID()
	actorID := primitive.NewObjectID()

	events := []audit.Event{
		{Category: audit.CategoryAuth, EventType: audit.EventLoginSuccess, UserID: &userID, Success: true},
		{Category: audit.CategoryAuth, EventType: audit.EventLoginFailed, Success: false, FailureReason: "bad credentials"},
		{Category: audit.CategoryAdmin, EventType: audit.EventVerificationApproved, UserID: &userID, ActorID: &actorID, Success: true},
	}
	for _, e := range events {
		if err := s.Log(ctx, e); err != nil {
			t.Fatalf("Log(%s): %v", e.EventType, err)
		}
	}

	all, err := s.Query(ctx, audit.QueryFilter{})
	if err != nil {
		t.Fatalf("Query all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d events, want 3", len(all))
	}
	for _, e := range all {
		if e.Timestamp.IsZero() {
			t.Error("Log should stamp a timestamp")
		}
	}

	byUser, err := s.Query(ctx, audit.QueryFilter{UserID: &userID})
	if err != nil {
		t.Fatalf("Query by user: %v", err)
	}
	if len(byUser) != 2 {
		t.Fatalf("got %d events for user, want 2", len(byUser))
	}

	byType, err := s.Query(ctx, audit.QueryFilter{Category: audit.CategoryAuth, EventType: audit.EventLoginFailed})
	if err != nil {
		t.Fatalf("Query by type: %v", err)
	}
	if len(byType) != 1 || byType[0].FailureReason != "bad credentials" {
		t.Fatalf("unexpected result for event type filter: %+v", byType)
	}
}

func TestQuery_TimeWindowAndLimit(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now().UTC()
	for i := 0; i < 4; i++ {
		e := audit.Event{
			Category:  audit.CategoryAuth,
			EventType: audit.EventLoginSuccess,
			Success:   true,
			Timestamp: now.Add(-time.Duration(i) * time.Hour),
		}
		if err := s.Log(ctx, e); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	cutoff := now.Add(-90 * time.Minute)
	recent, err := s.Query(ctx, audit.QueryFilter{StartTime: &cutoff})
	if err != nil {
		t.Fatalf("Query since: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("got %d recent events, want 2", len(recent))
	}

	limited, err := s.Query(ctx, audit.QueryFilter{Limit: 1})
	if err != nil {
		t.Fatalf("Query limited: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("got %d events with limit 1, want 1", len(limited))
	}
	// Most recent first.
	if limited[0].Timestamp.Before(now.Add(-time.Minute)) {
		t.Errorf("limit 1 should return the newest event, got %v", limited[0].Timestamp)
	}
}

func TestPruneOlderThan(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now().UTC()
	ages := []time.Duration{0, 24 * time.Hour, 400 * 24 * time.Hour}
	for _, age := range ages {
		e := audit.Event{Category: audit.CategoryAuth, EventType: audit.EventLogout, Success: true, Timestamp: now.Add(-age)}
		if err := s.Log(ctx, e); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	n, err := s.PruneOlderThan(ctx, now.Add(-180*24*time.Hour))
	if err != nil {
		t.Fatalf("PruneOlderThan: %v", err)
	}
	if n != 1 {
		t.Fatalf("pruned %d, want 1", n)
	}

	left, err := s.Query(ctx, audit.QueryFilter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(left) != 2 {
		t.Fatalf("got %d events after prune, want 2", len(left))
	}
}
