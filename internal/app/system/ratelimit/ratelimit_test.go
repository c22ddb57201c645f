package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestAllow_WindowLimit(t *testing.T) {
	l := New(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("10.0.0.1") {
		t.Fatal("fourth request should be limited")
	}

	// Other keys are unaffected.
	if !l.Allow("10.0.0.2") {
		t.Fatal("different key should be allowed")
	}
}

func TestReset(t *testing.T) {
	l := New(1, time.Minute)

	if !l.Allow("k") {
		t.Fatal("first request should be allowed")
	}
	if l.Allow("k") {
		t.Fatal("second request should be limited")
	}

	l.Reset("k")
	if !l.Allow("k") {
		t.Fatal("request after reset should be allowed")
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("POST", "/auth/login", nil)
	r.RemoteAddr = "192.0.2.7:49152"
	if got := ClientIP(r); got != "192.0.2.7" {
		t.Fatalf("ClientIP = %q, want 192.0.2.7", got)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.5, 192.0.2.7")
	if got := ClientIP(r); got != "203.0.113.5" {
		t.Fatalf("ClientIP with XFF = %q, want 203.0.113.5", got)
	}
}

func TestLoginLimiter_EmailLimit(t *testing.T) {
	ll := &LoginLimiter{
		ipLimiter:    New(100, time.Minute),
		emailLimiter: New(2, time.Minute),
	}

	r := httptest.NewRequest("POST", "/auth/login", nil)
	r.RemoteAddr = "192.0.2.7:49152"

	for i := 0; i < 2; i++ {
		ok, _ := ll.Check(r, "Dana@Example.edu")
		if !ok {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	// Same account, different casing, still limited.
	ok, reason := ll.Check(r, "dana@example.edu")
	if ok {
		t.Fatal("third attempt for same email should be limited")
	}
	if reason == "" {
		t.Fatal("limited attempt should carry a reason")
	}

	ll.ResetEmail("dana@example.edu")
	if ok, _ := ll.Check(r, "dana@example.edu"); !ok {
		t.Fatal("attempt after reset should be allowed")
	}
}
