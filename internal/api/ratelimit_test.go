package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d denied under the limit", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("fourth request allowed over the limit")
	}

	// Other clients have their own bucket.
	if !rl.Allow("10.0.0.2") {
		t.Fatal("separate client denied")
	}

	if rl.RetryAfter("10.0.0.1") <= 0 {
		t.Fatal("no retry-after for a limited client")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	handler := RateLimitMiddleware(rl, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/player/x/decisions", nil)
	req.RemoteAddr = "192.168.1.5:41234"

	rec := httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request got %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("429 missing Retry-After header")
	}

	// A forwarded client with its own address is not affected.
	req2 := httptest.NewRequest(http.MethodGet, "/api/v1/player/x/decisions", nil)
	req2.RemoteAddr = "192.168.1.5:41234"
	req2.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")

	rec = httptest.NewRecorder()
	handler(rec, req2)
	if rec.Code != http.StatusOK {
		t.Fatalf("forwarded client got %d", rec.Code)
	}
}
