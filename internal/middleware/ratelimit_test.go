package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DukeRupert/aqdi/internal/i18n"
	"github.com/DukeRupert/aqdi/internal/locale"
)

// =============================================================================
// RateLimiter Tests
// =============================================================================

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !rl.Allow("192.168.1.1") {
			t.Errorf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("192.168.1.1") {
		t.Error("4th request should be denied")
	}
	if !rl.Allow("192.168.1.2") {
		t.Error("a different key has its own budget")
	}
}

func TestRateLimiter_WindowResets(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	if !rl.Allow("k") || rl.Allow("k") {
		t.Fatal("expected one request per window")
	}
	if d := rl.TimeUntilReset("k"); d != time.Minute {
		t.Errorf("expected 1m until reset, got %v", d)
	}

	now = now.Add(61 * time.Second)
	if !rl.Allow("k") {
		t.Error("request after the window should be allowed")
	}
	if d := rl.TimeUntilReset("unknown"); d != 0 {
		t.Errorf("unknown key should have no wait, got %v", d)
	}
}

// =============================================================================
// Rate Limit Middleware Tests
// =============================================================================

func limitedHandler(t *testing.T) http.Handler {
	t.Helper()
	rl := NewRateLimiter(1, time.Minute)
	t.Cleanup(rl.Stop)
	mw := NewRateLimitMiddleware("test", rl, i18n.MustCatalog(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	return mw.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestRateLimitMiddleware_HTMXFragmentInLocale(t *testing.T) {
	h := limitedHandler(t)

	newReq := func() *http.Request {
		req := httptest.NewRequest("POST", "/contract/analyze", nil)
		req.RemoteAddr = "10.0.0.5:1000"
		req.Header.Set("HX-Request", "true")
		return req.WithContext(locale.WithLocale(req.Context(), locale.English))
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, newReq())
	if rec.Code != http.StatusNoContent {
		t.Fatalf("first request should pass, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, newReq())
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
	if rec.Header().Get("HX-Retarget") != "#flash" {
		t.Errorf("expected htmx retarget, got %q", rec.Header().Get("HX-Retarget"))
	}
	if !strings.Contains(rec.Body.String(), "Too many requests") {
		t.Errorf("expected English message, got %s", rec.Body.String())
	}
}

func TestRateLimitMiddleware_JSONForAPI(t *testing.T) {
	h := limitedHandler(t)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("GET", "/api/contract-types", nil)
		req.RemoteAddr = "10.0.0.6:1000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if i == 0 {
			continue
		}
		if rec.Code != http.StatusTooManyRequests {
			t.Fatalf("expected 429, got %d", rec.Code)
		}
		var body map[string]string
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body["error"] != "rate_limit_exceeded" {
			t.Errorf("unexpected body %v", body)
		}
		// No locale on the context: Arabic default.
		if body["message"] != "طلبات كثيرة جداً، يرجى المحاولة بعد قليل" {
			t.Errorf("expected Arabic message, got %q", body["message"])
		}
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name   string
		xff    string
		xri    string
		remote string
		want   string
	}{
		{"forwarded", "203.0.113.1, 10.0.0.1", "", "10.0.0.1:1", "203.0.113.1"},
		{"real ip", "", "198.51.100.7", "10.0.0.1:1", "198.51.100.7"},
		{"remote addr", "", "", "192.0.2.9:4000", "192.0.2.9"},
		{"remote without port", "", "", "192.0.2.9", "192.0.2.9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
