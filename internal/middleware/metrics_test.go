package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// =============================================================================
// Metrics Auth Middleware Tests
// =============================================================================

func metricsHandler(user, pass string) http.Handler {
	mw := NewMetricsAuthMiddleware(user, pass, nil)
	return mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("metrics data"))
	}))
}

func TestMetricsAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		user, pass string
		setAuth    bool
		reqUser    string
		reqPass    string
		wantStatus int
	}{
		{"valid credentials", "admin", "secret", true, "admin", "secret", http.StatusOK},
		{"no credentials", "admin", "secret", false, "", "", http.StatusUnauthorized},
		{"wrong password", "admin", "secret", true, "admin", "nope", http.StatusUnauthorized},
		{"wrong user", "admin", "secret", true, "root", "secret", http.StatusUnauthorized},
		{"prefix of password", "admin", "secret", true, "admin", "sec", http.StatusUnauthorized},
		{"disabled", "", "", false, "", "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/metrics", nil)
			if tt.setAuth {
				req.SetBasicAuth(tt.reqUser, tt.reqPass)
			}
			rec := httptest.NewRecorder()
			metricsHandler(tt.user, tt.pass).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantStatus == http.StatusUnauthorized && rec.Header().Get("WWW-Authenticate") == "" {
				t.Error("expected WWW-Authenticate header")
			}
		})
	}
}
