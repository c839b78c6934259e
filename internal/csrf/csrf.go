// Package csrf provides CSRF protection using the double-submit cookie pattern.
//
// The token lives in a cookie and is echoed back on every unsafe request,
// either in the X-CSRF-Token header (htmx sends it through hx-headers on the
// body element) or in the csrf_token form field for plain form posts.
// Attackers can make the browser send our cookies cross-origin but cannot
// read them, so they cannot echo the value.
package csrf

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
)

const (
	// CookieName is the name of the CSRF token cookie.
	CookieName = "aqdi_csrf"

	// FormFieldName is the name of the CSRF token form field.
	FormFieldName = "csrf_token"

	// HeaderName carries the token on htmx requests.
	HeaderName = "X-CSRF-Token"

	// TokenLength is the number of random bytes for the token (32 bytes = 256 bits).
	TokenLength = 32

	// CookieMaxAge matches the visitor session lifetime so a long-open tab
	// can still submit.
	CookieMaxAge = 2 * 60 * 60
)

// =============================================================================
// Tokens
// =============================================================================

// GenerateToken returns 32 random bytes, base64 URL-encoded (43 characters).
func GenerateToken() (string, error) {
	b := make([]byte, TokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate csrf token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// ValidateToken compares the cookie token with the submitted token in
// constant time.
func ValidateToken(cookieToken, submitted string) bool {
	if cookieToken == "" || submitted == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cookieToken), []byte(submitted)) == 1
}

// submittedToken reads the echoed token, preferring the header so multipart
// uploads are not parsed here.
func submittedToken(r *http.Request) string {
	if t := r.Header.Get(HeaderName); t != "" {
		return t
	}
	return r.PostFormValue(FormFieldName)
}

// SetCookie sets the CSRF token cookie. It is not HttpOnly because the page
// copies it into hx-headers at render time; SameSite=Strict keeps it off
// cross-site requests entirely.
func SetCookie(w http.ResponseWriter, token string, isSecure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   CookieMaxAge,
		HttpOnly: false,
		Secure:   isSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

// =============================================================================
// Context
// =============================================================================

type contextKey struct{}

// Token returns the request's CSRF token for embedding in templates.
func Token(ctx context.Context) string {
	t, _ := ctx.Value(contextKey{}).(string)
	return t
}

// =============================================================================
// Middleware
// =============================================================================

// Middleware issues the token cookie and rejects unsafe requests whose
// echoed token does not match it.
type Middleware struct {
	isSecure bool
	maxBody  int64
	logger   *slog.Logger
}

// NewMiddleware creates the CSRF middleware. maxBody bounds how much of a
// form body is read when the token has to come from the form.
func NewMiddleware(isSecure bool, maxBody int64, logger *slog.Logger) *Middleware {
	return &Middleware{isSecure: isSecure, maxBody: maxBody, logger: logger}
}

// Handler returns the middleware.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var token string
		if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
			token = c.Value
		}

		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
		default:
			if m.maxBody > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, m.maxBody)
			}
			if !ValidateToken(token, submittedToken(r)) {
				m.logger.Warn("csrf validation failed", "path", r.URL.Path, "cookie_present", token != "")
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
		}

		if token == "" {
			var err error
			token, err = GenerateToken()
			if err != nil {
				m.logger.Error("failed to generate csrf token", "error", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			SetCookie(w, token, m.isSecure)
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, token)))
	})
}
