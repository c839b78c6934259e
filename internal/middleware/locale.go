package middleware

import (
	"net/http"
	"strings"

	"github.com/DukeRupert/aqdi/internal/locale"
)

// LocaleMiddleware puts the visitor's locale on the request context. The
// locale comes from the locale cookie, or Accept-Language when there is
// none. Only the language toggle handler writes the cookie.
type LocaleMiddleware struct{}

// NewLocaleMiddleware creates a new locale middleware.
func NewLocaleMiddleware() *LocaleMiddleware {
	return &LocaleMiddleware{}
}

// Handler returns middleware that resolves the locale for every request.
func (m *LocaleMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := locale.Resolve(r)
		w.Header().Add("Vary", "Cookie")
		w.Header().Add("Vary", "Accept-Language")
		w.Header().Set("Content-Language", l.String())
		next.ServeHTTP(w, r.WithContext(locale.WithLocale(r.Context(), l)))
	})
}

// =============================================================================
// Request Helpers
// =============================================================================

// isAPIRequest determines if the request expects a JSON response.
// htmx requests always want HTML fragments.
func isAPIRequest(r *http.Request) bool {
	if r.Header.Get("HX-Request") == "true" {
		return false
	}
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	return strings.HasPrefix(r.URL.Path, "/api/")
}

// =============================================================================
// Middleware Stack Helpers
// =============================================================================

// Stack composes multiple middleware functions into a single middleware.
//
// Middleware is applied in the order provided, meaning the first middleware
// in the slice is the outermost (runs first on request, last on response).
//
// Example:
//
//	stack := Stack(loggingMw.Handler, localeMw.Handler, csrfMw.Handler)
//	mux.Handle("POST /feedback", stack(feedbackHandler))
func Stack(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(final http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}
