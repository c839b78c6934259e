package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/DukeRupert/aqdi/internal/locale"
	"github.com/DukeRupert/aqdi/internal/metrics"
)

// LanguageHandler switches the display language.
type LanguageHandler struct {
	isSecure bool
	logger   *slog.Logger
}

// NewLanguageHandler creates a new LanguageHandler.
func NewLanguageHandler(isSecure bool, logger *slog.Logger) *LanguageHandler {
	return &LanguageHandler{isSecure: isSecure, logger: logger}
}

// RegisterRoutes registers the language routes.
//
// Routes:
// - POST /language/toggle -> Toggle
func (h *LanguageHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /language/toggle", h.Toggle)
}

// Toggle flips the locale and stores the choice. htmx clients reload the
// page; plain posts are redirected back to where they came from.
func (h *LanguageHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	next := locale.FromContext(r.Context()).Toggle()

	locale.SetCookie(w, next, h.isSecure)
	metrics.LanguageToggled(next.String())
	h.logger.Debug("language toggled", "locale", next)

	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Refresh", "true")
		w.WriteHeader(http.StatusNoContent)
		return
	}

	http.Redirect(w, r, backTo(r), http.StatusSeeOther)
}

// backTo returns the same-origin path of the Referer, or "/".
func backTo(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Host != r.Host {
		return "/"
	}
	target := ref.EscapedPath()
	if ref.RawQuery != "" {
		target += "?" + ref.RawQuery
	}
	if !isSafeRedirectURL(target) {
		return "/"
	}
	return target
}

// isSafeRedirectURL checks if a URL is safe to redirect to.
//
// Examples:
// - "/plans"              -> true (relative URL)
// - "//evil.com"          -> false (protocol-relative, could be external)
// - "https://evil.com"    -> false (absolute URL to external domain)
// - "javascript:alert(1)" -> false (javascript URL)
func isSafeRedirectURL(rawURL string) bool {
	if !strings.HasPrefix(rawURL, "/") || strings.HasPrefix(rawURL, "//") {
		return false
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return parsed.Scheme == "" && parsed.Host == ""
}
