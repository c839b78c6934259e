// Package handler contains HTTP handlers for the contract analysis site.
//
// This file implements the home page: hero, upload widget, plans, about,
// capabilities and the feedback form.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/DukeRupert/aqdi/internal/content"
	"github.com/DukeRupert/aqdi/internal/csrf"
	"github.com/DukeRupert/aqdi/internal/locale"
	"github.com/DukeRupert/aqdi/internal/session"
)

// =============================================================================
// Handler Configuration
// =============================================================================

// SiteHandler renders the marketing pages.
type SiteHandler struct {
	sessions *session.Store
	content  *content.Content
	contract *ContractHandler
	renderer TemplateRenderer
	logger   *slog.Logger
}

// NewSiteHandler creates a new SiteHandler. The contract handler supplies
// the upload widget embedded in the page.
func NewSiteHandler(
	sessions *session.Store,
	c *content.Content,
	contract *ContractHandler,
	renderer TemplateRenderer,
	logger *slog.Logger,
) *SiteHandler {
	return &SiteHandler{
		sessions: sessions,
		content:  c,
		contract: contract,
		renderer: renderer,
		logger:   logger,
	}
}

// RegisterRoutes registers the page routes.
//
// Routes:
// - GET / -> Home
func (h *SiteHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("GET /", h.NotFound)
}

// =============================================================================
// GET / - Home
// =============================================================================

// Home renders the single page with every section.
func (h *SiteHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, FeedbackView{})
}

// NotFound answers unknown paths.
func (h *SiteHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	NotFoundResponse(w, r, h.logger)
}

// render writes the home page with the given feedback form state.
func (h *SiteHandler) render(w http.ResponseWriter, r *http.Request, feedback FeedbackView) {
	sess := h.sessions.Load(w, r)
	l := locale.FromContext(r.Context())
	token := csrf.Token(r.Context())

	feedback.Locale = l
	feedback.CSRFToken = token
	feedback.Contact = h.content.Contact

	data := PageData{
		Locale:      l,
		CSRFToken:   token,
		CurrentPath: r.URL.Path,
		Content:     h.content,
		Upload:      h.contract.view(r, sess, ""),
		Feedback:    feedback,
	}

	h.renderer.RenderHTTP(w, "home", data)
}
