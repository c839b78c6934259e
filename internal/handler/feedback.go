package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/DukeRupert/aqdi/internal/csrf"
	"github.com/DukeRupert/aqdi/internal/domain"
	"github.com/DukeRupert/aqdi/internal/email"
	"github.com/DukeRupert/aqdi/internal/i18n"
	"github.com/DukeRupert/aqdi/internal/locale"
	"github.com/DukeRupert/aqdi/internal/metrics"
)

// maxFeedbackRunes bounds the feedback message length.
const maxFeedbackRunes = 5000

// FeedbackHandler accepts messages from the contact form. Messages are
// logged, not stored.
type FeedbackHandler struct {
	site     *SiteHandler
	notifier email.Notifier
	catalog  *i18n.Catalog
	logger   *slog.Logger
}

// NewFeedbackHandler creates a new FeedbackHandler. Accepted messages are
// passed to notifier. Plain form posts are answered with the full page
// rendered by site.
func NewFeedbackHandler(site *SiteHandler, notifier email.Notifier, catalog *i18n.Catalog, logger *slog.Logger) *FeedbackHandler {
	return &FeedbackHandler{site: site, notifier: notifier, catalog: catalog, logger: logger}
}

// RegisterRoutes registers the feedback routes behind limit.
//
// Routes:
// - POST /feedback -> Submit
func (h *FeedbackHandler) RegisterRoutes(mux *http.ServeMux, limit func(http.Handler) http.Handler) {
	mux.Handle("POST /feedback", limit(http.HandlerFunc(h.Submit)))
}

// Submit validates the form and answers with the thank-you state or the
// form with field errors.
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	l := locale.FromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		h.logger.Warn("failed to parse feedback form", "error", err)
		ErrorResponse(w, r, h.logger, domain.Invalid("feedback.submit", "Invalid form data"))
		return
	}

	form := map[string]string{
		"name":    strings.TrimSpace(r.FormValue("name")),
		"email":   strings.TrimSpace(r.FormValue("email")),
		"message": strings.TrimSpace(r.FormValue("message")),
	}

	view := FeedbackView{Form: form}
	if ve := validateFeedback(form); ve != nil {
		view.Errors = make(map[string]string, len(ve.Fields))
		for field, key := range ve.Fields {
			view.Errors[field] = h.catalog.T(l, key)
		}
		h.logger.Info("feedback rejected", "field_count", len(ve.Fields))
	} else {
		view.Sent = true
		view.Form = nil
		metrics.FeedbackSubmissions.Inc()
		h.logger.Info("feedback received",
			"name", form["name"],
			"email", form["email"],
			"message_length", utf8.RuneCountInString(form["message"]),
			"locale", l,
		)
		// Forwarding failures still show the thank-you state.
		err := h.notifier.SendFeedback(r.Context(), email.Feedback{
			Name:    form["name"],
			Email:   form["email"],
			Message: form["message"],
			Locale:  l.String(),
		})
		if err != nil {
			h.logger.Error("failed to forward feedback", "error", err)
		}
	}

	if r.Header.Get("HX-Request") != "true" {
		h.site.render(w, r, view)
		return
	}

	view.Locale = l
	view.CSRFToken = csrf.Token(r.Context())
	view.Contact = h.site.content.Contact
	h.site.renderer.RenderPartial(w, "feedback", view)
}

// validateFeedback returns message keys per failing field, or nil.
func validateFeedback(form map[string]string) *domain.ValidationError {
	var ve *domain.ValidationError
	add := func(field, key string) {
		if ve == nil {
			ve = domain.NewValidationError("feedback.submit", field, key)
			return
		}
		domain.AddFieldError(ve, field, key)
	}

	if form["name"] == "" {
		add("name", "feedback.required")
	}
	if form["email"] == "" {
		add("email", "feedback.required")
	} else if !isValidEmail(form["email"]) {
		add("email", "feedback.invalidEmail")
	}
	if form["message"] == "" {
		add("message", "feedback.required")
	} else if utf8.RuneCountInString(form["message"]) > maxFeedbackRunes {
		add("message", "feedback.tooLong")
	}

	return ve
}

// isValidEmail performs basic email format validation: something before
// the @ and a dotted domain after it.
func isValidEmail(email string) bool {
	at := strings.Index(email, "@")
	if at < 1 || at >= len(email)-1 {
		return false
	}
	domainPart := email[at+1:]
	return strings.Contains(domainPart, ".") && !strings.ContainsAny(email, " \t\r\n")
}
