// Package handler contains HTTP handlers for the contract analysis site.
//
// This file implements the upload widget: selecting a file and contract
// type, starting the analysis, polling its progress and resetting.
package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/DukeRupert/aqdi/internal/csrf"
	"github.com/DukeRupert/aqdi/internal/domain"
	"github.com/DukeRupert/aqdi/internal/i18n"
	"github.com/DukeRupert/aqdi/internal/locale"
	"github.com/DukeRupert/aqdi/internal/metrics"
	"github.com/DukeRupert/aqdi/internal/session"
	"github.com/DukeRupert/aqdi/internal/storage"
)

// multipartMemory is how much of an upload is held in memory before the
// multipart parser spills to a temporary file.
const multipartMemory = 4 << 20

// =============================================================================
// Handler Configuration
// =============================================================================

// ContractHandler handles the upload widget's HTTP requests.
type ContractHandler struct {
	sessions  *session.Store
	staging   storage.Storage
	renderer  TemplateRenderer
	catalog   *i18n.Catalog
	logger    *slog.Logger
	maxUpload int64
	pollEvery time.Duration
}

// ContractHandlerConfig holds the ContractHandler's dependencies.
type ContractHandlerConfig struct {
	Sessions  *session.Store
	Staging   storage.Storage
	Renderer  TemplateRenderer
	Catalog   *i18n.Catalog
	Logger    *slog.Logger
	MaxUpload int64         // Largest accepted file in bytes
	PollEvery time.Duration // Progress polling interval
}

// NewContractHandler creates a new ContractHandler.
func NewContractHandler(cfg ContractHandlerConfig) *ContractHandler {
	if cfg.PollEvery <= 0 {
		cfg.PollEvery = 500 * time.Millisecond
	}
	return &ContractHandler{
		sessions:  cfg.Sessions,
		staging:   cfg.Staging,
		renderer:  cfg.Renderer,
		catalog:   cfg.Catalog,
		logger:    cfg.Logger,
		maxUpload: cfg.MaxUpload,
		pollEvery: cfg.PollEvery,
	}
}

// =============================================================================
// Route Registration
// =============================================================================

// RegisterRoutes registers the upload widget routes.
//
// Routes that stage files or start an analysis go through limit.
//
// Routes:
// - POST /contract/file    -> SelectFile
// - POST /contract/type    -> SelectType
// - POST /contract/analyze -> Analyze
// - GET  /contract/status  -> Status
// - POST /contract/reset   -> Reset
func (h *ContractHandler) RegisterRoutes(mux *http.ServeMux, limit func(http.Handler) http.Handler) {
	mux.Handle("POST /contract/file", limit(http.HandlerFunc(h.SelectFile)))
	mux.HandleFunc("POST /contract/type", h.SelectType)
	mux.Handle("POST /contract/analyze", limit(http.HandlerFunc(h.Analyze)))
	mux.HandleFunc("GET /contract/status", h.Status)
	mux.HandleFunc("POST /contract/reset", h.Reset)
}

// =============================================================================
// POST /contract/file - Select File
// =============================================================================

// SelectFile stages the uploaded file and makes it the session's selection.
// A request without a file leaves the state unchanged. An optional
// contract_type field is applied as well.
func (h *ContractHandler) SelectFile(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(w, r)
	ctx := r.Context()

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			h.logger.Info("contract upload exceeds body limit", "session_id", sess.ID, "limit", maxErr.Limit)
			h.respond(w, r, sess, "error.tooLarge")
		case errors.Is(err, http.ErrNotMultipart):
			h.respond(w, r, sess, "")
		default:
			h.logger.Warn("failed to parse upload form", "session_id", sess.ID, "error", err)
			h.respond(w, r, sess, "error.uploadFailed")
		}
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	if v := r.FormValue("contract_type"); v != "" {
		if t, err := domain.ParseContractType(v); err == nil {
			sess.Container.SetContractType(t)
		}
	}

	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		h.respond(w, r, sess, "")
		return
	}
	header := files[0]

	if h.maxUpload > 0 && header.Size > h.maxUpload {
		h.logger.Info("contract upload too large",
			"session_id", sess.ID,
			"size", header.Size,
			"limit", h.maxUpload,
		)
		h.respond(w, r, sess, "error.tooLarge")
		return
	}

	file, err := header.Open()
	if err != nil {
		h.logger.Error("failed to open uploaded file", "session_id", sess.ID, "error", err)
		h.respond(w, r, sess, "error.uploadFailed")
		return
	}
	defer file.Close()

	contentType := storage.DetectContentType(header.Header.Get("Content-Type"), header.Filename, nil)
	key := storage.StagingKey(sess.ID, header.Filename)

	err = h.staging.Put(ctx, key, file, storage.PutOptions{
		ContentType: contentType,
		Size:        header.Size,
		MaxSize:     h.maxUpload,
	})
	if err != nil {
		if storage.IsTooLarge(err) {
			h.respond(w, r, sess, "error.tooLarge")
			return
		}
		h.logger.Error("failed to stage contract file", "session_id", sess.ID, "key", key, "error", err)
		h.respond(w, r, sess, "error.uploadFailed")
		return
	}

	metrics.UploadedBytes.Add(float64(header.Size))
	h.logger.Info("contract file staged",
		"session_id", sess.ID,
		"size", header.Size,
		"content_type", contentType,
		"recognized_format", storage.IsContractDocument(contentType),
	)

	sess.Container.SetFile(ctx, &domain.UploadedFile{
		Name:        header.Filename,
		Size:        header.Size,
		ContentType: contentType,
		Key:         key,
	})
	h.respond(w, r, sess, "")
}

// =============================================================================
// POST /contract/type - Select Contract Type
// =============================================================================

// SelectType changes the contract type. Unknown values leave it unchanged.
func (h *ContractHandler) SelectType(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(w, r)

	t, err := domain.ParseContractType(r.FormValue("contract_type"))
	if err != nil {
		h.respond(w, r, sess, "error.invalidType")
		return
	}

	sess.Container.SetContractType(t)
	h.respond(w, r, sess, "")
}

// =============================================================================
// POST /contract/analyze - Start Analysis
// =============================================================================

// Analyze starts the analysis and renders the progress view, or the form
// with its error when no file is selected.
func (h *ContractHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(w, r)
	l := locale.FromContext(r.Context())

	sess.Container.Analyze(r.Context(), l)
	h.respond(w, r, sess, "")
}

// =============================================================================
// GET /contract/status - Poll Progress
// =============================================================================

// Status renders the widget for the current state. While an analysis runs
// the rendered fragment polls this route again.
func (h *ContractHandler) Status(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(w, r)
	h.renderer.RenderPartial(w, "upload", h.view(r, sess, ""))
}

// =============================================================================
// POST /contract/reset - Reset
// =============================================================================

// Reset clears the selection and any result, aborting a running analysis.
func (h *ContractHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(w, r)
	sess.Container.Reset(r.Context())
	h.respond(w, r, sess, "")
}

// =============================================================================
// Helper Functions
// =============================================================================

// respond renders the widget for htmx and redirects plain form posts back
// to the widget on the home page.
func (h *ContractHandler) respond(w http.ResponseWriter, r *http.Request, sess *session.Session, notice string) {
	if r.Header.Get("HX-Request") != "true" {
		http.Redirect(w, r, "/#upload", http.StatusSeeOther)
		return
	}
	h.renderer.RenderPartial(w, "upload", h.view(r, sess, notice))
}

// view builds the widget data for sess. notice is a message key.
func (h *ContractHandler) view(r *http.Request, sess *session.Session, notice string) UploadView {
	l := locale.FromContext(r.Context())
	if notice != "" {
		notice = h.catalog.T(l, notice)
	}
	return newUploadView(l, csrf.Token(r.Context()), sess.Container.Snapshot(), h.catalog, notice, h.pollEvery, h.maxUpload)
}
