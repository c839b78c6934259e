package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DukeRupert/aqdi/internal"
	"github.com/DukeRupert/aqdi/internal/analysis"
	"github.com/DukeRupert/aqdi/internal/analysis/sample"
	"github.com/DukeRupert/aqdi/internal/content"
	"github.com/DukeRupert/aqdi/internal/csrf"
	"github.com/DukeRupert/aqdi/internal/email"
	"github.com/DukeRupert/aqdi/internal/handler"
	"github.com/DukeRupert/aqdi/internal/i18n"
	"github.com/DukeRupert/aqdi/internal/metrics"
	"github.com/DukeRupert/aqdi/internal/middleware"
	"github.com/DukeRupert/aqdi/internal/session"
	"github.com/DukeRupert/aqdi/internal/storage"
	"github.com/DukeRupert/aqdi/internal/submission"
	"github.com/DukeRupert/aqdi/web"
)

// sweepInterval is how often idle sessions are expired.
const sweepInterval = time.Minute

func run() error {
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)
	isDev := cfg.IsDevelopment()
	isSecure := !isDev

	// Load UI copy and marketing content
	catalog, err := i18n.NewCatalog()
	if err != nil {
		return fmt.Errorf("message catalog initialization failed: %w", err)
	}
	siteContent, err := content.Load()
	if err != nil {
		return fmt.Errorf("content initialization failed: %w", err)
	}

	// Initialize feedback forwarding
	notifier, err := newNotifier(cfg, siteContent.Contact.Email, logger)
	if err != nil {
		return fmt.Errorf("email initialization failed: %w", err)
	}

	// Initialize staging storage
	staging, err := storage.New(ctx, storage.Config{
		Provider: cfg.StorageProvider,
		Local:    storage.LocalConfig{BasePath: cfg.LocalStoragePath},
		R2: storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
		},
		Minio: storage.MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("storage initialization failed: %w", err)
	}
	logger.Info("Staging storage ready", "provider", cfg.StorageProvider)

	// Initialize analyzer
	analyzer, err := newAnalyzer(cfg, logger)
	if err != nil {
		return fmt.Errorf("analyzer initialization failed: %w", err)
	}
	logger.Info("Analyzer ready", "analyzer", cfg.Analyzer, "url", cfg.AnalysisAPIURL)

	// Initialize sessions
	sessions := session.NewStore(session.Options{
		TTL:      cfg.SessionTTL,
		IsSecure: isSecure,
		Logger:   logger,
		NewContainer: func(id string) *submission.Container {
			return submission.New(submission.Options{
				Analyzer:         analyzer,
				Storage:          staging,
				Catalog:          catalog,
				Logger:           logger.With("session_id", id),
				ProgressInterval: cfg.ProgressInterval,
				ProgressStep:     cfg.ProgressStep,
				Timeout:          cfg.AnalysisTimeout,
			})
		},
	})
	go sessions.Run(ctx, sweepInterval)

	// Initialize template renderer
	templates, static := web.Templates(), web.Static()
	if isDev {
		templates, static = os.DirFS(cfg.TemplatesDir), os.DirFS(cfg.StaticDir)
	}
	renderer, err := handler.NewRenderer(handler.RendererConfig{
		FS:      templates,
		Catalog: catalog,
		Logger:  logger,
		IsDev:   isDev,
	})
	if err != nil {
		return fmt.Errorf("renderer initialization failed: %w", err)
	}
	logger.Info("Templates loaded", "count", len(renderer.ListTemplates()))

	// Initialize middleware
	securityMw := middleware.NewSecurityHeadersMiddleware(isSecure)
	loggingMw := middleware.NewRequestLoggingMiddleware(logger)
	localeMw := middleware.NewLocaleMiddleware()
	csrfMw := csrf.NewMiddleware(isSecure, cfg.MaxUploadBytes+1<<20, logger)
	metricsAuthMw := middleware.NewMetricsAuthMiddleware(cfg.MetricsUsername, cfg.MetricsPassword, logger)

	uploadLimiter := middleware.NewRateLimiter(cfg.UploadRateLimit, time.Minute)
	defer uploadLimiter.Stop()
	feedbackLimiter := middleware.NewRateLimiter(cfg.FeedbackRateLimit, time.Minute)
	defer feedbackLimiter.Stop()
	uploadLimit := middleware.NewRateLimitMiddleware("upload", uploadLimiter, catalog, logger).Limit
	feedbackLimit := middleware.NewRateLimitMiddleware("feedback", feedbackLimiter, catalog, logger).Limit

	// Initialize handlers
	contractHandler := handler.NewContractHandler(handler.ContractHandlerConfig{
		Sessions:  sessions,
		Staging:   staging,
		Renderer:  renderer,
		Catalog:   catalog,
		Logger:    logger,
		MaxUpload: cfg.MaxUploadBytes,
		PollEvery: cfg.ProgressInterval,
	})
	siteHandler := handler.NewSiteHandler(sessions, siteContent, contractHandler, renderer, logger)
	feedbackHandler := handler.NewFeedbackHandler(siteHandler, notifier, catalog, logger)
	languageHandler := handler.NewLanguageHandler(isSecure, logger)
	apiHandler := handler.NewAPIHandler(catalog, logger)

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	mux := http.NewServeMux()

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))

	// Metrics endpoint (protected by basic auth)
	mux.Handle("GET /metrics", metricsAuthMw.Handler(promhttp.Handler()))

	apiHandler.RegisterRoutes(mux)
	contractHandler.RegisterRoutes(mux, uploadLimit)
	feedbackHandler.RegisterRoutes(mux, feedbackLimit)
	languageHandler.RegisterRoutes(mux)
	siteHandler.RegisterRoutes(mux)

	stack := middleware.Stack(
		securityMw.Handler,
		loggingMw.Handler,
		metrics.Middleware,
		localeMw.Handler,
		csrfMw.Handler,
	)

	// ==========================================================================
	// Start server
	// ==========================================================================

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           stack(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		logger.Info("Server started", "address", server.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
		}
	}()

	// Wait for interrupt signal
	<-sigChan
	logger.Info("Shutdown signal received, initiating graceful shutdown...")

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	// Abort running analyses and release staged files
	stop()
	sessions.Close()

	logger.Info("Graceful shutdown complete")
	return nil
}

// newAnalyzer builds the configured analysis backend.
func newAnalyzer(cfg *internal.Config, logger *slog.Logger) (analysis.Analyzer, error) {
	if cfg.Analyzer == "sample" {
		return sample.New(cfg.SampleDelay, logger), nil
	}
	return analysis.NewClient(analysis.Config{
		BaseURL: cfg.AnalysisAPIURL,
		Timeout: cfg.AnalysisTimeout,
	}, logger)
}

// newNotifier forwards feedback over SMTP when a host is configured and
// logs it otherwise. Feedback goes to the published support address unless
// FEEDBACK_TO overrides it.
func newNotifier(cfg *internal.Config, supportEmail string, logger *slog.Logger) (email.Notifier, error) {
	if cfg.SMTPHost == "" {
		logger.Warn("SMTP_HOST not set, feedback will only be logged")
		return email.NewLogNotifier(logger), nil
	}
	to := cfg.FeedbackTo
	if to == "" {
		to = supportEmail
	}
	return email.NewSMTPNotifier(email.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		To:       to,
	}, logger)
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
