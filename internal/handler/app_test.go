package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DukeRupert/aqdi/internal/analysis"
	"github.com/DukeRupert/aqdi/internal/analysis/sample"
	"github.com/DukeRupert/aqdi/internal/content"
	"github.com/DukeRupert/aqdi/internal/csrf"
	"github.com/DukeRupert/aqdi/internal/domain"
	"github.com/DukeRupert/aqdi/internal/email"
	"github.com/DukeRupert/aqdi/internal/i18n"
	"github.com/DukeRupert/aqdi/internal/middleware"
	"github.com/DukeRupert/aqdi/internal/session"
	"github.com/DukeRupert/aqdi/internal/storage"
	"github.com/DukeRupert/aqdi/internal/submission"
	"github.com/DukeRupert/aqdi/web"
)

// =============================================================================
// Test Doubles
// =============================================================================

// gatedAnalyzer holds every call until release is closed.
type gatedAnalyzer struct {
	inner   analysis.Analyzer
	release chan struct{}
}

func (g *gatedAnalyzer) Analyze(ctx context.Context, req analysis.Request) (*domain.AnalysisResult, error) {
	select {
	case <-g.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return g.inner.Analyze(ctx, req)
}

// recordingNotifier keeps forwarded feedback.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []email.Feedback
}

func (n *recordingNotifier) SendFeedback(_ context.Context, f email.Feedback) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, f)
	return nil
}

func (n *recordingNotifier) all() []email.Feedback {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]email.Feedback(nil), n.sent...)
}

// =============================================================================
// Test Application
// =============================================================================

// testApp is the full router behind an httptest server with a browser-like
// client that keeps cookies and echoes the CSRF token.
type testApp struct {
	t        *testing.T
	server   *httptest.Server
	client   *http.Client
	sample   *sample.Provider
	gate     *gatedAnalyzer
	staging  *storage.MemoryStorage
	sessions *session.Store
	notifier *recordingNotifier
}

type appOptions struct {
	maxUpload int64
}

func newTestApp(t *testing.T, opts appOptions) *testApp {
	t.Helper()

	if opts.maxUpload == 0 {
		opts.maxUpload = 1 << 20
	}

	logger := discardLogger()
	catalog := i18n.MustCatalog()
	siteContent, err := content.Load()
	require.NoError(t, err)

	provider := sample.New(0, logger)
	gate := &gatedAnalyzer{inner: provider, release: make(chan struct{})}
	staging := storage.NewMemoryStorage()

	sessions := session.NewStore(session.Options{
		TTL:    time.Hour,
		Logger: logger,
		NewContainer: func(id string) *submission.Container {
			return submission.New(submission.Options{
				Analyzer:         gate,
				Storage:          staging,
				Catalog:          catalog,
				Logger:           logger,
				ProgressInterval: 10 * time.Millisecond,
				ProgressStep:     10,
				Timeout:          5 * time.Second,
			})
		},
	})
	t.Cleanup(sessions.Close)

	renderer, err := NewRenderer(RendererConfig{
		FS:      web.Templates(),
		Catalog: catalog,
		Logger:  logger,
	})
	require.NoError(t, err)

	limiter := middleware.NewRateLimiter(1000, time.Minute)
	t.Cleanup(limiter.Stop)
	limit := middleware.NewRateLimitMiddleware("test", limiter, catalog, logger).Limit

	contract := NewContractHandler(ContractHandlerConfig{
		Sessions:  sessions,
		Staging:   staging,
		Renderer:  renderer,
		Catalog:   catalog,
		Logger:    logger,
		MaxUpload: opts.maxUpload,
		PollEvery: 500 * time.Millisecond,
	})
	site := NewSiteHandler(sessions, siteContent, contract, renderer, logger)

	mux := http.NewServeMux()
	NewAPIHandler(catalog, logger).RegisterRoutes(mux)
	contract.RegisterRoutes(mux, limit)
	notifier := &recordingNotifier{}
	NewFeedbackHandler(site, notifier, catalog, logger).RegisterRoutes(mux, limit)
	NewLanguageHandler(false, logger).RegisterRoutes(mux)
	site.RegisterRoutes(mux)

	stack := middleware.Stack(
		middleware.NewLocaleMiddleware().Handler,
		csrf.NewMiddleware(false, opts.maxUpload+1<<20, logger).Handler,
	)

	server := httptest.NewServer(stack(mux))
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testApp{
		t:      t,
		server: server,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		sample:   provider,
		gate:     gate,
		staging:  staging,
		sessions: sessions,
		notifier: notifier,
	}
}

// newVisitor returns a client for the same server with its own cookies.
func (a *testApp) newVisitor() *testApp {
	a.t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(a.t, err)

	v := *a
	v.client = &http.Client{Jar: jar, CheckRedirect: a.client.CheckRedirect}
	return &v
}

// release lets held analyses run.
func (a *testApp) release() {
	close(a.gate.release)
}

func (a *testApp) csrfToken() string {
	u, _ := url.Parse(a.server.URL)
	for _, c := range a.client.Jar.Cookies(u) {
		if c.Name == csrf.CookieName {
			return c.Value
		}
	}
	return ""
}

// do sends req, echoing the CSRF token, and returns the response with its
// body read.
func (a *testApp) do(req *http.Request) (*http.Response, string) {
	a.t.Helper()
	if token := a.csrfToken(); token != "" {
		req.Header.Set(csrf.HeaderName, token)
	}
	resp, err := a.client.Do(req)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return resp, string(body)
}

func (a *testApp) get(path string, header http.Header) (*http.Response, string) {
	a.t.Helper()
	req, err := http.NewRequest(http.MethodGet, a.server.URL+path, nil)
	require.NoError(a.t, err)
	for k, v := range header {
		req.Header[k] = v
	}
	return a.do(req)
}

// htmx posts a form as htmx would.
func (a *testApp) htmx(path string, form url.Values) (*http.Response, string) {
	a.t.Helper()
	req, err := http.NewRequest(http.MethodPost, a.server.URL+path, strings.NewReader(form.Encode()))
	require.NoError(a.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	return a.do(req)
}

// upload posts a multipart form with an optional file as htmx would.
func (a *testApp) upload(filename string, data []byte, fields map[string]string) (*http.Response, string) {
	a.t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(a.t, mw.WriteField(k, v))
	}
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(a.t, err)
		_, err = part.Write(data)
		require.NoError(a.t, err)
	}
	require.NoError(a.t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, a.server.URL+"/contract/file", &body)
	require.NoError(a.t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("HX-Request", "true")
	return a.do(req)
}

// start loads the home page so the client holds session and CSRF cookies.
func (a *testApp) start(header http.Header) string {
	a.t.Helper()
	resp, body := a.get("/", header)
	require.Equal(a.t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(a.t, a.csrfToken())
	return body
}

func acceptLanguage(v string) http.Header {
	return http.Header{"Accept-Language": []string{v}}
}
