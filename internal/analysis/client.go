package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/DukeRupert/aqdi/internal/domain"
)

const (
	uploadPath = "/upload-contract/"

	// maxResponseBytes bounds how much of a response body is read.
	maxResponseBytes = 4 << 20
)

// Config holds configuration for the HTTP analysis client.
type Config struct {
	BaseURL    string        // e.g. http://localhost:8000
	Timeout    time.Duration // Whole-request timeout, 0 for none
	HTTPClient *http.Client  // Optional, for tests
}

// Client talks to the analysis backend over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates an HTTP analysis client.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("analysis base URL is required")
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    hc,
		logger:  logger,
	}, nil
}

// Analyze streams the contract to POST {base}/upload-contract/ as
// multipart/form-data with the fields file, contract_type and language.
func (c *Client) Analyze(ctx context.Context, req Request) (*domain.AnalysisResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeForm(mw, req))
	}()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uploadPath, pr)
	if err != nil {
		pr.Close()
		return nil, fmt.Errorf("build analysis request: %w", err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		pr.CloseWithError(err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.logger.Warn("analysis backend unreachable", "error", err, "url", c.baseURL+uploadPath)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: read body: %v", ErrMalformedResponse, err)
	}

	c.logger.Debug("analysis backend responded",
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
		"contract_type", req.ContractType,
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &BackendError{Status: resp.StatusCode, Detail: errorDetail(body)}
	}

	return Normalize(body)
}

func writeForm(mw *multipart.Writer, req Request) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(req.Filename)))
	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, NewProgressReader(req.File, req.Size, req.OnProgress)); err != nil {
		return fmt.Errorf("copy file part: %w", err)
	}

	if err := mw.WriteField("contract_type", req.ContractType.String()); err != nil {
		return fmt.Errorf("write contract_type: %w", err)
	}
	if req.Language != "" {
		if err := mw.WriteField("language", req.Language.String()); err != nil {
			return fmt.Errorf("write language: %w", err)
		}
	}

	return mw.Close()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// errorDetail extracts a message from a failure body. FastAPI sends
// {"detail": "..."}; the older Flask service sends {"error": "..."}.
// Structured details (validation error lists) are not surfaced.
func errorDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
		Error  string          `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	var detail string
	if len(payload.Detail) > 0 && json.Unmarshal(payload.Detail, &detail) == nil && detail != "" {
		return detail
	}
	return payload.Error
}

// IsTransportError reports whether err came from reaching the backend rather
// than from the backend's answer.
func IsTransportError(err error) bool {
	return errors.Is(err, ErrUnavailable) || errors.Is(err, ErrMalformedResponse)
}
