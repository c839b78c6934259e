// Package analysis is the boundary to the external contract analysis
// backend. Implementations accept a staged contract file and return the
// canonical domain.AnalysisResult; every response shape the backend sends
// is normalized here so nothing past this package branches on wire format.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/DukeRupert/aqdi/internal/domain"
	"github.com/DukeRupert/aqdi/internal/locale"
)

// Analyzer submits a contract for compliance analysis.
type Analyzer interface {
	// Analyze uploads the contract and blocks until the backend responds or
	// ctx is done. Implementations do not retry.
	Analyze(ctx context.Context, req Request) (*domain.AnalysisResult, error)
}

// ProgressFunc receives the number of file bytes handed to the transport so
// far and the expected total. total is zero when the size is unknown.
type ProgressFunc func(sent, total int64)

// Request contains parameters for a single analysis call.
type Request struct {
	File         io.Reader           // Contract bytes
	Filename     string              // Original filename
	Size         int64               // Size in bytes, 0 if unknown
	ContentType  string              // MIME type of the file
	ContractType domain.ContractType // Regulation set to check against
	Language     locale.Locale       // Display locale of the requester
	OnProgress   ProgressFunc        // Optional transport progress callback
}

// Validate checks the request before any network activity.
func (r Request) Validate() error {
	if r.File == nil {
		return domain.Invalid("analysis.request", "file is required")
	}
	if !r.ContractType.IsValid() {
		return domain.Invalid("analysis.request", "unsupported contract type")
	}
	return nil
}

var (
	// ErrUnavailable indicates the backend could not be reached.
	ErrUnavailable = errors.New("analysis service unavailable")

	// ErrMalformedResponse indicates a 2xx response whose body could not be
	// understood as an analysis result.
	ErrMalformedResponse = errors.New("malformed analysis response")
)

// BackendError is a failure reported by the backend itself, either as a
// non-2xx status or as a failed analysis inside a 2xx body.
type BackendError struct {
	Status int    // HTTP status code
	Detail string // Human-readable message from the response body, may be empty
}

func (e *BackendError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("analysis backend error (status %d): %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("analysis backend error (status %d)", e.Status)
}

// Detail returns the backend-supplied message carried by err, if any.
func Detail(err error) (string, bool) {
	var be *BackendError
	if errors.As(err, &be) && be.Detail != "" {
		return be.Detail, true
	}
	return "", false
}

// =============================================================================
// Progress
// =============================================================================

type progressReader struct {
	r     io.Reader
	total int64
	sent  int64
	fn    ProgressFunc
}

// NewProgressReader wraps r so every read reports cumulative bytes to fn.
// A nil fn returns r unchanged.
func NewProgressReader(r io.Reader, total int64, fn ProgressFunc) io.Reader {
	if fn == nil {
		return r
	}
	return &progressReader{r: r, total: total, fn: fn}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		p.fn(p.sent, p.total)
	}
	return n, err
}
