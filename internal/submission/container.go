// Package submission owns the contract submission workflow for one visitor:
// the selected file, the contract type, upload progress, the last error and
// the analysis result.
//
// A Container is safe for concurrent use. Each Analyze call starts a new
// generation; Reset, Close and a newer Analyze cancel the current one, and
// any outcome or progress tick from an older generation is dropped.
package submission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/DukeRupert/aqdi/internal/analysis"
	"github.com/DukeRupert/aqdi/internal/domain"
	"github.com/DukeRupert/aqdi/internal/i18n"
	"github.com/DukeRupert/aqdi/internal/locale"
	"github.com/DukeRupert/aqdi/internal/metrics"
	"github.com/DukeRupert/aqdi/internal/storage"
)

// ProgressCeiling is the highest progress shown before the backend answers.
const ProgressCeiling = 90

// State is a point-in-time copy of the submission.
type State struct {
	File         *domain.UploadedFile
	ContractType domain.ContractType
	IsAnalyzing  bool
	Progress     int // 0-100
	Error        string
	Result       *domain.AnalysisResult
}

// CanAnalyze reports whether the analyze control should be enabled.
func (s State) CanAnalyze() bool {
	return s.File != nil && !s.IsAnalyzing
}

// Options configures a Container.
type Options struct {
	Analyzer analysis.Analyzer
	Storage  storage.Storage
	Catalog  *i18n.Catalog
	Logger   *slog.Logger

	// ProgressInterval and ProgressStep drive the simulated progress signal.
	ProgressInterval time.Duration
	ProgressStep     int

	// Timeout bounds a single analysis, 0 for none.
	Timeout time.Duration

	// OnChange is called with every new state while the container's lock is
	// held. It must not call back into the container.
	OnChange func(State)
}

// Container holds one visitor's submission state.
type Container struct {
	opts Options

	mu         sync.Mutex
	state      State
	generation uint64
	cancel     context.CancelFunc
	closed     bool

	// progress signals for the current generation
	simulated int
	transport int
}

// New creates an empty container with the default contract type.
func New(opts Options) *Container {
	if opts.ProgressInterval <= 0 {
		opts.ProgressInterval = 500 * time.Millisecond
	}
	if opts.ProgressStep <= 0 {
		opts.ProgressStep = 10
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Container{
		opts:  opts,
		state: State{ContractType: domain.DefaultContractType},
	}
}

// Snapshot returns a copy of the current state.
func (c *Container) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Container) snapshotLocked() State {
	s := c.state
	if s.File != nil {
		f := *s.File
		s.File = &f
	}
	s.Result = s.Result.Clone()
	return s
}

func (c *Container) notifyLocked() {
	if c.opts.OnChange != nil {
		c.opts.OnChange(c.snapshotLocked())
	}
}

// SetFile replaces the selected file. A nil file clears the selection. The
// previously staged object is deleted. No validation is applied.
func (c *Container) SetFile(ctx context.Context, f *domain.UploadedFile) {
	c.mu.Lock()
	prev := c.state.File
	if f != nil {
		cp := *f
		f = &cp
	}
	c.state.File = f
	c.notifyLocked()
	c.mu.Unlock()

	if prev != nil && (f == nil || prev.Key != f.Key) {
		c.release(ctx, prev)
	}
}

// SetContractType replaces the selected contract type.
func (c *Container) SetContractType(t domain.ContractType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ContractType = t
	c.notifyLocked()
}

// Analyze starts analysis of the selected file and returns a channel closed
// once the outcome is reflected in state. Without a file it records a
// localized validation error, makes no backend call and returns a closed
// channel.
//
// The analysis outlives ctx's cancellation but keeps its values; it ends on
// completion, Reset, Close, a newer Analyze or the configured timeout.
func (c *Container) Analyze(ctx context.Context, l locale.Locale) <-chan struct{} {
	done := make(chan struct{})

	c.mu.Lock()
	if c.closed || c.state.File == nil {
		if !c.closed {
			c.state.Error = c.message(l, "error.selectFile")
			c.notifyLocked()
		}
		c.mu.Unlock()
		close(done)
		return done
	}

	c.cancelLocked()
	c.generation++
	gen := c.generation

	opCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	if c.opts.Timeout > 0 {
		var timeoutCancel context.CancelFunc
		opCtx, timeoutCancel = context.WithTimeout(opCtx, c.opts.Timeout)
		parent := cancel
		cancel = func() { timeoutCancel(); parent() }
	}
	c.cancel = cancel

	c.state.IsAnalyzing = true
	c.state.Error = ""
	c.state.Progress = 0
	c.state.Result = nil
	c.simulated, c.transport = 0, 0

	file := *c.state.File
	contractType := c.state.ContractType
	c.notifyLocked()
	c.mu.Unlock()

	metrics.AnalysisStarted(contractType.String())

	go c.run(opCtx, cancel, gen, file, contractType, l, done)
	return done
}

// Reset returns the container to its empty state from any phase, aborting
// an in-flight analysis. The contract type is kept.
func (c *Container) Reset(ctx context.Context) {
	c.mu.Lock()
	c.cancelLocked()
	c.generation++
	prev := c.state.File
	c.state = State{ContractType: c.state.ContractType}
	c.simulated, c.transport = 0, 0
	c.notifyLocked()
	c.mu.Unlock()

	if prev != nil {
		c.release(ctx, prev)
	}
}

// Close aborts any in-flight analysis and deletes the staged file. The
// container ignores further Analyze calls.
func (c *Container) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.cancelLocked()
	c.generation++
	prev := c.state.File
	c.state.File = nil
	c.state.IsAnalyzing = false
	c.mu.Unlock()

	if prev != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		c.release(ctx, prev)
	}
}

func (c *Container) cancelLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Container) release(ctx context.Context, f *domain.UploadedFile) {
	if c.opts.Storage == nil || f.Key == "" {
		return
	}
	if err := c.opts.Storage.Delete(ctx, f.Key); err != nil {
		c.opts.Logger.Warn("failed to delete staged file", "key", f.Key, "error", err)
	}
}

// =============================================================================
// Analysis run
// =============================================================================

func (c *Container) run(ctx context.Context, cancel context.CancelFunc, gen uint64, file domain.UploadedFile, contractType domain.ContractType, l locale.Locale, done chan struct{}) {
	defer close(done)
	defer cancel()

	start := time.Now()

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.tick(gen, stop)
	}()

	result, err := c.call(ctx, gen, file, contractType, l)

	close(stop)
	wg.Wait()

	c.finish(gen, contractType, result, err, l, time.Since(start))
}

// tick advances the simulated progress signal until stop is closed.
func (c *Container) tick(gen uint64, stop <-chan struct{}) {
	t := time.NewTicker(c.opts.ProgressInterval)
	defer t.Stop()

	for {
		select {
		case <-stop:
			return
		case <-t.C:
			c.mu.Lock()
			if gen == c.generation && c.state.IsAnalyzing {
				c.simulated = min(c.simulated+c.opts.ProgressStep, ProgressCeiling)
				c.updateProgressLocked()
			}
			c.mu.Unlock()
		}
	}
}

// onTransport folds real upload progress into the displayed value.
func (c *Container) onTransport(gen uint64) analysis.ProgressFunc {
	return func(sent, total int64) {
		if total <= 0 {
			return
		}
		pct := int(sent * ProgressCeiling / total)

		c.mu.Lock()
		defer c.mu.Unlock()
		if gen == c.generation && c.state.IsAnalyzing && pct > c.transport {
			c.transport = min(pct, ProgressCeiling)
			c.updateProgressLocked()
		}
	}
}

func (c *Container) updateProgressLocked() {
	p := min(max(c.simulated, c.transport), ProgressCeiling)
	if p > c.state.Progress {
		c.state.Progress = p
		c.notifyLocked()
	}
}

func (c *Container) call(ctx context.Context, gen uint64, file domain.UploadedFile, contractType domain.ContractType, l locale.Locale) (result *domain.AnalysisResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.opts.Logger.Error("analysis panicked", "panic", r, "contract_type", contractType)
			err = fmt.Errorf("analysis panicked: %v", r)
		}
	}()

	if c.opts.Storage == nil {
		return nil, domain.Internal(nil, "submission.analyze", "no staging storage configured")
	}

	rc, info, err := c.opts.Storage.Get(ctx, file.Key)
	if err != nil {
		return nil, fmt.Errorf("open staged file: %w", err)
	}
	defer rc.Close()

	size := file.Size
	if size <= 0 {
		size = info.Size
	}

	return c.opts.Analyzer.Analyze(ctx, analysis.Request{
		File:         rc,
		Filename:     file.Name,
		Size:         size,
		ContentType:  file.ContentType,
		ContractType: contractType,
		Language:     l,
		OnProgress:   c.onTransport(gen),
	})
}

func (c *Container) finish(gen uint64, contractType domain.ContractType, result *domain.AnalysisResult, err error, l locale.Locale, elapsed time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.opts.Logger.Debug("discarding stale analysis outcome", "generation", gen, "current", c.generation)
		metrics.AnalysisDiscarded()
		return
	}
	c.cancel = nil
	c.state.IsAnalyzing = false

	if err == nil && result == nil {
		err = analysis.ErrMalformedResponse
	}

	if err != nil {
		c.opts.Logger.Warn("contract analysis failed",
			"error", err,
			"contract_type", contractType,
			"duration_ms", elapsed.Milliseconds(),
		)
		metrics.AnalysisFailed(elapsed)
		c.state.Result = nil
		c.state.Progress = 0
		c.state.Error = c.errorMessage(err, l)
		c.notifyLocked()
		return
	}

	result.EnsureLists()
	if result.ContractType == "" {
		result.ContractType = contractType
	}
	if result.AnalysisDate.IsZero() {
		result.AnalysisDate = time.Now()
	}

	c.opts.Logger.Info("contract analysis completed",
		"contract_type", contractType,
		"score", result.ComplianceScore,
		"violations", len(result.Violations),
		"duration_ms", elapsed.Milliseconds(),
	)
	metrics.AnalysisCompleted(contractType.String(), result.ComplianceScore, elapsed)

	c.state.Result = result
	c.state.Error = ""
	c.state.Progress = 100
	c.notifyLocked()
}

// errorMessage turns an analysis failure into the text shown to the
// visitor: the backend's own detail when it sent one, otherwise a localized
// message for the failure class.
func (c *Container) errorMessage(err error, l locale.Locale) string {
	if detail, ok := analysis.Detail(err); ok {
		return detail
	}

	switch {
	case errors.Is(err, analysis.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		return c.message(l, "error.unavailable")
	case errors.Is(err, analysis.ErrMalformedResponse), storage.IsNotFound(err):
		return c.message(l, "error.analysisFailed")
	}

	var be *analysis.BackendError
	if errors.As(err, &be) {
		return c.message(l, "error.analysisFailed")
	}
	return c.message(l, "error.unknown")
}

func (c *Container) message(l locale.Locale, key string) string {
	if c.opts.Catalog == nil {
		return key
	}
	return c.opts.Catalog.T(l, key)
}
