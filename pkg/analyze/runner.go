package analyze

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/kmpcheck/internal/logging"
	"github.com/yaklabco/kmpcheck/pkg/config"
)

// Runner executes registered analyzers concurrently. Analyzers share
// no mutable state and the index is read-only during a run, so they
// parallelize freely up to the configured job count.
type Runner struct {
	Registry *Registry
	Stream   *Stream
	Logger   *log.Logger
}

// NewRunner creates a Runner. Stream may be nil when no consumer wants
// live events.
func NewRunner(registry *Registry, stream *Stream, logger *log.Logger) *Runner {
	if logger == nil {
		logger = logging.Default()
	}
	return &Runner{Registry: registry, Stream: stream, Logger: logger}
}

// Run executes every enabled analyzer against repoPath and returns the
// combined diagnostics in analyzer-name order.
//
// Failure isolation: an analyzer that returns an error or panics is
// logged and contributes zero diagnostics; sibling analyzers still
// execute. Only context cancellation aborts the run early.
func (r *Runner) Run(ctx context.Context, repoPath string, cfg *config.Config) ([]Diagnostic, error) {
	analyzers := r.Registry.Analyzers()

	enabled := analyzers[:0:0]
	for _, a := range analyzers {
		if cfg == nil || cfg.AnalyzerEnabled(a.Name()) {
			enabled = append(enabled, a)
		}
	}
	if len(enabled) == 0 {
		return nil, nil
	}

	jobs := 0
	if cfg != nil {
		jobs = cfg.Jobs
	}
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	// Results keep their analyzer's slot so output order is
	// deterministic regardless of completion order.
	results := make([][]Diagnostic, len(enabled))
	var mu sync.Mutex
	processed := 0

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for idx, a := range enabled {
		idx, a := idx, a
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			diags := r.runOne(groupCtx, a, repoPath)
			if cfg != nil {
				applySeverityOverride(diags, cfg, a.Name())
			}

			mu.Lock()
			results[idx] = diags
			processed++
			done := processed
			found := 0
			for _, slot := range results {
				found += len(slot)
			}
			mu.Unlock()

			if r.Stream != nil {
				for _, d := range diags {
					r.Stream.PublishAdded(d)
				}
				r.Stream.PublishProgress(Progress{
					Phase:     a.Name(),
					Processed: done,
					Total:     len(enabled),
					Found:     found,
				})
			}
			return nil
		})
	}

	runErr := group.Wait()

	var combined []Diagnostic
	for _, slot := range results {
		combined = append(combined, slot...)
	}

	if runErr != nil {
		return combined, fmt.Errorf("analysis cancelled: %w", runErr)
	}
	return combined, nil
}

// runOne isolates a single analyzer: panics and errors are logged and
// converted to an empty contribution.
func (r *Runner) runOne(ctx context.Context, a Analyzer, repoPath string) (diags []Diagnostic) {
	defer func() {
		if rec := recover(); rec != nil {
			r.Logger.Error("analyzer panicked",
				logging.FieldAnalyzer, a.Name(),
				logging.FieldError, fmt.Sprintf("%v", rec))
			diags = nil
		}
	}()

	found, err := a.Analyze(ctx, repoPath)
	if err != nil {
		if ctx.Err() != nil {
			// Cancelled mid-scan; partial results were intentionally
			// abandoned at a file boundary.
			return nil
		}
		r.Logger.Error("analyzer failed",
			logging.FieldAnalyzer, a.Name(),
			logging.FieldError, err)
		return nil
	}
	return found
}

// applySeverityOverride applies a configured severity to every
// diagnostic an analyzer produced, mirroring per-rule severity
// resolution.
func applySeverityOverride(diags []Diagnostic, cfg *config.Config, name string) {
	ac, ok := cfg.Analyzers[name]
	if !ok || ac.Severity == nil {
		return
	}
	sev := config.Severity(*ac.Severity)
	if !sev.IsValid() {
		return
	}
	for i := range diags {
		diags[i].Severity = sev
	}
}
