// Package analyze provides the analyzer framework for kmpcheck: the
// Analyzer contract, diagnostic model, registry, event stream, filter
// helpers, and the concurrent runner.
package analyze

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/yaklabco/kmpcheck/pkg/config"
	"github.com/yaklabco/kmpcheck/pkg/diff"
	"github.com/yaklabco/kmpcheck/pkg/index"
)

// Well-known diagnostic tags. The tag set is open; these two are the
// minimum the transport layer understands.
const (
	TagFixable       = "fixable"
	TagCrossPlatform = "cross-platform"
)

// FileReader is the file-content capability handed to analyzers.
// Failures surface as "file unavailable" errors and must never crash
// an analyzer.
type FileReader interface {
	ReadFile(path string) (string, error)
	Exists(path string) bool
}

// Analyzer is a pluggable scanner producing diagnostics from indexed
// files and raw text.
//
// Analyzers must:
//   - Degrade to empty results when the index is partial.
//   - Respect context cancellation at file-boundary granularity.
//   - Return an error only for internal failures, never for findings.
type Analyzer interface {
	// Name is the stable analyzer tag used in diagnostic ids.
	Name() string

	// Category is the diagnostic category this analyzer emits under.
	Category() string

	// Analyze scans the repository rooted at repoPath.
	Analyze(ctx context.Context, repoPath string) ([]Diagnostic, error)
}

// Location pins a diagnostic to a file position and its owning
// module/source set.
type Location struct {
	FilePath   string     `json:"filePath"`
	ModulePath string     `json:"modulePath,omitempty"`
	SourceSet  string     `json:"sourceSet,omitempty"`
	Span       index.Span `json:"span"`
}

// Diagnostic is a single analyzer finding. Diagnostics are immutable
// once created; state changes are represented as stream events.
type Diagnostic struct {
	// ID is deterministic: re-running analysis on an unchanged file
	// reproduces identical ids.
	ID string `json:"id"`

	Severity    config.Severity `json:"severity"`
	Category    string          `json:"category"`
	Message     string          `json:"message"`
	Explanation string          `json:"explanation,omitempty"`
	Snippet     string          `json:"snippet,omitempty"`
	Location    Location        `json:"location"`

	// Analyzer is the name of the analyzer that produced this finding.
	Analyzer string `json:"analyzer"`

	CreatedAt time.Time `json:"createdAt"`

	// Tags is an open string set; sorted for deterministic output.
	Tags []string `json:"tags,omitempty"`

	// Fixes are zero-or-more proposed fixes.
	Fixes []diff.Fix `json:"fixes,omitempty"`

	// Active is false once the diagnostic has been suppressed,
	// resolved, or dismissed.
	Active bool `json:"active"`
}

// HasTag reports whether the diagnostic carries a tag.
func (d *Diagnostic) HasTag(tag string) bool {
	return slices.Contains(d.Tags, tag)
}

// HasFix reports whether the diagnostic proposes at least one fix.
func (d *Diagnostic) HasFix() bool {
	return len(d.Fixes) > 0
}

// DiagnosticID derives the stable id for a finding from the analyzer
// tag, the file or entity it concerns, and the line number. Identical
// inputs always produce identical ids, which diff/undo correlation and
// re-run idempotence rely on.
func DiagnosticID(analyzerTag, entity string, line int) string {
	return fmt.Sprintf("%s:%s:%d", analyzerTag, entity, line)
}
