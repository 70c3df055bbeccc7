package analyze

import (
	"slices"
	"time"

	"github.com/yaklabco/kmpcheck/pkg/config"
	"github.com/yaklabco/kmpcheck/pkg/diff"
)

// Builder helps construct Diagnostic values.
type Builder struct {
	diag Diagnostic
}

// NewDiagnostic starts building a diagnostic. The id should come from
// DiagnosticID so re-runs stay idempotent.
func NewDiagnostic(id, analyzer, category, message string) *Builder {
	return &Builder{
		diag: Diagnostic{
			ID:       id,
			Analyzer: analyzer,
			Category: category,
			Message:  message,
			Severity: config.SeverityWarning,
		},
	}
}

// WithSeverity sets the severity.
func (b *Builder) WithSeverity(s config.Severity) *Builder {
	b.diag.Severity = s
	return b
}

// WithExplanation sets the longer explanation.
func (b *Builder) WithExplanation(text string) *Builder {
	b.diag.Explanation = text
	return b
}

// WithSnippet attaches the offending code excerpt.
func (b *Builder) WithSnippet(snippet string) *Builder {
	b.diag.Snippet = snippet
	return b
}

// WithLocation sets the source location.
func (b *Builder) WithLocation(loc Location) *Builder {
	b.diag.Location = loc
	return b
}

// WithTags adds tags, keeping the set deduplicated.
func (b *Builder) WithTags(tags ...string) *Builder {
	for _, tag := range tags {
		if !slices.Contains(b.diag.Tags, tag) {
			b.diag.Tags = append(b.diag.Tags, tag)
		}
	}
	return b
}

// WithFix adds a proposed fix.
func (b *Builder) WithFix(fix diff.Fix) *Builder {
	b.diag.Fixes = append(b.diag.Fixes, fix)
	return b
}

// Build finalizes the diagnostic: tags are sorted for deterministic
// output, the creation timestamp is stamped, and the finding starts
// active.
func (b *Builder) Build() Diagnostic {
	d := b.diag
	slices.Sort(d.Tags)
	d.CreatedAt = time.Now().UTC()
	d.Active = true
	return d
}
