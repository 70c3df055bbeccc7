// Package suggest implements the refactor-suggestion lifecycle: a
// suggestion is generated pending, previewed as a unified diff, and
// either applied (through the diff engine, recording undo entries) or
// dismissed. Both outcomes are terminal for that suggestion instance.
package suggest

import (
	"time"

	"github.com/google/uuid"

	"github.com/yaklabco/kmpcheck/pkg/config"
	"github.com/yaklabco/kmpcheck/pkg/diff"
)

// State is a suggestion's lifecycle state.
type State string

const (
	StatePending   State = "pending"
	StateApplied   State = "applied"
	StateDismissed State = "dismissed"
)

// Source tags where a suggestion came from.
type Source string

const (
	SourceRuleEngine Source = "rule-engine"
	SourceInference  Source = "inference"
	SourceUser       Source = "user-requested"
)

// Risk is one hazard the caller should weigh before applying.
type Risk struct {
	Description string          `json:"description"`
	Severity    config.Severity `json:"severity"`
}

// FileChange is one file's structured change within a suggestion.
type FileChange struct {
	Path    string          `json:"path"`
	NewPath string          `json:"newPath,omitempty"`
	Type    diff.ChangeType `json:"type"`
	Hunks   []diff.Hunk     `json:"hunks"`
}

// RefactorSuggestion is a higher-level proposal, possibly spanning
// many files. Distinct from a single diagnostic's inline Fix.
type RefactorSuggestion struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Rationale   string          `json:"rationale"`
	Confidence  float64         `json:"confidence"`
	Category    string          `json:"category"`
	Priority    config.Priority `json:"priority"`

	// UnifiedDiff is the preview text; FileChanges is the structured
	// form the apply path uses. When FileChanges is empty the manager
	// parses UnifiedDiff instead.
	UnifiedDiff string       `json:"unifiedDiff"`
	FileChanges []FileChange `json:"fileChanges,omitempty"`

	// ResolvesDiagnostics lists diagnostic ids this change would fix.
	ResolvesDiagnostics []string `json:"resolvesDiagnostics,omitempty"`

	AutoApplicable bool      `json:"autoApplicable"`
	Risks          []Risk    `json:"risks,omitempty"`
	Source         Source    `json:"source"`
	CreatedAt      time.Time `json:"createdAt"`
	State          State     `json:"state"`

	// DismissReason is set when State is dismissed.
	DismissReason string `json:"dismissReason,omitempty"`
}

// New creates a pending suggestion with a fresh id.
func New(title, rationale, category string, priority config.Priority, source Source) *RefactorSuggestion {
	return &RefactorSuggestion{
		ID:        uuid.NewString(),
		Title:     title,
		Rationale: rationale,
		Category:  category,
		Priority:  priority,
		Source:    source,
		CreatedAt: time.Now().UTC(),
		State:     StatePending,
	}
}
