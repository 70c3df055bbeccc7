// Package diff implements line-level unified diffs: LCS-based
// generation, streaming parsing, text-edit application, and hunk
// replay. Output stays byte-compatible with standard patch tooling.
package diff

// Line is a single line in a diff hunk.
type Line struct {
	// Kind indicates whether this is a context, add, or remove line.
	Kind LineKind

	// Content is the line content (without the diff prefix).
	Content string
}

// LineKind indicates the type of diff line.
type LineKind int

const (
	// LineContext is an unchanged context line.
	LineContext LineKind = iota

	// LineAdd is a line added in the modified version.
	LineAdd

	// LineRemove is a line removed from the original version.
	LineRemove
)

// Hunk is a contiguous block of a unified diff with 1-based start lines.
type Hunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []Line
}

// FileDiff is one file's worth of a parsed unified diff.
type FileDiff struct {
	OriginalPath string
	ModifiedPath string
	Hunks        []Hunk
}

// TextEdit is a single line-range replacement in a file.
type TextEdit struct {
	// FilePath is the file the edit applies to.
	FilePath string `json:"filePath"`

	// StartLine is the 1-based first line replaced (inclusive).
	StartLine int `json:"startLine"`

	// StartColumn is the 1-based column the edit conceptually starts at.
	StartColumn int `json:"startColumn"`

	// EndLine is the 1-based line the replacement ends before (exclusive).
	EndLine int `json:"endLine"`

	// EndColumn is the 1-based column the edit conceptually ends at.
	EndColumn int `json:"endColumn"`

	// NewText is the replacement text; lines are split on newlines.
	// Empty text deletes the range.
	NewText string `json:"newText"`
}

// Fix groups the text edits that resolve one diagnostic.
type Fix struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Preferred   bool       `json:"preferred"`
	Confidence  float64    `json:"confidence"`
	Edits       []TextEdit `json:"edits"`
}
