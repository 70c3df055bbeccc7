// Package config defines core configuration types for kmpcheck.
// These types are pure data structures with no dependency on the loader.
package config

// Severity represents the severity level of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeverityHint    Severity = "hint"
)

// IsValid returns true if the severity is one of the known levels.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo, SeverityHint:
		return true
	default:
		return false
	}
}

// Priority represents the urgency of a refactor suggestion.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// AnalyzerConfig holds per-analyzer configuration options.
type AnalyzerConfig struct {
	Enabled  *bool          `mapstructure:"enabled" yaml:"enabled"`
	Severity *string        `mapstructure:"severity" yaml:"severity"`
	Options  map[string]any `mapstructure:"options" yaml:"options"`
}

// Config is the root configuration structure for kmpcheck.
type Config struct {
	// SeverityDefault is the severity for analyzers that don't specify one.
	SeverityDefault string `mapstructure:"severity_default" yaml:"severity_default"`

	// Analyzers contains per-analyzer configuration keyed by analyzer name.
	Analyzers map[string]AnalyzerConfig `mapstructure:"analyzers" yaml:"analyzers"`

	// Ignore contains glob patterns for files to skip during discovery.
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`

	// UndoDepth bounds the undo/redo stacks.
	UndoDepth int `mapstructure:"undo_depth" yaml:"undo_depth"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel analyzer workers.
	Jobs int `mapstructure:"-" yaml:"-"`

	// IndexPath points at the index snapshot directory.
	IndexPath string `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		SeverityDefault: string(SeverityWarning),
		Analyzers:       make(map[string]AnalyzerConfig),
		UndoDepth:       100,
		Format:          FormatText,
	}
}

// AnalyzerEnabled reports whether the named analyzer should run.
// Analyzers are enabled unless explicitly disabled.
func (c *Config) AnalyzerEnabled(name string) bool {
	ac, ok := c.Analyzers[name]
	if !ok || ac.Enabled == nil {
		return true
	}
	return *ac.Enabled
}
