package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/kmpcheck/pkg/analyze"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version     string               `json:"version"`
	RepoPath    string               `json:"repoPath,omitempty"`
	Diagnostics []analyze.Diagnostic `json:"diagnostics"`
	Summary     JSONSummary          `json:"summary"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesScanned    int            `json:"filesScanned"`
	FilesWithIssues int            `json:"filesWithIssues"`
	TotalIssues     int            `json:"totalIssues"`
	Fixable         int            `json:"fixable"`
	BySeverity      map[string]int `json:"bySeverity"`
	DurationMillis  int64          `json:"durationMillis,omitempty"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalIssues, nil
}

func (r *JSONReporter) buildOutput(result *Result) *JSONOutput {
	output := &JSONOutput{
		Version:     "1.0.0",
		Diagnostics: make([]analyze.Diagnostic, 0),
		Summary: JSONSummary{
			BySeverity: make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	output.RepoPath = result.RepoPath
	output.Summary.DurationMillis = result.Duration.Milliseconds()

	stats := analyze.ComputeStats(result.Diagnostics, result.FilesScanned)
	output.Summary.FilesScanned = stats.FilesScanned
	output.Summary.FilesWithIssues = stats.FilesWithIssues
	output.Summary.TotalIssues = stats.DiagnosticsTotal
	output.Summary.Fixable = stats.DiagnosticsFixable
	output.Summary.BySeverity = stats.BySeverity

	if len(result.Diagnostics) > 0 {
		output.Diagnostics = make([]analyze.Diagnostic, 0, len(result.Diagnostics))
	}
	for _, d := range result.Diagnostics {
		d.Location.FilePath = displayPath(d.Location.FilePath, r.opts.WorkingDir)
		output.Diagnostics = append(output.Diagnostics, d)
	}

	return output
}
