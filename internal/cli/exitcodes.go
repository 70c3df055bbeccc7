package cli

import "github.com/yaklabco/kmpcheck/pkg/analyze"

// Exit codes for kmpcheck.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitIssuesFound indicates analysis completed but found errors.
	ExitIssuesFound = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 2

	// ExitInternalError indicates an internal error.
	ExitInternalError = 3
)

// ExitCodeFromStats determines the exit code based on run statistics.
// In strict mode warnings also fail the run.
func ExitCodeFromStats(stats analyze.Stats, strict bool) int {
	if stats.BySeverity["error"] > 0 {
		return ExitIssuesFound
	}
	if strict && stats.BySeverity["warning"] > 0 {
		return ExitIssuesFound
	}
	return ExitSuccess
}
