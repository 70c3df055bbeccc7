package analyze

// Stats aggregates a run's findings for summary output.
type Stats struct {
	FilesScanned       int
	FilesWithIssues    int
	DiagnosticsTotal   int
	DiagnosticsFixable int
	BySeverity         map[string]int
}

// ComputeStats derives Stats from a diagnostic slice. filesScanned is
// supplied by the caller since clean files leave no trace in the
// diagnostics themselves.
func ComputeStats(diagnostics []Diagnostic, filesScanned int) Stats {
	stats := Stats{
		FilesScanned: filesScanned,
		BySeverity:   make(map[string]int),
	}

	seen := make(map[string]struct{})
	for i := range diagnostics {
		d := &diagnostics[i]
		stats.DiagnosticsTotal++
		stats.BySeverity[string(d.Severity)]++
		if d.HasFix() {
			stats.DiagnosticsFixable++
		}
		if _, ok := seen[d.Location.FilePath]; !ok {
			seen[d.Location.FilePath] = struct{}{}
			stats.FilesWithIssues++
		}
	}

	return stats
}
