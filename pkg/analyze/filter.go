package analyze

import (
	"regexp"
	"slices"

	"github.com/yaklabco/kmpcheck/pkg/config"
)

// Filter narrows a diagnostic list at query time. All criteria are
// AND-combined; an empty allow-set for any dimension means "no
// restriction on that dimension".
type Filter struct {
	// Severities is a severity allow-set.
	Severities []config.Severity

	// Categories is a category allow-set.
	Categories []string

	// Analyzers is a source-analyzer allow-set.
	Analyzers []string

	// PathPattern is a regular expression matched against file paths.
	PathPattern string

	// Modules is a module allow-set.
	Modules []string

	// RequiredTags must all be present on a diagnostic (superset check).
	RequiredTags []string

	// ExcludeInactive drops diagnostics whose Active flag is false.
	ExcludeInactive bool
}

// FilterDiagnostics applies a filter to a diagnostic list, preserving
// input order. An invalid PathPattern degrades to "no path restriction"
// rather than failing the query.
func FilterDiagnostics(diags []Diagnostic, f Filter) []Diagnostic {
	var pathRe *regexp.Regexp
	if f.PathPattern != "" {
		if re, err := regexp.Compile(f.PathPattern); err == nil {
			pathRe = re
		}
	}

	var out []Diagnostic
	for _, d := range diags {
		if len(f.Severities) > 0 && !slices.Contains(f.Severities, d.Severity) {
			continue
		}
		if len(f.Categories) > 0 && !slices.Contains(f.Categories, d.Category) {
			continue
		}
		if len(f.Analyzers) > 0 && !slices.Contains(f.Analyzers, d.Analyzer) {
			continue
		}
		if pathRe != nil && !pathRe.MatchString(d.Location.FilePath) {
			continue
		}
		if len(f.Modules) > 0 && !slices.Contains(f.Modules, d.Location.ModulePath) {
			continue
		}
		if !hasAllTags(&d, f.RequiredTags) {
			continue
		}
		if f.ExcludeInactive && !d.Active {
			continue
		}
		out = append(out, d)
	}
	return out
}

func hasAllTags(d *Diagnostic, required []string) bool {
	for _, tag := range required {
		if !d.HasTag(tag) {
			return false
		}
	}
	return true
}

// GroupByFile partitions diagnostics by file path, preserving input
// order within each group.
func GroupByFile(diags []Diagnostic) map[string][]Diagnostic {
	return groupBy(diags, func(d *Diagnostic) string { return d.Location.FilePath })
}

// GroupByCategory partitions diagnostics by category.
func GroupByCategory(diags []Diagnostic) map[string][]Diagnostic {
	return groupBy(diags, func(d *Diagnostic) string { return d.Category })
}

// GroupByModule partitions diagnostics by owning module.
func GroupByModule(diags []Diagnostic) map[string][]Diagnostic {
	return groupBy(diags, func(d *Diagnostic) string { return d.Location.ModulePath })
}

func groupBy(diags []Diagnostic, key func(*Diagnostic) string) map[string][]Diagnostic {
	groups := make(map[string][]Diagnostic)
	for _, d := range diags {
		k := key(&d)
		groups[k] = append(groups[k], d)
	}
	return groups
}
