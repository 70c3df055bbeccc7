// Package analyzers contains the built-in kmpcheck analyzers.
package analyzers

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/kmpcheck/pkg/analyze"
	"github.com/yaklabco/kmpcheck/pkg/config"
	"github.com/yaklabco/kmpcheck/pkg/diff"
	"github.com/yaklabco/kmpcheck/pkg/index"
)

// ExpectActualAnalyzer reports expect declarations with missing or
// mismatched actual implementations.
type ExpectActualAnalyzer struct {
	Store  index.Store
	Logger *log.Logger
}

// NewExpectActualAnalyzer creates the analyzer.
func NewExpectActualAnalyzer(store index.Store, logger *log.Logger) *ExpectActualAnalyzer {
	return &ExpectActualAnalyzer{Store: store, Logger: logger}
}

// Name implements analyze.Analyzer.
func (a *ExpectActualAnalyzer) Name() string { return "expect-actual" }

// Category implements analyze.Analyzer.
func (a *ExpectActualAnalyzer) Category() string { return "cross-platform" }

// Analyze implements analyze.Analyzer. Missing actuals produce fixable
// errors proposing a stub implementation under the target platform's
// source set; signature mismatches produce warnings with no auto-fix.
func (a *ExpectActualAnalyzer) Analyze(ctx context.Context, _ string) ([]analyze.Diagnostic, error) {
	var diags []analyze.Diagnostic

	for _, mp := range a.Store.MissingPairings() {
		if err := ctx.Err(); err != nil {
			return diags, fmt.Errorf("pairing scan cancelled: %w", err)
		}
		diags = append(diags, a.missingDiagnostic(mp))
	}

	for _, p := range a.Store.AllPairings() {
		if !p.HasMismatch() {
			continue
		}
		id := analyze.DiagnosticID(a.Name()+"/mismatch", p.ExpectQualifiedName, 0)
		diags = append(diags, analyze.NewDiagnostic(id, a.Name(), a.Category(),
			fmt.Sprintf("actual for '%s' on %s does not match its expect declaration: %s",
				p.ExpectQualifiedName, p.Platform, p.MismatchReason)).
			WithSeverity(config.SeverityWarning).
			WithExplanation("The actual declaration exists but its signature diverges from the expect declaration, so the project will not compile for this platform. Align the signatures manually; the correct resolution depends on which side is authoritative.").
			WithTags(analyze.TagCrossPlatform).
			Build())
	}

	return diags, nil
}

func (a *ExpectActualAnalyzer) missingDiagnostic(mp index.MissingPairing) analyze.Diagnostic {
	platform := mp.Pairing.Platform
	id := analyze.DiagnosticID(a.Name(), mp.Pairing.ExpectQualifiedName+"@"+platform, mp.Span.StartLine)

	stubPath := actualStubPath(mp.FilePath, mp.SymbolName, platform)
	stub := actualStubBody(mp)

	fix := diff.Fix{
		Title:       fmt.Sprintf("Create actual '%s' for %s", mp.SymbolName, platform),
		Description: fmt.Sprintf("Generates a stub actual declaration at %s", stubPath),
		Preferred:   true,
		Confidence:  0.9,
		Edits: []diff.TextEdit{{
			FilePath:  stubPath,
			StartLine: 1,
			EndLine:   0, // pure insertion at top of (new) file
			NewText:   stub,
		}},
	}

	return analyze.NewDiagnostic(id, a.Name(), a.Category(),
		fmt.Sprintf("expect declaration '%s' has no actual implementation for platform %s",
			mp.SymbolName, platform)).
		WithSeverity(config.SeverityError).
		WithExplanation("Every expect declaration needs an actual implementation in each target platform's source set, otherwise compilation fails for that target.").
		WithLocation(analyze.Location{
			FilePath:   mp.FilePath,
			ModulePath: mp.ModulePath,
			Span:       mp.Span,
		}).
		WithTags(analyze.TagFixable, analyze.TagCrossPlatform).
		WithFix(fix).
		Build()
}

// actualStubPath synthesizes the path for a stub actual under the
// target platform's source set. When the expect file lives under a
// conventional commonMain tree the platform tree mirrors it; otherwise
// the stub lands in a fresh <platform>Main source root.
func actualStubPath(expectPath, symbolName, platform string) string {
	platformDir := platform + "Main"
	if strings.Contains(expectPath, "commonMain") {
		return strings.Replace(expectPath, "commonMain", platformDir, 1)
	}
	base := symbolName + ".kt"
	if expectPath != "" {
		base = filepath.Base(expectPath)
	}
	return filepath.Join("src", platformDir, "kotlin", base)
}

// actualStubBody renders a compilable stub for the missing actual.
func actualStubBody(mp index.MissingPairing) string {
	name := mp.SymbolName
	if name == "" {
		name = mp.Pairing.ExpectQualifiedName
	}

	switch mp.Kind {
	case index.KindClass:
		return fmt.Sprintf("actual class %s {\n    init {\n        TODO(\"Provide the %s actual for %s\")\n    }\n}\n",
			name, mp.Pairing.Platform, name)
	case index.KindObject:
		return fmt.Sprintf("actual object %s {\n    // TODO: provide the %s implementation\n}\n",
			name, mp.Pairing.Platform)
	case index.KindProperty:
		return fmt.Sprintf("actual val %s: Nothing\n    get() = TODO(\"Provide the %s actual for %s\")\n",
			name, mp.Pairing.Platform, name)
	default:
		return fmt.Sprintf("actual fun %s() {\n    TODO(\"Provide the %s actual for %s\")\n}\n",
			name, mp.Pairing.Platform, name)
	}
}
