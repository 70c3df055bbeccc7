package analyzers

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/kmpcheck/internal/logging"
	"github.com/yaklabco/kmpcheck/pkg/analyze"
	"github.com/yaklabco/kmpcheck/pkg/config"
	"github.com/yaklabco/kmpcheck/pkg/diff"
	"github.com/yaklabco/kmpcheck/pkg/index"
)

// allowedDispatcher is the replacement for dispatchers that are
// unavailable or unsafe in shared code targeting Kotlin/Native.
const allowedDispatcher = "Dispatchers.Default"

// dispatcherFixConfidence reflects that the token swap is almost always
// right but the surrounding coroutine scope may still need review.
const dispatcherFixConfidence = 0.85

var (
	disallowedDispatcherRe = regexp.MustCompile(`Dispatchers\.(Main|IO)\b`)
	threadPrimitiveRe      = regexp.MustCompile(`\bThread\s*\(|\bsynchronized\s*\(|\bThread\.sleep\b`)
	atomicTypeRe           = regexp.MustCompile(`\bAtomic(Int|Integer|Long|Boolean|Reference)\b`)
)

// NativeThreadSafetyAnalyzer scans shared code for concurrency
// constructs that break on the single-threaded Kotlin/Native target.
type NativeThreadSafetyAnalyzer struct {
	Store  index.Store
	Reader analyze.FileReader
	RepoID string
	Logger *log.Logger
}

// NewNativeThreadSafetyAnalyzer creates the analyzer.
func NewNativeThreadSafetyAnalyzer(store index.Store, reader analyze.FileReader, repoID string, logger *log.Logger) *NativeThreadSafetyAnalyzer {
	return &NativeThreadSafetyAnalyzer{Store: store, Reader: reader, RepoID: repoID, Logger: logger}
}

// Name implements analyze.Analyzer.
func (a *NativeThreadSafetyAnalyzer) Name() string { return "native-thread-safety" }

// Category implements analyze.Analyzer.
func (a *NativeThreadSafetyAnalyzer) Category() string { return "concurrency" }

// Analyze implements analyze.Analyzer. Returns immediately when the
// repository has no Kotlin/Native source set: without that target the
// scanned constructs are harmless and the file scan is wasted work.
func (a *NativeThreadSafetyAnalyzer) Analyze(ctx context.Context, _ string) ([]analyze.Diagnostic, error) {
	if !hasPlatformTarget(a.Store, a.RepoID, index.PlatformNative) {
		return nil, nil
	}

	var diags []analyze.Diagnostic
	for _, file := range commonFiles(a.Store, a.RepoID) {
		if err := ctx.Err(); err != nil {
			return diags, fmt.Errorf("thread-safety scan cancelled: %w", err)
		}

		content, err := a.Reader.ReadFile(file.Path)
		if err != nil {
			if a.Logger != nil {
				a.Logger.Debug("file unavailable, skipping",
					logging.FieldFile, file.Path, logging.FieldError, err)
			}
			continue
		}

		diags = append(diags, a.scanFile(file, content)...)
	}
	return diags, nil
}

// scanFile runs the three checks line by line. The checks are
// independent: all three can fire on the same line.
func (a *NativeThreadSafetyAnalyzer) scanFile(file index.IndexedFile, content string) []analyze.Diagnostic {
	var diags []analyze.Diagnostic

	for lineIdx, line := range strings.Split(content, "\n") {
		lineNum := lineIdx + 1

		if token := disallowedDispatcherRe.FindString(line); token != "" {
			diags = append(diags, a.dispatcherDiagnostic(file, lineNum, line, token))
		}

		if threadPrimitiveRe.MatchString(line) {
			id := analyze.DiagnosticID(a.Name()+"/thread-primitive", file.RelPath, lineNum)
			diags = append(diags, analyze.NewDiagnostic(id, a.Name(), a.Category(),
				"thread or synchronized primitive in shared code").
				WithSeverity(config.SeverityError).
				WithExplanation("JVM threading primitives do not exist on Kotlin/Native. Use coroutines and structured concurrency instead.").
				WithSnippet(strings.TrimSpace(line)).
				WithLocation(a.location(file, lineNum, line)).
				WithTags(analyze.TagCrossPlatform).
				Build())
		}

		if atomicTypeRe.MatchString(line) {
			id := analyze.DiagnosticID(a.Name()+"/atomic", file.RelPath, lineNum)
			diags = append(diags, analyze.NewDiagnostic(id, a.Name(), a.Category(),
				"atomic type in shared code targeting a single-threaded platform").
				WithSeverity(config.SeverityWarning).
				WithExplanation("Atomic wrappers are harmless but pointless on a single-threaded target and usually signal JVM-centric design leaking into shared code.").
				WithSnippet(strings.TrimSpace(line)).
				WithLocation(a.location(file, lineNum, line)).
				WithTags(analyze.TagCrossPlatform).
				Build())
		}
	}

	return diags
}

func (a *NativeThreadSafetyAnalyzer) dispatcherDiagnostic(file index.IndexedFile, lineNum int, line, token string) analyze.Diagnostic {
	id := analyze.DiagnosticID(a.Name()+"/dispatcher", file.RelPath, lineNum)

	fixed := strings.Replace(line, token, allowedDispatcher, 1)
	fix := diff.Fix{
		Title:       fmt.Sprintf("Replace %s with %s", token, allowedDispatcher),
		Description: fmt.Sprintf("%s is not available in shared code on Kotlin/Native; %s works on every target.", token, allowedDispatcher),
		Preferred:   true,
		Confidence:  dispatcherFixConfidence,
		Edits: []diff.TextEdit{{
			FilePath:  file.Path,
			StartLine: lineNum,
			EndLine:   lineNum + 1,
			NewText:   fixed,
		}},
	}

	return analyze.NewDiagnostic(id, a.Name(), a.Category(),
		fmt.Sprintf("%s is not available on Kotlin/Native", token)).
		WithSeverity(config.SeverityError).
		WithExplanation("Dispatchers.Main and Dispatchers.IO are JVM/Android dispatchers. Shared code compiled for Kotlin/Native must use Dispatchers.Default or inject a platform dispatcher through an expect declaration.").
		WithSnippet(strings.TrimSpace(line)).
		WithLocation(a.location(file, lineNum, line)).
		WithTags(analyze.TagFixable, analyze.TagCrossPlatform).
		WithFix(fix).
		Build()
}

func (a *NativeThreadSafetyAnalyzer) location(file index.IndexedFile, lineNum int, line string) analyze.Location {
	return analyze.Location{
		FilePath:   file.Path,
		ModulePath: file.ModulePath,
		SourceSet:  file.SourceSetName,
		Span: index.Span{
			StartLine:   lineNum,
			StartColumn: 1,
			EndLine:     lineNum,
			EndColumn:   len(line) + 1,
		},
	}
}

// hasPlatformTarget reports whether any module has a source set tagged
// for the given platform.
func hasPlatformTarget(store index.Store, repoID, platform string) bool {
	for _, mod := range store.Modules(repoID) {
		for _, ss := range store.SourceSets(mod.Path) {
			if ss.Platform == platform {
				return true
			}
		}
	}
	return false
}

// commonFiles returns the indexed files of every shared source set.
func commonFiles(store index.Store, repoID string) []index.IndexedFile {
	var names []string
	for _, mod := range store.Modules(repoID) {
		for _, ss := range store.SourceSets(mod.Path) {
			if ss.Platform == index.PlatformCommon {
				names = append(names, ss.Name)
			}
		}
	}
	return store.FilesInSourceSets(repoID, names)
}
