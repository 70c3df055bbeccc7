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
	"github.com/yaklabco/kmpcheck/pkg/index"
)

// importFamily is one platform-specific import namespace that must not
// appear in shared code.
type importFamily struct {
	tag      string
	platform string
	re       *regexp.Regexp
}

var importFamilies = []importFamily{
	{tag: "jvm-import", platform: "JVM/Android",
		re: regexp.MustCompile(`^\s*import\s+(java\.|javax\.|android\.)`)},
	{tag: "native-import", platform: "iOS/Native",
		re: regexp.MustCompile(`^\s*import\s+(platform\.|kotlinx\.cinterop)`)},
	{tag: "js-import", platform: "JS",
		re: regexp.MustCompile(`^\s*import\s+(kotlinx\.browser\.|org\.w3c\.)`)},
}

// resourcePattern is a resource acquisition that needs a scoped-release
// idiom (`.use { }`) around it.
type resourcePattern struct {
	tag  string
	what string
	re   *regexp.Regexp
}

var resourcePatterns = []resourcePattern{
	{tag: "stream", what: "stream",
		re: regexp.MustCompile(`\b\w*(InputStream|OutputStream)\s*\(`)},
	{tag: "network-client", what: "network client",
		re: regexp.MustCompile(`\b(HttpClient|Socket|ServerSocket)\s*\(`)},
}

// scopedReleaseRe recognizes the Kotlin scoped-release idiom.
var scopedReleaseRe = regexp.MustCompile(`\.use\s*\{`)

// BoundaryImportAnalyzer scans shared code for platform-specific API
// usage: imports that only compile on one platform family, and
// resource acquisitions missing a scoped release.
type BoundaryImportAnalyzer struct {
	Store  index.Store
	Reader analyze.FileReader
	RepoID string
	Logger *log.Logger
}

// NewBoundaryImportAnalyzer creates the analyzer.
func NewBoundaryImportAnalyzer(store index.Store, reader analyze.FileReader, repoID string, logger *log.Logger) *BoundaryImportAnalyzer {
	return &BoundaryImportAnalyzer{Store: store, Reader: reader, RepoID: repoID, Logger: logger}
}

// Name implements analyze.Analyzer.
func (a *BoundaryImportAnalyzer) Name() string { return "boundary-imports" }

// Category implements analyze.Analyzer.
func (a *BoundaryImportAnalyzer) Category() string { return "api-misuse" }

// Analyze implements analyze.Analyzer. Matching is per physical line;
// multiple patterns matching one line emit distinct diagnostics, each
// carrying the line's trimmed text as its snippet.
func (a *BoundaryImportAnalyzer) Analyze(ctx context.Context, _ string) ([]analyze.Diagnostic, error) {
	var diags []analyze.Diagnostic

	for _, file := range commonFiles(a.Store, a.RepoID) {
		if err := ctx.Err(); err != nil {
			return diags, fmt.Errorf("boundary scan cancelled: %w", err)
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

func (a *BoundaryImportAnalyzer) scanFile(file index.IndexedFile, content string) []analyze.Diagnostic {
	var diags []analyze.Diagnostic

	for lineIdx, line := range strings.Split(content, "\n") {
		lineNum := lineIdx + 1
		snippet := strings.TrimSpace(line)

		for _, family := range importFamilies {
			if !family.re.MatchString(line) {
				continue
			}
			id := analyze.DiagnosticID(a.Name()+"/"+family.tag, file.RelPath, lineNum)
			diags = append(diags, analyze.NewDiagnostic(id, a.Name(), a.Category(),
				fmt.Sprintf("%s-specific import in shared code", family.platform)).
				WithSeverity(config.SeverityError).
				WithExplanation(fmt.Sprintf("This import only exists on %s, so the shared source set will not compile for the other platforms. Move the usage behind an expect/actual boundary.", family.platform)).
				WithSnippet(snippet).
				WithLocation(a.location(file, lineNum, line)).
				WithTags(analyze.TagCrossPlatform).
				Build())
		}

		if scopedReleaseRe.MatchString(line) {
			continue
		}
		for _, rp := range resourcePatterns {
			if !rp.re.MatchString(line) {
				continue
			}
			id := analyze.DiagnosticID(a.Name()+"/"+rp.tag, file.RelPath, lineNum)
			diags = append(diags, analyze.NewDiagnostic(id, a.Name(), a.Category(),
				fmt.Sprintf("%s constructed without a scoped release; ensure it is properly closed", rp.what)).
				WithSeverity(config.SeverityWarning).
				WithExplanation("Wrap the acquisition in `.use { }` so the resource is released on every path, including exceptions.").
				WithSnippet(snippet).
				WithLocation(a.location(file, lineNum, line)).
				Build())
		}
	}

	return diags
}

func (a *BoundaryImportAnalyzer) location(file index.IndexedFile, lineNum int, line string) analyze.Location {
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
