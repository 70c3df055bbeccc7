package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/kmpcheck/pkg/analyze"
	"github.com/yaklabco/kmpcheck/pkg/config"
)

// FormatDiagnostic formats a single diagnostic for terminal output.
func (s *Styles) FormatDiagnostic(diag *analyze.Diagnostic, showSnippet bool) string {
	var builder strings.Builder

	// Location: path:line:col
	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(diag.Location.FilePath),
		diag.Location.Span.StartLine,
		diag.Location.Span.StartColumn,
	)

	severity := s.FormatSeverity(diag.Severity)
	analyzerDisplay := s.AnalyzerID.Render("(" + diag.Analyzer + ")")

	// Main line: location  severity  message  (analyzer)
	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		severity,
		s.Message.Render(diag.Message),
		analyzerDisplay,
	))

	if showSnippet && diag.Snippet != "" {
		builder.WriteString(s.FormatSourceContext(diag.Snippet, diag.Location.Span.StartColumn))
	}

	if diag.Explanation != "" {
		builder.WriteString("    " + s.Dim.Render("Note:") + " " +
			s.Snippet.Render(diag.Explanation) + "\n")
	}

	if diag.HasFix() {
		builder.WriteString("    " + s.Success.Render("fix available") + "\n")
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	case config.SeverityHint:
		return s.Hint.Render("hint")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	// Indent to align with diagnostic output
	const indent = "        "

	builder.WriteString(indent + s.Snippet.Render(line) + "\n")

	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		noun := "issues"
		if issueCount == 1 {
			noun = "issue"
		}
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", issueCount, noun))
	}
	return header
}

// FormatDiff renders a unified diff with per-line-kind coloring.
func (s *Styles) FormatDiff(unified string) string {
	if unified == "" {
		return ""
	}

	var builder strings.Builder
	for _, line := range strings.Split(strings.TrimSuffix(unified, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "--- "), strings.HasPrefix(line, "+++ "):
			builder.WriteString(s.DiffHeader.Render(line))
		case strings.HasPrefix(line, "@@"):
			builder.WriteString(s.DiffHunk.Render(line))
		case strings.HasPrefix(line, "+"):
			builder.WriteString(s.DiffAdd.Render(line))
		case strings.HasPrefix(line, "-"):
			builder.WriteString(s.DiffRemove.Render(line))
		default:
			builder.WriteString(s.DiffContext.Render(line))
		}
		builder.WriteString("\n")
	}
	return builder.String()
}
