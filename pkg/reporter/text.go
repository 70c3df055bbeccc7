package reporter

import (
	"bufio"
	"context"
	"fmt"
	"slices"

	"github.com/yaklabco/kmpcheck/internal/ui/pretty"
	"github.com/yaklabco/kmpcheck/pkg/analyze"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Diagnostics) == 0 {
		if r.opts.ShowSummary {
			scanned := 0
			if result != nil {
				scanned = result.FilesScanned
			}
			fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(analyze.ComputeStats(nil, scanned)))
		}
		return 0, nil
	}

	var total int
	if r.opts.GroupByFile {
		total = r.reportGrouped(ctx, result)
	} else {
		total = r.reportFlat(ctx, result)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(
			analyze.ComputeStats(result.Diagnostics, result.FilesScanned)))
	}

	return total, nil
}

// reportGrouped writes diagnostics grouped by file.
func (r *TextReporter) reportGrouped(_ context.Context, result *Result) int {
	var total int

	grouped := analyze.GroupByFile(result.Diagnostics)
	files := make([]string, 0, len(grouped))
	for file := range grouped {
		files = append(files, file)
	}
	slices.Sort(files)
	for _, file := range files {
		diags := grouped[file]
		path := displayPath(file, r.opts.WorkingDir)
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(diags)))

		for i := range diags {
			d := diags[i]
			d.Location.FilePath = path
			fmt.Fprint(r.bw, r.styles.FormatDiagnostic(&d, r.opts.ShowSnippets))
			total++
		}

		// Blank line between files
		fmt.Fprintln(r.bw)
	}

	return total
}

// reportFlat writes diagnostics without grouping.
func (r *TextReporter) reportFlat(_ context.Context, result *Result) int {
	var total int

	for i := range result.Diagnostics {
		d := result.Diagnostics[i]
		d.Location.FilePath = displayPath(d.Location.FilePath, r.opts.WorkingDir)
		fmt.Fprint(r.bw, r.styles.FormatDiagnostic(&d, r.opts.ShowSnippets))
		total++
	}

	return total
}
