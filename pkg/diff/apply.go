package diff

import (
	"fmt"
	"sort"
	"strings"
)

// ApplyEdits applies line-range edits to a line sequence. Edits are
// applied in descending start-line order so earlier edits never
// renumber later ones. Each edit replaces the 1-based, end-exclusive
// line range [StartLine, EndLine) with the lines of its replacement
// text; EndLine <= StartLine replaces nothing and inserts before
// StartLine.
//
// An edit whose range falls outside the sequence fails the whole
// operation; no partial result is returned.
func ApplyEdits(lines []string, edits []TextEdit) ([]string, error) {
	if len(edits) == 0 {
		return lines, nil
	}

	sorted := make([]TextEdit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartLine > sorted[j].StartLine
	})

	out := make([]string, len(lines))
	copy(out, lines)

	for _, edit := range sorted {
		start := edit.StartLine - 1
		end := edit.EndLine - 1
		if end < start {
			end = start
		}
		if start < 0 || end > len(out) {
			return nil, fmt.Errorf("edit range [%d,%d) outside file bounds (%d lines)",
				edit.StartLine, edit.EndLine, len(out))
		}

		var replacement []string
		if edit.NewText != "" {
			replacement = strings.Split(strings.TrimSuffix(edit.NewText, "\n"), "\n")
		}

		merged := make([]string, 0, len(out)-(end-start)+len(replacement))
		merged = append(merged, out[:start]...)
		merged = append(merged, replacement...)
		merged = append(merged, out[end:]...)
		out = merged
	}

	return out, nil
}

// ApplyHunks replays a parsed file's hunks against a line buffer.
// A running offset accumulates each hunk's net line-count delta so
// later hunks land correctly after earlier ones have shifted the file.
func ApplyHunks(lines []string, hunks []Hunk) ([]string, error) {
	out := make([]string, len(lines))
	copy(out, lines)

	offset := 0
	for hunkIdx, hunk := range hunks {
		pos := hunk.OriginalStart - 1 + offset
		if hunk.OriginalStart == 0 {
			// `@@ -0,0 +1,N @@`: pure insertion at the top of the file.
			pos = offset
		}
		if pos < 0 || pos > len(out) {
			return nil, fmt.Errorf("hunk %d start %d outside file bounds (%d lines)",
				hunkIdx+1, hunk.OriginalStart, len(out))
		}

		additions, deletions := 0, 0
		for _, line := range hunk.Lines {
			switch line.Kind {
			case LineContext:
				if pos >= len(out) {
					return nil, fmt.Errorf("hunk %d context overruns file at line %d", hunkIdx+1, pos+1)
				}
				pos++
			case LineRemove:
				if pos >= len(out) {
					return nil, fmt.Errorf("hunk %d deletion overruns file at line %d", hunkIdx+1, pos+1)
				}
				out = append(out[:pos], out[pos+1:]...)
				deletions++
			case LineAdd:
				out = append(out[:pos], append([]string{line.Content}, out[pos:]...)...)
				pos++
				additions++
			}
		}

		offset += additions - deletions
	}

	return out, nil
}

// ApplyFileDiff replays every hunk of a parsed file diff.
func ApplyFileDiff(lines []string, file FileDiff) ([]string, error) {
	return ApplyHunks(lines, file.Hunks)
}

// SplitLines splits file content into lines, dropping the trailing
// empty element produced by a final newline.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// JoinLines reassembles lines into file content with a trailing newline.
func JoinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
