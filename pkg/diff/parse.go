package diff

import (
	"fmt"
	"strconv"
	"strings"
)

// DevNull marks the absent side of a pure addition or deletion.
const DevNull = "/dev/null"

// ParseDiff parses unified diff text into per-file hunks. The parser is
// line-oriented: a `--- ` header finalizes the previous file (flushing
// any open hunk first), `@@` headers open hunks, and `+`/`-`/` `
// prefixes classify hunk body lines. Unrecognized lines outside hunks
// (git headers, rename markers) are skipped.
func ParseDiff(text string) ([]FileDiff, error) {
	var files []FileDiff
	var current *FileDiff
	var hunk *Hunk

	flushHunk := func() {
		if current != nil && hunk != nil {
			current.Hunks = append(current.Hunks, *hunk)
		}
		hunk = nil
	}
	flushFile := func() {
		flushHunk()
		if current != nil {
			files = append(files, *current)
		}
		current = nil
	}

	for _, raw := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(raw, "--- "):
			flushFile()
			current = &FileDiff{OriginalPath: parseHeaderPath(raw[4:], "a/")}

		case strings.HasPrefix(raw, "+++ "):
			if current == nil {
				return nil, fmt.Errorf("+++ header without preceding ---")
			}
			current.ModifiedPath = parseHeaderPath(raw[4:], "b/")

		case strings.HasPrefix(raw, "@@ "):
			if current == nil {
				return nil, fmt.Errorf("hunk header outside file section: %q", raw)
			}
			flushHunk()
			parsed, err := parseHunkHeader(raw)
			if err != nil {
				return nil, err
			}
			hunk = &parsed

		case hunk != nil && strings.HasPrefix(raw, "+"):
			hunk.Lines = append(hunk.Lines, Line{Kind: LineAdd, Content: raw[1:]})

		case hunk != nil && strings.HasPrefix(raw, "-"):
			hunk.Lines = append(hunk.Lines, Line{Kind: LineRemove, Content: raw[1:]})

		case hunk != nil && strings.HasPrefix(raw, " "):
			hunk.Lines = append(hunk.Lines, Line{Kind: LineContext, Content: raw[1:]})

		case hunk != nil && raw == "":
			// Blank context line with its leading space trimmed by
			// transport; treat as empty context only while mid-hunk.
			if hunkIncomplete(hunk) {
				hunk.Lines = append(hunk.Lines, Line{Kind: LineContext, Content: ""})
			}
		}
	}

	flushFile()
	return files, nil
}

// hunkIncomplete reports whether the hunk still expects body lines
// according to its header counts.
func hunkIncomplete(h *Hunk) bool {
	orig, mod := 0, 0
	for _, line := range h.Lines {
		switch line.Kind {
		case LineContext:
			orig++
			mod++
		case LineRemove:
			orig++
		case LineAdd:
			mod++
		}
	}
	return orig < h.OriginalCount || mod < h.ModifiedCount
}

// parseHeaderPath strips the a/ or b/ prefix from a file header path.
func parseHeaderPath(raw, prefix string) string {
	path := strings.TrimSpace(raw)
	// Drop an optional timestamp after a tab (classic diff output).
	if tab := strings.IndexByte(path, '\t'); tab >= 0 {
		path = path[:tab]
	}
	if path == DevNull {
		return DevNull
	}
	return strings.TrimPrefix(path, prefix)
}

// parseHunkHeader parses `@@ -origStart,origCount +modStart,modCount @@`.
// Single-line ranges may omit the count (`@@ -3 +3 @@`).
func parseHunkHeader(raw string) (Hunk, error) {
	trimmed := strings.TrimPrefix(raw, "@@ ")
	end := strings.Index(trimmed, " @@")
	if end < 0 {
		return Hunk{}, fmt.Errorf("malformed hunk header: %q", raw)
	}

	parts := strings.Fields(trimmed[:end])
	if len(parts) != 2 || !strings.HasPrefix(parts[0], "-") || !strings.HasPrefix(parts[1], "+") {
		return Hunk{}, fmt.Errorf("malformed hunk header: %q", raw)
	}

	origStart, origCount, err := parseRange(parts[0][1:])
	if err != nil {
		return Hunk{}, fmt.Errorf("malformed hunk header %q: %w", raw, err)
	}
	modStart, modCount, err := parseRange(parts[1][1:])
	if err != nil {
		return Hunk{}, fmt.Errorf("malformed hunk header %q: %w", raw, err)
	}

	return Hunk{
		OriginalStart: origStart,
		OriginalCount: origCount,
		ModifiedStart: modStart,
		ModifiedCount: modCount,
	}, nil
}

// parseRange parses "start,count" or bare "start" (count defaults to 1).
func parseRange(raw string) (start, count int, err error) {
	startStr, countStr, hasCount := strings.Cut(raw, ",")
	start, err = strconv.Atoi(startStr)
	if err != nil {
		return 0, 0, fmt.Errorf("bad line number %q", startStr)
	}
	if !hasCount {
		return start, 1, nil
	}
	count, err = strconv.Atoi(countStr)
	if err != nil {
		return 0, 0, fmt.Errorf("bad line count %q", countStr)
	}
	return start, count, nil
}
