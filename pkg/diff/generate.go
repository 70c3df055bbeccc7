package diff

import (
	"fmt"
	"strings"
)

// contextLines is the number of context lines emitted around changes.
const contextLines = 3

// GenerateDiff creates a unified diff between two line sequences.
// Returns the empty string when the sequences are identical.
func GenerateDiff(pathA, pathB string, original, modified []string) string {
	hunks := ComputeHunks(original, modified)
	if len(hunks) == 0 {
		return ""
	}
	return renderFileDiff(pathA, pathB, hunks)
}

// ComputeHunks computes diff hunks using the LCS-based algorithm.
// Hunks with zero non-context lines are discarded.
func ComputeHunks(orig, mod []string) []Hunk {
	if linesEqual(orig, mod) {
		return nil
	}

	lcs := longestCommonSubsequence(orig, mod)
	ops := buildDiffOps(orig, mod, lcs)
	if len(ops) == 0 {
		return nil
	}

	return groupIntoHunks(ops)
}

// renderFileDiff writes one file's diff section with headers.
func renderFileDiff(pathA, pathB string, hunks []Hunk) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n", strings.TrimPrefix(pathA, "/"))
	fmt.Fprintf(&builder, "+++ b/%s\n", strings.TrimPrefix(pathB, "/"))
	writeHunks(&builder, hunks)
	return builder.String()
}

// writeHunks renders hunks in standard unified form.
func writeHunks(builder *strings.Builder, hunks []Hunk) {
	for _, hunk := range hunks {
		fmt.Fprintf(builder, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)

		for _, line := range hunk.Lines {
			switch line.Kind {
			case LineContext:
				fmt.Fprintf(builder, " %s\n", line.Content)
			case LineAdd:
				fmt.Fprintf(builder, "+%s\n", line.Content)
			case LineRemove:
				fmt.Fprintf(builder, "-%s\n", line.Content)
			}
		}
	}
}

// linesEqual compares two string slices for equality.
func linesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// diffOp is a single diff operation before hunk grouping.
type diffOp struct {
	kind    LineKind
	content string
}

// buildDiffOps walks both sequences against the LCS trace, emitting
// context for matched lines and add/remove runs where they diverge.
func buildDiffOps(orig, mod, lcs []string) []diffOp {
	var ops []diffOp
	origIdx, modIdx, lcsIdx := 0, 0, 0

	for origIdx < len(orig) || modIdx < len(mod) {
		if lcsIdx < len(lcs) &&
			origIdx < len(orig) && modIdx < len(mod) &&
			orig[origIdx] == lcs[lcsIdx] && mod[modIdx] == lcs[lcsIdx] {
			ops = append(ops, diffOp{kind: LineContext, content: orig[origIdx]})
			origIdx++
			modIdx++
			lcsIdx++
			continue
		}

		for origIdx < len(orig) && (lcsIdx >= len(lcs) || orig[origIdx] != lcs[lcsIdx]) {
			ops = append(ops, diffOp{kind: LineRemove, content: orig[origIdx]})
			origIdx++
		}

		for modIdx < len(mod) && (lcsIdx >= len(lcs) || mod[modIdx] != lcs[lcsIdx]) {
			ops = append(ops, diffOp{kind: LineAdd, content: mod[modIdx]})
			modIdx++
		}
	}

	return ops
}

// groupIntoHunks groups diff operations into hunks with context lines.
// Changes closer than 2*contextLines merge into a single hunk.
func groupIntoHunks(ops []diffOp) []Hunk {
	type changeRange struct {
		start, end int // indices into ops
	}

	var ranges []changeRange
	inChange := false
	rangeStart := 0

	for opIdx, op := range ops {
		isChange := op.kind != LineContext
		if isChange && !inChange {
			rangeStart = opIdx
			inChange = true
		} else if !isChange && inChange {
			ranges = append(ranges, changeRange{rangeStart, opIdx})
			inChange = false
		}
	}
	if inChange {
		ranges = append(ranges, changeRange{rangeStart, len(ops)})
	}

	if len(ranges) == 0 {
		return nil
	}

	var hunks []Hunk
	for rangeIdx := 0; rangeIdx < len(ranges); {
		mergeEnd := rangeIdx + 1
		for mergeEnd < len(ranges) {
			gap := ranges[mergeEnd].start - ranges[mergeEnd-1].end
			if gap > contextLines*2 {
				break
			}
			mergeEnd++
		}

		hunk := buildHunk(ops, ranges[rangeIdx].start, ranges[mergeEnd-1].end)
		if len(hunk.Lines) > 0 {
			hunks = append(hunks, hunk)
		}

		rangeIdx = mergeEnd
	}

	return hunks
}

// buildHunk builds a single hunk from ops[changeStart:changeEnd],
// expanded by up to contextLines on both sides (clamped to bounds).
func buildHunk(ops []diffOp, changeStart, changeEnd int) Hunk {
	start := changeStart - contextLines
	if start < 0 {
		start = 0
	}
	end := changeEnd + contextLines
	if end > len(ops) {
		end = len(ops)
	}

	hunk := Hunk{}

	origStart := 1
	modStart := 1
	for opIdx := 0; opIdx < start; opIdx++ {
		if ops[opIdx].kind != LineAdd {
			origStart++
		}
		if ops[opIdx].kind != LineRemove {
			modStart++
		}
	}
	hunk.OriginalStart = origStart
	hunk.ModifiedStart = modStart

	for i := start; i < end; i++ {
		op := ops[i]
		hunk.Lines = append(hunk.Lines, Line{Kind: op.kind, Content: op.content})

		switch op.kind {
		case LineContext:
			hunk.OriginalCount++
			hunk.ModifiedCount++
		case LineRemove:
			hunk.OriginalCount++
		case LineAdd:
			hunk.ModifiedCount++
		}
	}

	// A zero-count range names the line it follows, so patch tooling
	// renders pure insertions as `-0,0` and pure deletions as `+0,0`.
	if hunk.OriginalCount == 0 {
		hunk.OriginalStart = origStart - 1
	}
	if hunk.ModifiedCount == 0 {
		hunk.ModifiedStart = modStart - 1
	}

	return hunk
}

// longestCommonSubsequence computes the LCS of two string slices using
// the classic O(n*m) table with backtracking. Fine for single files;
// repository-scale callers should batch per file.
func longestCommonSubsequence(orig, mod []string) []string {
	origLen, modLen := len(orig), len(mod)
	if origLen == 0 || modLen == 0 {
		return nil
	}

	dp := make([][]int, origLen+1)
	for idx := range dp {
		dp[idx] = make([]int, modLen+1)
	}

	for row := 1; row <= origLen; row++ {
		for col := 1; col <= modLen; col++ {
			if orig[row-1] == mod[col-1] {
				dp[row][col] = dp[row-1][col-1] + 1
			} else {
				dp[row][col] = max(dp[row-1][col], dp[row][col-1])
			}
		}
	}

	lcsLen := dp[origLen][modLen]
	if lcsLen == 0 {
		return nil
	}

	lcs := make([]string, lcsLen)
	row, col, idx := origLen, modLen, lcsLen-1
	for row > 0 && col > 0 {
		switch {
		case orig[row-1] == mod[col-1]:
			lcs[idx] = orig[row-1]
			row--
			col--
			idx--
		case dp[row-1][col] > dp[row][col-1]:
			row--
		default:
			col--
		}
	}

	return lcs
}
