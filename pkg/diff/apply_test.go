package diff_test

import (
	"testing"

	"github.com/yaklabco/kmpcheck/pkg/diff"
)

func TestApplyEdits(t *testing.T) {
	t.Parallel()

	t.Run("no edits returns input unchanged", func(t *testing.T) {
		t.Parallel()

		lines := []string{"a", "b"}
		got, err := diff.ApplyEdits(lines, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertLines(t, got, []string{"a", "b"})
	})

	t.Run("replaces a single line", func(t *testing.T) {
		t.Parallel()

		got, err := diff.ApplyEdits([]string{"a", "b", "c"}, []diff.TextEdit{
			{StartLine: 2, EndLine: 3, NewText: "B\n"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertLines(t, got, []string{"a", "B", "c"})
	})

	t.Run("inserts at top of file", func(t *testing.T) {
		t.Parallel()

		got, err := diff.ApplyEdits([]string{"a", "b"}, []diff.TextEdit{
			{StartLine: 1, EndLine: 0, NewText: "header\n"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertLines(t, got, []string{"header", "a", "b"})
	})

	t.Run("deletes a range with empty replacement", func(t *testing.T) {
		t.Parallel()

		got, err := diff.ApplyEdits([]string{"a", "b", "c", "d"}, []diff.TextEdit{
			{StartLine: 2, EndLine: 4, NewText: ""},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertLines(t, got, []string{"a", "d"})
	})

	t.Run("multiple edits apply descending so line numbers stay valid", func(t *testing.T) {
		t.Parallel()

		got, err := diff.ApplyEdits([]string{"a", "b", "c", "d"}, []diff.TextEdit{
			{StartLine: 1, EndLine: 2, NewText: "A\n"},
			{StartLine: 4, EndLine: 5, NewText: "D1\nD2\n"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertLines(t, got, []string{"A", "b", "c", "D1", "D2"})
	})

	t.Run("single-line edit preserves the following line", func(t *testing.T) {
		t.Parallel()

		// The {n, n+1} shape analyzers emit for one-line fixes.
		got, err := diff.ApplyEdits(
			[]string{"val x = Dispatchers.IO", "val keepMe = 1"},
			[]diff.TextEdit{
				{StartLine: 1, EndLine: 2, NewText: "val x = Dispatchers.Default\n"},
			})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertLines(t, got, []string{"val x = Dispatchers.Default", "val keepMe = 1"})
	})

	t.Run("single-line edit on the last line of the file", func(t *testing.T) {
		t.Parallel()

		got, err := diff.ApplyEdits([]string{"a", "b", "c"}, []diff.TextEdit{
			{StartLine: 3, EndLine: 4, NewText: "C\n"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertLines(t, got, []string{"a", "b", "C"})
	})

	t.Run("insertion into an empty file", func(t *testing.T) {
		t.Parallel()

		got, err := diff.ApplyEdits(nil, []diff.TextEdit{
			{StartLine: 1, EndLine: 0, NewText: "actual fun now(): Long\n"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertLines(t, got, []string{"actual fun now(): Long"})
	})

	t.Run("out of bounds range fails without partial result", func(t *testing.T) {
		t.Parallel()

		_, err := diff.ApplyEdits([]string{"a"}, []diff.TextEdit{
			{StartLine: 5, EndLine: 6, NewText: "x\n"},
		})
		if err == nil {
			t.Fatal("expected error for out-of-bounds edit")
		}
	})
}

func TestApplyHunks(t *testing.T) {
	t.Parallel()

	t.Run("replays a replacement hunk", func(t *testing.T) {
		t.Parallel()

		hunks := diff.ComputeHunks([]string{"a", "b", "c"}, []string{"a", "x", "c"})
		got, err := diff.ApplyHunks([]string{"a", "b", "c"}, hunks)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertLines(t, got, []string{"a", "x", "c"})
	})

	t.Run("pure addition hunk against empty file", func(t *testing.T) {
		t.Parallel()

		hunk := diff.Hunk{
			OriginalStart: 0, OriginalCount: 0,
			ModifiedStart: 1, ModifiedCount: 2,
			Lines: []diff.Line{
				{Kind: diff.LineAdd, Content: "one"},
				{Kind: diff.LineAdd, Content: "two"},
			},
		}
		got, err := diff.ApplyHunks(nil, []diff.Hunk{hunk})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertLines(t, got, []string{"one", "two"})
	})

	t.Run("later hunks shift by earlier net delta", func(t *testing.T) {
		t.Parallel()

		original := make([]string, 20)
		modified := make([]string, 0, 22)
		for i := range original {
			original[i] = string(rune('a' + i))
		}
		modified = append(modified, original[:3]...)
		modified = append(modified, "ins1", "ins2")
		modified = append(modified, original[3:15]...)
		modified = append(modified, "tail-change")
		modified = append(modified, original[16:]...)

		hunks := diff.ComputeHunks(original, modified)
		got, err := diff.ApplyHunks(original, hunks)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertLines(t, got, modified)
	})

	t.Run("deletion overrunning file bounds fails", func(t *testing.T) {
		t.Parallel()

		hunk := diff.Hunk{
			OriginalStart: 1, OriginalCount: 2,
			ModifiedStart: 1, ModifiedCount: 0,
			Lines: []diff.Line{
				{Kind: diff.LineRemove, Content: "a"},
				{Kind: diff.LineRemove, Content: "b"},
			},
		}
		if _, err := diff.ApplyHunks([]string{"a"}, []diff.Hunk{hunk}); err == nil {
			t.Fatal("expected overrun error")
		}
	})
}

func TestSplitJoinLines(t *testing.T) {
	t.Parallel()

	if got := diff.SplitLines(""); got != nil {
		t.Errorf("SplitLines(\"\") = %v; want nil", got)
	}
	assertLines(t, diff.SplitLines("a\nb\n"), []string{"a", "b"})
	assertLines(t, diff.SplitLines("a\nb"), []string{"a", "b"})

	if got := diff.JoinLines(nil); got != "" {
		t.Errorf("JoinLines(nil) = %q; want empty", got)
	}
	if got := diff.JoinLines([]string{"a", "b"}); got != "a\nb\n" {
		t.Errorf("JoinLines = %q; want %q", got, "a\nb\n")
	}
}

func assertLines(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("line count = %d; want %d\ngot: %v\nwant: %v", len(got), len(want), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q; want %q", i+1, got[i], want[i])
		}
	}
}
