package diff_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/kmpcheck/pkg/diff"
)

func TestGenerateDiff(t *testing.T) {
	t.Parallel()

	t.Run("returns empty string for identical content", func(t *testing.T) {
		t.Parallel()

		lines := []string{"hello", "world"}
		if got := diff.GenerateDiff("a.kt", "a.kt", lines, lines); got != "" {
			t.Errorf("expected empty diff, got:\n%s", got)
		}
	})

	t.Run("returns empty string for two empty files", func(t *testing.T) {
		t.Parallel()

		if got := diff.GenerateDiff("a.kt", "a.kt", nil, nil); got != "" {
			t.Errorf("expected empty diff, got:\n%s", got)
		}
	})

	t.Run("single line replacement produces one hunk", func(t *testing.T) {
		t.Parallel()

		original := []string{"a", "b", "c"}
		modified := []string{"a", "x", "c"}

		got := diff.GenerateDiff("f.kt", "f.kt", original, modified)

		want := "--- a/f.kt\n" +
			"+++ b/f.kt\n" +
			"@@ -1,3 +1,3 @@\n" +
			" a\n" +
			"-b\n" +
			"+x\n" +
			" c\n"
		if got != want {
			t.Errorf("diff mismatch\nwant:\n%s\ngot:\n%s", want, got)
		}
	})

	t.Run("detects addition", func(t *testing.T) {
		t.Parallel()

		original := []string{"line1", "line2"}
		modified := []string{"line1", "line2", "line3"}

		got := diff.GenerateDiff("f.kt", "f.kt", original, modified)
		if !strings.Contains(got, "+line3") {
			t.Errorf("expected diff to contain +line3, got:\n%s", got)
		}
	})

	t.Run("detects deletion", func(t *testing.T) {
		t.Parallel()

		original := []string{"line1", "line2", "line3"}
		modified := []string{"line1", "line3"}

		got := diff.GenerateDiff("f.kt", "f.kt", original, modified)
		if !strings.Contains(got, "-line2") {
			t.Errorf("expected diff to contain -line2, got:\n%s", got)
		}
	})

	t.Run("empty original renders a zero start", func(t *testing.T) {
		t.Parallel()

		got := diff.GenerateDiff("f.kt", "f.kt", nil, []string{"one", "two"})

		want := "--- a/f.kt\n" +
			"+++ b/f.kt\n" +
			"@@ -0,0 +1,2 @@\n" +
			"+one\n" +
			"+two\n"
		if got != want {
			t.Errorf("diff mismatch\nwant:\n%s\ngot:\n%s", want, got)
		}

		// The rendered text must replay through the parser.
		files, err := diff.ParseDiff(got)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		applied, err := diff.ApplyFileDiff(nil, files[0])
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertLines(t, applied, []string{"one", "two"})
	})

	t.Run("emptied file renders a zero modified start", func(t *testing.T) {
		t.Parallel()

		got := diff.GenerateDiff("f.kt", "f.kt", []string{"one", "two"}, nil)
		if !strings.Contains(got, "@@ -1,2 +0,0 @@") {
			t.Errorf("expected +0,0 range for a full deletion, got:\n%s", got)
		}
	})

	t.Run("distant changes produce separate hunks", func(t *testing.T) {
		t.Parallel()

		original := make([]string, 30)
		modified := make([]string, 30)
		for i := range original {
			original[i] = strings.Repeat("x", i+1)
			modified[i] = original[i]
		}
		modified[1] = "changed-early"
		modified[28] = "changed-late"

		got := diff.GenerateDiff("f.kt", "f.kt", original, modified)
		if count := strings.Count(got, "@@ -"); count != 2 {
			t.Errorf("expected 2 hunks, got %d:\n%s", count, got)
		}
	})

	t.Run("nearby changes merge into one hunk", func(t *testing.T) {
		t.Parallel()

		original := []string{"a", "b", "c", "d", "e", "f", "g"}
		modified := []string{"a", "B", "c", "d", "e", "F", "g"}

		got := diff.GenerateDiff("f.kt", "f.kt", original, modified)
		if count := strings.Count(got, "@@ -"); count != 1 {
			t.Errorf("expected 1 merged hunk, got %d:\n%s", count, got)
		}
	})
}

func TestComputeHunks(t *testing.T) {
	t.Parallel()

	t.Run("identical input yields no hunks", func(t *testing.T) {
		t.Parallel()

		if hunks := diff.ComputeHunks([]string{"a"}, []string{"a"}); hunks != nil {
			t.Errorf("expected nil hunks, got %v", hunks)
		}
	})

	t.Run("hunk counts cover context and changes", func(t *testing.T) {
		t.Parallel()

		hunks := diff.ComputeHunks([]string{"a", "b", "c"}, []string{"a", "x", "c"})
		if len(hunks) != 1 {
			t.Fatalf("expected 1 hunk, got %d", len(hunks))
		}

		h := hunks[0]
		if h.OriginalStart != 1 || h.OriginalCount != 3 {
			t.Errorf("original range = %d,%d; want 1,3", h.OriginalStart, h.OriginalCount)
		}
		if h.ModifiedStart != 1 || h.ModifiedCount != 3 {
			t.Errorf("modified range = %d,%d; want 1,3", h.ModifiedStart, h.ModifiedCount)
		}
		if len(h.Lines) != 4 {
			t.Errorf("expected 4 hunk lines, got %d", len(h.Lines))
		}
	})
}
