package analyzers_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/kmpcheck/internal/logging"
	"github.com/yaklabco/kmpcheck/pkg/analyze"
	"github.com/yaklabco/kmpcheck/pkg/analyze/analyzers"
	"github.com/yaklabco/kmpcheck/pkg/config"
)

func TestNativeThreadSafetyAnalyzer(t *testing.T) {
	t.Parallel()

	t.Run("disallowed dispatcher produces a fixable error", func(t *testing.T) {
		t.Parallel()

		content := "package com.example\n\nval scope = CoroutineScope(Dispatchers.IO)\n"
		files := map[string]string{"src/commonMain/kotlin/Repo.kt": content}
		a := analyzers.NewNativeThreadSafetyAnalyzer(
			sharedCodeStore(files, true), fakeReader{files}, testRepoID, logging.New("error"))

		diags, err := a.Analyze(context.Background(), "/repo")
		require.NoError(t, err)
		require.Len(t, diags, 1)

		d := diags[0]
		assert.Equal(t, config.SeverityError, d.Severity)
		assert.Contains(t, d.Message, "Dispatchers.IO")
		assert.Equal(t, "val scope = CoroutineScope(Dispatchers.IO)", d.Snippet)
		assert.Equal(t, 3, d.Location.Span.StartLine)
		assert.True(t, d.HasTag(analyze.TagFixable))

		require.Len(t, d.Fixes, 1)
		fix := d.Fixes[0]
		assert.InDelta(t, 0.85, fix.Confidence, 0.001)

		require.Len(t, fix.Edits, 1)
		edit := fix.Edits[0]
		assert.Equal(t, 3, edit.StartLine)
		assert.Equal(t, 4, edit.EndLine, "edit replaces exactly the offending line")
		assert.Equal(t, "val scope = CoroutineScope(Dispatchers.Default)", edit.NewText)
	})

	t.Run("no native target short-circuits the scan", func(t *testing.T) {
		t.Parallel()

		files := map[string]string{
			"src/commonMain/kotlin/Repo.kt": "val d = Dispatchers.Main\nThread(runnable)\n",
		}
		a := analyzers.NewNativeThreadSafetyAnalyzer(
			sharedCodeStore(files, false), fakeReader{files}, testRepoID, logging.New("error"))

		diags, err := a.Analyze(context.Background(), "/repo")
		require.NoError(t, err)
		assert.Empty(t, diags, "without a native target the constructs are harmless")
	})

	t.Run("checks are independent on one line", func(t *testing.T) {
		t.Parallel()

		content := "synchronized(lock) { Dispatchers.Main; AtomicInt(0) }\n"
		files := map[string]string{"src/commonMain/kotlin/Mixed.kt": content}
		a := analyzers.NewNativeThreadSafetyAnalyzer(
			sharedCodeStore(files, true), fakeReader{files}, testRepoID, logging.New("error"))

		diags, err := a.Analyze(context.Background(), "/repo")
		require.NoError(t, err)
		require.Len(t, diags, 3)

		seen := make(map[string]bool, 3)
		for _, d := range diags {
			seen[d.ID] = true
			assert.Equal(t, 1, d.Location.Span.StartLine)
		}
		assert.Len(t, seen, 3, "each check emits its own diagnostic id")
	})

	t.Run("thread primitives error and atomics warn", func(t *testing.T) {
		t.Parallel()

		content := "val t = Thread(runnable)\nval counter = AtomicLong(0)\n"
		files := map[string]string{"src/commonMain/kotlin/Conc.kt": content}
		a := analyzers.NewNativeThreadSafetyAnalyzer(
			sharedCodeStore(files, true), fakeReader{files}, testRepoID, logging.New("error"))

		diags, err := a.Analyze(context.Background(), "/repo")
		require.NoError(t, err)
		require.Len(t, diags, 2)

		assert.Equal(t, config.SeverityError, diags[0].Severity)
		assert.False(t, diags[0].HasFix())
		assert.Equal(t, config.SeverityWarning, diags[1].Severity)
		assert.False(t, diags[1].HasFix())
	})

	t.Run("unreadable file is skipped", func(t *testing.T) {
		t.Parallel()

		files := map[string]string{"src/commonMain/kotlin/Gone.kt": "Dispatchers.IO"}
		a := analyzers.NewNativeThreadSafetyAnalyzer(
			sharedCodeStore(files, true), fakeReader{files: nil}, testRepoID, logging.New("error"))

		diags, err := a.Analyze(context.Background(), "/repo")
		require.NoError(t, err, "missing file content must not fail the analyzer")
		assert.Empty(t, diags)
	})
}
