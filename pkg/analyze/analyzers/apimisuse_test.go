package analyzers_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/kmpcheck/internal/logging"
	"github.com/yaklabco/kmpcheck/pkg/analyze/analyzers"
	"github.com/yaklabco/kmpcheck/pkg/config"
)

func boundaryAnalyzer(files map[string]string) *analyzers.BoundaryImportAnalyzer {
	return analyzers.NewBoundaryImportAnalyzer(
		sharedCodeStore(files, true), fakeReader{files}, testRepoID, logging.New("error"))
}

func TestBoundaryImportAnalyzer(t *testing.T) {
	t.Parallel()

	t.Run("platform imports in shared code error", func(t *testing.T) {
		t.Parallel()

		content := strings.Join([]string{
			"package com.example",
			"",
			"import java.io.File",
			"import platform.Foundation.NSDate",
			"import kotlinx.browser.window",
			"import kotlinx.coroutines.flow.Flow",
		}, "\n")
		files := map[string]string{"src/commonMain/kotlin/Imports.kt": content}

		diags, err := boundaryAnalyzer(files).Analyze(context.Background(), "/repo")
		require.NoError(t, err)
		require.Len(t, diags, 3, "the multiplatform import stays legal")

		for _, d := range diags {
			assert.Equal(t, config.SeverityError, d.Severity)
			assert.Equal(t, "api-misuse", d.Category)
		}
		assert.Contains(t, diags[0].Message, "JVM/Android")
		assert.Contains(t, diags[1].Message, "iOS/Native")
		assert.Contains(t, diags[2].Message, "JS")
	})

	t.Run("resource without scoped release warns", func(t *testing.T) {
		t.Parallel()

		content := "val data = FileInputStream(path).readBytes()\n"
		files := map[string]string{"src/commonMain/kotlin/Res.kt": content}

		diags, err := boundaryAnalyzer(files).Analyze(context.Background(), "/repo")
		require.NoError(t, err)
		require.Len(t, diags, 1)

		d := diags[0]
		assert.Equal(t, config.SeverityWarning, d.Severity)
		assert.Contains(t, d.Message, "stream")
		assert.Equal(t, "val data = FileInputStream(path).readBytes()", d.Snippet)
	})

	t.Run("scoped release silences the resource check", func(t *testing.T) {
		t.Parallel()

		content := "val data = FileInputStream(path).use { it.readBytes() }\n"
		files := map[string]string{"src/commonMain/kotlin/Res.kt": content}

		diags, err := boundaryAnalyzer(files).Analyze(context.Background(), "/repo")
		require.NoError(t, err)
		assert.Empty(t, diags)
	})

	t.Run("network client construction warns", func(t *testing.T) {
		t.Parallel()

		content := "val client = HttpClient()\nval sock = Socket(host, port)\n"
		files := map[string]string{"src/commonMain/kotlin/Net.kt": content}

		diags, err := boundaryAnalyzer(files).Analyze(context.Background(), "/repo")
		require.NoError(t, err)
		require.Len(t, diags, 2)
		assert.NotEqual(t, diags[0].ID, diags[1].ID)
		for _, d := range diags {
			assert.Contains(t, d.Message, "network client")
		}
	})

	t.Run("indented snippet is trimmed", func(t *testing.T) {
		t.Parallel()

		content := "fun load() {\n        import java.util.Date\n}\n"
		files := map[string]string{"src/commonMain/kotlin/Indent.kt": content}

		diags, err := boundaryAnalyzer(files).Analyze(context.Background(), "/repo")
		require.NoError(t, err)
		require.Len(t, diags, 1)
		assert.Equal(t, "import java.util.Date", diags[0].Snippet)
		assert.Equal(t, 2, diags[0].Location.Span.StartLine)
	})
}
