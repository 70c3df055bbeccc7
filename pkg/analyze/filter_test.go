package analyze_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/kmpcheck/pkg/analyze"
	"github.com/yaklabco/kmpcheck/pkg/config"
	"github.com/yaklabco/kmpcheck/pkg/index"
)

func sampleDiagnostics() []analyze.Diagnostic {
	return []analyze.Diagnostic{
		analyze.NewDiagnostic("expect-actual:Foo:1", "expect-actual", "cross-platform", "missing actual").
			WithSeverity(config.SeverityError).
			WithTags(analyze.TagFixable, analyze.TagCrossPlatform).
			WithLocation(analyze.Location{
				FilePath:   "src/commonMain/kotlin/Foo.kt",
				ModulePath: ":shared",
				Span:       index.Span{StartLine: 1},
			}).
			Build(),
		analyze.NewDiagnostic("native-thread-safety:Bar.kt:5", "native-thread-safety", "concurrency", "disallowed dispatcher").
			WithSeverity(config.SeverityError).
			WithTags(analyze.TagFixable).
			WithLocation(analyze.Location{
				FilePath:   "src/commonMain/kotlin/Bar.kt",
				ModulePath: ":shared",
				Span:       index.Span{StartLine: 5},
			}).
			Build(),
		analyze.NewDiagnostic("boundary-imports:Baz.kt:2", "boundary-imports", "api-misuse", "jvm import in shared code").
			WithSeverity(config.SeverityWarning).
			WithLocation(analyze.Location{
				FilePath:   "src/commonMain/kotlin/Baz.kt",
				ModulePath: ":app",
				Span:       index.Span{StartLine: 2},
			}).
			Build(),
	}
}

func TestFilterDiagnostics(t *testing.T) {
	t.Parallel()

	diags := sampleDiagnostics()

	t.Run("empty filter returns everything", func(t *testing.T) {
		t.Parallel()

		got := analyze.FilterDiagnostics(diags, analyze.Filter{})
		assert.Len(t, got, len(diags))
	})

	t.Run("severity allow set", func(t *testing.T) {
		t.Parallel()

		got := analyze.FilterDiagnostics(diags, analyze.Filter{
			Severities: []config.Severity{config.SeverityError},
		})
		require.Len(t, got, 2)
		for _, d := range got {
			assert.Equal(t, config.SeverityError, d.Severity)
		}
	})

	t.Run("category allow set", func(t *testing.T) {
		t.Parallel()

		got := analyze.FilterDiagnostics(diags, analyze.Filter{
			Categories: []string{"api-misuse"},
		})
		require.Len(t, got, 1)
		assert.Equal(t, "boundary-imports", got[0].Analyzer)
	})

	t.Run("path regex", func(t *testing.T) {
		t.Parallel()

		got := analyze.FilterDiagnostics(diags, analyze.Filter{
			PathPattern: `Bar\.kt$`,
		})
		require.Len(t, got, 1)
		assert.Equal(t, "native-thread-safety", got[0].Analyzer)
	})

	t.Run("invalid path regex degrades to no restriction", func(t *testing.T) {
		t.Parallel()

		got := analyze.FilterDiagnostics(diags, analyze.Filter{
			PathPattern: `[unclosed`,
		})
		assert.Len(t, got, len(diags))
	})

	t.Run("module allow set", func(t *testing.T) {
		t.Parallel()

		got := analyze.FilterDiagnostics(diags, analyze.Filter{
			Modules: []string{":app"},
		})
		require.Len(t, got, 1)
		assert.Equal(t, ":app", got[0].Location.ModulePath)
	})

	t.Run("required tags superset check", func(t *testing.T) {
		t.Parallel()

		got := analyze.FilterDiagnostics(diags, analyze.Filter{
			RequiredTags: []string{analyze.TagFixable, analyze.TagCrossPlatform},
		})
		require.Len(t, got, 1)
		assert.Equal(t, "expect-actual", got[0].Analyzer)
	})

	t.Run("exclude inactive", func(t *testing.T) {
		t.Parallel()

		withInactive := sampleDiagnostics()
		withInactive[0].Active = false

		got := analyze.FilterDiagnostics(withInactive, analyze.Filter{ExcludeInactive: true})
		assert.Len(t, got, 2)
	})

	t.Run("criteria combine with AND", func(t *testing.T) {
		t.Parallel()

		got := analyze.FilterDiagnostics(diags, analyze.Filter{
			Severities: []config.Severity{config.SeverityError},
			Analyzers:  []string{"native-thread-safety"},
		})
		require.Len(t, got, 1)
		assert.Equal(t, "native-thread-safety", got[0].Analyzer)
	})
}

// TestFilterMonotonicity: the filtered list is always a subset of the
// input, and adding criteria never grows the result.
func TestFilterMonotonicity(t *testing.T) {
	t.Parallel()

	diags := sampleDiagnostics()
	ids := make(map[string]bool, len(diags))
	for _, d := range diags {
		ids[d.ID] = true
	}

	filters := []analyze.Filter{
		{},
		{Severities: []config.Severity{config.SeverityError}},
		{Severities: []config.Severity{config.SeverityError}, Categories: []string{"concurrency"}},
		{Severities: []config.Severity{config.SeverityError}, Categories: []string{"concurrency"}, Modules: []string{":nope"}},
	}

	prev := len(diags) + 1
	for _, f := range filters {
		got := analyze.FilterDiagnostics(diags, f)
		assert.LessOrEqual(t, len(got), prev, "tightening criteria must not grow the result")
		for _, d := range got {
			assert.True(t, ids[d.ID], "filter produced a diagnostic not in the input")
		}
		prev = len(got)
	}
}

func TestGrouping(t *testing.T) {
	t.Parallel()

	diags := sampleDiagnostics()

	t.Run("by file", func(t *testing.T) {
		t.Parallel()

		groups := analyze.GroupByFile(diags)
		assert.Len(t, groups, 3)
		assert.Len(t, groups["src/commonMain/kotlin/Foo.kt"], 1)
	})

	t.Run("by category", func(t *testing.T) {
		t.Parallel()

		groups := analyze.GroupByCategory(diags)
		assert.Len(t, groups, 3)
	})

	t.Run("by module preserves input order within groups", func(t *testing.T) {
		t.Parallel()

		groups := analyze.GroupByModule(diags)
		require.Len(t, groups, 2)
		shared := groups[":shared"]
		require.Len(t, shared, 2)
		assert.Equal(t, "expect-actual", shared[0].Analyzer)
		assert.Equal(t, "native-thread-safety", shared[1].Analyzer)
	})
}

func TestBuilder(t *testing.T) {
	t.Parallel()

	d := analyze.NewDiagnostic("a:b:1", "a", "cat", "msg").
		WithTags("zeta", "alpha", "zeta").
		WithSeverity(config.SeverityInfo).
		Build()

	assert.True(t, d.Active)
	assert.False(t, d.CreatedAt.IsZero())
	assert.Equal(t, []string{"alpha", "zeta"}, d.Tags, "tags are deduplicated and sorted")
	assert.Equal(t, config.SeverityInfo, d.Severity)
	assert.False(t, d.HasFix())
	assert.True(t, d.HasTag("alpha"))
}

func TestDiagnosticID(t *testing.T) {
	t.Parallel()

	first := analyze.DiagnosticID("native-thread-safety", "Foo.kt", 12)
	second := analyze.DiagnosticID("native-thread-safety", "Foo.kt", 12)
	assert.Equal(t, first, second, "ids must be stable across runs")
	assert.Equal(t, "native-thread-safety:Foo.kt:12", first)

	other := analyze.DiagnosticID("native-thread-safety", "Foo.kt", 13)
	assert.NotEqual(t, first, other)
}
