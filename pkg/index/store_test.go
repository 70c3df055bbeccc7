package index_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/kmpcheck/pkg/index"
)

func testSnapshot() *index.Snapshot {
	return &index.Snapshot{
		RepoID: "repo-1",
		Modules: []index.Module{
			{Path: ":shared", Name: "shared", Multiplatform: true},
			{Path: ":app", Name: "app"},
		},
		SourceSets: []index.SourceSet{
			{Name: "commonMain", ModulePath: ":shared", Platform: index.PlatformCommon},
			{Name: "iosMain", ModulePath: ":shared", Platform: index.PlatformNative},
			{Name: "jvmMain", ModulePath: ":shared", Platform: "jvm"},
		},
		Files: []index.IndexedFile{
			{Path: "/repo/src/commonMain/kotlin/Api.kt", ModulePath: ":shared", SourceSetName: "commonMain", HasExpectDecls: true},
			{Path: "/repo/src/jvmMain/kotlin/Api.jvm.kt", ModulePath: ":shared", SourceSetName: "jvmMain", HasActualDecls: true},
		},
		Symbols: []index.IndexedSymbol{
			{
				Name:          "Api",
				QualifiedName: "com.example.Api",
				Kind:          index.KindClass,
				FilePath:      "/repo/src/commonMain/kotlin/Api.kt",
				IsExpect:      true,
				Span:          index.Span{StartLine: 3, EndLine: 10},
			},
			{
				Name:          "Api",
				QualifiedName: "com.example.Api.jvm",
				Kind:          index.KindClass,
				FilePath:      "/repo/src/jvmMain/kotlin/Api.jvm.kt",
				IsActual:      true,
			},
		},
		Pairings: []index.DeclarationPairing{
			{ExpectQualifiedName: "com.example.Api", Platform: "jvm", ActualQualifiedName: "com.example.Api.jvm"},
			{ExpectQualifiedName: "com.example.Api", Platform: "native", Missing: true},
		},
		References: []index.SymbolReference{
			{FilePath: "/repo/src/commonMain/kotlin/Use.kt", QualifiedName: "com.example.Api", Line: 7, Kind: index.RefCall},
		},
	}
}

func TestMemoryStoreQueries(t *testing.T) {
	t.Parallel()

	store := index.NewMemoryStore()
	store.Load(testSnapshot())

	t.Run("modules", func(t *testing.T) {
		t.Parallel()

		mods := store.Modules("repo-1")
		require.Len(t, mods, 2)
		assert.True(t, mods[0].Multiplatform)
	})

	t.Run("source sets by module", func(t *testing.T) {
		t.Parallel()

		sets := store.SourceSets(":shared")
		assert.Len(t, sets, 3)
		assert.Empty(t, store.SourceSets(":app"))
	})

	t.Run("files in source sets", func(t *testing.T) {
		t.Parallel()

		files := store.FilesInSourceSets("repo-1", []string{"commonMain"})
		require.Len(t, files, 1)
		assert.True(t, files[0].HasExpectDecls)

		assert.Empty(t, store.FilesInSourceSets("repo-1", nil))
	})

	t.Run("missing pairings join the expect symbol", func(t *testing.T) {
		t.Parallel()

		missing := store.MissingPairings()
		require.Len(t, missing, 1)
		mp := missing[0]
		assert.Equal(t, "native", mp.Pairing.Platform)
		assert.Equal(t, "Api", mp.SymbolName)
		assert.Equal(t, "/repo/src/commonMain/kotlin/Api.kt", mp.FilePath)
		assert.Equal(t, ":shared", mp.ModulePath)
		assert.Equal(t, 3, mp.Span.StartLine)
	})

	t.Run("all pairings", func(t *testing.T) {
		t.Parallel()

		assert.Len(t, store.AllPairings(), 2)
	})

	t.Run("symbols in file", func(t *testing.T) {
		t.Parallel()

		syms := store.SymbolsInFile("/repo/src/commonMain/kotlin/Api.kt")
		require.Len(t, syms, 1)
		assert.True(t, syms[0].IsExpect)
	})

	t.Run("references to qualified name", func(t *testing.T) {
		t.Parallel()

		refs := store.ReferencesTo("com.example.Api")
		require.Len(t, refs, 1)
		assert.Equal(t, index.RefCall, refs[0].Kind)
	})
}

// Missing repositories, modules, and files yield empty results, never
// errors; partial indexes must degrade gracefully.
func TestMemoryStoreEmptyOnMissing(t *testing.T) {
	t.Parallel()

	store := index.NewMemoryStore()
	store.Load(testSnapshot())

	assert.Empty(t, store.Modules("unknown-repo"))
	assert.Empty(t, store.SourceSets(":unknown"))
	assert.Empty(t, store.FilesInSourceSets("unknown-repo", []string{"commonMain"}))
	assert.Empty(t, store.SymbolsInFile("/nope.kt"))
	assert.Empty(t, store.ReferencesTo("com.example.Nope"))

	fresh := index.NewMemoryStore()
	assert.Empty(t, fresh.Modules("repo-1"))
	assert.Empty(t, fresh.MissingPairings())
	assert.Empty(t, fresh.AllPairings())
}

func TestClearRepository(t *testing.T) {
	t.Parallel()

	store := index.NewMemoryStore()
	store.Load(testSnapshot())

	// Clearing a different repository is a no-op.
	store.ClearRepository("other-repo")
	assert.NotEmpty(t, store.Modules("repo-1"))

	store.ClearRepository("repo-1")
	assert.Empty(t, store.Modules("repo-1"))
	assert.Empty(t, store.AllPairings())
	assert.Empty(t, store.SymbolsInFile("/repo/src/commonMain/kotlin/Api.kt"))
}

func TestSnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	blobs := index.NewMemoryBlobStore()
	snap := testSnapshot()

	require.NoError(t, index.SaveSnapshot(blobs, "repo-1.kmpidx", snap))

	loaded, ok, err := index.LoadSnapshot(blobs, "repo-1.kmpidx")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "repo-1", loaded.RepoID)
	assert.Len(t, loaded.Modules, 2)
	assert.Len(t, loaded.Pairings, 2)
	assert.Len(t, loaded.Symbols, 2)

	_, ok, err = index.LoadSnapshot(blobs, "absent.kmpidx")
	require.NoError(t, err)
	assert.False(t, ok, "missing key is not an error")
}

func TestDirStore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := index.NewDirStore(dir)
	require.NoError(t, err)

	t.Run("put get delete", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, store.Put("k1", []byte("hello")))

		value, ok, err := store.Get("k1")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []byte("hello"), value)

		require.NoError(t, store.Delete("k1"))
		_, ok, err = store.Get("k1")
		require.NoError(t, err)
		assert.False(t, ok)

		// Deleting an absent key is not an error.
		require.NoError(t, store.Delete("k1"))
	})

	t.Run("rejects escaping keys", func(t *testing.T) {
		t.Parallel()

		_, _, err := store.Get("../escape")
		assert.Error(t, err)
		assert.Error(t, store.Put("a/b", nil))
	})
}
