package analyzers_test

import (
	"errors"

	"github.com/yaklabco/kmpcheck/pkg/index"
)

// fakeReader serves file contents from a map.
type fakeReader struct {
	files map[string]string
}

func (f fakeReader) ReadFile(path string) (string, error) {
	content, ok := f.files[path]
	if !ok {
		return "", errors.New("file unavailable")
	}
	return content, nil
}

func (f fakeReader) Exists(path string) bool {
	_, ok := f.files[path]
	return ok
}

const testRepoID = "repo-1"

// sharedCodeStore builds an index with one multiplatform module whose
// commonMain source set contains the given files. When withNative is
// true the module also targets Kotlin/Native.
func sharedCodeStore(files map[string]string, withNative bool) *index.MemoryStore {
	snap := &index.Snapshot{
		RepoID: testRepoID,
		Modules: []index.Module{
			{Path: ":shared", Name: "shared", Multiplatform: true},
		},
		SourceSets: []index.SourceSet{
			{Name: "commonMain", ModulePath: ":shared", Platform: index.PlatformCommon},
			{Name: "jvmMain", ModulePath: ":shared", Platform: "jvm"},
		},
	}
	if withNative {
		snap.SourceSets = append(snap.SourceSets,
			index.SourceSet{Name: "iosMain", ModulePath: ":shared", Platform: index.PlatformNative})
	}

	for path := range files {
		snap.Files = append(snap.Files, index.IndexedFile{
			Path:          path,
			RelPath:       path,
			ModulePath:    ":shared",
			SourceSetName: "commonMain",
		})
	}

	store := index.NewMemoryStore()
	store.Load(snap)
	return store
}
