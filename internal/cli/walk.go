package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"
)

// skippedDirs are directories never worth descending into.
//
//nolint:gochecknoglobals // Read-only lookup table.
var skippedDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	".gradle":      true,
	"build":        true,
	"node_modules": true,
}

// walkRepository returns all regular file paths under root, relative to
// root, honoring the repository's .gitignore and the configured ignore
// globs. The list feeds project detection and the scanned-file count.
func walkRepository(root string, ignoreGlobs []string) ([]string, error) {
	gitignore := loadGitignore(root)

	var extra *ignore.GitIgnore
	if len(ignoreGlobs) > 0 {
		extra = ignore.CompileIgnoreLines(ignoreGlobs...)
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal.
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			return nil
		}

		if entry.IsDir() {
			if skippedDirs[entry.Name()] {
				return filepath.SkipDir
			}
			if gitignore != nil && gitignore.MatchesPath(rel) {
				return filepath.SkipDir
			}
			if extra != nil && extra.MatchesPath(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if gitignore != nil && gitignore.MatchesPath(rel) {
			return nil
		}
		if extra != nil && extra.MatchesPath(rel) {
			return nil
		}

		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return files, nil
}

// loadGitignore compiles the repository's root .gitignore, if any.
func loadGitignore(root string) *ignore.GitIgnore {
	path := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}
	return gi
}
