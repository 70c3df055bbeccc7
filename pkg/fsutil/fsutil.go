// Package fsutil provides the file-system capability handed to
// analyzers and the suggestion manager, plus atomic write support.
package fsutil

import (
	"fmt"
	"os"
)

// FileSystem is the read/write surface the suggestion apply path uses.
// Failures propagate as errors; callers treat them as "file
// unavailable" and degrade, never crash.
type FileSystem interface {
	ReadFile(path string) (string, error)
	WriteFile(path string, content string) error
	Exists(path string) bool
	Remove(path string) error
}

// OSFileSystem implements FileSystem over the real file system.
type OSFileSystem struct{}

// NewOSFileSystem returns the os-backed FileSystem.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// ReadFile implements FileSystem.
func (OSFileSystem) ReadFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("file unavailable: %w", err)
	}
	return string(content), nil
}

// WriteFile implements FileSystem using an atomic temp-file rename so
// a failed write never leaves a half-written file behind.
func (OSFileSystem) WriteFile(path string, content string) error {
	return WriteAtomic(path, []byte(content), 0)
}

// Exists implements FileSystem.
func (OSFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Remove implements FileSystem.
func (OSFileSystem) Remove(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}
