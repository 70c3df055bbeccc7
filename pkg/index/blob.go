package index

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// BlobStore is the abstract key-based persistence surface snapshots are
// written through. The concrete engine behind it is out of scope; the
// directory-backed implementation below exists so the CLI can run
// against real snapshot files.
type BlobStore interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(key string) (value []byte, ok bool, err error)

	// Put stores value under key, replacing any previous value.
	Put(key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
}

// DirStore is a BlobStore keyed by file name under a root directory.
type DirStore struct {
	root string
}

// NewDirStore creates a DirStore rooted at dir, creating it if needed.
func NewDirStore(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob dir: %w", err)
	}
	return &DirStore{root: dir}, nil
}

// Get implements BlobStore.
func (d *DirStore) Get(key string) ([]byte, bool, error) {
	path, err := d.keyPath(key)
	if err != nil {
		return nil, false, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read blob %q: %w", key, err)
	}
	return content, true, nil
}

// Put implements BlobStore.
func (d *DirStore) Put(key string, value []byte) error {
	path, err := d.keyPath(key)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, value, 0o644); err != nil {
		return fmt.Errorf("write blob %q: %w", key, err)
	}
	return nil
}

// Delete implements BlobStore.
func (d *DirStore) Delete(key string) error {
	path, err := d.keyPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete blob %q: %w", key, err)
	}
	return nil
}

// keyPath rejects keys that would escape the root directory.
func (d *DirStore) keyPath(key string) (string, error) {
	if key == "" || strings.Contains(key, "/") || strings.Contains(key, string(filepath.Separator)) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	return filepath.Join(d.root, key), nil
}

// MemoryBlobStore is an in-process BlobStore for tests.
type MemoryBlobStore struct {
	blobs map[string][]byte
}

// NewMemoryBlobStore creates an empty MemoryBlobStore.
func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{blobs: make(map[string][]byte)}
}

// Get implements BlobStore.
func (m *MemoryBlobStore) Get(key string) ([]byte, bool, error) {
	value, ok := m.blobs[key]
	return value, ok, nil
}

// Put implements BlobStore.
func (m *MemoryBlobStore) Put(key string, value []byte) error {
	buf := make([]byte, len(value))
	copy(buf, value)
	m.blobs[key] = buf
	return nil
}

// Delete implements BlobStore.
func (m *MemoryBlobStore) Delete(key string) error {
	delete(m.blobs, key)
	return nil
}
