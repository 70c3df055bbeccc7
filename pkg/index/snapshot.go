package index

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// snapshotVersion guards against decoding snapshots written by an
// incompatible indexer.
const snapshotVersion = 1

// Snapshot is the serialized form of one repository's index.
type Snapshot struct {
	Version    int                  `msgpack:"version"`
	RepoID     string               `msgpack:"repo_id"`
	Modules    []Module             `msgpack:"modules"`
	SourceSets []SourceSet          `msgpack:"source_sets"`
	Files      []IndexedFile        `msgpack:"files"`
	Symbols    []IndexedSymbol      `msgpack:"symbols"`
	Pairings   []DeclarationPairing `msgpack:"pairings"`
	References []SymbolReference    `msgpack:"references"`
}

// SaveSnapshot encodes a snapshot and stores it under key.
func SaveSnapshot(store BlobStore, key string, snap *Snapshot) error {
	snap.Version = snapshotVersion

	encoded, err := msgpack.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := store.Put(key, encoded); err != nil {
		return fmt.Errorf("store snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot fetches and decodes the snapshot stored under key.
// A missing key yields (nil, false, nil) so callers can distinguish
// "not indexed yet" from corruption.
func LoadSnapshot(store BlobStore, key string) (*Snapshot, bool, error) {
	encoded, ok, err := store.Get(key)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	snap := &Snapshot{}
	if err := msgpack.Unmarshal(encoded, snap); err != nil {
		return nil, false, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return nil, false, fmt.Errorf("snapshot version %d not supported (want %d)", snap.Version, snapshotVersion)
	}
	return snap, true, nil
}
