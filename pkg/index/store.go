package index

import (
	"sync"
)

// Store is the read surface analyzers run against. The write path is
// populated by an external indexing collaborator.
//
// Every query degrades gracefully: a missing repository, module, or
// file yields an empty result, never an error, because partial indexes
// are expected during incremental updates.
type Store interface {
	// Modules returns all modules indexed for a repository.
	Modules(repoID string) []Module

	// SourceSets returns the source sets owned by a module.
	SourceSets(modulePath string) []SourceSet

	// FilesInSourceSets returns indexed files belonging to any of the
	// named source partitions, in indexing order.
	FilesInSourceSets(repoID string, sourceSetNames []string) []IndexedFile

	// MissingPairings returns every pairing whose actual implementation
	// is absent, joined with the expect symbol's identity.
	MissingPairings() []MissingPairing

	// AllPairings returns every declaration pairing. Callers filter for
	// mismatch reasons client-side.
	AllPairings() []DeclarationPairing

	// SymbolsInFile returns the symbols declared in a file.
	SymbolsInFile(path string) []IndexedSymbol

	// ReferencesTo returns all recorded references to a qualified name.
	ReferencesTo(qualifiedName string) []SymbolReference
}

// MemoryStore is an in-memory Store with single-writer/multiple-reader
// discipline: the external indexer loads snapshots under the write
// lock, analyzers read concurrently under the read lock.
type MemoryStore struct {
	mu sync.RWMutex

	repoID     string
	modules    []Module
	sourceSets map[string][]SourceSet // module path -> source sets
	files      []IndexedFile
	symbols    map[string][]IndexedSymbol // file path -> symbols
	byQName    map[string]IndexedSymbol
	pairings   []DeclarationPairing
	references map[string][]SymbolReference // qualified name -> refs
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sourceSets: make(map[string][]SourceSet),
		symbols:    make(map[string][]IndexedSymbol),
		byQName:    make(map[string]IndexedSymbol),
		references: make(map[string][]SymbolReference),
	}
}

// Load replaces the store contents with a snapshot.
func (s *MemoryStore) Load(snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.repoID = snap.RepoID
	s.modules = snap.Modules
	s.files = snap.Files
	s.pairings = snap.Pairings

	s.sourceSets = make(map[string][]SourceSet, len(snap.Modules))
	for _, ss := range snap.SourceSets {
		s.sourceSets[ss.ModulePath] = append(s.sourceSets[ss.ModulePath], ss)
	}

	s.symbols = make(map[string][]IndexedSymbol)
	s.byQName = make(map[string]IndexedSymbol, len(snap.Symbols))
	for _, sym := range snap.Symbols {
		s.symbols[sym.FilePath] = append(s.symbols[sym.FilePath], sym)
		s.byQName[sym.QualifiedName] = sym
	}

	s.references = make(map[string][]SymbolReference)
	for _, ref := range snap.References {
		s.references[ref.QualifiedName] = append(s.references[ref.QualifiedName], ref)
	}
}

// ClearRepository drops all facts for the repository. Used on
// repository switch together with the undo manager's ClearAll.
func (s *MemoryStore) ClearRepository(repoID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if repoID != s.repoID {
		return
	}
	s.repoID = ""
	s.modules = nil
	s.files = nil
	s.pairings = nil
	s.sourceSets = make(map[string][]SourceSet)
	s.symbols = make(map[string][]IndexedSymbol)
	s.byQName = make(map[string]IndexedSymbol)
	s.references = make(map[string][]SymbolReference)
}

// Modules implements Store.
func (s *MemoryStore) Modules(repoID string) []Module {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if repoID != s.repoID {
		return nil
	}
	out := make([]Module, len(s.modules))
	copy(out, s.modules)
	return out
}

// SourceSets implements Store.
func (s *MemoryStore) SourceSets(modulePath string) []SourceSet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sets := s.sourceSets[modulePath]
	out := make([]SourceSet, len(sets))
	copy(out, sets)
	return out
}

// FilesInSourceSets implements Store.
func (s *MemoryStore) FilesInSourceSets(repoID string, sourceSetNames []string) []IndexedFile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if repoID != s.repoID || len(sourceSetNames) == 0 {
		return nil
	}

	wanted := make(map[string]bool, len(sourceSetNames))
	for _, name := range sourceSetNames {
		wanted[name] = true
	}

	var out []IndexedFile
	for _, f := range s.files {
		if wanted[f.SourceSetName] {
			out = append(out, f)
		}
	}
	return out
}

// MissingPairings implements Store.
func (s *MemoryStore) MissingPairings() []MissingPairing {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []MissingPairing
	for _, p := range s.pairings {
		if !p.Missing {
			continue
		}
		mp := MissingPairing{Pairing: p}
		if sym, ok := s.byQName[p.ExpectQualifiedName]; ok {
			mp.SymbolName = sym.Name
			mp.FilePath = sym.FilePath
			mp.Span = sym.Span
			mp.Kind = sym.Kind
			mp.ModulePath = s.moduleForFileLocked(sym.FilePath)
		}
		out = append(out, mp)
	}
	return out
}

// AllPairings implements Store.
func (s *MemoryStore) AllPairings() []DeclarationPairing {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]DeclarationPairing, len(s.pairings))
	copy(out, s.pairings)
	return out
}

// SymbolsInFile implements Store.
func (s *MemoryStore) SymbolsInFile(path string) []IndexedSymbol {
	s.mu.RLock()
	defer s.mu.RUnlock()

	syms := s.symbols[path]
	out := make([]IndexedSymbol, len(syms))
	copy(out, syms)
	return out
}

// ReferencesTo implements Store.
func (s *MemoryStore) ReferencesTo(qualifiedName string) []SymbolReference {
	s.mu.RLock()
	defer s.mu.RUnlock()

	refs := s.references[qualifiedName]
	out := make([]SymbolReference, len(refs))
	copy(out, refs)
	return out
}

// moduleForFileLocked resolves a file's owning module. Caller holds the lock.
func (s *MemoryStore) moduleForFileLocked(path string) string {
	for _, f := range s.files {
		if f.Path == path {
			return f.ModulePath
		}
	}
	return ""
}
