// Package index holds the structural facts extracted from a Kotlin
// Multiplatform repository: modules, source sets, files, declared
// symbols, expect/actual pairings, and symbol references.
//
// The index is populated by an external indexing step; this package
// exposes the read surface analyzers run against, plus snapshot
// persistence through an abstract blob store.
package index

import "time"

// Module is a named compilation unit within a repository.
type Module struct {
	// Path is the stable module path identifier (e.g. ":shared").
	Path string `msgpack:"path"`

	// Name is the display name.
	Name string `msgpack:"name"`

	// Dir is the absolute location of the module root.
	Dir string `msgpack:"dir"`

	// Multiplatform reports whether the module participates in
	// cross-platform source sharing.
	Multiplatform bool `msgpack:"multiplatform"`

	// BuildFilePath points at the module's build descriptor.
	BuildFilePath string `msgpack:"build_file_path"`
}

// SourceSet is a named code partition within a module, tagged with a
// target platform or "common" for the shared superset.
type SourceSet struct {
	Name       string `msgpack:"name"`
	ModulePath string `msgpack:"module_path"`

	// Platform is the target platform ("jvm", "android", "ios",
	// "native", "js") or "common" for shared code.
	Platform string `msgpack:"platform"`

	Dir       string `msgpack:"dir"`
	FileCount int    `msgpack:"file_count"`
	LineCount int    `msgpack:"line_count"`
}

// PlatformCommon tags the shared source partition.
const PlatformCommon = "common"

// PlatformNative tags Kotlin/Native source sets, the single-threaded
// constrained target the thread-safety analyzer guards.
const PlatformNative = "native"

// IndexedFile is one source file known to the index.
type IndexedFile struct {
	Path          string    `msgpack:"path"`
	RelPath       string    `msgpack:"rel_path"`
	ModulePath    string    `msgpack:"module_path"`
	SourceSetName string    `msgpack:"source_set_name"`
	ContentHash   string    `msgpack:"content_hash"`
	LineCount     int       `msgpack:"line_count"`
	IndexedAt     time.Time `msgpack:"indexed_at"`

	// HasExpectDecls is true if the file declares expect (shared-only) symbols.
	HasExpectDecls bool `msgpack:"has_expect_decls"`

	// HasActualDecls is true if the file declares actual (platform) symbols.
	HasActualDecls bool `msgpack:"has_actual_decls"`
}

// SymbolKind classifies a declared entity.
type SymbolKind string

const (
	KindClass     SymbolKind = "class"
	KindInterface SymbolKind = "interface"
	KindObject    SymbolKind = "object"
	KindFunction  SymbolKind = "function"
	KindProperty  SymbolKind = "property"
	KindTypeAlias SymbolKind = "typealias"
)

// Visibility is the declared visibility of a symbol.
type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityInternal Visibility = "internal"
	VisibilityPrivate  Visibility = "private"
)

// Span is a source range with 1-based lines and columns.
type Span struct {
	StartLine   int `msgpack:"start_line"`
	StartColumn int `msgpack:"start_column"`
	EndLine     int `msgpack:"end_line"`
	EndColumn   int `msgpack:"end_column"`
}

// IndexedSymbol is one declared entity inside a file.
// QualifiedName is unique within an index snapshot.
type IndexedSymbol struct {
	Name          string     `msgpack:"name"`
	QualifiedName string     `msgpack:"qualified_name"`
	Kind          SymbolKind `msgpack:"kind"`
	Visibility    Visibility `msgpack:"visibility"`
	FilePath      string     `msgpack:"file_path"`

	// IsExpect marks a shared (expect) declaration.
	IsExpect bool `msgpack:"is_expect"`

	// IsActual marks a platform (actual) implementation.
	IsActual bool `msgpack:"is_actual"`

	IsSuspend bool `msgpack:"is_suspend"`
	IsInline  bool `msgpack:"is_inline"`

	Span Span `msgpack:"span"`

	// ParentQualifiedName references the owning symbol, if any.
	// A symbol belongs to exactly one parent or none.
	ParentQualifiedName string `msgpack:"parent_qualified_name"`
}

// DeclarationPairing links an expect declaration to zero-or-one actual
// implementation for a specific platform.
//
// Invariant: Missing == true implies ActualQualifiedName == "";
// a pairing with a MismatchReason is never simultaneously missing.
type DeclarationPairing struct {
	ExpectQualifiedName string `msgpack:"expect_qualified_name"`
	Platform            string `msgpack:"platform"`
	ActualQualifiedName string `msgpack:"actual_qualified_name"`
	Missing             bool   `msgpack:"missing"`
	MismatchReason      string `msgpack:"mismatch_reason"`
}

// HasMismatch reports whether the pairing carries a signature mismatch.
func (p DeclarationPairing) HasMismatch() bool {
	return p.MismatchReason != ""
}

// ReferenceKind classifies how a symbol is referenced.
type ReferenceKind string

const (
	RefCall   ReferenceKind = "call"
	RefRead   ReferenceKind = "read"
	RefWrite  ReferenceKind = "write"
	RefImport ReferenceKind = "import"
)

// SymbolReference records that a file references a symbol at a position.
type SymbolReference struct {
	FilePath      string        `msgpack:"file_path"`
	QualifiedName string        `msgpack:"qualified_name"`
	Line          int           `msgpack:"line"`
	Column        int           `msgpack:"column"`
	Kind          ReferenceKind `msgpack:"kind"`
}

// MissingPairing joins a missing DeclarationPairing with the expect
// symbol's identity for diagnostic rendering.
type MissingPairing struct {
	Pairing    DeclarationPairing
	SymbolName string
	FilePath   string
	Span       Span
	Kind       SymbolKind
	ModulePath string
}
