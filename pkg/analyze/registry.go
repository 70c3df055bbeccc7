package analyze

import (
	"cmp"
	"slices"
	"sync"
)

// Registry holds registered analyzers keyed by name.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Analyzer
}

// NewRegistry creates an empty analyzer registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Analyzer)}
}

// Register adds an analyzer to the registry.
// If an analyzer with the same name already exists, it is replaced.
func (r *Registry) Register(a Analyzer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[a.Name()] = a
}

// Get retrieves an analyzer by name.
func (r *Registry) Get(name string) (Analyzer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byName[name]
	return a, ok
}

// Analyzers returns all registered analyzers sorted by name for
// deterministic runs.
func (r *Registry) Analyzers() []Analyzer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Analyzer, 0, len(r.byName))
	for _, a := range r.byName {
		result = append(result, a)
	}

	slices.SortFunc(result, func(a, b Analyzer) int {
		return cmp.Compare(a.Name(), b.Name())
	})

	return result
}

// Names returns all registered analyzer names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.byName))
	for name := range r.byName {
		result = append(result, name)
	}

	slices.Sort(result)
	return result
}
