// Package undo tracks applied fixes in bounded undo/redo stacks. The
// manager owns its entries exclusively; rewriting file content on
// undo/redo is the caller's responsibility using an entry's
// OldContent/NewContent.
package undo

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultDepth bounds each stack when no explicit depth is configured.
const DefaultDepth = 100

// Entry is one applied fix record.
type Entry struct {
	ID          string
	FilePath    string
	OldContent  string
	NewContent  string
	Description string
	RecordedAt  time.Time
}

// Manager holds the undo and redo stacks for one open repository.
// Construct one per session and drop it on repository switch; there is
// deliberately no shared global instance.
type Manager struct {
	mu    sync.Mutex
	depth int
	undo  []Entry
	redo  []Entry
}

// NewManager creates a Manager with the default stack depth.
func NewManager() *Manager {
	return NewManagerWithDepth(DefaultDepth)
}

// NewManagerWithDepth creates a Manager bounding both stacks at depth.
func NewManagerWithDepth(depth int) *Manager {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Manager{depth: depth}
}

// RecordFix pushes a new entry onto the undo stack and clears the redo
// stack: a fresh edit invalidates any previously-undone redo chain.
// When the undo stack is full the oldest entry is dropped.
func (m *Manager) RecordFix(filePath, oldContent, newContent, description string) Entry {
	entry := Entry{
		ID:          uuid.NewString(),
		FilePath:    filePath,
		OldContent:  oldContent,
		NewContent:  newContent,
		Description: description,
		RecordedAt:  time.Now().UTC(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.undo = append(m.undo, entry)
	if len(m.undo) > m.depth {
		m.undo = m.undo[len(m.undo)-m.depth:]
	}
	m.redo = nil

	return entry
}

// PopUndo pops the most recent undo entry, pushes it onto the redo
// stack, and returns it. Returns nil when the undo stack is empty.
func (m *Manager) PopUndo() *Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.undo) == 0 {
		return nil
	}

	entry := m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]

	m.redo = append(m.redo, entry)
	if len(m.redo) > m.depth {
		m.redo = m.redo[len(m.redo)-m.depth:]
	}

	return &entry
}

// PopRedo pops the most recent redo entry, pushes it back onto the
// undo stack, and returns it. Returns nil when the redo stack is empty.
func (m *Manager) PopRedo() *Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.redo) == 0 {
		return nil
	}

	entry := m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]

	m.undo = append(m.undo, entry)
	if len(m.undo) > m.depth {
		m.undo = m.undo[len(m.undo)-m.depth:]
	}

	return &entry
}

// CanUndo reports whether the undo stack is non-empty.
func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undo) > 0
}

// CanRedo reports whether the redo stack is non-empty.
func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redo) > 0
}

// ClearAll empties both stacks. Used on repository switch.
func (m *Manager) ClearAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.undo = nil
	m.redo = nil
}
