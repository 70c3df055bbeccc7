package suggest

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/kmpcheck/internal/logging"
	"github.com/yaklabco/kmpcheck/pkg/analyze"
	"github.com/yaklabco/kmpcheck/pkg/diff"
	"github.com/yaklabco/kmpcheck/pkg/fsutil"
	"github.com/yaklabco/kmpcheck/pkg/undo"
)

// Sentinel errors for lifecycle violations.
var (
	ErrUnknownSuggestion = errors.New("unknown suggestion")
	ErrNotPending        = errors.New("suggestion is no longer pending")
)

// Manager owns the suggestion table and the apply/dismiss transitions.
// Apply is serialized: two concurrent calls for the same id cannot both
// succeed; the loser observes the suggestion out of pending and fails
// cleanly.
type Manager struct {
	mu          sync.Mutex
	suggestions map[string]*RefactorSuggestion

	fs     fsutil.FileSystem
	undo   *undo.Manager
	stream *analyze.Stream
	logger *log.Logger
}

// NewManager creates a Manager. stream may be nil.
func NewManager(fs fsutil.FileSystem, undoMgr *undo.Manager, stream *analyze.Stream, logger *log.Logger) *Manager {
	if logger == nil {
		logger = logging.Default()
	}
	return &Manager{
		suggestions: make(map[string]*RefactorSuggestion),
		fs:          fs,
		undo:        undoMgr,
		stream:      stream,
		logger:      logger,
	}
}

// Add registers a suggestion.
func (m *Manager) Add(s *RefactorSuggestion) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suggestions[s.ID] = s
}

// Get returns a copy of the suggestion, if known.
func (m *Manager) Get(id string) (RefactorSuggestion, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.suggestions[id]
	if !ok {
		return RefactorSuggestion{}, false
	}
	return *s, true
}

// Pending returns copies of all pending suggestions.
func (m *Manager) Pending() []RefactorSuggestion {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []RefactorSuggestion
	for _, s := range m.suggestions {
		if s.State == StatePending {
			out = append(out, *s)
		}
	}
	return out
}

// plannedWrite is one file's computed result, staged before any write.
type plannedWrite struct {
	path       string
	oldContent string
	newContent string
	added      bool
	remove     bool
}

// Apply transitions a pending suggestion to applied. The whole change
// set is computed before anything is written; on a failure mid-write,
// already-written files are restored so no partial state is retained.
// On any failure the suggestion remains pending and the reason is
// returned.
func (m *Manager) Apply(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.suggestions[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSuggestion, id)
	}
	if s.State != StatePending {
		return fmt.Errorf("%w: %s is %s", ErrNotPending, id, s.State)
	}

	changes, err := m.resolveChanges(s)
	if err != nil {
		return fmt.Errorf("apply %s: %w", id, err)
	}

	// Stage: read and compute every file's new content first.
	writes := make([]plannedWrite, 0, len(changes))
	for _, change := range changes {
		planned, err := m.planChange(change)
		if err != nil {
			return fmt.Errorf("apply %s: %w", id, err)
		}
		writes = append(writes, planned)
	}

	// Commit: write each file once; roll back on failure.
	if err := m.commit(writes); err != nil {
		return fmt.Errorf("apply %s: %w", id, err)
	}

	s.State = StateApplied
	for _, w := range writes {
		m.undo.RecordFix(w.path, w.oldContent, w.newContent, s.Title)
	}

	if m.stream != nil {
		for _, diagID := range s.ResolvesDiagnostics {
			m.stream.PublishResolved(diagID, "fix_applied")
		}
	}

	m.logger.Info("suggestion applied",
		logging.FieldID, id, logging.FieldCount, len(writes))
	return nil
}

// Dismiss transitions a suggestion to dismissed. Dismissal cannot fail
// for a known suggestion and is not recorded in the undo stack:
// dismissing is not an edit. Dismissing a non-pending suggestion is a
// no-op.
func (m *Manager) Dismiss(id, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.suggestions[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSuggestion, id)
	}
	if s.State != StatePending {
		return nil
	}

	s.State = StateDismissed
	s.DismissReason = reason
	return nil
}

// resolveChanges prefers the structured FileChanges; otherwise it
// parses the suggestion's unified diff text.
func (m *Manager) resolveChanges(s *RefactorSuggestion) ([]FileChange, error) {
	if len(s.FileChanges) > 0 {
		return s.FileChanges, nil
	}
	if s.UnifiedDiff == "" {
		return nil, errors.New("suggestion has no changes")
	}

	parsed, err := diff.ParseDiff(s.UnifiedDiff)
	if err != nil {
		return nil, fmt.Errorf("parse suggestion diff: %w", err)
	}

	changes := make([]FileChange, 0, len(parsed))
	for _, file := range parsed {
		change := FileChange{Hunks: file.Hunks}
		switch {
		case file.OriginalPath == diff.DevNull:
			change.Type = diff.ChangeAdded
			change.Path = file.ModifiedPath
		case file.ModifiedPath == diff.DevNull:
			change.Type = diff.ChangeDeleted
			change.Path = file.OriginalPath
		default:
			change.Type = diff.ChangeModified
			change.Path = file.ModifiedPath
		}
		changes = append(changes, change)
	}
	return changes, nil
}

// planChange reads the target file and replays the hunks, producing
// the staged write without touching the file system.
func (m *Manager) planChange(change FileChange) (plannedWrite, error) {
	switch change.Type {
	case diff.ChangeAdded:
		if m.fs.Exists(change.Path) {
			return plannedWrite{}, fmt.Errorf("cannot add %s: file already exists", change.Path)
		}
		lines, err := diff.ApplyHunks(nil, change.Hunks)
		if err != nil {
			return plannedWrite{}, fmt.Errorf("%s: %w", change.Path, err)
		}
		return plannedWrite{path: change.Path, newContent: diff.JoinLines(lines), added: true}, nil

	case diff.ChangeDeleted:
		old, err := m.fs.ReadFile(change.Path)
		if err != nil {
			return plannedWrite{}, fmt.Errorf("%s: %w", change.Path, err)
		}
		return plannedWrite{path: change.Path, oldContent: old, remove: true}, nil

	case diff.ChangeModified, "":
		old, err := m.fs.ReadFile(change.Path)
		if err != nil {
			return plannedWrite{}, fmt.Errorf("%s: %w", change.Path, err)
		}
		lines, err := diff.ApplyHunks(diff.SplitLines(old), change.Hunks)
		if err != nil {
			return plannedWrite{}, fmt.Errorf("%s: %w", change.Path, err)
		}
		return plannedWrite{path: change.Path, oldContent: old, newContent: diff.JoinLines(lines)}, nil

	default:
		return plannedWrite{}, fmt.Errorf("unsupported change type %q for %s", change.Type, change.Path)
	}
}

// commit performs the staged writes, undoing earlier ones if a later
// write fails.
func (m *Manager) commit(writes []plannedWrite) error {
	done := 0
	for _, w := range writes {
		var err error
		if w.remove {
			err = m.fs.Remove(w.path)
		} else {
			err = m.fs.WriteFile(w.path, w.newContent)
		}
		if err != nil {
			m.rollback(writes[:done])
			return err
		}
		done++
	}
	return nil
}

// rollback restores files already written during a failed commit.
func (m *Manager) rollback(written []plannedWrite) {
	for i := len(written) - 1; i >= 0; i-- {
		w := written[i]
		var err error
		if w.added {
			// Freshly added file: remove it again.
			err = m.fs.Remove(w.path)
		} else {
			err = m.fs.WriteFile(w.path, w.oldContent)
		}
		if err != nil {
			m.logger.Error("rollback failed",
				logging.FieldFile, w.path, logging.FieldError, err)
		}
	}
}
