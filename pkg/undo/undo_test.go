package undo_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/kmpcheck/pkg/undo"
)

func TestRecordFix(t *testing.T) {
	t.Parallel()

	t.Run("recording enables undo and clears redo", func(t *testing.T) {
		t.Parallel()

		m := undo.NewManager()
		m.RecordFix("a.kt", "old", "new", "first fix")
		require.True(t, m.CanUndo())

		// Build a redo entry, then record again.
		require.NotNil(t, m.PopUndo())
		require.True(t, m.CanRedo())

		m.RecordFix("b.kt", "old2", "new2", "second fix")
		assert.False(t, m.CanRedo(), "a fresh edit must invalidate the redo chain")
	})

	t.Run("depth bound drops the oldest entry", func(t *testing.T) {
		t.Parallel()

		m := undo.NewManagerWithDepth(2)
		m.RecordFix("1.kt", "", "a", "one")
		m.RecordFix("2.kt", "", "b", "two")
		m.RecordFix("3.kt", "", "c", "three")

		first := m.PopUndo()
		require.NotNil(t, first)
		assert.Equal(t, "3.kt", first.FilePath)

		second := m.PopUndo()
		require.NotNil(t, second)
		assert.Equal(t, "2.kt", second.FilePath)

		assert.Nil(t, m.PopUndo(), "oldest entry should have been dropped")
	})

	t.Run("entries carry unique ids", func(t *testing.T) {
		t.Parallel()

		m := undo.NewManager()
		e1 := m.RecordFix("a.kt", "x", "y", "fix")
		e2 := m.RecordFix("a.kt", "x", "y", "fix")
		assert.NotEqual(t, e1.ID, e2.ID)
	})
}

// TestUndoRedoDuality verifies that undo followed by redo restores the
// manager to its pre-undo state.
func TestUndoRedoDuality(t *testing.T) {
	t.Parallel()

	m := undo.NewManager()
	for i := 1; i <= 3; i++ {
		m.RecordFix(fmt.Sprintf("%d.kt", i), "old", "new", "fix")
	}

	undone := m.PopUndo()
	require.NotNil(t, undone)
	assert.Equal(t, "3.kt", undone.FilePath)
	require.True(t, m.CanRedo())

	redone := m.PopRedo()
	require.NotNil(t, redone)
	assert.Equal(t, undone.ID, redone.ID, "redo must return the exact undone entry")
	assert.False(t, m.CanRedo())

	// The entry is back on top of the undo stack.
	again := m.PopUndo()
	require.NotNil(t, again)
	assert.Equal(t, undone.ID, again.ID)
}

func TestPopEmptyStacks(t *testing.T) {
	t.Parallel()

	m := undo.NewManager()
	assert.Nil(t, m.PopUndo())
	assert.Nil(t, m.PopRedo())
	assert.False(t, m.CanUndo())
	assert.False(t, m.CanRedo())
}

func TestClearAll(t *testing.T) {
	t.Parallel()

	m := undo.NewManager()
	m.RecordFix("a.kt", "old", "new", "fix")
	require.NotNil(t, m.PopUndo())
	require.True(t, m.CanRedo())

	m.ClearAll()
	assert.False(t, m.CanUndo())
	assert.False(t, m.CanRedo())
}
