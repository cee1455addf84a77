package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistorySetAndUndo(t *testing.T) {
	h := NewHistory(0, 10)
	h.Set(1)
	h.Set(2)

	assert.Equal(t, 2, h.Present())
	require.True(t, h.CanUndo())

	h.Undo()
	assert.Equal(t, 1, h.Present())
	assert.True(t, h.CanRedo())

	h.Undo()
	assert.Equal(t, 0, h.Present())
	assert.False(t, h.CanUndo())
}

func TestHistoryBound(t *testing.T) {
	h := NewHistory(0, 2)
	h.Set(1)
	h.Set(2)
	h.Set(3)

	// The oldest entry (initial 0) fell off the back.
	assert.Equal(t, []int{1, 2}, h.Past())
	assert.Equal(t, 3, h.Present())
}

func TestHistoryBranchInvalidation(t *testing.T) {
	h := NewHistory(0, 10)
	h.Set(1)
	h.Set(2)
	h.Undo()
	require.Equal(t, 1, h.Present())
	require.True(t, h.CanRedo())

	h.Set(3)

	assert.False(t, h.CanRedo())
	assert.Empty(t, h.Future())
	h.Redo() // no-op
	assert.Equal(t, 3, h.Present())
}

func TestHistoryRedo(t *testing.T) {
	h := NewHistory(0, 10)
	h.Set(1)
	h.Set(2)
	h.Undo()
	h.Undo()
	h.Redo()
	assert.Equal(t, 1, h.Present())
	h.Redo()
	assert.Equal(t, 2, h.Present())
	h.Redo() // empty future, no-op
	assert.Equal(t, 2, h.Present())
}

func TestHistoryUndoEmptyIsNoOp(t *testing.T) {
	h := NewHistory("initial", 10)
	h.Undo()
	assert.Equal(t, "initial", h.Present())
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}

func TestHistorySetEqualValueIsNoOp(t *testing.T) {
	h := NewHistory(5, 10)
	h.Set(5)
	assert.False(t, h.CanUndo())
	assert.Empty(t, h.Past())
}

func TestHistoryUpdate(t *testing.T) {
	h := NewHistory(10, 10)
	h.Update(func(v int) int { return v * 2 })
	assert.Equal(t, 20, h.Present())
	assert.Equal(t, []int{10}, h.Past())

	// Updater returning the same value leaves history untouched.
	h.Update(func(v int) int { return v })
	assert.Equal(t, []int{10}, h.Past())
}

func TestHistoryReset(t *testing.T) {
	h := NewHistory(0, 10)
	h.Set(1)
	h.Set(2)
	h.Undo()

	h.Reset(42)

	assert.Equal(t, 42, h.Present())
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}

func TestHistoryDefaultBound(t *testing.T) {
	h := NewHistory(0, 0)
	for i := 1; i <= DefaultMaxHistory+10; i++ {
		h.Set(i)
	}
	assert.Len(t, h.Past(), DefaultMaxHistory)
}

func TestHistoryWithStructState(t *testing.T) {
	type editorState struct {
		Selected string
		Dirty    bool
	}

	h := NewHistory(editorState{}, 10)
	h.Set(editorState{Selected: "li1", Dirty: true})
	h.Set(editorState{Selected: "li2", Dirty: true})
	h.Undo()
	assert.Equal(t, "li1", h.Present().Selected)
}
