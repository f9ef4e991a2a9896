package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushUndoRedo(t *testing.T) {
	h := New()
	h.Push(Edit{CharIdx: 0, From: "", To: "abc"})

	assert.True(t, h.CanUndo())
	assert.False(t, h.CanRedo())

	e, ok := h.Undo()
	require.True(t, ok)
	assert.Equal(t, "abc", e.To)
	assert.False(t, h.CanUndo())
	assert.True(t, h.CanRedo())

	e2, ok := h.Redo()
	require.True(t, ok)
	assert.Equal(t, "abc", e2.To)
}

func TestUndoOnEmptyHistory(t *testing.T) {
	h := New()
	_, ok := h.Undo()
	assert.False(t, ok)
}

func TestRedoOnEmptyHistory(t *testing.T) {
	h := New()
	_, ok := h.Redo()
	assert.False(t, ok)
}

func TestPushTruncatesRedoTail(t *testing.T) {
	h := New()
	h.Push(Edit{CharIdx: 0, From: "", To: "a"})
	h.Push(Edit{CharIdx: 1, From: "", To: "b"})
	h.Undo()
	h.Undo()

	// Now position is 0 with two edits available to redo; pushing a new
	// edit should discard both and leave only the new one.
	h.Push(Edit{CharIdx: 0, From: "", To: "z"})

	assert.False(t, h.CanRedo())
	assert.Len(t, h.Edits, 1)
	assert.Equal(t, "z", h.Edits[0].To)
}

func TestOrderingOfInterleavedOperations(t *testing.T) {
	h := New()
	h.Push(Edit{CharIdx: 0, From: "", To: "1"})
	h.Push(Edit{CharIdx: 1, From: "", To: "2"})
	h.Push(Edit{CharIdx: 2, From: "", To: "3"})

	h.Undo()
	e, _ := h.Redo()
	assert.Equal(t, "3", e.To)

	e, _ = h.Undo()
	assert.Equal(t, "3", e.To)
	e, _ = h.Undo()
	assert.Equal(t, "2", e.To)
}

func TestEditDescribe(t *testing.T) {
	h := New()
	h.Push(Edit{CharIdx: 0, From: "foo", To: "bar"})
	out := Describe(h)
	assert.NotEmpty(t, out)
}
