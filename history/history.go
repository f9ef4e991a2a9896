// Package history implements a linear undo/redo stack of text edits. It
// records what changed but not how to apply it — applying the recorded
// from/to text against the rope and rewriting marks is the buffer
// package's job.
package history

// Edit is a single reversible change: the text that was replaced (From) and
// the text it was replaced with (To), both starting at CharIdx.
type Edit struct {
	CharIdx int
	From    string
	To      string
}

// History is a linear undo/redo stack. Position marks the index just past
// the last applied edit; pushing a new edit after undoing discards
// everything from Position onward (the redo tail).
type History struct {
	Edits    []Edit
	Position int
}

// New returns an empty History.
func New() *History {
	return &History{}
}

// Push truncates any redo tail and appends e as the new last edit.
func (h *History) Push(e Edit) {
	h.Edits = h.Edits[:h.Position]
	h.Edits = append(h.Edits, e)
	h.Position++
}

// Undo returns the edit to reverse and steps Position back by one. ok is
// false when there is nothing left to undo.
func (h *History) Undo() (edit Edit, ok bool) {
	if h.Position == 0 {
		return Edit{}, false
	}
	h.Position--
	return h.Edits[h.Position], true
}

// Redo returns the edit to reapply and steps Position forward by one. ok is
// false when there is nothing left to redo.
func (h *History) Redo() (edit Edit, ok bool) {
	if h.Position >= len(h.Edits) {
		return Edit{}, false
	}
	edit = h.Edits[h.Position]
	h.Position++
	return edit, true
}

// CanUndo reports whether Undo would succeed.
func (h *History) CanUndo() bool { return h.Position > 0 }

// CanRedo reports whether Redo would succeed.
func (h *History) CanRedo() bool { return h.Position < len(h.Edits) }
