package history

import "github.com/sergi/go-diff/diffmatchpatch"

// String renders a human-readable diff of the edit's From/To text, for
// debugging and logging. Not used by Undo/Redo itself.
func (e Edit) String() string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(e.From, e.To, false)
	return dmp.DiffPrettyText(diffs)
}

// Describe renders every edit from index 0 up to (exclusive) the history's
// current Position, in order, one diff per line. Useful when inspecting a
// session's edit trail during development.
func Describe(h *History) string {
	out := ""
	for i := 0; i < h.Position; i++ {
		if i > 0 {
			out += "\n"
		}
		out += h.Edits[i].String()
	}
	return out
}
