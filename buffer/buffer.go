// Package buffer orchestrates a rope, its mark-sets and its undo/redo
// history behind a single transactional edit/undo/redo contract, plus the
// line-and-column addressing and line-ending/indentation auto-detection a
// text editor's view layer needs on top of raw rope access.
package buffer

import (
	"io"
	"unicode/utf8"

	"github.com/inkwell-editor/inkwell/coreerr"
	"github.com/inkwell-editor/inkwell/history"
	"github.com/inkwell-editor/inkwell/mark"
	"github.com/inkwell-editor/inkwell/rope"
	"github.com/inkwell-editor/inkwell/strutil"
)

// Buffer is an open, in-memory text buffer: one Rope, one History, and an
// ordered collection of mark-sets referenced by integer handles (cursors,
// view positions, and so on). It carries an Origin (on-disk path or a
// numbered temp slot) and a Dirty flag set by every edit and cleared by a
// successful save.
type Buffer struct {
	Rope          *rope.Rope
	History       *history.History
	MarkSets      []*mark.Set
	Origin        Origin
	Dirty         bool
	LineEnding    strutil.LineEnding
	SoftTabs      bool
	SoftTabWidth  int
	ViewMarkSet   int
	CursorMarkSet int
}

// New returns a Buffer over text, seeding it with a view-position mark-set
// and a cursor mark-set (each holding a single caret at the start of the
// text), matching the pair of mark-sets every editor surface built on this
// core is expected to need immediately.
func New(text *rope.Rope, origin Origin) *Buffer {
	b := &Buffer{
		Rope:         text,
		History:      history.New(),
		Origin:       origin,
		LineEnding:   strutil.LineEndingLF,
		SoftTabWidth: 4,
	}
	b.ViewMarkSet = b.AddMarkSet()
	b.MarkSets[b.ViewMarkSet].Add(mark.New(0))
	b.CursorMarkSet = b.AddMarkSet()
	b.MarkSets[b.CursorMarkSet].Add(mark.New(0))
	return b
}

// AddMarkSet creates a new empty mark-set and returns its handle.
func (b *Buffer) AddMarkSet() int {
	b.MarkSets = append(b.MarkSets, mark.NewSet())
	return len(b.MarkSets) - 1
}

// ScalarCount returns the number of scalar values in the buffer's text.
func (b *Buffer) ScalarCount() int { return b.Rope.ScalarCount() }

// LineCount returns the number of lines in the buffer's text.
func (b *Buffer) LineCount() int { return b.Rope.LineCount() }

// Line returns a Slice over line n, including its terminator if any.
func (b *Buffer) Line(n int) (*rope.Slice, error) {
	start, err := b.Rope.LineToScalar(n)
	if err != nil {
		return nil, err
	}
	end := b.Rope.ScalarCount()
	if n+1 < b.Rope.LineCount() {
		end, err = b.Rope.LineToScalar(n + 1)
		if err != nil {
			return nil, err
		}
	}
	return b.Rope.Slice(start, end)
}

// ScalarToLineCol converts a scalar index into a (line, column) pair, where
// column is the scalar offset within that line.
func (b *Buffer) ScalarToLineCol(scalar int) (line, col int, err error) {
	line, err = b.Rope.ScalarToLine(scalar)
	if err != nil {
		return 0, 0, err
	}
	lineStart, err := b.Rope.LineToScalar(line)
	if err != nil {
		return 0, 0, err
	}
	return line, scalar - lineStart, nil
}

// LineColToScalar is the inverse of ScalarToLineCol. A column past the end
// of the line clamps to the line's length (including its terminator).
func (b *Buffer) LineColToScalar(line, col int) (int, error) {
	lineStart, err := b.Rope.LineToScalar(line)
	if err != nil {
		return 0, err
	}
	lineEnd := b.Rope.ScalarCount()
	if line+1 < b.Rope.LineCount() {
		lineEnd, err = b.Rope.LineToScalar(line + 1)
		if err != nil {
			return 0, err
		}
	}
	if lineStart+col > lineEnd {
		return lineEnd, nil
	}
	return lineStart + col, nil
}

// Edit replaces the scalar range [start,end) (normalized if given reversed)
// with text: records a reversible entry in History, rewrites every mark in
// every mark-set under the §4.3 rewrite rule and re-establishes
// consistency, then mutates the rope. Sets Dirty.
func (b *Buffer) Edit(a, bEnd int, text string) error {
	start, end := a, bEnd
	if start > end {
		start, end = end, start
	}
	if start < 0 || end > b.Rope.ScalarCount() {
		return coreerr.NewIndexOutOfBounds("scalar", end, b.Rope.ScalarCount())
	}

	from := ""
	if start != end {
		sl, err := b.Rope.Slice(start, end)
		if err != nil {
			return err
		}
		from = sl.String()
	}
	b.History.Push(history.Edit{CharIdx: start, From: from, To: text})

	newLen := strutil.ScalarCount(text)
	for _, ms := range b.MarkSets {
		ms.EditAll(start, end, newLen)
	}

	r := b.Rope
	var err error
	if start != end {
		r, err = r.Remove(start, end)
		if err != nil {
			return err
		}
	}
	if text != "" {
		r, err = r.Insert(start, text)
		if err != nil {
			return err
		}
	}
	b.Rope = r
	b.Dirty = true
	return nil
}

// Undo reverses the last edit, if any, rewriting marks under the inverse
// edit and restoring the replaced text. It returns the scalar range the
// caller should use to place a cursor, and ok is false when there was
// nothing to undo.
func (b *Buffer) Undo() (start, end int, ok bool) {
	ed, ok := b.History.Undo()
	if !ok {
		return 0, 0, false
	}
	preLen := strutil.ScalarCount(ed.To)
	postLen := strutil.ScalarCount(ed.From)
	start, end = ed.CharIdx, ed.CharIdx+preLen

	for _, ms := range b.MarkSets {
		ms.EditAll(start, end, postLen)
	}

	r := b.Rope
	if start != end {
		r, _ = r.Remove(start, end)
	}
	if ed.From != "" {
		r, _ = r.Insert(start, ed.From)
	}
	b.Rope = r
	b.Dirty = true
	return start, start + postLen, true
}

// Redo reapplies the edit most recently undone, symmetric to Undo.
func (b *Buffer) Redo() (start, end int, ok bool) {
	ed, ok := b.History.Redo()
	if !ok {
		return 0, 0, false
	}
	preLen := strutil.ScalarCount(ed.From)
	postLen := strutil.ScalarCount(ed.To)
	start, end = ed.CharIdx, ed.CharIdx+preLen

	for _, ms := range b.MarkSets {
		ms.EditAll(start, end, postLen)
	}

	r := b.Rope
	if start != end {
		r, _ = r.Remove(start, end)
	}
	if ed.To != "" {
		r, _ = r.Insert(start, ed.To)
	}
	b.Rope = r
	b.Dirty = true
	return start, start + postLen, true
}

// Load reads all of r, validates it as UTF-8, detects its line ending and
// indentation style, and returns a new Buffer over its contents.
func Load(r io.Reader, origin Origin) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, coreerr.NewInvalidUTF8(firstInvalidUTF8(data))
	}
	text := rope.New(string(data))
	b := New(text, origin)
	b.LineEnding = autoDetectLineEnding(text)
	if softTabs, width := autoDetectIndentation(text); softTabs {
		b.SoftTabs, b.SoftTabWidth = true, width
	}
	b.Dirty = false
	return b, nil
}

func firstInvalidUTF8(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(data)
}

// WriteTo writes the buffer's full text to w.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, b.Rope.String())
	return int64(n), err
}

// SaveIfDirty writes the buffer's contents to w only if Dirty is set,
// clearing Dirty on success. It reports whether a write occurred.
func (b *Buffer) SaveIfDirty(w io.Writer) (wrote bool, err error) {
	if !b.Dirty {
		return false, nil
	}
	if _, err := b.WriteTo(w); err != nil {
		return false, err
	}
	b.Dirty = false
	return true, nil
}

// autoDetectLineEnding histograms the eight terminator kinds over the first
// 100 lines and picks the maximum, breaking ties in LineEnding's declared
// order. Defaults to LF when no terminator is observed.
func autoDetectLineEnding(r *rope.Rope) strutil.LineEnding {
	var histogram [9]int
	lines, err := r.LinesRange(0, minInt(100, r.LineCount()))
	if err != nil {
		return strutil.LineEndingLF
	}
	for {
		line, ok := lines.Next()
		if !ok {
			break
		}
		s := line.String()
		if s == "" {
			continue
		}
		gs := strutil.Graphemes(s)
		last := gs[len(gs)-1]
		le := strutil.LineEndingOf(last)
		histogram[le]++
	}

	best := strutil.LineEndingLF
	bestCount := 0
	for le := strutil.LineEndingCRLF; int(le) < len(histogram); le++ {
		if histogram[le] > bestCount {
			bestCount = histogram[le]
			best = le
		}
	}
	if bestCount == 0 {
		return strutil.LineEndingLF
	}
	return best
}

// autoDetectIndentation scans the first 1000 lines for a tab-indented vs.
// space-indented majority. Returns softTabs=false, width=0 if neither
// appears. If spaces outnumber tabs more than 2:1, softTabs is true with
// width set to the most common leading-space count observed.
func autoDetectIndentation(r *rope.Rope) (softTabs bool, width int) {
	tabLines := 0
	spaceLines := 0
	var spaceWidths map[int]int = make(map[int]int)

	lines, err := r.LinesRange(0, minInt(1000, r.LineCount()))
	if err != nil {
		return false, 0
	}
	for {
		line, ok := lines.Next()
		if !ok {
			break
		}
		s := line.String()
		if len(s) == 0 {
			continue
		}
		switch s[0] {
		case '\t':
			tabLines++
		case ' ':
			spaceLines++
			n := 0
			for n < len(s) && s[n] == ' ' {
				n++
			}
			spaceWidths[n]++
		}
	}

	if tabLines == 0 && spaceLines == 0 {
		return false, 0
	}
	if spaceLines > tabLines*2 {
		bestWidth := 0
		bestCount := 0
		for w, c := range spaceWidths {
			if c > bestCount || (c == bestCount && w < bestWidth) {
				bestCount = c
				bestWidth = w
			}
		}
		return true, bestWidth
	}
	return false, 0
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
