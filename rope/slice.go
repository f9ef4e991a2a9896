package rope

import (
	"strings"
	"unicode/utf8"

	"github.com/inkwell-editor/inkwell/strutil"
)

// Slice is a non-owning, read-only view over a scalar range of a Rope. It
// offers ScalarCount, String, GraphemeCount and ScalarAt, clamped to its
// range; the Rope's iterators, index conversions, line addressing and
// GraphemeAt are not available on a Slice. A Slice's lifetime is bounded by the Rope it was cut from; since
// Rope is immutable, this bound is trivially satisfied.
type Slice struct {
	root       *node
	start, end int
}

// ScalarCount returns the number of scalar values the slice spans.
func (s *Slice) ScalarCount() int { return s.end - s.start }

// String renders the slice's contents by walking only the chunks that
// overlap [start, end), rather than flattening the whole rope: a leaf or
// two for a single line, not the entire document.
func (s *Slice) String() string {
	if s.start == s.end {
		return ""
	}
	leaf, stack, localStart := descendToScalar(s.root, s.start)
	byteStart, err := strutil.ByteOfScalar(leaf.text, localStart)
	if err != nil {
		byteStart = len(leaf.text)
	}
	text := leaf.text[byteStart:]
	chunks := &ChunkIterator{stack: stack, cur: leaf}

	var b strings.Builder
	remaining := s.end - s.start
	for {
		n := utf8.RuneCountInString(text)
		if n >= remaining {
			byteEnd, err := strutil.ByteOfScalar(text, remaining)
			if err != nil {
				byteEnd = len(text)
			}
			b.WriteString(text[:byteEnd])
			break
		}
		b.WriteString(text)
		remaining -= n
		if !chunks.Next() {
			break
		}
		text = chunks.Chunk()
	}
	return b.String()
}

// GraphemeCount returns the number of grapheme clusters overlapping the
// slice's scalar range.
func (s *Slice) GraphemeCount() int {
	if s.start == s.end {
		return 0
	}
	giStart, _ := scalarToGrapheme(s.root, s.start)
	giEnd, _ := scalarToGrapheme(s.root, s.end-1)
	return giEnd - giStart + 1
}

// ScalarAt returns the scalar at index i relative to the start of the
// slice.
func (s *Slice) ScalarAt(i int) (rune, error) {
	if i < 0 || i >= s.ScalarCount() {
		return 0, errIndex("scalar", i, s.ScalarCount())
	}
	return scalarAtNode(s.root, s.start+i)
}
