package rope

import (
	"unicode/utf8"

	"github.com/inkwell-editor/inkwell/strutil"
)

// ChunkIterator yields the rope's leaf strings in order. It keeps a stack
// of yet-to-visit right subtrees plus the current leaf; Next advances by
// popping a subtree and descending leftmost to its first leaf, matching
// the iterator discipline spec.md describes.
type ChunkIterator struct {
	stack []*node
	cur   *node
	first bool
}

func newChunkIterator(root *node) *ChunkIterator {
	it := &ChunkIterator{first: true}
	it.pushLeft(root)
	return it
}

func (it *ChunkIterator) pushLeft(n *node) {
	for !n.leaf {
		it.stack = append(it.stack, n.right)
		n = n.left
	}
	it.cur = n
}

// Next advances to the next chunk, returning false once exhausted. Call it
// once before the first Chunk().
func (it *ChunkIterator) Next() bool {
	if it.first {
		it.first = false
		return it.cur != nil
	}
	if len(it.stack) == 0 {
		it.cur = nil
		return false
	}
	next := it.stack[len(it.stack)-1]
	it.stack = it.stack[:len(it.stack)-1]
	it.pushLeft(next)
	return true
}

// Chunk returns the current leaf's text.
func (it *ChunkIterator) Chunk() string {
	if it.cur == nil {
		return ""
	}
	return it.cur.text
}

// Chunks returns a chunk iterator over the whole rope.
func (r *Rope) Chunks() *ChunkIterator { return newChunkIterator(r.root) }

// descendToScalar locates the leaf containing scalar index target, the
// stack of right-subtrees an iterator would need to continue past it, and
// target's offset within that leaf.
func descendToScalar(root *node, target int) (*node, []*node, int) {
	var stack []*node
	n := root
	for !n.leaf {
		if target < n.left.scalars {
			stack = append(stack, n.right)
			n = n.left
		} else {
			target -= n.left.scalars
			n = n.right
		}
	}
	return n, stack, target
}

func descendToGrapheme(root *node, target int) (*node, []*node, int) {
	var stack []*node
	n := root
	for !n.leaf {
		if target < n.left.graphemes {
			stack = append(stack, n.right)
			n = n.left
		} else {
			target -= n.left.graphemes
			n = n.right
		}
	}
	return n, stack, target
}

// ScalarIterator yields scalar values (runes), optionally bounded by an end
// index.
type ScalarIterator struct {
	chunks    *ChunkIterator
	remaining string
	idx       int
	bound     int
}

// Scalars returns an unbounded scalar iterator starting at scalar index
// start.
func (r *Rope) Scalars(start int) (*ScalarIterator, error) {
	return r.ScalarsRange(start, r.root.scalars)
}

// ScalarsRange returns a scalar iterator over [start, end).
func (r *Rope) ScalarsRange(start, end int) (*ScalarIterator, error) {
	if start < 0 || start > r.root.scalars || end < start || end > r.root.scalars {
		return nil, errIndex("scalar", start, r.root.scalars)
	}
	leaf, stack, local := descendToScalar(r.root, start)
	byteOff, err := strutil.ByteOfScalar(leaf.text, local)
	if err != nil {
		return nil, err
	}
	return &ScalarIterator{
		chunks:    &ChunkIterator{stack: stack, cur: leaf},
		remaining: leaf.text[byteOff:],
		idx:       start,
		bound:     end,
	}, nil
}

// Next returns the next scalar value, or false when the bound is reached.
func (it *ScalarIterator) Next() (rune, bool) {
	if it.idx >= it.bound {
		return 0, false
	}
	for it.remaining == "" {
		if !it.chunks.Next() {
			return 0, false
		}
		it.remaining = it.chunks.Chunk()
	}
	r, size := utf8.DecodeRuneInString(it.remaining)
	it.remaining = it.remaining[size:]
	it.idx++
	return r, true
}

// GraphemeIterator yields extended grapheme clusters, optionally bounded by
// an end index.
type GraphemeIterator struct {
	chunks *ChunkIterator
	buffer []string
	bufPos int
	idx    int
	bound  int
}

// Graphemes returns an unbounded grapheme iterator starting at grapheme
// index start.
func (r *Rope) Graphemes(start int) (*GraphemeIterator, error) {
	return r.GraphemesRange(start, r.root.graphemes)
}

// GraphemesRange returns a grapheme iterator over [start, end).
func (r *Rope) GraphemesRange(start, end int) (*GraphemeIterator, error) {
	if start < 0 || start > r.root.graphemes || end < start || end > r.root.graphemes {
		return nil, errIndex("grapheme", start, r.root.graphemes)
	}
	leaf, stack, local := descendToGrapheme(r.root, start)
	return &GraphemeIterator{
		chunks: &ChunkIterator{stack: stack, cur: leaf},
		buffer: strutil.Graphemes(leaf.text),
		bufPos: local,
		idx:    start,
		bound:  end,
	}, nil
}

// Next returns the next grapheme cluster, or false when the bound is
// reached.
func (it *GraphemeIterator) Next() (string, bool) {
	if it.idx >= it.bound {
		return "", false
	}
	for it.bufPos >= len(it.buffer) {
		if !it.chunks.Next() {
			return "", false
		}
		it.buffer = strutil.Graphemes(it.chunks.Chunk())
		it.bufPos = 0
	}
	g := it.buffer[it.bufPos]
	it.bufPos++
	it.idx++
	return g, true
}

// LineIterator yields a Slice per line, including its terminator, over a
// bounded range of line indices.
type LineIterator struct {
	r     *Rope
	idx   int
	bound int
}

// Lines returns a line iterator starting at line index start.
func (r *Rope) Lines(start int) (*LineIterator, error) {
	return r.LinesRange(start, r.LineCount())
}

// LinesRange returns a line iterator over line indices [start, end).
func (r *Rope) LinesRange(start, end int) (*LineIterator, error) {
	if start < 0 || start > r.LineCount() || end < start || end > r.LineCount() {
		return nil, errIndex("line", start, r.LineCount())
	}
	return &LineIterator{r: r, idx: start, bound: end}, nil
}

// Next returns the next line as a Slice (including its terminator, if
// any), or false when the bound is reached.
func (it *LineIterator) Next() (*Slice, bool) {
	if it.idx >= it.bound {
		return nil, false
	}
	startScalar, err := it.r.LineToScalar(it.idx)
	if err != nil {
		return nil, false
	}
	endScalar := it.r.ScalarCount()
	if it.idx+1 < it.r.LineCount() {
		endScalar, err = it.r.LineToScalar(it.idx + 1)
		if err != nil {
			return nil, false
		}
	}
	s, err := it.r.Slice(startScalar, endScalar)
	if err != nil {
		return nil, false
	}
	it.idx++
	return s, true
}
