// Package mark tracks positions and ranges over a rope's scalar-value
// indices: cursors, selections, and view anchors, grouped into ordered,
// merge-on-overlap sets that survive edits to the underlying text.
package mark

import "sort"

// Mark is a position or range into a rope, identified by a Head and a Tail.
// Head is the end that moves under extension commands; Tail stays put. The
// pair can be in either order, or equal (a caret). HHPos is an optional
// target visual column used by vertical cursor motion; it is cleared
// whenever the mark is moved by anything other than vertical motion.
type Mark struct {
	Head  int
	Tail  int
	HHPos *int
}

// New returns a caret mark at head (Tail == Head, HHPos absent).
func New(head int) Mark {
	return Mark{Head: head, Tail: head}
}

// NewRange returns a mark spanning [head, tail) in whichever order is given.
func NewRange(head, tail int) Mark {
	return Mark{Head: head, Tail: tail}
}

// Start returns the lesser of Head and Tail.
func (m Mark) Start() int {
	if m.Head < m.Tail {
		return m.Head
	}
	return m.Tail
}

// End returns the greater of Head and Tail.
func (m Mark) End() int {
	if m.Head > m.Tail {
		return m.Head
	}
	return m.Tail
}

// IsCaret reports whether the mark is zero-width.
func (m Mark) IsCaret() bool {
	return m.Head == m.Tail
}

// Merge returns the mark spanning the union of m's and other's ranges,
// keeping m's head/tail direction (head < tail or head > tail) for the
// combined endpoints. HHPos is always cleared on the result.
func (m Mark) Merge(other Mark) Mark {
	start := m.Start()
	if other.Start() < start {
		start = other.Start()
	}
	end := m.End()
	if other.End() > end {
		end = other.End()
	}
	if m.Head < m.Tail {
		return Mark{Head: start, Tail: end}
	}
	return Mark{Head: end, Tail: start}
}

// Edit rewrites m under an edit that replaced [start,end) with newLen
// scalars, per the single edit-rewrite rule applied to both Head and Tail:
// endpoints at or before start are unchanged, endpoints at or after end
// shift by the signed delta, and endpoints strictly inside the removed
// range clamp to the right edge of the replacement (start+newLen). HHPos is
// always cleared.
func (m Mark) Edit(start, end, newLen int) Mark {
	delta := newLen - (end - start)
	return Mark{
		Head: rewritePoint(m.Head, start, end, newLen, delta),
		Tail: rewritePoint(m.Tail, start, end, newLen, delta),
	}
}

func rewritePoint(p, start, end, newLen, delta int) int {
	switch {
	case p <= start:
		return p
	case p >= end:
		return p + delta
	default:
		return start + newLen
	}
}

// Set is a sequence of Marks, intended to be kept sorted by range start and
// pairwise disjoint by calling MakeConsistent after every mutation. One
// mark is designated "main", used for operations like ReduceToMain that
// single out a single active cursor among many.
type Set struct {
	Marks     []Mark
	MainIndex int
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{}
}

// Clear empties the set and resets MainIndex to 0.
func (s *Set) Clear() {
	s.Marks = nil
	s.MainIndex = 0
}

// Add inserts m into its sorted position by range start and returns the
// index it landed at. Appending past the current last mark is the common
// case and runs in amortized O(1); otherwise this is O(N) for the shift.
// Does not itself preserve disjointness — call MakeConsistent afterwards.
func (s *Set) Add(m Mark) int {
	if len(s.Marks) == 0 || s.Marks[len(s.Marks)-1].Start() < m.Start() {
		s.Marks = append(s.Marks, m)
		return len(s.Marks) - 1
	}

	idx := sort.Search(len(s.Marks), func(i int) bool {
		return s.Marks[i].Start() >= m.Start()
	})
	s.Marks = append(s.Marks, Mark{})
	copy(s.Marks[idx+1:], s.Marks[idx:])
	s.Marks[idx] = m

	if s.MainIndex >= idx && len(s.Marks) > 1 {
		s.MainIndex++
	}
	return idx
}

// MakeConsistent merges every pair of adjacent marks whose ranges touch or
// overlap, in a single left-to-right pass, preserving the earlier mark's
// head/tail direction on each merge. Idempotent: running it twice in a row
// leaves the set unchanged.
func (s *Set) MakeConsistent() {
	if len(s.Marks) == 0 {
		return
	}
	i1 := 0
	for i2 := 1; i2 < len(s.Marks); i2++ {
		if s.Marks[i1].End() < s.Marks[i2].Start() {
			i1++
			s.Marks[i1] = s.Marks[i2]
			if s.MainIndex == i2 {
				s.MainIndex = i1
			}
		} else {
			s.Marks[i1] = s.Marks[i1].Merge(s.Marks[i2])
			if s.MainIndex == i2 {
				s.MainIndex = i1
			}
		}
	}
	s.Marks = s.Marks[:i1+1]
	if s.MainIndex >= len(s.Marks) {
		s.MainIndex = len(s.Marks) - 1
	}
}

// ReduceToMain discards every mark except the designated main one.
func (s *Set) ReduceToMain() {
	if len(s.Marks) == 0 {
		return
	}
	s.Marks = []Mark{s.Marks[s.MainIndex]}
	s.MainIndex = 0
}

// Main returns the designated main mark. ok is false only when the set is
// empty.
func (s *Set) Main() (Mark, bool) {
	if len(s.Marks) == 0 {
		return Mark{}, false
	}
	return s.Marks[s.MainIndex], true
}

// EditAll rewrites every mark in the set under the given edit and
// re-establishes consistency, matching the rewrite-then-merge sequence the
// buffer package applies to every mark-set on every edit.
func (s *Set) EditAll(start, end, newLen int) {
	for i := range s.Marks {
		s.Marks[i] = s.Marks[i].Edit(start, end, newLen)
	}
	s.MakeConsistent()
}
