package mark

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkStartEnd(t *testing.T) {
	m := NewRange(5, 2)
	assert.Equal(t, 2, m.Start())
	assert.Equal(t, 5, m.End())
	assert.False(t, m.IsCaret())

	c := New(3)
	assert.True(t, c.IsCaret())
}

func TestMarkMergePreservesDirection(t *testing.T) {
	forward := NewRange(2, 8)  // head < tail
	backward := NewRange(9, 0) // head > tail

	merged := forward.Merge(backward)
	assert.Equal(t, 0, merged.Head)
	assert.Equal(t, 9, merged.Tail)
	assert.Nil(t, merged.HHPos)
}

func TestMarkEditRewriteRule(t *testing.T) {
	// head=10, tail=10 under edit ((3,7), "XY") -> head=8, tail=8 (d = 2-4 = -2)
	m := New(10)
	rewritten := m.Edit(3, 7, 2)
	assert.Equal(t, 8, rewritten.Head)
	assert.Equal(t, 8, rewritten.Tail)

	// head=5, tail=5 (inside removed range) -> clamped to start+new_len = 3+2 = 5
	inside := New(5)
	rewritten2 := inside.Edit(3, 7, 2)
	assert.Equal(t, 5, rewritten2.Head)
	assert.Equal(t, 5, rewritten2.Tail)
}

func TestMarkEditUnaffectedBeforeStart(t *testing.T) {
	m := New(1)
	rewritten := m.Edit(3, 7, 2)
	assert.Equal(t, 1, rewritten.Head)
}

func TestMarkEditClearsHHPos(t *testing.T) {
	hh := 4
	m := Mark{Head: 10, Tail: 10, HHPos: &hh}
	rewritten := m.Edit(0, 0, 0)
	assert.Nil(t, rewritten.HHPos)
}

func TestSetAddKeepsSortedOrder(t *testing.T) {
	s := NewSet()
	s.Add(New(10))
	s.Add(New(2))
	s.Add(New(6))

	starts := make([]int, len(s.Marks))
	for i, m := range s.Marks {
		starts[i] = m.Start()
	}
	assert.Equal(t, []int{2, 6, 10}, starts)
}

func TestSetAddUpdatesMainIndex(t *testing.T) {
	s := NewSet()
	s.Add(New(10))
	s.MainIndex = 0
	s.Add(New(2)) // inserted before index 0, main should shift to 1
	assert.Equal(t, 1, s.MainIndex)
}

func TestSetMakeConsistentMergesTouching(t *testing.T) {
	s := NewSet()
	s.Add(NewRange(0, 5))
	s.Add(NewRange(5, 10)) // touches the first
	s.Add(NewRange(20, 25))

	s.MakeConsistent()

	assert.Len(t, s.Marks, 2)
	assert.Equal(t, 0, s.Marks[0].Start())
	assert.Equal(t, 10, s.Marks[0].End())
	assert.Equal(t, 20, s.Marks[1].Start())
}

func TestSetMakeConsistentIdempotent(t *testing.T) {
	s := NewSet()
	s.Add(NewRange(0, 5))
	s.Add(NewRange(5, 10))
	s.MakeConsistent()
	before := append([]Mark(nil), s.Marks...)

	s.MakeConsistent()
	assert.Equal(t, before, s.Marks)
}

func TestSetReduceToMain(t *testing.T) {
	s := NewSet()
	s.Add(New(1))
	s.Add(New(2))
	s.MainIndex = 1

	s.ReduceToMain()

	assert.Len(t, s.Marks, 1)
	assert.Equal(t, 2, s.Marks[0].Head)
	assert.Equal(t, 0, s.MainIndex)
}

func TestSetMainOnEmptySet(t *testing.T) {
	s := NewSet()
	_, ok := s.Main()
	assert.False(t, ok)
}

func TestSetEditAll(t *testing.T) {
	s := NewSet()
	s.Add(New(10))
	s.Add(New(5))

	s.EditAll(3, 7, 2)

	assert.Equal(t, 5, s.Marks[0].Head)
	assert.Equal(t, 8, s.Marks[1].Head)
}
