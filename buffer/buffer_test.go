package buffer

import (
	"strings"
	"testing"

	"github.com/inkwell-editor/inkwell/mark"
	"github.com/inkwell-editor/inkwell/rope"
	"github.com/inkwell-editor/inkwell/strutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeedsViewAndCursorMarkSets(t *testing.T) {
	b := New(rope.FromString("hello"), TempOrigin(1))
	require.Len(t, b.MarkSets, 2)

	view, ok := b.MarkSets[b.ViewMarkSet].Main()
	require.True(t, ok)
	assert.Equal(t, 0, view.Head)

	cursor, ok := b.MarkSets[b.CursorMarkSet].Main()
	require.True(t, ok)
	assert.Equal(t, 0, cursor.Head)
}

func TestEditInsertOnly(t *testing.T) {
	b := New(rope.FromString("Hello, world!"), TempOrigin(1))
	err := b.Edit(7, 7, "beautiful ")
	require.NoError(t, err)
	assert.Equal(t, "Hello, beautiful world!", b.Rope.String())
	assert.True(t, b.Dirty)
}

func TestEditReplaceRewritesMarks(t *testing.T) {
	b := New(rope.FromString("0123456789"), TempOrigin(1))
	cursors := b.MarkSets[b.CursorMarkSet]
	cursors.Clear()
	cursors.Add(mark.New(10))

	err := b.Edit(3, 7, "XY")
	require.NoError(t, err)

	m, _ := cursors.Main()
	assert.Equal(t, 8, m.Head) // d = 2 - 4 = -2
}

func TestUndoRedoRoundTrip(t *testing.T) {
	b := New(rope.FromString("Hello, world!"), TempOrigin(1))
	require.NoError(t, b.Edit(7, 12, "there"))
	assert.Equal(t, "Hello, there!", b.Rope.String())

	start, end, ok := b.Undo()
	require.True(t, ok)
	assert.Equal(t, "Hello, world!", b.Rope.String())
	assert.Equal(t, 7, start)
	assert.Equal(t, 12, end)

	_, _, ok = b.Redo()
	require.True(t, ok)
	assert.Equal(t, "Hello, there!", b.Rope.String())
}

func TestUndoWithNothingToUndo(t *testing.T) {
	b := New(rope.FromString("abc"), TempOrigin(1))
	_, _, ok := b.Undo()
	assert.False(t, ok)
}

func TestScalarToLineColAndBack(t *testing.T) {
	b := New(rope.FromString("one\ntwo\nthree"), TempOrigin(1))

	line, col, err := b.ScalarToLineCol(5)
	require.NoError(t, err)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)

	scalar, err := b.LineColToScalar(line, col)
	require.NoError(t, err)
	assert.Equal(t, 5, scalar)
}

func TestLineReturnsSliceWithTerminator(t *testing.T) {
	b := New(rope.FromString("one\ntwo\n"), TempOrigin(1))
	l0, err := b.Line(0)
	require.NoError(t, err)
	assert.Equal(t, "one\n", l0.String())
}

func TestLoadDetectsLFByDefault(t *testing.T) {
	r := strings.NewReader("a\nb\nc\n")
	b, err := Load(r, TempOrigin(1))
	require.NoError(t, err)
	assert.Equal(t, "a\nb\nc\n", b.Rope.String())
	assert.Equal(t, strutil.LineEndingLF, b.LineEnding)
	assert.False(t, b.Dirty)
}

func TestLoadDetectsCRLFMajority(t *testing.T) {
	r := strings.NewReader("a\r\nb\r\nc\n")
	b, err := Load(r, TempOrigin(1))
	require.NoError(t, err)
	assert.Equal(t, strutil.LineEndingCRLF, b.LineEnding)
}

func TestLoadRejectsInvalidUTF8(t *testing.T) {
	bad := []byte{'a', 'b', 0xff, 'c'}
	_, err := Load(strings.NewReader(string(bad)), TempOrigin(1))
	assert.Error(t, err)
}

func TestLoadDetectsSoftTabs(t *testing.T) {
	text := "if true {\n    a()\n    b()\n} else {\n    c()\n}\n"
	b, err := Load(strings.NewReader(text), TempOrigin(1))
	require.NoError(t, err)
	assert.True(t, b.SoftTabs)
	assert.Equal(t, 4, b.SoftTabWidth)
}

func TestSaveIfDirty(t *testing.T) {
	b := New(rope.FromString("abc"), TempOrigin(1))
	var buf strings.Builder
	wrote, err := b.SaveIfDirty(&buf)
	require.NoError(t, err)
	assert.False(t, wrote) // not dirty yet

	require.NoError(t, b.Edit(0, 0, "X"))
	wrote, err = b.SaveIfDirty(&buf)
	require.NoError(t, err)
	assert.True(t, wrote)
	assert.Equal(t, "Xabc", buf.String())
	assert.False(t, b.Dirty)
}

func TestOriginString(t *testing.T) {
	assert.Equal(t, "/tmp/a.txt", FileOrigin("/tmp/a.txt").String())
	assert.Equal(t, "[scratch 3]", TempOrigin(3).String())
}
