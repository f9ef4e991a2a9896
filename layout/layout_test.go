package layout

import (
	"testing"

	"github.com/inkwell-editor/inkwell/rope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedWidthDimensions(t *testing.T) {
	f := FixedWidthFormatter{TabWidth: 4}
	h, w := f.Dimensions([]string{"a", "b", "\t", "c"})
	assert.Equal(t, 1, h)
	assert.Equal(t, 5, w) // a(1) b(1) tab->4 c(1) = 5
}

func TestFixedWidthScalarToVisualRoundTrip(t *testing.T) {
	f := FixedWidthFormatter{TabWidth: 4}
	gs := []string{"a", "b", "c", "d"}
	_, col := f.ScalarToVisual(gs, 2)
	assert.Equal(t, 2, col)

	idx := f.VisualToScalar(gs, 0, 2, RoundingRound, RoundingRound)
	assert.Equal(t, 2, idx)
}

func TestFindGoodBreakShortLineReturnsIndexUnchanged(t *testing.T) {
	r := rope.FromString("short line of text")
	s, err := r.Slice(0, r.ScalarCount())
	require.NoError(t, err)

	idx := FindGoodBreak(s, 0, 10)
	assert.Equal(t, 10, idx)
}

func TestBlockCountSingleBlockForShortLine(t *testing.T) {
	r := rope.FromString("a short line")
	s, err := r.Slice(0, r.ScalarCount())
	require.NoError(t, err)

	assert.Equal(t, 1, BlockCount(s))
}

func TestBlockIndexAndRangeCoversWholeSlice(t *testing.T) {
	r := rope.FromString("a short line")
	s, err := r.Slice(0, r.ScalarCount())
	require.NoError(t, err)

	blockIdx, start, end := BlockIndexAndRange(s, 3)
	assert.Equal(t, 0, blockIdx)
	assert.Equal(t, 0, start)
	assert.Equal(t, r.ScalarCount(), end)
}

func TestCharRangeFromBlockIndexOnLongLine(t *testing.T) {
	long := make([]byte, LineBlockLength*3)
	for i := range long {
		long[i] = 'x'
	}
	r := rope.FromString(string(long))
	s, err := r.Slice(0, r.ScalarCount())
	require.NoError(t, err)

	start0, end0 := CharRangeFromBlockIndex(s, 0)
	assert.Equal(t, 0, start0)
	assert.InDelta(t, LineBlockLength, end0, LineBlockFudge)

	start1, _ := CharRangeFromBlockIndex(s, 1)
	assert.Equal(t, end0, start1)

	assert.Equal(t, 3, BlockCount(s))
}

func TestCharRangeFromBlockIndexBreaksOnWhitespace(t *testing.T) {
	words := make([]byte, 0, LineBlockLength*2)
	for len(words) < LineBlockLength+500 {
		words = append(words, []byte("word ")...)
	}
	r := rope.FromString(string(words))
	s, err := r.Slice(0, r.ScalarCount())
	require.NoError(t, err)

	_, end0 := CharRangeFromBlockIndex(s, 0)
	g, err := s.ScalarAt(end0 - 1)
	require.NoError(t, err)
	assert.Equal(t, ' ', g)
}
