package strutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounts(t *testing.T) {
	scalars, graphemes, terminators := Counts("Hello\r\nworld!")
	assert.Equal(t, 13, scalars)
	assert.Equal(t, 12, graphemes) // CRLF counts as one grapheme
	assert.Equal(t, 1, terminators)
}

func TestIsLineTerminator(t *testing.T) {
	for _, g := range []string{"\r\n", "\n", "\v", "\f", "\r", "", " ", " "} {
		assert.True(t, IsLineTerminator(g), "expected %q to be a terminator", g)
	}
	assert.False(t, IsLineTerminator("a"))
	assert.False(t, IsLineTerminator(""))
}

func TestLineEndingOf(t *testing.T) {
	assert.Equal(t, LineEndingCRLF, LineEndingOf("\r\n"))
	assert.Equal(t, LineEndingLF, LineEndingOf("\n"))
	assert.Equal(t, LineEndingNone, LineEndingOf("x"))
}

func TestGraphemesMerge(t *testing.T) {
	assert.True(t, GraphemesMerge("\r", "\n"))
	assert.False(t, GraphemesMerge("\n", "\r"))
	assert.False(t, GraphemesMerge("a", "b"))
}

func TestByteOfScalarAndGrapheme(t *testing.T) {
	s := "a\r\nb"
	b, err := ByteOfScalar(s, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, b) // 'a','\r' -> byte offset 2 is '\n'

	b, err = ByteOfGrapheme(s, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, b) // grapheme 0 is "a", grapheme 1 starts at "\r\n"

	_, err = ByteOfScalar(s, 10)
	require.Error(t, err)
}

func TestScalarGraphemeRoundTrip(t *testing.T) {
	s := "Hello\r\nworld!"
	for gi := 0; gi <= GraphemeCount(s); gi++ {
		si, err := ScalarOfGrapheme(s, gi)
		require.NoError(t, err)
		back, err := GraphemeOfScalar(s, si)
		require.NoError(t, err)
		assert.Equal(t, gi, back)
	}
}

func TestGraphemeOfScalarInsideCluster(t *testing.T) {
	s := "a\r\nb"
	// scalar 2 is the LF, strictly inside the CRLF grapheme that starts at scalar 1.
	gi, err := GraphemeOfScalar(s, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, gi)
}

func TestInsertRemoveSplitAtScalar(t *testing.T) {
	s := "abcdef"
	got, err := InsertAtScalar(s, 3, "XY")
	require.NoError(t, err)
	assert.Equal(t, "abcXYdef", got)

	got, err = RemoveBetweenScalars(s, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, "adef", got)

	left, right, err := SplitAtScalar(s, 2)
	require.NoError(t, err)
	assert.Equal(t, "ab", left)
	assert.Equal(t, "cdef", right)
}

func TestRemoveBetweenScalarsInverted(t *testing.T) {
	_, err := RemoveBetweenScalars("abc", 2, 1)
	require.Error(t, err)
}

func TestInsertRemoveSplitAtGrapheme(t *testing.T) {
	s := "a\r\nb\r\nc"
	got, err := InsertAtGrapheme(s, 1, "Z")
	require.NoError(t, err)
	assert.Equal(t, "aZ\r\nb\r\nc", got)

	got, err = RemoveBetweenGraphemes(s, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "ab\r\nc", got)

	left, right, err := SplitAtGrapheme(s, 2)
	require.NoError(t, err)
	assert.Equal(t, "a\r\n", left)
	assert.Equal(t, "b\r\nc", right)
}
