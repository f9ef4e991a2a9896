// Package strutil provides the primitive, single-string operations that the
// rope package builds its tree over: conversions between byte, scalar-value
// and extended-grapheme-cluster offsets, segmentation-aware counting, and
// in-string insertion, removal and splitting.
//
// Segmentation follows Unicode Extended Grapheme Clusters (UAX #29) via
// github.com/clipperhouse/uax29/graphemes. Of the many grapheme clusters
// UAX #29 recognizes as "should not be split", this package (and the rope
// package's seam repair built on top of it) actively repairs only the CRLF
// composite (U+000D U+000A). That is the one composite the surrounding
// corpus relies on; GraphemesMerge documents the restriction at its call
// site rather than silently narrowing the general contract.
package strutil

import (
	"unicode/utf8"

	"github.com/clipperhouse/uax29/graphemes"
)

// LineEnding identifies one of the eight line-terminator graphemes, or
// LineEndingNone when no terminator has been observed yet. The ordinal
// values double as the histogram bucket order used by the buffer package's
// line-ending auto-detection: ties are broken in this listed order.
type LineEnding int

const (
	LineEndingNone LineEnding = iota
	LineEndingCRLF
	LineEndingLF
	LineEndingVT
	LineEndingFF
	LineEndingCR
	LineEndingNEL
	LineEndingLS
	LineEndingPS
)

// LineEndingTable maps a LineEnding to its literal grapheme. Index 0 (None)
// is the empty string, matching the donor Rust source's own sentinel entry.
var LineEndingTable = [...]string{
	LineEndingNone: "",
	LineEndingCRLF: "\r\n",
	LineEndingLF:   "\n",
	LineEndingVT:   "\v",
	LineEndingFF:   "\f",
	LineEndingCR:   "\r",
	LineEndingNEL:  "",
	LineEndingLS:   " ",
	LineEndingPS:   " ",
}

// String returns the line ending's literal grapheme.
func (le LineEnding) String() string {
	if le < 0 || int(le) >= len(LineEndingTable) {
		return ""
	}
	return LineEndingTable[le]
}

// IsLineTerminator reports whether g, a single grapheme cluster, is one of
// the eight line-terminator graphemes.
func IsLineTerminator(g string) bool {
	return LineEndingOf(g) != LineEndingNone
}

// LineEndingOf classifies a terminator grapheme, returning LineEndingNone if
// g is not one of the eight recognized terminators.
func LineEndingOf(g string) LineEnding {
	for le := LineEndingCRLF; le <= LineEndingPS; le++ {
		if LineEndingTable[le] == g {
			return le
		}
	}
	return LineEndingNone
}

// GraphemesMerge reports whether concatenating a and b (each a single
// grapheme cluster) segments into exactly one grapheme cluster under UAX
// #29. This implementation recognizes only the CR-LF pair, which is the
// only merging pair the rope's seam repair must actively guard against.
func GraphemesMerge(a, b string) bool {
	return a == "\r" && b == "\n"
}

// Graphemes splits s into its extended grapheme clusters, in order.
func Graphemes(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, len(s))
	iter := graphemes.FromString(s)
	for iter.Next() {
		out = append(out, iter.Text())
	}
	return out
}

// Counts returns the scalar-value count, grapheme count and line-terminator
// count of s in a single pass.
func Counts(s string) (scalars, graphemesCount, terminators int) {
	scalars = utf8.RuneCountInString(s)
	for _, g := range Graphemes(s) {
		graphemesCount++
		if IsLineTerminator(g) {
			terminators++
		}
	}
	return
}

// ScalarCount returns the number of Unicode scalar values in s.
func ScalarCount(s string) int { return utf8.RuneCountInString(s) }

// GraphemeCount returns the number of extended grapheme clusters in s.
func GraphemeCount(s string) int { return len(Graphemes(s)) }

// ByteOfScalar returns the byte offset at which the i-th scalar value
// begins. i == ScalarCount(s) is valid and returns len(s).
func ByteOfScalar(s string, i int) (int, error) {
	if i < 0 {
		return 0, errIndex("scalar", i, utf8.RuneCountInString(s))
	}
	pos := 0
	n := 0
	for pos < len(s) {
		if n == i {
			return pos, nil
		}
		_, size := utf8.DecodeRuneInString(s[pos:])
		pos += size
		n++
	}
	if n == i {
		return pos, nil
	}
	return 0, errIndex("scalar", i, n)
}

// ByteOfGrapheme returns the byte offset at which the i-th grapheme cluster
// begins. i == GraphemeCount(s) is valid and returns len(s).
func ByteOfGrapheme(s string, i int) (int, error) {
	if i < 0 {
		return 0, errIndex("grapheme", i, 0)
	}
	gs := Graphemes(s)
	if i > len(gs) {
		return 0, errIndex("grapheme", i, len(gs))
	}
	pos := 0
	for k := 0; k < i; k++ {
		pos += len(gs[k])
	}
	return pos, nil
}

// ScalarOfGrapheme returns the scalar-value index at which the i-th
// grapheme cluster begins.
func ScalarOfGrapheme(s string, i int) (int, error) {
	bytePos, err := ByteOfGrapheme(s, i)
	if err != nil {
		return 0, err
	}
	return utf8.RuneCountInString(s[:bytePos]), nil
}

// GraphemeOfScalar returns the index of the grapheme cluster containing
// scalar i. If i falls strictly inside a grapheme (for example between CR
// and LF), the grapheme's start index is returned.
func GraphemeOfScalar(s string, i int) (int, error) {
	scalarN := utf8.RuneCountInString(s)
	if i < 0 || i > scalarN {
		return 0, errIndex("scalar", i, scalarN)
	}
	gs := Graphemes(s)
	scalarPos := 0
	for gi, g := range gs {
		gscalars := utf8.RuneCountInString(g)
		if i < scalarPos+gscalars {
			return gi, nil
		}
		scalarPos += gscalars
	}
	return len(gs), nil
}

// IsGraphemeBoundary reports whether scalar index i falls exactly on a
// grapheme cluster boundary in s (as opposed to strictly inside one, such
// as between CR and LF).
func IsGraphemeBoundary(s string, i int) (bool, error) {
	gi, err := GraphemeOfScalar(s, i)
	if err != nil {
		return false, err
	}
	start, err := ScalarOfGrapheme(s, gi)
	if err != nil {
		return false, err
	}
	return start == i, nil
}

// PrevGraphemeBoundary returns the scalar index of the start of the
// grapheme cluster containing (or ending at) scalar index i: the nearest
// grapheme boundary at or before i.
func PrevGraphemeBoundary(s string, i int) (int, error) {
	gi, err := GraphemeOfScalar(s, i)
	if err != nil {
		return 0, err
	}
	return ScalarOfGrapheme(s, gi)
}

// InsertAtScalar returns s with text inserted before the at-th scalar
// value. It does not attempt grapheme-seam repair; that is the rope's
// responsibility.
func InsertAtScalar(s string, at int, text string) (string, error) {
	b, err := ByteOfScalar(s, at)
	if err != nil {
		return "", err
	}
	return s[:b] + text + s[b:], nil
}

// InsertAtGrapheme returns s with text inserted before the at-th grapheme
// cluster.
func InsertAtGrapheme(s string, at int, text string) (string, error) {
	b, err := ByteOfGrapheme(s, at)
	if err != nil {
		return "", err
	}
	return s[:b] + text + s[b:], nil
}

// RemoveBetweenScalars returns s with the scalar range [a,b) removed.
func RemoveBetweenScalars(s string, a, b int) (string, error) {
	if a > b {
		return "", errInverted(a, b)
	}
	ba, err := ByteOfScalar(s, a)
	if err != nil {
		return "", err
	}
	bb, err := ByteOfScalar(s, b)
	if err != nil {
		return "", err
	}
	return s[:ba] + s[bb:], nil
}

// RemoveBetweenGraphemes returns s with the grapheme range [a,b) removed.
func RemoveBetweenGraphemes(s string, a, b int) (string, error) {
	if a > b {
		return "", errInverted(a, b)
	}
	ba, err := ByteOfGrapheme(s, a)
	if err != nil {
		return "", err
	}
	bb, err := ByteOfGrapheme(s, b)
	if err != nil {
		return "", err
	}
	return s[:ba] + s[bb:], nil
}

// SplitAtScalar splits s at the at-th scalar value, returning the left and
// right halves. The left half remains conceptually "this" string in
// callers that model split-in-place.
func SplitAtScalar(s string, at int) (left, right string, err error) {
	b, err := ByteOfScalar(s, at)
	if err != nil {
		return "", "", err
	}
	return s[:b], s[b:], nil
}

// SplitAtGrapheme splits s at the at-th grapheme cluster.
func SplitAtGrapheme(s string, at int) (left, right string, err error) {
	b, err := ByteOfGrapheme(s, at)
	if err != nil {
		return "", "", err
	}
	return s[:b], s[b:], nil
}
