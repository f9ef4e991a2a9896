// Package coreerr defines the error taxonomy shared by the rope, mark,
// history and buffer packages.
//
// Two kinds of failure are distinguished. Bounds and range violations on the
// public API return one of the typed errors below; the caller is expected
// to have checked, so these are ordinary Go errors, not panics. Violations
// of an internal invariant (a corrupted tree, an impossible cached count)
// panic, because they indicate a programming defect rather than bad input.
// "Nothing to undo" and "nothing to redo" are not modeled as errors at all;
// the history and buffer APIs report them via an ok-style boolean return.
package coreerr

import "fmt"

// IndexOutOfBoundsError reports a scalar, grapheme, byte or line index that
// falls outside the bounds of the container it addresses.
type IndexOutOfBoundsError struct {
	Index int
	Limit int
	Kind  string // e.g. "scalar", "grapheme", "byte", "line"
}

func (e *IndexOutOfBoundsError) Error() string {
	return fmt.Sprintf("%s index %d out of bounds (limit %d)", e.Kind, e.Index, e.Limit)
}

// NewIndexOutOfBounds constructs an IndexOutOfBoundsError.
func NewIndexOutOfBounds(kind string, index, limit int) error {
	return &IndexOutOfBoundsError{Index: index, Limit: limit, Kind: kind}
}

// RangeInvertedError reports a range whose start exceeds its end.
type RangeInvertedError struct {
	Start int
	End   int
}

func (e *RangeInvertedError) Error() string {
	return fmt.Sprintf("range inverted: start %d > end %d", e.Start, e.End)
}

// NewRangeInverted constructs a RangeInvertedError.
func NewRangeInverted(start, end int) error {
	return &RangeInvertedError{Start: start, End: end}
}

// InvalidUTF8Error reports the byte offset of the first invalid UTF-8
// sequence encountered while decoding bytes at the I/O boundary.
type InvalidUTF8Error struct {
	Offset int
}

func (e *InvalidUTF8Error) Error() string {
	return fmt.Sprintf("invalid UTF-8 at byte offset %d", e.Offset)
}

// NewInvalidUTF8 constructs an InvalidUTF8Error.
func NewInvalidUTF8(offset int) error {
	return &InvalidUTF8Error{Offset: offset}
}
