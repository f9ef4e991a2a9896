// Package layout bridges the rope/buffer core to an external line
// formatter: the collaborator interface spec.md describes as consumed by
// the core, plus the block-at-a-time indexing that keeps formatting a
// pathologically long line bounded.
package layout

import (
	"github.com/inkwell-editor/inkwell/rope"
	"github.com/inkwell-editor/inkwell/strutil"
)

// RoundingMode selects how a fractional visual position is resolved back
// to a scalar index.
type RoundingMode int

const (
	RoundingRound RoundingMode = iota
	RoundingFloor
	RoundingCeiling
)

// LineBlockLength is the block-at-a-time layout ceiling: the maximum
// number of scalars formatted as a unit before a forced soft break, to
// keep the cost of formatting a pathologically long line bounded.
const LineBlockLength = 1 << 12

// LineBlockFudge is the fuzz factor allowed around LineBlockLength when
// searching for a natural break (whitespace or grapheme boundary).
const LineBlockFudge = 32

// Formatter is the external collaborator this package's helpers delegate
// visual layout to. Implementations receive a grapheme sequence (already
// sliced to a block) and answer purely geometric questions about it; they
// never see the rope directly.
type Formatter interface {
	// Dimensions returns the visual (height, width) of graphemes when laid
	// out by this formatter.
	Dimensions(graphemes []string) (height, width int)

	// ScalarToVisual converts a scalar offset within graphemes into a
	// (row, col) visual position.
	ScalarToVisual(graphemes []string, scalarIdx int) (row, col int)

	// VisualToScalar is the inverse of ScalarToVisual, rounding a visual
	// position that doesn't land exactly on a scalar boundary according to
	// the given per-axis rounding modes.
	VisualToScalar(graphemes []string, row, col int, rowRounding, colRounding RoundingMode) int
}

var wsChars = map[rune]bool{' ': true, '\t': true, '　': true}

func isWS(r rune) bool { return wsChars[r] }

// FindGoodBreak finds the best soft-break point at or before scalarIdx
// within slice, no earlier than lowerLimit: a whitespace-to-non-whitespace
// transition if one exists in range, falling back to the nearest grapheme
// boundary, falling back to scalarIdx itself.
func FindGoodBreak(slice *rope.Slice, lowerLimit, scalarIdx int) int {
	sliceLen := slice.ScalarCount()
	if scalarIdx > sliceLen {
		scalarIdx = sliceLen
	}
	if lowerLimit > sliceLen {
		lowerLimit = sliceLen
	}

	if scalarIdx < LineBlockLength-LineBlockFudge {
		return scalarIdx
	}

	text := slice.String()

	var prev *rune
	if scalarIdx < sliceLen {
		r, err := slice.ScalarAt(scalarIdx)
		if err == nil {
			prev = &r
		}
	}

	i := scalarIdx
	for i > lowerLimit {
		r, err := slice.ScalarAt(i - 1)
		if err != nil {
			break
		}
		if isWS(r) && (prev == nil || !isWS(*prev)) {
			return i
		}
		prev = &r
		i--
	}

	if ok, err := strutil.IsGraphemeBoundary(text, scalarIdx); err == nil && ok {
		return scalarIdx
	}
	prevBoundary, err := strutil.PrevGraphemeBoundary(text, scalarIdx)
	if err != nil {
		return scalarIdx
	}
	if prevBoundary > lowerLimit {
		return prevBoundary
	}
	return scalarIdx
}

// CharRangeFromBlockIndex returns the [start, end) scalar range of the
// blockIdx-th layout block within slice.
func CharRangeFromBlockIndex(slice *rope.Slice, blockIdx int) (start, end int) {
	initialStart := LineBlockLength * blockIdx
	lower := initialStart - LineBlockFudge
	if lower < 0 {
		lower = 0
	}
	start = FindGoodBreak(slice, lower, initialStart)

	initialEnd := LineBlockLength * (blockIdx + 1)
	lowerEnd := initialEnd - LineBlockFudge
	if lowerEnd < 0 {
		lowerEnd = 0
	}
	end = FindGoodBreak(slice, lowerEnd, initialEnd)

	return start, end
}

// BlockIndexAndRange returns the block index containing scalarIdx, and
// that block's [start, end) scalar range.
func BlockIndexAndRange(slice *rope.Slice, scalarIdx int) (blockIdx, start, end int) {
	blockIdx = scalarIdx / LineBlockLength
	start, end = CharRangeFromBlockIndex(slice, blockIdx)
	if scalarIdx >= end && end < slice.ScalarCount() {
		blockIdx++
		start, end = CharRangeFromBlockIndex(slice, blockIdx)
	}
	return blockIdx, start, end
}

// BlockCount returns the number of layout blocks slice is divided into.
func BlockCount(slice *rope.Slice) int {
	n := slice.ScalarCount()
	lastIdx := 0
	if n > 0 {
		lastIdx = (n - 1) / LineBlockLength
	}
	start, end := CharRangeFromBlockIndex(slice, lastIdx+1)
	if start < end {
		lastIdx++
	}
	return lastIdx + 1
}

func blockGraphemes(slice *rope.Slice, start, end int) []string {
	ba, _ := strutil.ByteOfScalar(slice.String(), start)
	bb, _ := strutil.ByteOfScalar(slice.String(), end)
	return strutil.Graphemes(slice.String()[ba:bb])
}

// LineSource is the minimal subset of *buffer.Buffer that IndexOffsetVertical
// and IndexSetHorizontal need: line lookup and line/column addressing. A
// narrow interface here keeps this package independent of the buffer
// package; *buffer.Buffer satisfies it.
type LineSource interface {
	LineCount() int
	ScalarCount() int
	Line(n int) (*rope.Slice, error)
	ScalarToLineCol(scalar int) (line, col int, err error)
	LineColToScalar(line, col int) (int, error)
}

// IndexOffsetVertical takes a scalar index and a signed row offset, and
// returns the scalar index after moving that many visual rows, crossing
// lines and line-blocks as needed. Landing past the last line clamps to
// the buffer's scalar count; landing before the first clamps to 0.
func IndexOffsetVertical(src LineSource, f Formatter, scalarIdx int, rows int) int {
	lineIdx, colIdx, err := src.ScalarToLineCol(scalarIdx)
	if err != nil {
		return scalarIdx
	}
	line, err := src.Line(lineIdx)
	if err != nil {
		return scalarIdx
	}

	blockIdx, blockStart, blockEnd := BlockIndexAndRange(line, colIdx)
	colAdjusted := colIdx - blockStart
	y, x := f.ScalarToVisual(blockGraphemes(line, blockStart, blockEnd), colAdjusted)

	newY := y + rows
	for {
		line, err = src.Line(lineIdx)
		if err != nil {
			return scalarIdx
		}
		bStart, bEnd := CharRangeFromBlockIndex(line, blockIdx)
		h, _ := f.Dimensions(blockGraphemes(line, bStart, bEnd))

		if newY >= 0 && newY < h {
			y = newY
			break
		}
		if newY >= h {
			lastBlock := blockIdx >= BlockCount(line)-1
			if lastBlock && lineIdx+1 >= src.LineCount() {
				return src.ScalarCount()
			}
			if lastBlock {
				lineIdx++
				blockIdx = 0
			} else {
				blockIdx++
			}
			newY -= h
		} else {
			if blockIdx == 0 && lineIdx == 0 {
				return 0
			}
			if blockIdx == 0 {
				lineIdx--
				line, err = src.Line(lineIdx)
				if err != nil {
					return scalarIdx
				}
				blockIdx = BlockCount(line) - 1
			} else {
				blockIdx--
			}
			bStart, bEnd = CharRangeFromBlockIndex(line, blockIdx)
			h2, _ := f.Dimensions(blockGraphemes(line, bStart, bEnd))
			newY += h2
		}
	}

	bStart, bEnd := CharRangeFromBlockIndex(line, blockIdx)
	blockLen := bEnd - bStart
	blockCol := f.VisualToScalar(blockGraphemes(line, bStart, bEnd), y, x, RoundingRound, RoundingRound)
	if blockCol > blockLen-1 && blockLen > 0 {
		blockCol = blockLen - 1
	}
	col := bStart + blockCol

	scalar, err := src.LineColToScalar(lineIdx, col)
	if err != nil {
		return scalarIdx
	}
	return scalar
}

// IndexSetHorizontal returns a scalar index on the same visual row as
// scalarIdx, moved to the given horizontal visual column.
func IndexSetHorizontal(src LineSource, f Formatter, scalarIdx, horizontal int, rounding RoundingMode) int {
	lineIdx, colIdx, err := src.ScalarToLineCol(scalarIdx)
	if err != nil {
		return scalarIdx
	}
	line, err := src.Line(lineIdx)
	if err != nil {
		return scalarIdx
	}

	blockIdx, blockStart, blockEnd := BlockIndexAndRange(line, colIdx)
	colAdjusted := colIdx - blockStart
	blockG := blockGraphemes(line, blockStart, blockEnd)

	v, _ := f.ScalarToVisual(blockG, colAdjusted)
	blockCol := f.VisualToScalar(blockG, v, horizontal, RoundingFloor, rounding)

	var newCol int
	if lineIdx+1 < src.LineCount() || blockIdx+1 < BlockCount(line) {
		maxCol := blockEnd - blockStart - 1
		if maxCol < 0 {
			maxCol = 0
		}
		newCol = minInt(blockStart+blockCol, blockStart+maxCol)
	} else {
		newCol = minInt(blockStart+blockCol, blockEnd-blockStart)
	}

	return (scalarIdx + newCol) - colIdx
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
