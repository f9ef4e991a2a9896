package layout

// FixedWidthFormatter is a minimal, non-wrapping Formatter: every grapheme
// occupies one visual column except tab, which advances to the next
// multiple of TabWidth. It never produces more than one visual row, so it
// exists primarily as a test fixture and a starting point for a real
// terminal formatter to specialize.
type FixedWidthFormatter struct {
	TabWidth int
}

func (f FixedWidthFormatter) tabWidth() int {
	if f.TabWidth <= 0 {
		return 8
	}
	return f.TabWidth
}

// Dimensions returns (1, visual width of graphemes).
func (f FixedWidthFormatter) Dimensions(graphemes []string) (height, width int) {
	col := 0
	for _, g := range graphemes {
		col = f.advance(col, g)
	}
	return 1, col
}

// ScalarToVisual returns (0, visual column of the scalarIdx-th grapheme).
func (f FixedWidthFormatter) ScalarToVisual(graphemes []string, scalarIdx int) (row, col int) {
	c := 0
	for i := 0; i < scalarIdx && i < len(graphemes); i++ {
		c = f.advance(c, graphemes[i])
	}
	return 0, c
}

// VisualToScalar returns the grapheme index whose visual column is
// nearest to (row, col), honoring colRounding when col falls between two
// graphemes (rowRounding is unused: this formatter never wraps).
func (f FixedWidthFormatter) VisualToScalar(graphemes []string, row, col int, rowRounding, colRounding RoundingMode) int {
	c := 0
	for i, g := range graphemes {
		next := f.advance(c, g)
		if col < next {
			switch colRounding {
			case RoundingFloor:
				return i
			case RoundingCeiling:
				return i + 1
			default:
				if col-c < next-col {
					return i
				}
				return i + 1
			}
		}
		c = next
	}
	return len(graphemes)
}

func (f FixedWidthFormatter) advance(col int, g string) int {
	if g == "\t" {
		w := f.tabWidth()
		return ((col / w) + 1) * w
	}
	return col + 1
}
