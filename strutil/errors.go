package strutil

import "github.com/inkwell-editor/inkwell/coreerr"

func errIndex(kind string, index, limit int) error {
	return coreerr.NewIndexOutOfBounds(kind, index, limit)
}

func errInverted(a, b int) error {
	return coreerr.NewRangeInverted(a, b)
}
