package densitymap

import "errors"

var (
	ErrEmptyInput     = errors.New("point set is empty")
	ErrInvalidRadius  = errors.New("cell radius must be a positive finite number")
	ErrLengthMismatch = errors.New("cell results do not match the grid size")
	ErrInvalidExtent  = errors.New("point extent is not finite")
)
