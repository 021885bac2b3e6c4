package matrixio

import "errors"

var (
	// ErrEmpty is returned when the input holds no values.
	ErrEmpty = errors.New("matrixio: empty matrix")

	// ErrUnparsable is returned for a token that is neither a number nor "i".
	ErrUnparsable = errors.New("matrixio: unparsable value")

	// ErrUnreadable is returned when the input file cannot be opened or read.
	ErrUnreadable = errors.New("matrixio: unreadable input")

	ErrWorldSize = errors.New("matrixio: world size must be at least 1")
)
