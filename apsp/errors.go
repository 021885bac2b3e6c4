package apsp

import "errors"

var (
	// ErrNoInput is returned on every rank when the transmitter had no matrix to distribute.
	ErrNoInput = errors.New("apsp: no input matrix")

	// ErrIndivisible is returned on every rank when N is not a multiple of the ring size.
	ErrIndivisible = errors.New("apsp: matrix size is not a multiple of the ring size")

	// ErrBlockShape is returned by Round when the row and column blocks do not
	// describe the same N×N matrix split across the ring.
	ErrBlockShape = errors.New("apsp: blocks do not match the ring")
)
