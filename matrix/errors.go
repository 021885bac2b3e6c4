// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. Operations return these sentinels wrapped with operation context
// and tests check them via errors.Is. No operation panics on user-triggered
// error conditions.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Wrap with fmt.Errorf("Op: %w", ErrX) at the
// detection site; callers still use errors.Is to match.

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrBadShape is returned when a backing buffer does not hold rows*cols cells.
	ErrBadShape = errors.New("matrix: buffer length does not match shape")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds,
	// or that a block does not fit at the requested placement offset.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operand dimensions,
	// e.g. Product where m1.Cols != m2.Rows.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrNilMatrix indicates that a nil matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrUnknownLayout indicates a Layout value outside {RowMajor, ColMajor}.
	ErrUnknownLayout = errors.New("matrix: unknown layout")

	// ErrUnknownSemiring is returned by SemiringByName for unsupported names.
	ErrUnknownSemiring = errors.New("matrix: unknown semiring")

	// ErrIncompleteSemiring signals a Semiring with a nil Combine or Reduce.
	ErrIncompleteSemiring = errors.New("matrix: semiring operators must be non-nil")
)
