package matrixio

import (
	"fmt"

	"github.com/katalvlaran/ringpath/matrix"
)

// Pad grows m to the next multiple of worldSize. Every added cell, the added
// diagonal included, holds the sentinel: added nodes have no edges, and
// LogicalSize can find where the real matrix ends. A matrix that already fits
// is returned as a copy.
func Pad(m *matrix.Dense, worldSize int) (*matrix.Dense, error) {
	if err := matrix.ValidateSquare(m); err != nil {
		return nil, fmt.Errorf("Pad: %w", err)
	}
	if worldSize < 1 {
		return nil, fmt.Errorf("Pad: %w", ErrWorldSize)
	}
	n := m.Rows()
	target := (n + worldSize - 1) / worldSize * worldSize
	if target == n {
		return m.Clone(), nil
	}

	out, err := matrix.NewDense(target, target, m.Layout())
	if err != nil {
		return nil, fmt.Errorf("Pad: %w", err)
	}
	data := out.Data()
	for i := range data {
		data[i] = matrix.Sentinel
	}
	if err = matrix.Place(out, m, 0, 0); err != nil {
		return nil, fmt.Errorf("Pad: %w", err)
	}
	return out, nil
}

// LogicalSize returns the index of the first sentinel on the diagonal, or
// Rows() when there is none.
func LogicalSize(m *matrix.Dense) int {
	n := m.Rows()
	if m.Cols() < n {
		n = m.Cols()
	}
	for i := 0; i < n; i++ {
		if v, _ := m.At(i, i); matrix.IsSentinel(v) {
			return i
		}
	}
	return n
}

// Strip drops the padding added by Pad, as found by LogicalSize.
func Strip(m *matrix.Dense) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, fmt.Errorf("Strip: %w", err)
	}
	return Crop(m, LogicalSize(m))
}

// Crop returns a copy of the top-left k×k corner of m.
func Crop(m *matrix.Dense, k int) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, fmt.Errorf("Crop: %w", err)
	}
	if k <= 0 {
		return nil, fmt.Errorf("Crop: %w", ErrEmpty)
	}
	if k > m.Rows() || k > m.Cols() {
		return nil, fmt.Errorf("Crop: %d from %dx%d: %w", k, m.Rows(), m.Cols(), matrix.ErrOutOfRange)
	}
	if k == m.Rows() && k == m.Cols() {
		return m.Clone(), nil
	}

	out, err := matrix.NewDense(k, k, m.Layout())
	if err != nil {
		return nil, fmt.Errorf("Crop: %w", err)
	}
	var v float64
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			v, _ = m.At(i, j)
			_ = out.Set(i, j, v)
		}
	}
	return out, nil
}
