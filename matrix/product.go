// SPDX-License-Identifier: MIT

package matrix

import "fmt"

// Operation name constants for unified error wrapping.
const (
	opProduct = "Product"
)

// matrixErrorf wraps an underlying error with the given tag.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Product computes m1 ⊗ m2 under sr and returns a fresh row-major matrix.
// Cell (r,c) = reduce over i of combine(m1[r,i], m2[i,c]), seeded with sr.Identity.
//
// Stage 1 (Validate): non-nil operands, complete semiring, m1.Cols == m2.Rows.
// Stage 2 (Prepare): allocate a row-major m1.Rows×m2.Cols result.
// Stage 3 (Execute): r → c → i loop over the flat buffers; the per-layout
// strides are hoisted so both row- and column-major operands take the same path.
//
// Errors:
//   - ErrNilMatrix, ErrIncompleteSemiring.
//   - ErrDimensionMismatch when m1.Cols != m2.Rows. The result is nil, which is
//     never confused with a valid (non-empty) product.
//
// Complexity: O(r*n*c) time, O(r*c) memory.
func Product(m1, m2 *Dense, sr Semiring) (*Dense, error) {
	if err := ValidateMulCompatible(m1, m2); err != nil {
		return nil, matrixErrorf(opProduct, err)
	}
	if err := sr.Validate(); err != nil {
		return nil, matrixErrorf(opProduct, err)
	}

	rows, inner, cols := m1.r, m1.c, m2.c
	res, err := NewDense(rows, cols, RowMajor)
	if err != nil {
		return nil, matrixErrorf(opProduct, err)
	}

	// Strides: offset(r,i) = r*rs1 + i*is1 for m1, offset(i,c) = i*is2 + c*cs2 for m2.
	rs1, is1 := m1.c, 1
	if m1.layout == ColMajor {
		rs1, is1 = 1, m1.r
	}
	is2, cs2 := m2.c, 1
	if m2.layout == ColMajor {
		is2, cs2 = 1, m2.r
	}

	var (
		r, c, i int
		acc     float64
		a, b    = m1.data, m2.data
		combine = sr.Combine
		reduce  = sr.Reduce
	)
	for r = 0; r < rows; r++ {
		for c = 0; c < cols; c++ {
			acc = sr.Identity
			for i = 0; i < inner; i++ {
				acc = reduce(acc, combine(a[r*rs1+i*is1], b[i*is2+c*cs2]))
			}
			res.data[r*cols+c] = acc
		}
	}

	return res, nil
}
