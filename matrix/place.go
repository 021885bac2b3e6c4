// SPDX-License-Identifier: MIT

package matrix

import "fmt"

const opPlace = "Place"

// Place writes src into dst so that src(0,0) lands on dst(row,col).
// Cells of dst outside the src window are left untouched. Both operands may
// use any layout.
//
// Errors:
//   - ErrNilMatrix when either operand is nil.
//   - ErrOutOfRange when the window does not fit inside dst.
//
// Complexity: O(src.Rows*src.Cols).
func Place(dst, src *Dense, row, col int) error {
	if dst == nil || src == nil {
		return fmt.Errorf("%s: %w", opPlace, ErrNilMatrix)
	}
	if row < 0 || col < 0 || row+src.r > dst.r || col+src.c > dst.c {
		return fmt.Errorf("%s: %dx%d at (%d,%d) into %dx%d: %w",
			opPlace, src.r, src.c, row, col, dst.r, dst.c, ErrOutOfRange)
	}

	// Row-major destination: copy whole source rows when the source is row-major too.
	if dst.layout == RowMajor && src.layout == RowMajor {
		var i int
		for i = 0; i < src.r; i++ {
			base := (row+i)*dst.c + col
			copy(dst.data[base:base+src.c], src.data[i*src.c:(i+1)*src.c])
		}
		return nil
	}

	var i, j int
	for i = 0; i < src.r; i++ {
		for j = 0; j < src.c; j++ {
			dst.data[dst.offset(row+i, col+j)] = src.data[src.offset(i, j)]
		}
	}

	return nil
}
