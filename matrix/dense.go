// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row- or column-major) & safe accessors.
//
// Purpose:
//   - Provide a flat buffer whose physical order is chosen by a Layout flag.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Model buffer ownership explicitly (Release/Adopt) so block buffers can be
//     handed to a transport without aliasing.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone/Relayout: O(r*c);
//     Release/Adopt: O(1).

package matrix

import (
	"fmt"
	"strconv"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt       = "At"
	ctxSet      = "Set"
	ctxAdopt    = "Adopt"
	ctxNew      = "NewDenseFrom"
	ctxRelayout = "Relayout"
)

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
	_fmtInf      = "i"
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a flat matrix of float64 cells.
//   - r,c hold dimensions (rows, cols).
//   - layout selects the index formula (RowMajor: i*c+j, ColMajor: j*r+i).
//   - data holds exactly r*c cells; a released Dense is 0×0 with nil data.
type Dense struct {
	r, c   int       // row and column counts
	layout Layout    // physical order of data
	data   []float64 // contiguous storage (len == r*c)
}

// NewDense creates an r×c zero matrix with the given layout.
// Stage 1: validate rows>0 && cols>0 and the layout flag.
// Stage 2: allocate a zero-filled buffer.
// Complexity: O(r*c) time and memory.
func NewDense(rows, cols int, layout Layout) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !layout.Valid() {
		return nil, ErrUnknownLayout
	}

	return &Dense{r: rows, c: cols, layout: layout, data: make([]float64, rows*cols)}, nil
}

// NewDenseFrom wraps data as a rows×cols matrix WITHOUT copying.
// The Dense becomes the sole owner of data; the caller must not keep using it.
//
// Errors:
//   - ErrInvalidDimensions when rows<=0 or cols<=0.
//   - ErrBadShape when len(data) != rows*cols.
//   - ErrUnknownLayout for an invalid layout flag.
func NewDenseFrom(data []float64, rows, cols int, layout Layout) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%s: %dx%d: %w", ctxNew, rows, cols, ErrInvalidDimensions)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%s: len=%d want %d: %w", ctxNew, len(data), rows*cols, ErrBadShape)
	}
	if !layout.Valid() {
		return nil, fmt.Errorf("%s: %w", ctxNew, ErrUnknownLayout)
	}

	return &Dense{r: rows, c: cols, layout: layout, data: data}, nil
}

// NewSequence builds a rows×cols matrix whose cells, visited in logical
// row-major order, hold seed+1, seed+2, ... regardless of the physical layout.
func NewSequence(seed, rows, cols int, layout Layout) (*Dense, error) {
	m, err := NewDense(rows, cols, layout)
	if err != nil {
		return nil, err
	}
	v := float64(seed + 1)
	var i, j int
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			m.data[m.offset(i, j)] = v
			v++
		}
	}

	return m, nil
}

// Rows returns the row count.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count.
func (m *Dense) Cols() int { return m.c }

// Len returns the number of cells (Rows*Cols).
func (m *Dense) Len() int { return len(m.data) }

// Layout returns the physical layout flag.
func (m *Dense) Layout() Layout { return m.layout }

// Data exposes the backing buffer in physical order. The slice is still owned
// by m; use Release to take ownership.
func (m *Dense) Data() []float64 { return m.data }

// offset computes the physical index of (row, col) without bounds checks.
func (m *Dense) offset(row, col int) int {
	if m.layout == ColMajor {
		return col*m.r + row
	}

	return row*m.c + col
}

// indexOf bounds-checks (row,col) and returns the physical offset.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return m.offset(row, col), nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col) or returns ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	m.data[off] = v

	return nil
}

// Release moves the backing buffer out of m and leaves m empty (0×0).
// After Release the caller is the buffer's only owner.
func (m *Dense) Release() []float64 {
	data := m.data
	m.r, m.c, m.data = 0, 0, nil

	return data
}

// Adopt replaces the backing buffer with data, keeping shape and layout.
// m takes ownership of data; the previous buffer is dropped.
// Returns ErrBadShape when len(data) != Rows*Cols.
func (m *Dense) Adopt(data []float64) error {
	if len(data) != m.r*m.c {
		return fmt.Errorf("Dense.%s: len=%d want %d: %w", ctxAdopt, len(data), m.r*m.c, ErrBadShape)
	}
	m.data = data

	return nil
}

// Relayout returns a new Dense with identical logical contents stored in the
// requested layout. When the layout already matches, the result is a Clone.
// Complexity: O(r*c).
func (m *Dense) Relayout(layout Layout) (*Dense, error) {
	out, err := NewDense(m.r, m.c, layout)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ctxRelayout, err)
	}
	if layout == m.layout {
		copy(out.data, m.data)
		return out, nil
	}
	var i, j int
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			out.data[out.offset(i, j)] = m.data[m.offset(i, j)]
		}
	}

	return out, nil
}

// Clone returns a deep copy (new buffer, same shape and layout).
func (m *Dense) Clone() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, layout: m.layout, data: cp}
}

// Equal reports whether a and b have the same shape and the same logical
// contents. Layouts may differ.
func Equal(a, b *Dense) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.r != b.r || a.c != b.c {
		return false
	}
	var i, j int
	for i = 0; i < a.r; i++ {
		for j = 0; j < a.c; j++ {
			if a.data[a.offset(i, j)] != b.data[b.offset(i, j)] {
				return false
			}
		}
	}

	return true
}

// String implements fmt.Stringer for debugging; sentinel cells print as "i".
func (m *Dense) String() string {
	var sb strings.Builder
	var i, j int
	var v float64
	for i = 0; i < m.r; i++ {
		sb.WriteString(_fmtRowOpen)
		for j = 0; j < m.c; j++ {
			v = m.data[m.offset(i, j)]
			if IsSentinel(v) {
				sb.WriteString(_fmtInf)
			} else {
				sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
			}
			if j < m.c-1 {
				sb.WriteString(_fmtSep)
			}
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}
