// SPDX-License-Identifier: MIT

// Package matrix: domain types shared by storage and kernels.
// This file contains ONLY domain-facing types (layout flag, sentinel value).
// Errors live in errors.go, storage in dense.go.
package matrix

import "math"

// Layout selects the physical order of cells in a Dense buffer.
type Layout uint8

const (
	// RowMajor maps (r,c) to r*cols + c.
	RowMajor Layout = iota
	// ColMajor maps (r,c) to c*rows + r.
	ColMajor
)

// String implements fmt.Stringer.
func (l Layout) String() string {
	switch l {
	case RowMajor:
		return "row-major"
	case ColMajor:
		return "col-major"
	default:
		return "unknown"
	}
}

// Valid reports whether l is one of the declared layouts.
func (l Layout) Valid() bool { return l == RowMajor || l == ColMajor }

// Sentinel is the reserved "no edge / unreachable" value.
// It absorbs under the tropical combine and is the identity of the tropical reduce.
var Sentinel = math.Inf(1)

// IsSentinel reports whether v is the "no edge" value.
func IsSentinel(v float64) bool { return math.IsInf(v, 1) }
