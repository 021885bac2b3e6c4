// Package matrix provides the dense storage and the local compute kernels used
// by the ring-distributed APSP engine.
//
// The matrix package provides:
//
//   - Dense, a flat float64 buffer with a selectable physical Layout
//     (RowMajor or ColMajor). The layout flag lets a row-distributed operand
//     and a column-distributed operand share one access path without a real
//     transpose.
//   - Explicit buffer ownership: Release moves the backing slice out of a
//     Dense, Adopt installs a new one. A buffer has exactly one owner.
//   - Place, which writes a block into a larger matrix at an offset.
//   - Semiring products: Standard (×, +) and Tropical (+, min) with the
//     Sentinel (+Inf) as the absorbing "no edge" value.
//   - FloydWarshall, a sequential in-place APSP used as a reference oracle.
//
// Dense is deliberately small: the distributed engine moves whole buffers
// between ranks and only needs O(1) indexing plus one product kernel.
package matrix
