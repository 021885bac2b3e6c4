// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Sequential dense APSP (Floyd–Warshall) with deterministic loop order.
//   - Serves as the reference oracle for the distributed min-plus closure and
//     as the golden-result producer of the graph generator.
//
// Contract:
//   - Square matrix; Sentinel (+Inf) means "no path"; diagonal should be 0.

package matrix

const opFloydWarshall = "FloydWarshall"

// FloydWarshall computes all-pairs shortest paths in-place on d.
//
// Loop order is fixed (k → i → j) for deterministic accumulation; unreachable
// pairs are skipped before any addition, so the sentinel never flows through
// real arithmetic. Works for either layout.
//
// Errors: ErrNilMatrix, ErrNonSquare.
// Complexity: Time O(n^3), extra space O(1).
func FloydWarshall(d *Dense) error {
	if err := ValidateSquare(d); err != nil {
		return matrixErrorf(opFloydWarshall, err)
	}

	n := d.r
	var (
		k, i, j    int
		ik, kj, ij float64
		cand       float64
	)
	for k = 0; k < n; k++ { // intermediate vertex
		for i = 0; i < n; i++ { // source vertex
			ik = d.data[d.offset(i, k)]
			if IsSentinel(ik) {
				continue // i cannot reach k
			}
			for j = 0; j < n; j++ { // destination vertex
				kj = d.data[d.offset(k, j)]
				if IsSentinel(kj) {
					continue
				}
				ij = d.data[d.offset(i, j)]
				cand = ik + kj
				if cand < ij { // strict improvement only
					d.data[d.offset(i, j)] = cand
				}
			}
		}
	}

	return nil
}
