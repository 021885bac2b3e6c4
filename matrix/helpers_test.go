// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   - Provide small, deterministic fixtures shared by the matrix tests.

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/ringpath/matrix"
	"github.com/stretchr/testify/require"
)

// inf is the "no edge" sentinel used in fixtures.
var inf = matrix.Sentinel

// fromRows BUILDS a *Dense with the given layout from a row-major [][]float64 literal.
func fromRows(t *testing.T, layout matrix.Layout, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(len(rows), len(rows[0]), layout)
	require.NoError(t, err)
	for i, row := range rows {
		require.Len(t, row, m.Cols(), "ragged fixture row %d", i)
		for j, v := range row {
			require.NoError(t, m.Set(i, j, v))
		}
	}

	return m
}

// toRows READS a *Dense back into a row-major [][]float64 for comparisons.
func toRows(t *testing.T, m *matrix.Dense) [][]float64 {
	t.Helper()
	out := make([][]float64, m.Rows())
	for i := range out {
		out[i] = make([]float64, m.Cols())
		for j := range out[i] {
			v, err := m.At(i, j)
			require.NoError(t, err)
			out[i][j] = v
		}
	}

	return out
}

// graph4 is a 4-node directed distance matrix (diag 0, +Inf = no edge).
func graph4() [][]float64 {
	return [][]float64{
		{0, 3, inf, 7},
		{8, 0, 2, inf},
		{5, inf, 0, 1},
		{2, inf, inf, 0},
	}
}

// graph4TwoHop is graph4 ⊗ graph4 under the tropical semiring.
func graph4TwoHop() [][]float64 {
	return [][]float64{
		{0, 3, 5, 7},
		{7, 0, 2, 3},
		{3, 8, 0, 1},
		{2, 5, inf, 0},
	}
}

// graph4APSP is the all-pairs shortest-path closure of graph4.
func graph4APSP() [][]float64 {
	return [][]float64{
		{0, 3, 5, 6},
		{5, 0, 2, 3},
		{3, 6, 0, 1},
		{2, 5, 7, 0},
	}
}
