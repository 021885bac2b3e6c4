package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/ringpath/matrix"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestProduct_DimensionMismatch(t *testing.T) {
	t.Parallel()

	a, _ := matrix.NewDense(2, 3, matrix.RowMajor)
	b, _ := matrix.NewDense(2, 3, matrix.RowMajor)

	res, err := matrix.Product(a, b, matrix.Standard())
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	require.Nil(t, res)

	_, err = matrix.Product(nil, b, matrix.Standard())
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, err = matrix.Product(a, a, matrix.Semiring{})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// The standard product must agree with gonum for every layout combination.
func TestProduct_StandardMatchesGonum(t *testing.T) {
	t.Parallel()

	const r, n, c = 5, 7, 3
	rng := rand.New(rand.NewSource(7))
	av := make([]float64, r*n)
	bv := make([]float64, n*c)
	for i := range av {
		av[i] = float64(rng.Intn(21) - 10)
	}
	for i := range bv {
		bv[i] = float64(rng.Intn(21) - 10)
	}

	var want mat.Dense
	want.Mul(mat.NewDense(r, n, av), mat.NewDense(n, c, bv))

	for _, la := range []matrix.Layout{matrix.RowMajor, matrix.ColMajor} {
		for _, lb := range []matrix.Layout{matrix.RowMajor, matrix.ColMajor} {
			a, err := matrix.NewDenseFrom(append([]float64(nil), av...), r, n, matrix.RowMajor)
			require.NoError(t, err)
			b, err := matrix.NewDenseFrom(append([]float64(nil), bv...), n, c, matrix.RowMajor)
			require.NoError(t, err)
			a, _ = a.Relayout(la)
			b, _ = b.Relayout(lb)

			got, err := matrix.Product(a, b, matrix.Standard())
			require.NoError(t, err)
			require.Equal(t, matrix.RowMajor, got.Layout())
			for i := 0; i < r; i++ {
				for j := 0; j < c; j++ {
					v, _ := got.At(i, j)
					require.InDelta(t, want.At(i, j), v, 1e-9, "%v×%v [%d,%d]", la, lb, i, j)
				}
			}
		}
	}
}

func TestProduct_TropicalTwoHop(t *testing.T) {
	t.Parallel()

	a := fromRows(t, matrix.RowMajor, graph4())
	b := fromRows(t, matrix.ColMajor, graph4())

	got, err := matrix.Product(a, b, matrix.Tropical())
	require.NoError(t, err)
	require.Equal(t, graph4TwoHop(), toRows(t, got))
}

// Applying the tropical product N times in sequence converges to APSP.
func TestProduct_TropicalRepeatedConverges(t *testing.T) {
	t.Parallel()

	d := fromRows(t, matrix.RowMajor, graph4())
	acc := d.Clone()
	var err error
	for k := 0; k < d.Rows(); k++ {
		acc, err = matrix.Product(acc, d, matrix.Tropical())
		require.NoError(t, err)
	}
	require.Equal(t, graph4APSP(), toRows(t, acc))
}
