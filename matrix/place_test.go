package matrix_test

import (
	"testing"

	"github.com/katalvlaran/ringpath/matrix"
	"github.com/stretchr/testify/require"
)

func TestPlace_TopLeftBlock(t *testing.T) {
	t.Parallel()

	a, err := matrix.NewSequence(0, 4, 4, matrix.RowMajor)
	require.NoError(t, err)
	b, err := matrix.NewSequence(100, 4, 2, matrix.RowMajor)
	require.NoError(t, err)

	require.NoError(t, matrix.Place(a, b, 0, 0))
	require.Equal(t, []float64{101, 102, 3, 4, 103, 104, 7, 8, 105, 106, 11, 12, 107, 108, 15, 16}, a.Data())
}

func TestPlace_SuccessiveColumnOffsets(t *testing.T) {
	t.Parallel()

	a, err := matrix.NewSequence(0, 2, 8, matrix.RowMajor)
	require.NoError(t, err)

	b, err := matrix.NewSequence(100, 2, 2, matrix.RowMajor)
	require.NoError(t, err)
	require.NoError(t, matrix.Place(a, b, 0, 2))
	require.Equal(t, []float64{1, 2, 101, 102, 5, 6, 7, 8, 9, 10, 103, 104, 13, 14, 15, 16}, a.Data())

	b, err = matrix.NewSequence(100, 2, 2, matrix.RowMajor)
	require.NoError(t, err)
	require.NoError(t, matrix.Place(a, b, 0, 4))
	require.Equal(t, []float64{1, 2, 101, 102, 101, 102, 7, 8, 9, 10, 103, 104, 103, 104, 15, 16}, a.Data())
}

// Mixed layouts take the generic path and must agree with the row-major fast path.
func TestPlace_MixedLayouts(t *testing.T) {
	t.Parallel()

	want, err := matrix.NewSequence(0, 4, 4, matrix.RowMajor)
	require.NoError(t, err)
	rowBlock, _ := matrix.NewSequence(100, 4, 2, matrix.RowMajor)
	require.NoError(t, matrix.Place(want, rowBlock, 0, 2))

	got, err := matrix.NewSequence(0, 4, 4, matrix.ColMajor)
	require.NoError(t, err)
	colBlock, _ := matrix.NewSequence(100, 4, 2, matrix.ColMajor)
	require.NoError(t, matrix.Place(got, colBlock, 0, 2))

	require.True(t, matrix.Equal(want, got), "want\n%v got\n%v", want, got)
}

func TestPlace_Errors(t *testing.T) {
	t.Parallel()

	a, _ := matrix.NewDense(2, 4, matrix.RowMajor)
	b, _ := matrix.NewDense(2, 2, matrix.RowMajor)

	require.ErrorIs(t, matrix.Place(a, b, 0, 3), matrix.ErrOutOfRange)
	require.ErrorIs(t, matrix.Place(a, b, 1, 0), matrix.ErrOutOfRange)
	require.ErrorIs(t, matrix.Place(a, b, -1, 0), matrix.ErrOutOfRange)
	require.ErrorIs(t, matrix.Place(nil, b, 0, 0), matrix.ErrNilMatrix)
}
