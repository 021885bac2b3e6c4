package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/ringpath/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTropicalAbsorption(t *testing.T) {
	t.Parallel()

	for _, x := range []float64{0, 1, -3, 42, 1e300, math.MaxFloat64, inf} {
		assert.True(t, matrix.IsSentinel(matrix.TropicalCombine(inf, x)), "combine(inf, %v)", x)
		assert.True(t, matrix.IsSentinel(matrix.TropicalCombine(x, inf)), "combine(%v, inf)", x)
		assert.Equal(t, x, matrix.TropicalReduce(inf, x), "reduce(inf, %v)", x)
	}
	assert.Equal(t, 7.0, matrix.TropicalCombine(3, 4))
	assert.Equal(t, 3.0, matrix.TropicalReduce(3, 4))
}

func TestSemiringByName(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]string{
		"tropical":  matrix.SemiringTropical,
		"Min-Plus":  matrix.SemiringTropical,
		" standard": matrix.SemiringStandard,
	} {
		sr, err := matrix.SemiringByName(name)
		require.NoError(t, err, name)
		require.Equal(t, want, sr.Name)
	}

	_, err := matrix.SemiringByName("max-times")
	require.ErrorIs(t, err, matrix.ErrUnknownSemiring)
}

func TestSemiringValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, matrix.Standard().Validate())
	require.ErrorIs(t, matrix.Semiring{Name: "half"}.Validate(), matrix.ErrIncompleteSemiring)
}
