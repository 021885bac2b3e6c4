package matrixio_test

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ringpath/matrix"
	"github.com/katalvlaran/ringpath/matrixio"
)

var inf = matrix.Sentinel

func rows(t *testing.T, m *matrix.Dense) [][]float64 {
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

func TestParseZeroOffDiagonalIsSentinel(t *testing.T) {
	t.Parallel()
	m, err := matrixio.Parse(strings.NewReader("0 1\n0 0\n"))
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 1}, {inf, 0}}, rows(t, m))
}

func TestParseUsesLargestSquare(t *testing.T) {
	t.Parallel()
	// 10 values: N=3, the last one is ignored.
	m, err := matrixio.Parse(strings.NewReader("0 1 2 3 0 4 5 6 0 99"))
	require.NoError(t, err)
	require.Equal(t, 3, m.Rows())
	assert.Equal(t, [][]float64{{0, 1, 2}, {3, 0, 4}, {5, 6, 0}}, rows(t, m))
}

func TestParseInfToken(t *testing.T) {
	t.Parallel()
	m, err := matrixio.Parse(strings.NewReader("0 i\n7 0"))
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, inf}, {7, 0}}, rows(t, m))
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	_, err := matrixio.Parse(strings.NewReader("  \n"))
	require.ErrorIs(t, err, matrixio.ErrEmpty)

	for _, tok := range []string{"x", "NaN", "nan", "inf", "+Inf", "1.5", "1e3", "I"} {
		_, err = matrixio.Parse(strings.NewReader("0 " + tok + " 2 0"))
		require.ErrorIs(t, err, matrixio.ErrUnparsable, "token %q", tok)
	}

	m, err := matrixio.Parse(strings.NewReader("0 -3 +2 0"))
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, -3}, {2, 0}}, rows(t, m))
}

func TestLoad(t *testing.T) {
	t.Parallel()
	_, err := matrixio.Load(filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, matrixio.ErrUnreadable)
	require.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "mat_2")
	require.NoError(t, os.WriteFile(path, []byte("0 3 \n2 0 \n"), 0o600))
	m, err := matrixio.Load(path)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 3}, {2, 0}}, rows(t, m))
}

func TestPadAndStrip(t *testing.T) {
	t.Parallel()
	m, err := matrixio.Parse(strings.NewReader("0 1 0 0 0 2 3 0 0"))
	require.NoError(t, err)

	padded, err := matrixio.Pad(m, 4)
	require.NoError(t, err)
	require.Equal(t, 4, padded.Rows())
	assert.Equal(t, [][]float64{
		{0, 1, inf, inf},
		{inf, 0, 2, inf},
		{3, inf, 0, inf},
		{inf, inf, inf, inf},
	}, rows(t, padded))
	assert.Equal(t, 3, matrixio.LogicalSize(padded))

	stripped, err := matrixio.Strip(padded)
	require.NoError(t, err)
	assert.True(t, matrix.Equal(m, stripped))

	same, err := matrixio.Pad(m, 3)
	require.NoError(t, err)
	assert.True(t, matrix.Equal(m, same))
	assert.NotSame(t, m, same)

	_, err = matrixio.Pad(m, 0)
	require.ErrorIs(t, err, matrixio.ErrWorldSize)

	corner, err := matrixio.Crop(padded, 2)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 1}, {inf, 0}}, rows(t, corner))
	_, err = matrixio.Crop(padded, 5)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = matrixio.Crop(padded, 0)
	require.ErrorIs(t, err, matrixio.ErrEmpty)
}

func TestWriteFormats(t *testing.T) {
	t.Parallel()
	m, err := matrixio.Parse(strings.NewReader("0 12 0 0"))
	require.NoError(t, err)

	var display bytes.Buffer
	require.NoError(t, matrixio.Write(&display, m))
	assert.Equal(t, "    0    12 \n    i     0 \n", display.String())

	var dist bytes.Buffer
	require.NoError(t, matrixio.WriteDistances(&dist, m))
	assert.Equal(t, "0 12 \ni 0 \n", dist.String())

	var adj bytes.Buffer
	require.NoError(t, matrixio.WriteAdjacency(&adj, m))
	assert.Equal(t, "0 12 \n0 0 \n", adj.String())

	back, err := matrixio.Parse(&adj)
	require.NoError(t, err)
	assert.True(t, matrix.Equal(m, back))
}

func TestGenerate(t *testing.T) {
	t.Parallel()
	m, err := matrixio.Generate(40, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	var edges int
	for i, row := range rows(t, m) {
		for j, v := range row {
			if i == j {
				assert.Zero(t, v)
				continue
			}
			if matrix.IsSentinel(v) {
				continue
			}
			edges++
			assert.GreaterOrEqual(t, v, 1.0)
			assert.LessOrEqual(t, v, float64(matrixio.DefaultMaxWeight))
		}
	}
	// 1560 ordered pairs at roughly 1/31 each.
	assert.Less(t, edges, 200)

	again, err := matrixio.Generate(40, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.True(t, matrix.Equal(m, again), "same seed, same graph")

	dense, err := matrixio.Generate(5, rand.New(rand.NewSource(2)), matrixio.WithEdgeOdds(1), matrixio.WithMaxWeight(1))
	require.NoError(t, err)
	for i, row := range rows(t, dense) {
		for j, v := range row {
			if i != j && !matrix.IsSentinel(v) {
				assert.Equal(t, 1.0, v)
			}
		}
	}
}
