package matrixio

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/ringpath/matrix"
)

const (
	// DefaultEdgeOdds gives each ordered pair a 1 in DefaultEdgeOdds chance of an edge.
	DefaultEdgeOdds = 31

	// DefaultMaxWeight bounds edge weights. A drawn weight of 0 means no edge.
	DefaultMaxWeight = 100
)

type GenerateOption func(*generateOptions)

type generateOptions struct {
	edgeOdds  int
	maxWeight int
}

// WithEdgeOdds sets the 1-in-n chance of an edge between two distinct nodes.
func WithEdgeOdds(n int) GenerateOption {
	return func(o *generateOptions) { o.edgeOdds = n }
}

func WithMaxWeight(w int) GenerateOption {
	return func(o *generateOptions) { o.maxWeight = w }
}

// Generate builds a random sparse directed graph on n nodes as a distance
// matrix: diagonal 0, sentinel where there is no edge.
func Generate(n int, rng *rand.Rand, opts ...GenerateOption) (*matrix.Dense, error) {
	o := generateOptions{edgeOdds: DefaultEdgeOdds, maxWeight: DefaultMaxWeight}
	for _, opt := range opts {
		opt(&o)
	}
	if o.edgeOdds < 1 || o.maxWeight < 1 {
		return nil, fmt.Errorf("Generate: odds=%d max=%d: %w", o.edgeOdds, o.maxWeight, matrix.ErrInvalidDimensions)
	}
	m, err := matrix.NewDense(n, n, matrix.RowMajor)
	if err != nil {
		return nil, fmt.Errorf("Generate(%d): %w", n, err)
	}

	var w int
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			w = 0
			if rng.Intn(o.edgeOdds) == 0 {
				w = rng.Intn(o.maxWeight + 1)
			}
			if w == 0 {
				_ = m.Set(i, j, matrix.Sentinel)
				continue
			}
			_ = m.Set(i, j, float64(w))
		}
	}
	return m, nil
}
