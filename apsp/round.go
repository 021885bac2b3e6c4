package apsp

import (
	"context"
	"fmt"

	"github.com/katalvlaran/ringpath/matrix"
	"github.com/katalvlaran/ringpath/ring"
	"github.com/katalvlaran/ringpath/topology"
)

// Round computes this rank's row band of A⊗B, where A and B are N×N matrices
// split across the ring: a is this rank's (N/P)×N row band and b its N×(N/P)
// column band. a never moves. b travels once around the ring, so after the
// P rotations of a round b holds its original contents again.
//
// At step s the local product a⊗b is the output block for column band
// (rank−s) mod P, since b then holds the band that started s hops upstream.
func Round(ctx context.Context, c ring.Comm, a, b *matrix.Dense, sr matrix.Semiring) (*matrix.Dense, error) {
	return round(ctx, c, a, b, sr, 0)
}

// round places output blocks by ring distance from origin, the rank that
// scattered band 0.
func round(ctx context.Context, c ring.Comm, a, b *matrix.Dense, sr matrix.Semiring, origin int) (*matrix.Dense, error) {
	if c == nil {
		return nil, ring.ErrNilComm
	}
	t, err := topology.New(c.Rank(), c.Size())
	if err != nil {
		return nil, err
	}
	if err = checkBlocks(a, b, t.Size()); err != nil {
		return nil, err
	}

	p, n, band := t.Size(), a.Cols(), a.Rows()
	own := t.Distance(origin)
	out, err := matrix.NewDense(band, n, matrix.RowMajor)
	if err != nil {
		return nil, err
	}

	for step := 0; step < p; step++ {
		prod, err := matrix.Product(a, b, sr)
		if err != nil {
			return nil, fmt.Errorf("Round: step %d: %w", step, err)
		}
		if err = matrix.Place(out, prod, 0, ((own-step+p)%p)*band); err != nil {
			return nil, fmt.Errorf("Round: step %d: %w", step, err)
		}

		incoming, err := ring.Shift(ctx, c, ring.KindRotate, b.Data())
		if err != nil {
			return nil, fmt.Errorf("Round: step %d: %w", step, err)
		}
		if err = b.Adopt(incoming); err != nil {
			return nil, fmt.Errorf("Round: step %d: %w", step, err)
		}
	}

	return out, nil
}

func checkBlocks(a, b *matrix.Dense, p int) error {
	if a == nil || b == nil {
		return fmt.Errorf("Round: %w", matrix.ErrNilMatrix)
	}
	n, band := a.Cols(), a.Rows()
	if band*p != n || b.Rows() != n || b.Cols() != band {
		return fmt.Errorf("Round: a %dx%d, b %dx%d over %d ranks: %w",
			a.Rows(), a.Cols(), b.Rows(), b.Cols(), p, ErrBlockShape)
	}
	return nil
}
