package apsp

import (
	"context"
	"fmt"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/katalvlaran/ringpath/matrix"
	"github.com/katalvlaran/ringpath/ring"
)

// Run is the whole distributed pipeline, called by every rank. The
// transmitter passes the N×N input as full; every other rank passes nil.
//
//  1. The transmitter broadcasts N. N=0 (no input) stops every rank with ErrNoInput.
//  2. Every rank checks N mod P == 0.
//  3. A is scattered in row bands and a column-major copy B in column bands.
//  4. Closure runs N rounds (see WithRounds).
//  5. The row bands are gathered at the transmitter, which returns the
//     row-major result. Other ranks return nil.
func Run(ctx context.Context, c ring.Comm, full *matrix.Dense, opts ...Option) (*matrix.Dense, error) {
	if c == nil {
		return nil, ring.ErrNilComm
	}
	o := gatherOptions(opts)
	if err := o.semiring.Validate(); err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}
	l := ctxzap.Extract(ctx)
	isTransmitter := c.Rank() == o.transmitter

	var announced int
	var inputErr error
	if isTransmitter && full != nil {
		if inputErr = matrix.ValidateSquare(full); inputErr == nil {
			announced = full.Rows()
		}
	}
	v, err := ring.Broadcast(ctx, c, float64(announced), o.transmitter)
	if err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}
	if inputErr != nil {
		return nil, fmt.Errorf("Run: %w", inputErr)
	}
	n := int(v)
	if n == 0 {
		return nil, ErrNoInput
	}
	if n%c.Size() != 0 {
		return nil, fmt.Errorf("Run: N=%d over %d ranks: %w", n, c.Size(), ErrIndivisible)
	}

	start := time.Now()
	l.Info("apsp started", zap.Int("n", n), zap.Int("ranks", c.Size()), zap.String("semiring", o.semiring.Name))

	var rowA, colB *matrix.Dense
	if isTransmitter {
		if rowA, err = full.Relayout(matrix.RowMajor); err != nil {
			return nil, fmt.Errorf("Run: %w", err)
		}
		if colB, err = full.Relayout(matrix.ColMajor); err != nil {
			return nil, fmt.Errorf("Run: %w", err)
		}
	}
	a, err := ring.Scatter(ctx, c, rowA, n, matrix.RowMajor, o.transmitter)
	if err != nil {
		return nil, fmt.Errorf("Run: scatter A: %w", err)
	}
	b, err := ring.Scatter(ctx, c, colB, n, matrix.ColMajor, o.transmitter)
	if err != nil {
		return nil, fmt.Errorf("Run: scatter B: %w", err)
	}

	rounds := o.rounds
	if rounds < 0 {
		rounds = n
	}
	res, err := closure(ctx, c, a, b, rounds, o)
	if err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}

	out, err := ring.Gather(ctx, c, res, o.transmitter)
	if err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}
	l.Info("apsp finished", zap.Int("rounds", rounds), zap.Duration("elapsed", time.Since(start)))

	return out, nil
}
