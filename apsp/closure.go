package apsp

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/katalvlaran/ringpath/matrix"
	"github.com/katalvlaran/ringpath/metrics"
	"github.com/katalvlaran/ringpath/ring"
)

// Closure repeats a ← a⊗B for the given number of rounds, where B is the
// matrix whose column bands are distributed as b. Under the tropical
// semiring N rounds on an N-node graph yield all-pairs shortest distances.
func Closure(ctx context.Context, c ring.Comm, a, b *matrix.Dense, rounds int, sr matrix.Semiring) (*matrix.Dense, error) {
	o := gatherOptions([]Option{WithSemiring(sr)})
	return closure(ctx, c, a, b, rounds, o)
}

func closure(ctx context.Context, c ring.Comm, a, b *matrix.Dense, rounds int, o options) (*matrix.Dense, error) {
	if c == nil {
		return nil, ring.ErrNilComm
	}
	l := ctxzap.Extract(ctx)
	h := o.metrics.WithTags(map[string]string{"rank": strconv.Itoa(c.Rank())})
	total := h.Int64Counter(metrics.APSPRounds, "completed product rounds", metrics.Dimensionless)
	duration := h.Int64Histogram(metrics.APSPRoundDuration, "wall time of one product round", metrics.Milliseconds)

	for i := 0; i < rounds; i++ {
		start := time.Now()
		next, err := round(ctx, c, a, b, o.semiring, o.transmitter)
		if err != nil {
			return nil, fmt.Errorf("Closure: round %d: %w", i, err)
		}
		a = next

		elapsed := time.Since(start)
		total.Add(ctx, 1, nil)
		duration.Record(ctx, elapsed.Milliseconds(), nil)
		l.Debug("round complete", zap.Int("round", i), zap.Duration("elapsed", elapsed))
	}

	return a, nil
}
