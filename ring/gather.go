package ring

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/katalvlaran/ringpath/matrix"
)

// Gather is the inverse of Scatter. Every rank contributes block; the
// transmitter assembles them in ring order, starting with its own, and
// returns the result. Row-major blocks stack vertically into a
// (rows·P)×cols matrix, column-major blocks side by side into rows×(cols·P).
// Other ranks return nil, nil.
//
// A rank at distance d sends its own block and then relays the d−1 blocks that
// originate upstream of it. The caller keeps ownership of block.
func Gather(ctx context.Context, c Comm, block *matrix.Dense, transmitter int) (_ *matrix.Dense, err error) {
	t, err := ringOf(c, transmitter)
	if err != nil {
		return nil, fmt.Errorf("Gather: %w", err)
	}
	if block == nil {
		return nil, fmt.Errorf("Gather: %w", matrix.ErrNilMatrix)
	}
	p := t.Size()
	if p == 1 {
		return block.Clone(), nil
	}

	ctx, span := startSpan(ctx, "ring.Gather", c, KindGather,
		attribute.Int("ring.transmitter", transmitter),
		attribute.Int("ring.block_size", block.Len()),
	)
	defer func() { endSpan(span, err) }()

	if t.Rank() != transmitter {
		if err = c.Send(ctx, t.Next(), KindGather, block.Clone().Release()); err != nil {
			return nil, fmt.Errorf("Gather: send own block: %w", err)
		}
		for i := 1; i < t.Distance(transmitter); i++ {
			buf, err := c.Recv(ctx, t.Previous(), KindGather)
			if err != nil {
				return nil, fmt.Errorf("Gather: recv: %w", err)
			}
			if err = c.Send(ctx, t.Next(), KindGather, buf); err != nil {
				return nil, fmt.Errorf("Gather: relay: %w", err)
			}
		}
		return nil, nil
	}

	bs := block.Len()
	full := make([]float64, bs*p)
	copy(full, block.Data())
	var slot int
	for step := 1; step < p; step++ {
		buf, err := recvChunk(ctx, c, t.Previous(), KindGather, bs)
		if err != nil {
			return nil, fmt.Errorf("Gather: block %d: %w", step, err)
		}
		slot = p - step
		copy(full[slot*bs:], buf)
	}

	if block.Layout() == matrix.ColMajor {
		return matrix.NewDenseFrom(full, block.Rows(), block.Cols()*p, matrix.ColMajor)
	}
	return matrix.NewDenseFrom(full, block.Rows()*p, block.Cols(), matrix.RowMajor)
}
