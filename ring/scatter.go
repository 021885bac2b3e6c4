package ring

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/katalvlaran/ringpath/matrix"
)

// Scatter splits the transmitter's logicalSize×logicalSize matrix m into Size()
// equal contiguous blocks and hands block k to the rank k hops downstream of
// the transmitter. Non-transmitters pass m == nil.
//
// The transmitter sends the farthest block first (P−1 … 1) and keeps block 0.
// A rank at distance d relays the first P−1−d blocks it receives and keeps the
// last one. Row-major blocks are (N/P)×N row bands, column-major blocks are
// N×(N/P) column bands.
//
// Every rank checks divisibility before any message is sent, so an
// indivisible input fails everywhere with ErrIndivisible instead of hanging.
func Scatter(ctx context.Context, c Comm, m *matrix.Dense, logicalSize int, layout matrix.Layout, transmitter int) (_ *matrix.Dense, err error) {
	t, err := ringOf(c, transmitter)
	if err != nil {
		return nil, fmt.Errorf("Scatter: %w", err)
	}
	if !layout.Valid() {
		return nil, fmt.Errorf("Scatter: %w", matrix.ErrUnknownLayout)
	}
	p := t.Size()
	if logicalSize < 1 || logicalSize%p != 0 {
		return nil, fmt.Errorf("Scatter: N=%d over %d ranks: %w", logicalSize, p, ErrIndivisible)
	}
	blockSize := logicalSize * logicalSize / p
	isTransmitter := t.Rank() == transmitter
	if isTransmitter {
		if m == nil {
			return nil, fmt.Errorf("Scatter: %w", matrix.ErrNilMatrix)
		}
		if m.Rows() != logicalSize || m.Cols() != logicalSize {
			return nil, fmt.Errorf("Scatter: %dx%d for N=%d: %w", m.Rows(), m.Cols(), logicalSize, matrix.ErrBadShape)
		}
		if m.Layout() != layout {
			return nil, fmt.Errorf("Scatter: %s matrix into %s blocks: %w", m.Layout(), layout, ErrLayoutMismatch)
		}
	}

	ctx, span := startSpan(ctx, "ring.Scatter", c, KindScatter,
		attribute.Int("ring.transmitter", transmitter),
		attribute.Int("ring.block_size", blockSize),
	)
	defer func() { endSpan(span, err) }()

	var own []float64
	switch {
	case p == 1:
		own = m.Release()
	case isTransmitter:
		data := m.Release()
		for k := p - 1; k >= 1; k-- {
			chunk := data[k*blockSize : (k+1)*blockSize : (k+1)*blockSize]
			if err = c.Send(ctx, t.Next(), KindScatter, chunk); err != nil {
				return nil, fmt.Errorf("Scatter: send block %d: %w", k, err)
			}
		}
		own = data[:blockSize:blockSize]
	default:
		if own, err = receiveScattered(ctx, c, t.Previous(), t.Next(), p-1-t.Distance(transmitter), blockSize); err != nil {
			return nil, fmt.Errorf("Scatter: %w", err)
		}
	}

	return wrapBlock(own, logicalSize, blockSize/logicalSize, layout)
}

// receiveScattered relays the first `relay` chunks from prev to next and returns the chunk after them.
func receiveScattered(ctx context.Context, c Comm, prev, next, relay, blockSize int) ([]float64, error) {
	n, err := c.Probe(ctx, prev, KindScatter)
	if err != nil {
		return nil, fmt.Errorf("probe: %w", err)
	}
	if n != blockSize {
		return nil, fmt.Errorf("probed %d cells, want %d: %w", n, blockSize, ErrUnexpectedLength)
	}

	for i := 0; i < relay; i++ {
		buf, err := recvChunk(ctx, c, prev, KindScatter, n)
		if err != nil {
			return nil, err
		}
		if err = c.Send(ctx, next, KindScatter, buf); err != nil {
			return nil, fmt.Errorf("relay: %w", err)
		}
	}

	return recvChunk(ctx, c, prev, KindScatter, n)
}

func recvChunk(ctx context.Context, c Comm, src int, kind Kind, want int) ([]float64, error) {
	buf, err := c.Recv(ctx, src, kind)
	if err != nil {
		return nil, fmt.Errorf("recv: %w", err)
	}
	if len(buf) != want {
		return nil, fmt.Errorf("%d cells from %d, want %d: %w", len(buf), src, want, ErrUnexpectedLength)
	}
	return buf, nil
}

// wrapBlock shapes a scattered buffer: band rows (or columns) of width n.
func wrapBlock(data []float64, n, band int, layout matrix.Layout) (*matrix.Dense, error) {
	if layout == matrix.ColMajor {
		return matrix.NewDenseFrom(data, n, band, matrix.ColMajor)
	}
	return matrix.NewDenseFrom(data, band, n, matrix.RowMajor)
}
