package ring

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/katalvlaran/ringpath/topology"
)

// Broadcast passes value from transmitter once around the ring. Every rank
// returns the transmitter's value. The transmitter sends to its next neighbour
// and waits until the value comes back from its previous one; every other rank
// receives from previous and forwards to next.
func Broadcast(ctx context.Context, c Comm, value float64, transmitter int) (_ float64, err error) {
	t, err := ringOf(c, transmitter)
	if err != nil {
		return 0, fmt.Errorf("Broadcast: %w", err)
	}
	if t.Size() == 1 {
		return value, nil
	}

	ctx, span := startSpan(ctx, "ring.Broadcast", c, KindBroadcast, attribute.Int("ring.transmitter", transmitter))
	defer func() { endSpan(span, err) }()

	if t.Rank() == transmitter {
		if err = c.Send(ctx, t.Next(), KindBroadcast, []float64{value}); err != nil {
			return 0, fmt.Errorf("Broadcast: send: %w", err)
		}
		if _, err = recvScalar(ctx, c, t.Previous()); err != nil {
			return 0, fmt.Errorf("Broadcast: closing the ring: %w", err)
		}
		return value, nil
	}

	v, err := recvScalar(ctx, c, t.Previous())
	if err != nil {
		return 0, fmt.Errorf("Broadcast: %w", err)
	}
	if err = c.Send(ctx, t.Next(), KindBroadcast, []float64{v}); err != nil {
		return 0, fmt.Errorf("Broadcast: forward: %w", err)
	}

	return v, nil
}

func recvScalar(ctx context.Context, c Comm, src int) (float64, error) {
	buf, err := c.Recv(ctx, src, KindBroadcast)
	if err != nil {
		return 0, err
	}
	if len(buf) != 1 {
		return 0, fmt.Errorf("scalar from %d has %d cells: %w", src, len(buf), ErrUnexpectedLength)
	}
	return buf[0], nil
}

// ringOf validates the comm and transmitter and returns the caller's ring position.
func ringOf(c Comm, transmitter int) (topology.Ring, error) {
	if c == nil {
		return topology.Ring{}, ErrNilComm
	}
	t, err := topology.New(c.Rank(), c.Size())
	if err != nil {
		return topology.Ring{}, err
	}
	if transmitter < 0 || transmitter >= t.Size() {
		return topology.Ring{}, fmt.Errorf("transmitter %d of %d: %w", transmitter, t.Size(), ErrTransmitterOutOfRange)
	}
	return t, nil
}
