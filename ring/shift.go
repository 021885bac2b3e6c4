package ring

import (
	"context"
	"fmt"
)

// Shift sends outgoing to the next rank and returns what the previous rank
// sent. Even ranks send first and odd ranks receive first, so every blocking
// send has a matching receive posted and the exchange cannot deadlock on a
// rendezvous transport. With an odd ring size rank 0 and the last rank are
// both even; the last rank's send completes once rank 0 has finished its own.
func Shift(ctx context.Context, c Comm, kind Kind, outgoing []float64) (_ []float64, err error) {
	if c == nil {
		return nil, fmt.Errorf("Shift: %w", ErrNilComm)
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("Shift: %w", ErrUnknownKind)
	}
	t, err := ringOf(c, 0)
	if err != nil {
		return nil, fmt.Errorf("Shift: %w", err)
	}
	if t.Size() == 1 {
		return outgoing, nil
	}

	ctx, span := startSpan(ctx, "ring.Shift", c, kind)
	defer func() { endSpan(span, err) }()

	var incoming []float64
	if t.IsEven() {
		if err = c.Send(ctx, t.Next(), kind, outgoing); err != nil {
			return nil, fmt.Errorf("Shift: send: %w", err)
		}
		if incoming, err = c.Recv(ctx, t.Previous(), kind); err != nil {
			return nil, fmt.Errorf("Shift: recv: %w", err)
		}
		return incoming, nil
	}

	if incoming, err = c.Recv(ctx, t.Previous(), kind); err != nil {
		return nil, fmt.Errorf("Shift: recv: %w", err)
	}
	if err = c.Send(ctx, t.Next(), kind, outgoing); err != nil {
		return nil, fmt.Errorf("Shift: send: %w", err)
	}
	return incoming, nil
}
