package ring

import "context"

// Comm is one rank's view of the ring. Implementations deliver messages
// reliably and in order per (source, destination, kind).
type Comm interface {
	Rank() int
	Size() int

	// Send blocks until the message is handed to dst. Ownership of payload
	// moves to the receiver; the caller must not touch it afterwards.
	Send(ctx context.Context, dst int, kind Kind, payload []float64) error

	// Recv blocks until a message of kind from src is available.
	Recv(ctx context.Context, src int, kind Kind) ([]float64, error)

	// Probe blocks until a message of kind from src is pending and reports its
	// length without consuming it. The next Recv returns the same message.
	Probe(ctx context.Context, src int, kind Kind) (int, error)
}
