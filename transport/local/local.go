// Package local runs a whole ring inside one process. Every rank is a
// goroutine and messages move between ranks without being copied.
package local

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/ringpath/internal/mailbox"
	"github.com/katalvlaran/ringpath/logging"
	"github.com/katalvlaran/ringpath/metrics"
	"github.com/katalvlaran/ringpath/ring"
)

var (
	ErrWorldSize      = errors.New("local: world size must be at least 1")
	ErrRankOutOfRange = errors.New("local: rank out of range")
	ErrUnknownKind    = errors.New("local: unknown message kind")
)

// Option configures a World.
type Option func(*World)

// WithMetrics counts messages and cells sent, per kind and rank.
func WithMetrics(h metrics.Handler) Option {
	return func(w *World) {
		w.metrics = h
	}
}

// World is a fixed set of ranks sharing one address space.
type World struct {
	size    int
	boxes   []*mailbox.Mailbox
	metrics metrics.Handler
}

// NewWorld creates size ranks, each with its own mailbox. size must be at least 1.
func NewWorld(size int, opts ...Option) (*World, error) {
	if size < 1 {
		return nil, fmt.Errorf("NewWorld(%d): %w", size, ErrWorldSize)
	}
	w := &World{size: size, boxes: make([]*mailbox.Mailbox, size)}
	for _, opt := range opts {
		opt(w)
	}
	w.metrics = metrics.OrNoop(w.metrics)
	for i := range w.boxes {
		w.boxes[i] = mailbox.New(size)
	}
	return w, nil
}

// Size is the number of ranks.
func (w *World) Size() int { return w.size }

// Endpoint returns the Comm for rank.
func (w *World) Endpoint(rank int) (*Endpoint, error) {
	if rank < 0 || rank >= w.size {
		return nil, fmt.Errorf("Endpoint(%d) of %d: %w", rank, w.size, ErrRankOutOfRange)
	}
	h := w.metrics.WithTags(map[string]string{"rank": strconv.Itoa(rank)})
	return &Endpoint{
		world:    w,
		rank:     rank,
		messages: h.Int64Counter(metrics.RingMessagesSent, "messages sent to a ring neighbour", metrics.Dimensionless),
		cells:    h.Int64Counter(metrics.RingCellsSent, "matrix cells sent to a ring neighbour", metrics.Dimensionless),
	}, nil
}

// Close unblocks every pending operation in the world with mailbox.ErrClosed.
func (w *World) Close() {
	for _, b := range w.boxes {
		b.Close()
	}
}

// Endpoint is one rank's ring.Comm inside a World.
type Endpoint struct {
	world    *World
	rank     int
	messages metrics.Int64Counter
	cells    metrics.Int64Counter
}

var _ ring.Comm = (*Endpoint)(nil)

func (e *Endpoint) Rank() int { return e.rank }

func (e *Endpoint) Size() int { return e.world.size }

// Send hands payload to dst's mailbox and blocks until dst takes it. The
// slice itself moves; nothing is copied.
func (e *Endpoint) Send(ctx context.Context, dst int, kind ring.Kind, payload []float64) error {
	if !kind.Valid() {
		return ErrUnknownKind
	}
	if dst < 0 || dst >= e.world.size {
		return fmt.Errorf("send to %d: %w", dst, ErrRankOutOfRange)
	}
	if err := e.world.boxes[dst].Deliver(ctx, e.rank, kind, payload); err != nil {
		return err
	}
	tags := map[string]string{"kind": kind.String()}
	e.messages.Add(ctx, 1, tags)
	e.cells.Add(ctx, int64(len(payload)), tags)
	return nil
}

// Recv takes the next message of kind from src, blocking until one arrives.
func (e *Endpoint) Recv(ctx context.Context, src int, kind ring.Kind) ([]float64, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}
	return e.world.boxes[e.rank].Recv(ctx, src, kind)
}

// Probe reports the length of the next message of kind from src without
// consuming it.
func (e *Endpoint) Probe(ctx context.Context, src int, kind ring.Kind) (int, error) {
	if !kind.Valid() {
		return 0, ErrUnknownKind
	}
	return e.world.boxes[e.rank].Probe(ctx, src, kind)
}

// Run starts one goroutine per rank and calls fn with that rank's Comm. The
// first rank to fail cancels the others; Run returns that first error.
func Run(ctx context.Context, size int, fn func(ctx context.Context, c ring.Comm) error, opts ...Option) error {
	w, err := NewWorld(size, opts...)
	if err != nil {
		return err
	}
	defer w.Close()

	g, gctx := errgroup.WithContext(ctx)
	for rank := 0; rank < size; rank++ {
		ep, err := w.Endpoint(rank)
		if err != nil {
			return err
		}
		g.Go(func() error {
			if err := fn(logging.WithRank(gctx, ep.Rank()), ep); err != nil {
				return fmt.Errorf("rank %d: %w", ep.Rank(), err)
			}
			return nil
		})
	}
	return g.Wait()
}
