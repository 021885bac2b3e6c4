// Package mailbox holds the incoming side of one rank: a rendezvous queue per
// (source, kind) pair, with the ability to peek at the head message.
package mailbox

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/katalvlaran/ringpath/ring"
)

var (
	ErrSourceOutOfRange = errors.New("mailbox: source out of range")
	ErrClosed           = errors.New("mailbox: closed")
)

type key struct {
	src  int
	kind ring.Kind
}

// slot is the queue for one (source, kind) pair. parked holds a message that
// was taken off ch by Probe and not yet returned by Recv.
type slot struct {
	ch chan []float64

	mu     sync.Mutex
	parked []float64
	held   bool
}

// Mailbox is safe for concurrent Deliver calls from many senders. Recv and
// Probe for the same (source, kind) are expected from a single receiver.
type Mailbox struct {
	size int

	mu     sync.Mutex
	slots  map[key]*slot
	done   chan struct{}
	closed bool
}

// New returns a mailbox accepting messages from sources in [0, size).
func New(size int) *Mailbox {
	return &Mailbox{
		size:  size,
		slots: make(map[key]*slot),
		done:  make(chan struct{}),
	}
}

func (m *Mailbox) slot(src int, kind ring.Kind) (*slot, error) {
	if src < 0 || src >= m.size {
		return nil, fmt.Errorf("source %d of %d: %w", src, m.size, ErrSourceOutOfRange)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key{src: src, kind: kind}
	s, ok := m.slots[k]
	if !ok {
		s = &slot{ch: make(chan []float64)}
		m.slots[k] = s
	}
	return s, nil
}

// Deliver blocks until the receiver takes payload with Recv or Probe.
func (m *Mailbox) Deliver(ctx context.Context, src int, kind ring.Kind, payload []float64) error {
	s, err := m.slot(src, kind)
	if err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}
	select {
	case s.ch <- payload:
		return nil
	case <-m.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Recv returns the next message from src of the given kind, including one
// already parked by Probe.
func (m *Mailbox) Recv(ctx context.Context, src int, kind ring.Kind) ([]float64, error) {
	s, err := m.slot(src, kind)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.held {
		buf := s.parked
		s.parked, s.held = nil, false
		s.mu.Unlock()
		return buf, nil
	}
	s.mu.Unlock()

	return m.take(ctx, s)
}

// Probe blocks until a message from src of the given kind is pending and
// returns its length. The message stays queued for the next Recv.
func (m *Mailbox) Probe(ctx context.Context, src int, kind ring.Kind) (int, error) {
	s, err := m.slot(src, kind)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	if s.held {
		n := len(s.parked)
		s.mu.Unlock()
		return n, nil
	}
	s.mu.Unlock()

	buf, err := m.take(ctx, s)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	s.parked, s.held = buf, true
	s.mu.Unlock()

	return len(buf), nil
}

func (m *Mailbox) take(ctx context.Context, s *slot) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	select {
	case buf := <-s.ch:
		return buf, nil
	case <-m.done:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close releases every blocked Deliver, Recv and Probe with ErrClosed.
func (m *Mailbox) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.done)
	}
}
