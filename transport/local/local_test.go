package local_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ringpath/metrics"
	"github.com/katalvlaran/ringpath/ring"
	"github.com/katalvlaran/ringpath/transport/local"
)

func TestNewWorldRejectsEmpty(t *testing.T) {
	_, err := local.NewWorld(0)
	require.ErrorIs(t, err, local.ErrWorldSize)

	w, err := local.NewWorld(2)
	require.NoError(t, err)
	_, err = w.Endpoint(2)
	require.ErrorIs(t, err, local.ErrRankOutOfRange)
}

func TestSendMovesBufferWithoutCopy(t *testing.T) {
	w, err := local.NewWorld(2)
	require.NoError(t, err)
	defer w.Close()
	a, _ := w.Endpoint(0)
	b, _ := w.Endpoint(1)

	payload := []float64{1, 2, 3}
	go func() { _ = a.Send(context.Background(), 1, ring.KindRotate, payload) }()

	got, err := b.Recv(context.Background(), 0, ring.KindRotate)
	require.NoError(t, err)
	require.Same(t, &payload[0], &got[0])
}

func TestRunFirstErrorCancelsOthers(t *testing.T) {
	boom := errors.New("boom")
	err := local.Run(context.Background(), 3, func(ctx context.Context, c ring.Comm) error {
		if c.Rank() == 1 {
			return boom
		}
		// Everybody else waits for a message that never comes.
		_, err := c.Recv(ctx, (c.Rank()+c.Size()-1)%c.Size(), ring.KindRotate)
		return err
	})
	require.ErrorIs(t, err, boom)
}

func TestRunShiftAroundRing(t *testing.T) {
	for _, size := range []int{1, 2, 3, 4, 7} {
		size := size
		t.Run("", func(t *testing.T) {
			t.Parallel()
			got := make([]float64, size)
			err := local.Run(context.Background(), size, func(ctx context.Context, c ring.Comm) error {
				in, err := ring.Shift(ctx, c, ring.KindRotate, []float64{float64(c.Rank())})
				if err != nil {
					return err
				}
				got[c.Rank()] = in[0]
				return nil
			})
			require.NoError(t, err)
			for r := 0; r < size; r++ {
				require.Equal(t, float64((r-1+size)%size), got[r])
			}
		})
	}
}

type countingHandler struct {
	mu   sync.Mutex
	sums map[string]int64
}

func (h *countingHandler) Int64Counter(name, _ string, _ metrics.Unit) metrics.Int64Counter {
	return &countingCounter{h: h, name: name}
}

func (h *countingHandler) Int64Histogram(string, string, metrics.Unit) metrics.Int64Histogram {
	return metrics.Noop.Int64Histogram("", "", metrics.Dimensionless)
}

func (h *countingHandler) WithTags(map[string]string) metrics.Handler { return h }

type countingCounter struct {
	h    *countingHandler
	name string
}

func (c *countingCounter) Add(_ context.Context, v int64, tags map[string]string) {
	c.h.mu.Lock()
	defer c.h.mu.Unlock()
	c.h.sums[c.name+"/"+tags["kind"]] += v
}

func TestWithMetricsCountsMessagesAndCells(t *testing.T) {
	h := &countingHandler{sums: map[string]int64{}}
	err := local.Run(context.Background(), 4, func(ctx context.Context, c ring.Comm) error {
		_, err := ring.Shift(ctx, c, ring.KindRotate, make([]float64, 5))
		return err
	}, local.WithMetrics(h))
	require.NoError(t, err)
	require.Equal(t, int64(4), h.sums["ring_messages_sent_total/rotate"])
	require.Equal(t, int64(20), h.sums["ring_cells_sent_total/rotate"])
}
