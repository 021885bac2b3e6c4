package apsp

import (
	"github.com/katalvlaran/ringpath/matrix"
	"github.com/katalvlaran/ringpath/metrics"
)

const (
	// DefaultTransmitter is the rank that owns input and output.
	DefaultTransmitter = 0

	// DefaultRounds makes Run use N rounds for an N×N input.
	DefaultRounds = -1
)

// Option configures Run and Closure.
type Option func(*options)

type options struct {
	semiring    matrix.Semiring
	transmitter int
	rounds      int
	metrics     metrics.Handler
}

func defaultOptions() options {
	return options{
		semiring:    matrix.Tropical(),
		transmitter: DefaultTransmitter,
		rounds:      DefaultRounds,
	}
}

func gatherOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o.metrics = metrics.OrNoop(o.metrics)
	return o
}

// WithSemiring replaces the default tropical (min, +) semiring.
func WithSemiring(sr matrix.Semiring) Option {
	return func(o *options) { o.semiring = sr }
}

// WithTransmitter selects the rank that holds the input and receives the result.
func WithTransmitter(rank int) Option {
	return func(o *options) { o.transmitter = rank }
}

// WithRounds overrides the number of product rounds. A negative value
// restores the default of N rounds.
func WithRounds(n int) Option {
	return func(o *options) { o.rounds = n }
}

// WithMetrics records apsp_rounds_total and apsp_round_duration_ms through h.
// A nil h records nothing.
func WithMetrics(h metrics.Handler) Option {
	return func(o *options) { o.metrics = h }
}
