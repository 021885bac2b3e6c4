// Package metrics is the instrumentation facade of ringpath. Transports and
// the APSP driver record through a Handler; the CLI decides whether that
// Handler is a no-op or backed by OpenTelemetry (--metrics).
//
// Recorded instruments, all tagged with "rank":
//
//	ring_messages_sent_total     counter    messages sent to Next, tagged "kind"
//	ring_cells_sent_total        counter    matrix cells in those messages, tagged "kind"
//	ring_frame_bytes_sent_total  counter    encoded frame bytes (grpcnet only), tagged "kind"
//	apsp_rounds_total            counter    completed product rounds
//	apsp_round_duration_ms       histogram  wall time of one round
//
// Names are lower-cased by the OpenTelemetry handler.
package metrics

import (
	"context"
)

// Instrument names shared by the transports and the APSP driver.
const (
	RingMessagesSent   = "ring_messages_sent_total"
	RingCellsSent      = "ring_cells_sent_total"
	RingFrameBytesSent = "ring_frame_bytes_sent_total"
	APSPRounds         = "apsp_rounds_total"
	APSPRoundDuration  = "apsp_round_duration_ms"
)

// Handler creates instruments. Handlers derived through WithTags add their
// tags to every value recorded by their instruments.
type Handler interface {
	Int64Counter(name string, description string, unit Unit) Int64Counter
	Int64Histogram(name string, description string, unit Unit) Int64Histogram
	WithTags(tags map[string]string) Handler
}

// Int64Counter accumulates a monotonic total. tags may be nil.
type Int64Counter interface {
	Add(ctx context.Context, value int64, tags map[string]string)
}

// Int64Histogram records a distribution. tags may be nil.
type Int64Histogram interface {
	Record(ctx context.Context, value int64, tags map[string]string)
}

// Unit is a UCUM unit string.
type Unit string

const (
	Dimensionless Unit = "1"
	Bytes         Unit = "By"
	Milliseconds  Unit = "ms"
)

// OrNoop returns h, or the no-op handler when h is nil, so callers can take
// an optional Handler without nil checks at every record site.
func OrNoop(h Handler) Handler {
	if h == nil {
		return Noop
	}
	return h
}
