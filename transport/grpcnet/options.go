package grpcnet

import (
	"context"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/ringpath/metrics"
)

// DefaultCloseTimeout bounds how long Close waits for peers to drain.
const DefaultCloseTimeout = 10 * time.Second

type Option func(*options)

type options struct {
	listen       string
	listener     net.Listener
	logger       *zap.Logger
	compress     bool
	dialer       func(ctx context.Context, addr string) (net.Conn, error)
	metrics      metrics.Handler
	closeTimeout time.Duration
}

// WithListen overrides the address the node serves on. By default a node
// listens on its own entry in the peer list.
func WithListen(addr string) Option {
	return func(o *options) { o.listen = addr }
}

// WithListener serves on an existing listener instead of opening one.
func WithListener(lis net.Listener) Option {
	return func(o *options) { o.listener = lis }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithCompression zstd-compresses outgoing frames. Incoming compressed
// frames are always accepted.
func WithCompression(enabled bool) Option {
	return func(o *options) { o.compress = enabled }
}

// WithDialer replaces the network dialer used to reach peers.
func WithDialer(dial func(ctx context.Context, addr string) (net.Conn, error)) Option {
	return func(o *options) { o.dialer = dial }
}

func WithMetrics(h metrics.Handler) Option {
	return func(o *options) { o.metrics = h }
}

func WithCloseTimeout(d time.Duration) Option {
	return func(o *options) { o.closeTimeout = d }
}
