// Package logging builds the process zap logger and carries it in a context.
package logging

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

type Option func(*zap.Config)

func WithLogLevel(level string) Option {
	return func(c *zap.Config) {
		ll := zapcore.InfoLevel
		_ = ll.Set(level)
		c.Level.SetLevel(ll)
	}
}

func WithLogFormat(format string) Option {
	return func(c *zap.Config) {
		switch format {
		case LogFormatConsole:
			c.Encoding = LogFormatConsole
			c.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		default:
			c.Encoding = LogFormatJSON
		}
	}
}

// WithOutputPaths sets where log lines go. "stdout" and "stderr" are special;
// anything else is opened as a file by zap.
func WithOutputPaths(paths []string) Option {
	return func(c *zap.Config) {
		if len(paths) == 0 {
			return
		}
		p := make([]string, len(paths))
		copy(p, paths)
		c.OutputPaths = p
	}
}

// Init creates a new zap logger and attaches it to the provided context.
func Init(ctx context.Context, opts ...Option) (context.Context, error) {
	zc := zap.NewProductionConfig()
	zc.Sampling = nil
	zc.DisableStacktrace = true
	zc.OutputPaths = []string{"stderr"}

	for _, opt := range opts {
		opt(&zc)
	}

	l, err := zc.Build()
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(l)

	l.Debug("logger created", zap.String("log_level", zc.Level.String()))

	return ctxzap.ToContext(ctx, l), nil
}

// WithRank returns a context whose logger tags every line with the rank.
func WithRank(ctx context.Context, rank int) context.Context {
	return ctxzap.ToContext(ctx, ctxzap.Extract(ctx).With(zap.Int("rank", rank)))
}
