package main

import (
	"context"
	"io"

	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/katalvlaran/ringpath/metrics"
)

// setupMetrics returns a no-op handler unless enabled. When enabled, metrics
// are exported to w as JSON when shutdown is called.
func setupMetrics(ctx context.Context, enabled bool, w io.Writer) (metrics.Handler, func(context.Context) error, error) {
	if !enabled {
		return metrics.Noop, func(context.Context) error { return nil }, nil
	}

	exporter, err := stdoutmetric.New(stdoutmetric.WithWriter(w), stdoutmetric.WithoutTimestamps())
	if err != nil {
		return nil, nil, err
	}
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)))

	return metrics.NewOtelHandler(ctx, provider, "ringpath"), provider.Shutdown, nil
}
