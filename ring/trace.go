package ring

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/katalvlaran/ringpath/ring"

func startSpan(ctx context.Context, name string, c Comm, kind Kind, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	base := []attribute.KeyValue{
		attribute.Int("ring.rank", c.Rank()),
		attribute.Int("ring.size", c.Size()),
		attribute.String("ring.kind", kind.String()),
	}
	return otel.Tracer(tracerName).Start(ctx, name, trace.WithAttributes(append(base, attrs...)...))
}

// endSpan records err on span (if any) and ends it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
