package metrics

import (
	"context"
	"maps"
	"sort"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
)

// otelInstruments is shared by every handler derived through WithTags, so an
// instrument name maps to a single OpenTelemetry instrument.
type otelInstruments struct {
	meter otelmetric.Meter

	int64CountersMtx sync.Mutex
	int64Counters    map[string]otelmetric.Int64Counter
	int64HistosMtx   sync.Mutex
	int64Histos      map[string]otelmetric.Int64Histogram
}

type otelHandler struct {
	inst *otelInstruments
	tags map[string]string
}

func attributesOf(base, extra map[string]string) attribute.Set {
	merged := make(map[string]string, len(base)+len(extra))
	maps.Copy(merged, base)
	maps.Copy(merged, extra)

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	kvs := make([]attribute.KeyValue, 0, len(keys))
	for _, k := range keys {
		kvs = append(kvs, attribute.String(k, merged[k]))
	}
	return attribute.NewSet(kvs...)
}

type otelInt64Counter struct {
	c    otelmetric.Int64Counter
	tags map[string]string
}

func (o *otelInt64Counter) Add(ctx context.Context, value int64, tags map[string]string) {
	o.c.Add(ctx, value, otelmetric.WithAttributeSet(attributesOf(o.tags, tags)))
}

var _ Int64Counter = (*otelInt64Counter)(nil)

type otelInt64Histogram struct {
	h    otelmetric.Int64Histogram
	tags map[string]string
}

func (o *otelInt64Histogram) Record(ctx context.Context, value int64, tags map[string]string) {
	o.h.Record(ctx, value, otelmetric.WithAttributeSet(attributesOf(o.tags, tags)))
}

var _ Int64Histogram = (*otelInt64Histogram)(nil)

func (h *otelHandler) Int64Histogram(name string, description string, unit Unit) Int64Histogram {
	h.inst.int64HistosMtx.Lock()
	defer h.inst.int64HistosMtx.Unlock()

	name = strings.ToLower(name)

	c, ok := h.inst.int64Histos[name]
	var err error
	if !ok {
		c, err = h.inst.meter.Int64Histogram(name, otelmetric.WithDescription(description), otelmetric.WithUnit(string(unit)))
		if err != nil {
			panic(err)
		}
		h.inst.int64Histos[name] = c
	}

	return &otelInt64Histogram{h: c, tags: h.tags}
}

func (h *otelHandler) Int64Counter(name string, description string, unit Unit) Int64Counter {
	h.inst.int64CountersMtx.Lock()
	defer h.inst.int64CountersMtx.Unlock()

	name = strings.ToLower(name)

	c, ok := h.inst.int64Counters[name]
	var err error
	if !ok {
		c, err = h.inst.meter.Int64Counter(name, otelmetric.WithDescription(description), otelmetric.WithUnit(string(unit)))
		if err != nil {
			panic(err)
		}
		h.inst.int64Counters[name] = c
	}

	return &otelInt64Counter{c: c, tags: h.tags}
}

func (h *otelHandler) WithTags(tags map[string]string) Handler {
	merged := make(map[string]string, len(h.tags)+len(tags))
	maps.Copy(merged, h.tags)
	maps.Copy(merged, tags)
	return &otelHandler{inst: h.inst, tags: merged}
}

// NewOtelHandler records through a meter named name on provider. Instruments
// are created once per lower-cased name and shared by every WithTags child.
func NewOtelHandler(_ context.Context, provider otelmetric.MeterProvider, name string) Handler {
	return &otelHandler{
		inst: &otelInstruments{
			meter:         provider.Meter(name),
			int64Counters: make(map[string]otelmetric.Int64Counter),
			int64Histos:   make(map[string]otelmetric.Int64Histogram),
		},
	}
}

var _ Handler = (*otelHandler)(nil)
