package metrics

import "context"

// Noop discards everything. It is what OrNoop substitutes for a nil Handler
// and what the CLI uses without --metrics.
var Noop Handler = discard{}

// discard implements every interface of the package with empty methods, so
// the no-op path allocates nothing per instrument.
type discard struct{}

func (discard) Int64Counter(string, string, Unit) Int64Counter { return discard{} }

func (discard) Int64Histogram(string, string, Unit) Int64Histogram { return discard{} }

func (discard) WithTags(map[string]string) Handler { return discard{} }

func (discard) Add(context.Context, int64, map[string]string) {}

func (discard) Record(context.Context, int64, map[string]string) {}

var (
	_ Handler        = discard{}
	_ Int64Counter   = discard{}
	_ Int64Histogram = discard{}
)
