package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

type OtelHandlerTestSuite struct {
	suite.Suite
	reader  *sdkmetric.ManualReader
	handler Handler
}

func (suite *OtelHandlerTestSuite) SetupTest() {
	suite.reader = sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(suite.reader))
	suite.handler = NewOtelHandler(context.TODO(), provider, "test")
}

func (suite *OtelHandlerTestSuite) collect() metricdata.Metrics {
	var rm metricdata.ResourceMetrics
	require.NoError(suite.T(), suite.reader.Collect(context.TODO(), &rm))
	require.Len(suite.T(), rm.ScopeMetrics, 1)
	require.Len(suite.T(), rm.ScopeMetrics[0].Metrics, 1)
	return rm.ScopeMetrics[0].Metrics[0]
}

func (suite *OtelHandlerTestSuite) TestInt64Counter_noattrs() {
	counter := suite.handler.Int64Counter("Test_Counter", "A counter for tests", Dimensionless)
	counter.Add(context.TODO(), 2, nil)
	counter.Add(context.TODO(), 3, nil)

	m := suite.collect()
	assert.Equal(suite.T(), "test_counter", m.Name)
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(suite.T(), ok)
	require.Len(suite.T(), sum.DataPoints, 1)
	assert.Equal(suite.T(), int64(5), sum.DataPoints[0].Value)
	assert.Equal(suite.T(), 0, sum.DataPoints[0].Attributes.Len())
}

func (suite *OtelHandlerTestSuite) TestWithTags() {
	h := suite.handler.WithTags(map[string]string{"rank": "1"})
	h.Int64Counter("sent", "", Dimensionless).Add(context.TODO(), 1, map[string]string{"kind": "scatter"})

	m := suite.collect()
	sum := m.Data.(metricdata.Sum[int64])
	require.Len(suite.T(), sum.DataPoints, 1)
	attrs := sum.DataPoints[0].Attributes
	assert.Equal(suite.T(), 2, attrs.Len())
	v, ok := attrs.Value("rank")
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), "1", v.AsString())
}

func (suite *OtelHandlerTestSuite) TestInt64Histogram() {
	hist := suite.handler.Int64Histogram("round_ms", "round duration", Milliseconds)
	hist.Record(context.TODO(), 12, nil)

	m := suite.collect()
	assert.Equal(suite.T(), "ms", m.Unit)
	h, ok := m.Data.(metricdata.Histogram[int64])
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), uint64(1), h.DataPoints[0].Count)
}

func TestOtelHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(OtelHandlerTestSuite))
}

func TestOrNoop(t *testing.T) {
	h := OrNoop(nil)
	assert.Equal(t, Noop, h)
	oh := NewOtelHandler(context.Background(), sdkmetric.NewMeterProvider(), "test")
	assert.Same(t, oh, OrNoop(oh))
	assert.NotPanics(t, func() {
		h.WithTags(map[string]string{"a": "b"}).Int64Counter("x", "", Dimensionless).Add(context.TODO(), 1, nil)
	})
}
