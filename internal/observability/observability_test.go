package observability

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTracing_Disabled(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{ServiceName: "portfolio-test"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))

	span, ctx := NewSpan(context.Background(), "noop")
	assert.NotNil(t, ctx)
	span.SetError(assert.AnError)
	span.End()
}

func TestCorrelationID_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithCorrelationID(context.Background(), "abc")
	assert.Equal(t, "abc", ExtractCorrelationID(ctx))
	assert.Empty(t, ExtractCorrelationID(context.Background()))
}

func TestTrackStoreOp_Observes(t *testing.T) {
	t.Parallel()

	before := testutil.CollectAndCount(StoreOpLatency)
	TrackStoreOp("get", "observability-test")()
	assert.GreaterOrEqual(t, testutil.CollectAndCount(StoreOpLatency), before)
}
