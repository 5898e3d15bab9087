package otel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric"

	"github.com/dowdarts/spectators-videochat/internal/log"
)

func TestInitDisabled(t *testing.T) {
	shutdown, err := Init(context.Background(), &Config{ServiceName: "spectators-test"}, log.NewTest(t))
	require.NoError(t, err)

	ctx, span := StartSpan(context.Background(), Tracer(), "test.span")
	RecordError(span, nil)
	span.End()

	var counter metric.Int64Counter
	NewFactory(MeterName, "test").Int64Counter(&counter, "events_total")
	counter.Add(ctx, 1)

	assert.NoError(t, shutdown(context.Background()))
}

func TestSampler(t *testing.T) {
	assert.Equal(t, "AlwaysOnSampler", sampler(1).Description())
	assert.Equal(t, "AlwaysOffSampler", sampler(0).Description())
	assert.Contains(t, sampler(0.5).Description(), "TraceIDRatioBased")
}
