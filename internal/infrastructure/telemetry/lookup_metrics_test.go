package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestLookupMetrics(t *testing.T) (*LookupMetrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	m, err := NewLookupMetrics(provider.Meter("test"))
	require.NoError(t, err)
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func sumOf(t *testing.T, m metricdata.Metrics) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", m.Name)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestLookupMetrics_CacheCounters(t *testing.T) {
	m, reader := newTestLookupMetrics(t)
	ctx := context.Background()

	m.RecordCacheMiss(ctx, LookupKindPostalCode)
	m.RecordCacheHit(ctx, LookupKindPostalCode)
	m.RecordCacheHit(ctx, LookupKindPostalCode)

	metrics := collect(t, reader)
	assert.Equal(t, int64(2), sumOf(t, metrics["lookup_cache_hits_total"]))
	assert.Equal(t, int64(1), sumOf(t, metrics["lookup_cache_misses_total"]))
}

func TestLookupMetrics_ProviderCalls(t *testing.T) {
	m, reader := newTestLookupMetrics(t)
	ctx := context.Background()

	m.RecordProviderCall(ctx, LookupKindPostalCode, "viacep", OutcomeUnavailable, 2*time.Second)
	m.RecordProviderCall(ctx, LookupKindPostalCode, "brasilapi", OutcomeFound, 120*time.Millisecond)
	m.RecordProviderCall(ctx, LookupKindCompany, "brasilapi", OutcomeNotFound, 80*time.Millisecond)

	metrics := collect(t, reader)
	assert.Equal(t, int64(1), sumOf(t, metrics["lookup_provider_failures_total"]))

	hist, ok := metrics["lookup_provider_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	assert.Equal(t, uint64(3), count)
}

func TestLookupMetrics_NilIsNoop(t *testing.T) {
	var m *LookupMetrics
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordCacheHit(ctx, LookupKindPostalCode)
		m.RecordCacheMiss(ctx, LookupKindPostalCode)
		m.RecordProviderCall(ctx, LookupKindCompany, "brasilapi", OutcomeUnavailable, time.Second)
	})
}
