package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Lookup kinds used as the lookup.kind attribute.
const (
	LookupKindPostalCode = "postal_code"
	LookupKindCompany    = "company"
)

// Provider call outcomes used as the outcome attribute.
const (
	OutcomeFound       = "found"
	OutcomeNotFound    = "not_found"
	OutcomeUnavailable = "unavailable"
)

// LookupMetrics records cache effectiveness and provider health of external lookups.
// A nil *LookupMetrics records nothing.
type LookupMetrics struct {
	cacheHits        *Counter
	cacheMisses      *Counter
	providerFailures *Counter
	providerLatency  *Histogram
}

// NewLookupMetrics registers the lookup instruments on meter.
func NewLookupMetrics(meter metric.Meter) (*LookupMetrics, error) {
	hits, err := NewCounter(meter, "lookup_cache_hits_total", "Lookups answered from cache", "{lookup}")
	if err != nil {
		return nil, err
	}
	misses, err := NewCounter(meter, "lookup_cache_misses_total", "Lookups not found in cache", "{lookup}")
	if err != nil {
		return nil, err
	}
	failures, err := NewCounter(meter, "lookup_provider_failures_total", "Provider calls that failed or timed out", "{call}")
	if err != nil {
		return nil, err
	}
	latency, err := NewHistogram(meter, "lookup_provider_duration_seconds", "Duration of provider calls", "s", ExternalCallBuckets...)
	if err != nil {
		return nil, err
	}
	return &LookupMetrics{
		cacheHits:        hits,
		cacheMisses:      misses,
		providerFailures: failures,
		providerLatency:  latency,
	}, nil
}

// RecordCacheHit counts a cache hit for kind.
func (m *LookupMetrics) RecordCacheHit(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.cacheHits.Inc(ctx, AttrLookup.String(kind))
}

// RecordCacheMiss counts a cache miss for kind.
func (m *LookupMetrics) RecordCacheMiss(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.cacheMisses.Inc(ctx, AttrLookup.String(kind))
}

// RecordProviderCall records the duration and outcome of one provider call.
// Unavailable outcomes also count as failures.
func (m *LookupMetrics) RecordProviderCall(ctx context.Context, kind, provider, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{
		AttrLookup.String(kind),
		AttrProvider.String(provider),
		AttrOutcome.String(outcome),
	}
	m.providerLatency.RecordDuration(ctx, elapsed, attrs...)
	if outcome == OutcomeUnavailable {
		m.providerFailures.Inc(ctx, AttrLookup.String(kind), AttrProvider.String(provider))
	}
}
