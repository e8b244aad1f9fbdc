package integration

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/forniture-store/backend/internal/domain/integration"
	"github.com/forniture-store/backend/internal/domain/shared/valueobject"
	"github.com/forniture-store/backend/internal/infrastructure/telemetry"
)

const (
	// DefaultCacheTTL is how long a resolved postal code is reused
	DefaultCacheTTL = 24 * time.Hour
	// DefaultProviderTimeout bounds one provider call
	DefaultProviderTimeout = 2 * time.Second

	postalCodeKeyPrefix = "cep:"
)

// LookupService resolves postal codes and company tax ids through external
// providers. Postal codes go through the cache, then each provider in order;
// the first non-empty answer is cached. Lookups never fail: when nothing is
// known the result is (nil, false) and the caller proceeds without enrichment.
type LookupService struct {
	cache           integration.LookupCache
	postalProviders []integration.PostalCodeProvider
	registry        integration.CompanyRegistry
	cacheTTL        time.Duration
	timeout         time.Duration
	metrics         *telemetry.LookupMetrics
	logger          *zap.Logger
}

// LookupServiceOption configures a LookupService
type LookupServiceOption func(*LookupService)

// WithCacheTTL overrides DefaultCacheTTL
func WithCacheTTL(ttl time.Duration) LookupServiceOption {
	return func(s *LookupService) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithProviderTimeout overrides DefaultProviderTimeout
func WithProviderTimeout(timeout time.Duration) LookupServiceOption {
	return func(s *LookupService) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithCompanyRegistry sets the registry used for CNPJ lookups
func WithCompanyRegistry(registry integration.CompanyRegistry) LookupServiceOption {
	return func(s *LookupService) {
		s.registry = registry
	}
}

// WithLookupMetrics records cache and provider metrics
func WithLookupMetrics(metrics *telemetry.LookupMetrics) LookupServiceOption {
	return func(s *LookupService) {
		s.metrics = metrics
	}
}

// WithLogger sets the service logger
func WithLogger(logger *zap.Logger) LookupServiceOption {
	return func(s *LookupService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewLookupService creates a LookupService. postalProviders are tried in the
// given order: primary first, then the fallbacks.
func NewLookupService(
	cache integration.LookupCache,
	postalProviders []integration.PostalCodeProvider,
	opts ...LookupServiceOption,
) *LookupService {
	s := &LookupService{
		cache:           cache,
		postalProviders: postalProviders,
		cacheTTL:        DefaultCacheTTL,
		timeout:         DefaultProviderTimeout,
		logger:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LookupAddressByPostalCode returns the partial address known for code.
// Malformed codes are reported as not found without contacting any provider.
func (s *LookupService) LookupAddressByPostalCode(ctx context.Context, code string) (*integration.PostalAddress, bool) {
	digits, err := valueobject.NormalizePostalCode(code)
	if err != nil || digits == "" {
		return nil, false
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "lookup", "postal_code",
		telemetry.WithAttribute("lookup.postal_code", digits))
	defer span.End()

	key := postalCodeKeyPrefix + digits
	if cached, ok := s.fromCache(ctx, key); ok {
		telemetry.SetAttributes(span, telemetry.SpanAttrCacheHit, true)
		s.metrics.RecordCacheHit(ctx, telemetry.LookupKindPostalCode)
		return cached, true
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrCacheHit, false)
	s.metrics.RecordCacheMiss(ctx, telemetry.LookupKindPostalCode)

	for i, provider := range s.postalProviders {
		if i > 0 {
			s.logger.Info("Falling back to next postal code provider",
				zap.String("provider", provider.Name()),
				zap.String("postal_code", digits))
		}

		result, err := s.callPostalProvider(ctx, provider, digits)
		if err != nil || result.IsEmpty() {
			continue
		}

		result.PostalCode = digits
		if result.Source == "" {
			result.Source = provider.Name()
		}
		telemetry.SetAttributes(span, telemetry.SpanAttrProvider, provider.Name())
		s.toCache(ctx, key, result)
		telemetry.SetOK(span)
		return result, true
	}

	telemetry.AddEvent(span, "lookup.not_found")
	return nil, false
}

// LookupCompanyByTaxID returns the registry profile of a 14 digit CNPJ.
// Registry failures of any kind are reported as not found.
func (s *LookupService) LookupCompanyByTaxID(ctx context.Context, taxID string) (*integration.CompanyProfile, bool) {
	digits := valueobject.OnlyDigits(taxID)
	if s.registry == nil || len(digits) != valueobject.CNPJLength {
		return nil, false
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "lookup", "company",
		telemetry.WithAttribute(telemetry.SpanAttrProvider, s.registry.Name()))
	defer span.End()

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	profile, err := s.registry.LookupCompany(callCtx, digits)
	s.metrics.RecordProviderCall(ctx, telemetry.LookupKindCompany, s.registry.Name(), outcomeOf(err), time.Since(start))
	if err != nil {
		if !errors.Is(err, integration.ErrLookupNotFound) {
			telemetry.RecordError(span, err)
			s.logger.Warn("Company registry lookup failed",
				zap.String("provider", s.registry.Name()),
				zap.Error(err))
		}
		return nil, false
	}
	if profile == nil {
		return nil, false
	}

	profile.TaxID = digits
	telemetry.SetOK(span)
	return profile, true
}

func (s *LookupService) callPostalProvider(ctx context.Context, provider integration.PostalCodeProvider, digits string) (*integration.PostalAddress, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	result, err := provider.LookupPostalCode(callCtx, digits)
	elapsed := time.Since(start)

	if err == nil && result.IsEmpty() {
		err = integration.ErrLookupNotFound
	}
	s.metrics.RecordProviderCall(ctx, telemetry.LookupKindPostalCode, provider.Name(), outcomeOf(err), elapsed)

	switch {
	case err == nil:
		return result, nil
	case errors.Is(err, integration.ErrLookupNotFound):
		s.logger.Debug("Postal code unknown to provider",
			zap.String("provider", provider.Name()),
			zap.String("postal_code", digits))
	default:
		s.logger.Warn("Postal code provider failed",
			zap.String("provider", provider.Name()),
			zap.String("postal_code", digits),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
	}
	return nil, err
}

func (s *LookupService) fromCache(ctx context.Context, key string) (*integration.PostalAddress, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, integration.ErrCacheMiss) {
			s.logger.Warn("Lookup cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var cached integration.PostalAddress
	if err := json.Unmarshal(raw, &cached); err != nil || cached.IsEmpty() {
		s.logger.Warn("Discarding unreadable cache entry", zap.String("key", key))
		return nil, false
	}
	return &cached, true
}

func (s *LookupService) toCache(ctx context.Context, key string, result *integration.PostalAddress) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
		s.logger.Warn("Lookup cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return telemetry.OutcomeFound
	case errors.Is(err, integration.ErrLookupNotFound):
		return telemetry.OutcomeNotFound
	default:
		return telemetry.OutcomeUnavailable
	}
}
