package cache

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/forniture-store/backend/internal/domain/integration"
	"github.com/forniture-store/backend/internal/infrastructure/config"
)

// Store is a lookup cache that owns resources to release
type Store interface {
	integration.LookupCache
	io.Closer
}

// LookupCacheFactory creates lookup caches based on configuration
type LookupCacheFactory struct {
	redisConfig           config.RedisConfig
	keyPrefix             string
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// LookupCacheFactoryOption is a functional option for configuring the factory
type LookupCacheFactoryOption func(*LookupCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) LookupCacheFactoryOption {
	return func(f *LookupCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory cache when Redis is unavailable.
// Default is true (allow fallback).
func WithInMemoryFallback(allow bool) LookupCacheFactoryOption {
	return func(f *LookupCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// WithKeyPrefix sets the Redis key prefix
func WithKeyPrefix(prefix string) LookupCacheFactoryOption {
	return func(f *LookupCacheFactory) {
		f.keyPrefix = prefix
	}
}

// NewLookupCacheFactory creates a new factory
func NewLookupCacheFactory(cfg config.RedisConfig, opts ...LookupCacheFactoryOption) *LookupCacheFactory {
	f := &LookupCacheFactory{
		redisConfig:           cfg,
		keyPrefix:             DefaultKeyPrefix,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisStore creates a Redis-based lookup cache
func (f *LookupCacheFactory) CreateRedisStore() (Store, error) {
	store, err := NewRedisLookupCache(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}, f.keyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis lookup cache: %w", err)
	}
	return store, nil
}

// CreateInMemoryStore creates an in-memory lookup cache.
// In-memory caches do not share entries across process instances.
func (f *LookupCacheFactory) CreateInMemoryStore() Store {
	return NewInMemoryLookupCache()
}

// CreateStore creates the cache selected by backend ("memory" or "redis").
// A redis backend falls back to memory when Redis is unreachable and
// fallback is allowed.
func (f *LookupCacheFactory) CreateStore(backend string) (Store, error) {
	switch backend {
	case config.CacheBackendMemory, "":
		f.logger.Info("using in-memory lookup cache")
		return f.CreateInMemoryStore(), nil
	case config.CacheBackendRedis:
	default:
		return nil, fmt.Errorf("unknown lookup cache backend %q", backend)
	}

	store, err := f.CreateRedisStore()
	if err == nil {
		f.logger.Info("using Redis lookup cache", zap.String("prefix", f.keyPrefix))
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for lookup cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory lookup cache",
		zap.Error(err),
	)
	return f.CreateInMemoryStore(), nil
}
