package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/forniture-store/backend/internal/domain/integration"
)

// DefaultKeyPrefix namespaces lookup entries in a shared Redis
const DefaultKeyPrefix = "lookup:"

// RedisLookupCache implements integration.LookupCache using Redis.
// This is suitable for distributed deployments where multiple instances
// need to share lookup results.
type RedisLookupCache struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisLookupCache creates a new Redis-based lookup cache and checks the connection
func NewRedisLookupCache(cfg RedisConfig, keyPrefix string) (*RedisLookupCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisLookupCacheWithClient(client, keyPrefix), nil
}

// NewRedisLookupCacheWithClient creates a cache with an existing Redis client
func NewRedisLookupCacheWithClient(client *redis.Client, keyPrefix string) *RedisLookupCache {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	return &RedisLookupCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Get returns the cached value or integration.ErrCacheMiss
func (c *RedisLookupCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, integration.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read lookup cache: %w", err)
	}
	return value, nil
}

// Set stores value under key for ttl; a non-positive ttl stores nothing
func (c *RedisLookupCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write lookup cache: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisLookupCache) Close() error {
	return c.client.Close()
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (c *RedisLookupCache) GetClient() *redis.Client {
	return c.client
}

// Ensure RedisLookupCache implements LookupCache
var _ integration.LookupCache = (*RedisLookupCache)(nil)
