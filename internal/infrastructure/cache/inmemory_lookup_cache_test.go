package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/forniture-store/backend/internal/domain/integration"
	"github.com/forniture-store/backend/internal/infrastructure/config"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestInMemoryLookupCache_GetSet(t *testing.T) {
	clock := newFakeClock()
	cache := NewInMemoryLookupCache(WithClock(clock.Now))
	defer cache.Close()

	ctx := context.Background()

	t.Run("miss on unknown key", func(t *testing.T) {
		_, err := cache.Get(ctx, "cep:00000000")
		assert.ErrorIs(t, err, integration.ErrCacheMiss)
	})

	t.Run("hit before expiration", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "cep:01310100", []byte(`{"city":"São Paulo"}`), 24*time.Hour))

		clock.Advance(23 * time.Hour)
		got, err := cache.Get(ctx, "cep:01310100")
		require.NoError(t, err)
		assert.JSONEq(t, `{"city":"São Paulo"}`, string(got))
	})

	t.Run("miss after expiration", func(t *testing.T) {
		clock.Advance(time.Hour)
		_, err := cache.Get(ctx, "cep:01310100")
		assert.ErrorIs(t, err, integration.ErrCacheMiss)
	})

	t.Run("non-positive ttl stores nothing", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "cep:1", []byte("x"), 0))
		_, err := cache.Get(ctx, "cep:1")
		assert.ErrorIs(t, err, integration.ErrCacheMiss)
	})

	t.Run("stored value is isolated from caller buffer", func(t *testing.T) {
		buf := []byte("abc")
		require.NoError(t, cache.Set(ctx, "k", buf, time.Hour))
		buf[0] = 'z'

		got, err := cache.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "abc", string(got))
	})
}

func TestInMemoryLookupCache_Cleanup(t *testing.T) {
	clock := newFakeClock()
	cache := NewInMemoryLookupCache(WithClock(clock.Now))
	defer cache.Close()

	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, "short", []byte("1"), time.Minute))
	require.NoError(t, cache.Set(ctx, "long", []byte("2"), time.Hour))
	assert.Equal(t, 2, cache.Size())

	clock.Advance(2 * time.Minute)
	cache.cleanup()
	assert.Equal(t, 1, cache.Size())
}

func TestWithCleanupInterval_IgnoresNonPositive(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Second} {
		cache := NewInMemoryLookupCache(WithCleanupInterval(interval))
		assert.Equal(t, defaultCleanupInterval, cache.interval)
		assert.NoError(t, cache.Close())
	}

	cache := NewInMemoryLookupCache(WithCleanupInterval(time.Second))
	defer cache.Close()
	assert.Equal(t, time.Second, cache.interval)
}

func TestInMemoryLookupCache_CloseIsIdempotent(t *testing.T) {
	cache := NewInMemoryLookupCache(WithCleanupInterval(time.Millisecond))
	assert.NoError(t, cache.Close())
	assert.NoError(t, cache.Close())
}

func TestLookupCacheFactory_CreateStore(t *testing.T) {
	unreachable := config.RedisConfig{Host: "127.0.0.1", Port: 1}

	t.Run("memory backend", func(t *testing.T) {
		store, err := NewLookupCacheFactory(unreachable).CreateStore(config.CacheBackendMemory)
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &InMemoryLookupCache{}, store)
	})

	t.Run("redis unavailable falls back to memory", func(t *testing.T) {
		store, err := NewLookupCacheFactory(unreachable, WithLogger(zap.NewNop())).CreateStore(config.CacheBackendRedis)
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &InMemoryLookupCache{}, store)
	})

	t.Run("redis unavailable without fallback", func(t *testing.T) {
		_, err := NewLookupCacheFactory(unreachable, WithInMemoryFallback(false)).CreateStore(config.CacheBackendRedis)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Redis required")
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := NewLookupCacheFactory(unreachable).CreateStore("memcached")
		assert.Error(t, err)
	})
}
