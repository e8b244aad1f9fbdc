package cache

import (
	"context"
	"sync"
	"time"

	"github.com/forniture-store/backend/internal/domain/integration"
)

// entry represents a cached value with expiration
type entry struct {
	value     []byte
	expiresAt time.Time
}

// InMemoryLookupCache implements integration.LookupCache using an in-memory map.
// This is suitable for single-instance deployments and testing.
type InMemoryLookupCache struct {
	mu        sync.RWMutex
	entries   map[string]entry
	now       func() time.Time
	interval  time.Duration
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// InMemoryOption configures an InMemoryLookupCache
type InMemoryOption func(*InMemoryLookupCache)

// WithClock replaces time.Now, letting tests move time forward
func WithClock(now func() time.Time) InMemoryOption {
	return func(c *InMemoryLookupCache) {
		c.now = now
	}
}

// defaultCleanupInterval is how often expired entries are purged
const defaultCleanupInterval = 5 * time.Minute

// WithCleanupInterval sets how often expired entries are purged.
// Non-positive values keep the default.
func WithCleanupInterval(interval time.Duration) InMemoryOption {
	return func(c *InMemoryLookupCache) {
		if interval > 0 {
			c.interval = interval
		}
	}
}

// NewInMemoryLookupCache creates a new in-memory lookup cache.
// It starts a background goroutine to clean up expired entries.
func NewInMemoryLookupCache(opts ...InMemoryOption) *InMemoryLookupCache {
	c := &InMemoryLookupCache{
		entries:  make(map[string]entry),
		now:      time.Now,
		interval: defaultCleanupInterval,
		stopChan: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.wg.Add(1)
	go c.cleanupLoop()

	return c
}

// Get returns the cached value or integration.ErrCacheMiss
func (c *InMemoryLookupCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || !c.now().Before(e.expiresAt) {
		return nil, integration.ErrCacheMiss
	}

	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, nil
}

// Set stores value under key for ttl; a non-positive ttl stores nothing
func (c *InMemoryLookupCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	stored := make([]byte, len(value))
	copy(stored, value)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: stored, expiresAt: c.now().Add(ttl)}
	return nil
}

// Close stops the cleanup goroutine and releases resources.
// Safe to call multiple times.
func (c *InMemoryLookupCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired entries
func (c *InMemoryLookupCache) cleanupLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

// cleanup removes expired entries from the cache
func (c *InMemoryLookupCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}

// Size returns the number of entries in the cache (for testing/monitoring)
func (c *InMemoryLookupCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Ensure InMemoryLookupCache implements LookupCache
var _ integration.LookupCache = (*InMemoryLookupCache)(nil)
