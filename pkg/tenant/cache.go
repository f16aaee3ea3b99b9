package tenant

import (
	"context"
	"sync"
	"time"
)

// Cache sits between the resolution middleware and the tenant directory
// so hot tenants do not hit the database on every request.
type Cache interface {
	// Get retrieves a cached tenant by subdomain.
	Get(ctx context.Context, key string) (*Tenant, bool)

	// Set stores a tenant under the subdomain for the given TTL.
	Set(ctx context.Context, key string, t *Tenant, ttl time.Duration)

	// Delete evicts a subdomain, e.g. after the tenant is deactivated.
	Delete(ctx context.Context, key string)

	// Close releases any resources held by the cache.
	Close() error
}

// DefaultCacheSize bounds the in-memory cache.
const DefaultCacheSize = 1000

type memoryEntry struct {
	tenant    *Tenant
	expiresAt time.Time
}

// memoryCache is a size-bounded TTL cache. Eviction removes the entry
// closest to expiry, which for a uniform TTL is the least recently
// written one.
type memoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	maxSize int
	stop    chan struct{}
	once    sync.Once
}

// NewInMemoryCache creates the default in-process cache with a
// background sweeper for expired entries.
func NewInMemoryCache() Cache {
	return NewInMemoryCacheWithSize(DefaultCacheSize)
}

// NewInMemoryCacheWithSize creates an in-process cache bounded to maxSize entries.
func NewInMemoryCacheWithSize(maxSize int) Cache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	c := &memoryCache{
		entries: make(map[string]memoryEntry),
		maxSize: maxSize,
		stop:    make(chan struct{}),
	}
	go c.sweep()
	return c
}

func (c *memoryCache) Get(_ context.Context, key string) (*Tenant, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		c.Delete(context.Background(), key)
		return nil, false
	}
	return entry.tenant, true
}

func (c *memoryCache) Set(_ context.Context, key string, t *Tenant, ttl time.Duration) {
	if t == nil || ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.evictOldestLocked()
	}
	c.entries[key] = memoryEntry{tenant: t, expiresAt: time.Now().Add(ttl)}
}

func (c *memoryCache) Delete(_ context.Context, key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

func (c *memoryCache) Close() error {
	c.once.Do(func() { close(c.stop) })
	return nil
}

// evictOldestLocked removes the entry with the earliest expiry.
// Caller must hold the write lock.
func (c *memoryCache) evictOldestLocked() {
	var (
		oldestKey string
		oldestAt  time.Time
	)
	for key, entry := range c.entries {
		if oldestKey == "" || entry.expiresAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = entry.expiresAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

func (c *memoryCache) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for key, entry := range c.entries {
				if now.After(entry.expiresAt) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}

// NopCache disables caching; every request hits the directory.
type NopCache struct{}

func (NopCache) Get(context.Context, string) (*Tenant, bool) { return nil, false }
func (NopCache) Set(context.Context, string, *Tenant, time.Duration) {}
func (NopCache) Delete(context.Context, string) {}
func (NopCache) Close() error { return nil }
