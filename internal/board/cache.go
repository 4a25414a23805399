package board

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// cleanupInterval controls how often stale board responses are swept out.
const cleanupInterval = 5 * time.Minute

// Cache holds recent board responses keyed by endpoint and its parameters.
// Upstream announcements only change on the minute scale, so a short TTL
// keeps the board endpoints from hammering the Trafikverket API while SSE
// streams and polling clients ask for the same trips over and over.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration

	stopOnce sync.Once
	stop     chan struct{}
}

type entry struct {
	value     any
	expiresAt time.Time
}

// NewCache creates a cache with the given TTL and starts its sweeper.
func NewCache(ttl time.Duration) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		stop:    make(chan struct{}),
	}
	go c.sweep()
	return c
}

// Key builds the cache key for an endpoint and its request parameters.
// Every handler goes through this so that a trip queried via the JSON API
// and via SSE share one entry.
func Key(endpoint string, params ...any) string {
	parts := make([]string, 0, len(params)+1)
	parts = append(parts, endpoint)
	for _, p := range params {
		parts = append(parts, fmt.Sprint(p))
	}
	return strings.Join(parts, "|")
}

// Get retrieves a cached response if it exists and hasn't expired.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Set stores a response in the cache.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Close stops the background sweeper. Safe to call more than once.
func (c *Cache) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *Cache) sweep() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stop:
			return
		}
	}
}

func (c *Cache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}
