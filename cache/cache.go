// Package cache provides the process-scoped result cache. It follows a
// plain map-plus-RWMutex design with a periodic cleanup goroutine; the
// cache is best-effort and infallible from the caller's point of view.
package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/seo-audit/backend/analyzer"
)

type entry struct {
	result    *analyzer.AnalysisResult
	expiresAt time.Time
}

// ResultCache maps audit keys to finished results for a bounded TTL.
type ResultCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration

	hits   int64
	misses int64

	stopCh   chan struct{}
	stopOnce sync.Once
}

// New creates a cache with the given TTL and starts the cleanup loop.
func New(ttl time.Duration) *ResultCache {
	c := &ResultCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		stopCh:  make(chan struct{}),
	}
	go c.cleanupLoop(10 * time.Minute)
	return c
}

// Key builds the cache key from the normalized URL and location.
func Key(normalizedURL, location string) string {
	return strings.ToLower(normalizedURL + "_" + location)
}

// Get returns the cached result for key, or nil after a miss or expiry.
func (c *ResultCache) Get(key string) *analyzer.AnalysisResult {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		c.mu.Lock()
		// Re-read under the write lock: a concurrent Set may have stored
		// a fresh entry since the read lock was released.
		if cur, still := c.entries[key]; still && time.Now().After(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.misses++
		c.mu.Unlock()
		return nil
	}

	c.mu.Lock()
	c.hits++
	c.mu.Unlock()
	return e.result
}

// Set stores a result under key for the configured TTL.
func (c *ResultCache) Set(key string, result *analyzer.AnalysisResult) {
	c.mu.Lock()
	c.entries[key] = entry{result: result, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// Stats reports hit/miss counters and the current entry count.
func (c *ResultCache) Stats() (hits, misses int64, size int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses, len(c.entries)
}

// Close stops the cleanup goroutine.
func (c *ResultCache) Close() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

func (c *ResultCache) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for key, e := range c.entries {
				if now.After(e.expiresAt) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		case <-c.stopCh:
			return
		}
	}
}
