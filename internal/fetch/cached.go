package fetch

import (
	"context"
	"sync"
	"time"
)

// DefaultCacheTTL is how long a fetched page is reused.
const DefaultCacheTTL = 15 * time.Minute

// Getter fetches a URL.
type Getter func(ctx context.Context, url string, opts *Options) (*Result, error)

// Cache keeps successful fetches in memory for the life of the process, so a
// user re-submitting the same posting does not hit the job board again.
type Cache struct {
	ttl     time.Duration
	options *Options
	get     Getter
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	result    *Result
	fetchedAt time.Time
}

// NewCache returns a Cache. A zero ttl uses DefaultCacheTTL; nil opts uses DefaultOptions.
func NewCache(ttl time.Duration, opts *Options) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Cache{
		ttl:     ttl,
		options: opts,
		get:     URL,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Fetch returns a fresh cached result or fetches the URL. Only successful
// fetches are cached. The bool reports a cache hit.
func (c *Cache) Fetch(ctx context.Context, url string) (*Result, bool, error) {
	c.mu.Lock()
	entry, ok := c.entries[url]
	if ok && c.now().Sub(entry.fetchedAt) < c.ttl {
		c.mu.Unlock()
		copied := *entry.result
		return &copied, true, nil
	}
	c.mu.Unlock()

	result, err := c.get(ctx, url, c.options)
	if err != nil {
		return result, false, err
	}

	c.mu.Lock()
	c.entries[url] = cacheEntry{result: result, fetchedAt: c.now()}
	c.mu.Unlock()

	copied := *result
	return &copied, false, nil
}

// Invalidate drops url from the cache.
func (c *Cache) Invalidate(url string) {
	c.mu.Lock()
	delete(c.entries, url)
	c.mu.Unlock()
}

// Len returns the number of cached pages, fresh or stale.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
