// Package jobcache memoizes upstream search calls for a fixed time window.
// Entries expire lazily on lookup; a refresh blindly overwrites whatever
// was stored before. That eventual staleness up to the TTL is the intended
// policy, not an accident.
package jobcache

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/okliver/jobwatch/internal/adzuna"
)

const defaultTTL = 24 * time.Hour

// Fetcher is the upstream search call being memoized.
type Fetcher interface {
	Search(params *adzuna.SearchParams) (*adzuna.SearchResult, error)
}

type Cache struct {
	fetcher Fetcher
	logger  *zap.Logger
	ttl     time.Duration
	now     func() time.Time

	mu      sync.RWMutex
	entries map[string]*entry
}

type entry struct {
	storedAt time.Time
	result   *adzuna.SearchResult
}

func New(fetcher Fetcher, logger *zap.Logger) *Cache {
	return &Cache{
		fetcher: fetcher,
		logger:  logger,
		ttl:     defaultTTL,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

// Fetch returns the cached payload when the entry is younger than the TTL,
// otherwise it calls upstream and stores the result. Failed calls are
// returned as-is and never cached.
func (c *Cache) Fetch(params *adzuna.SearchParams) (*adzuna.SearchResult, error) {
	key := cacheKey(params)

	if cached, ok := c.lookup(key); ok {
		c.logger.Debug("cache hit", zap.String("key", key))
		return cached, nil
	}

	result, err := c.fetcher.Search(params)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = &entry{storedAt: c.now(), result: result}
	c.mu.Unlock()

	c.logger.Debug("cache store", zap.String("key", key), zap.Int("postings", result.Len()))

	return result, nil
}

// Len reports the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) lookup(key string) (*adzuna.SearchResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stored, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(stored.storedAt) >= c.ttl {
		return nil, false
	}
	return stored.result, true
}

func cacheKey(params *adzuna.SearchParams) string {
	return fmt.Sprintf("%s_%s_%s", params.Query, params.Location, params.Country)
}
