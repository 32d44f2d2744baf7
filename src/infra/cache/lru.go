package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"musicchat/src/features/searching"
)

// LRUQueryCache is a capacity-bounded searching.QueryCache. Once maxEntries is
// reached the least recently used query is evicted, so a long-running process
// cannot grow the cache without bound.
type LRUQueryCache struct {
	inner *lru.Cache[string, []searching.Metadata]
}

// NewLRUQueryCache creates a query cache holding at most maxEntries queries.
func NewLRUQueryCache(maxEntries int) (*LRUQueryCache, error) {
	inner, err := lru.New[string, []searching.Metadata](maxEntries)
	if err != nil {
		return nil, err
	}
	return &LRUQueryCache{inner: inner}, nil
}

// Get returns the cached results for key, if present.
func (c *LRUQueryCache) Get(key string) ([]searching.Metadata, bool) {
	return c.inner.Get(key)
}

// Set stores results under key, evicting the oldest entry when full.
func (c *LRUQueryCache) Set(key string, results []searching.Metadata) {
	c.inner.Add(key, results)
}

// Keys returns the cached keys, oldest first.
func (c *LRUQueryCache) Keys() []string {
	return c.inner.Keys()
}

// Len returns the number of cached queries.
func (c *LRUQueryCache) Len() int {
	return c.inner.Len()
}

// Clear removes every entry.
func (c *LRUQueryCache) Clear() {
	c.inner.Purge()
}
