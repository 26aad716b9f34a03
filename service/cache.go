package service

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/poiesic/taxonomist/core"
)

// resultCache memoizes search results per snapshot and query.
type resultCache struct {
	lru    *expirable.LRU[string, []*core.SearchResult]
	hits   atomic.Int64
	misses atomic.Int64
}

// CacheStats reports cache usage.
type CacheStats struct {
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}

func newResultCache(size int, ttl time.Duration) *resultCache {
	return &resultCache{
		lru: expirable.NewLRU[string, []*core.SearchResult](size, nil, ttl),
	}
}

func cacheKey(id core.ID, query string) string {
	return strconv.FormatUint(uint64(id), 16) + "\x00" + query
}

func (c *resultCache) get(id core.ID, query string) ([]*core.SearchResult, bool) {
	results, ok := c.lru.Get(cacheKey(id, query))
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return results, ok
}

func (c *resultCache) add(id core.ID, query string, results []*core.SearchResult) {
	c.lru.Add(cacheKey(id, query), results)
}

// purge drops every entry.
func (c *resultCache) purge() {
	c.lru.Purge()
}

func (c *resultCache) stats() CacheStats {
	return CacheStats{
		Entries: c.lru.Len(),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}
}
