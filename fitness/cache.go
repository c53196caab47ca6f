package fitness

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache memoizes scored results by genes_hash. It wraps an LRU with a fixed
// capacity; hashicorp/golang-lru guards every operation with its own mutex,
// so a single Cache is safe to probe and insert from many fitness workers
// concurrently. None (invalid) results are never cached — they're cheap to
// recompute and would otherwise waste a slot that a real score could use.
type Cache struct {
	lru *lru.Cache[uint64, int64]
}

// NewCache builds a cache holding up to size entries. size must be positive.
func NewCache(size int) (*Cache, error) {
	c, err := lru.New[uint64, int64](size)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: c}, nil
}

// Get returns the cached score for hash, if any.
func (c *Cache) Get(hash uint64) (int64, bool) {
	if c == nil {
		return 0, false
	}
	return c.lru.Get(hash)
}

// Put stores score under hash. Callers must not Put a None result.
func (c *Cache) Put(hash uint64, score int64) {
	if c == nil {
		return
	}
	c.lru.Add(hash, score)
}

// Len reports the number of entries currently cached.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}
