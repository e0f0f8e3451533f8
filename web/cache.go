package web

import (
	"crittok/tokenizer"
	"github.com/golang/groupcache/lru"
	"sync"
)

// tokenCache is a LRU (least recently used) cache for tokenization results, keyed by the canonical form of the
// criteria document. Tokenizing is deterministic, so a cached result is always equal to a fresh one. The cache has an
// internal locking mechanism and can be used in concurrent goroutines.
type tokenCache struct {
	cache *lru.Cache
	mutex *sync.Mutex
}

// newTokenCache creates a cache holding at most maxSize results. A size of zero or less disables caching.
func newTokenCache(maxSize int) *tokenCache {
	var cache *lru.Cache
	if maxSize > 0 {
		cache = lru.New(maxSize)
	}

	return &tokenCache{
		cache: cache,
		mutex: &sync.Mutex{},
	}
}

func (c *tokenCache) get(key string) ([]tokenizer.Token, bool) {
	if c.cache == nil {
		return nil, false
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	value, ok := c.cache.Get(key)
	if !ok {
		return nil, false
	}
	return value.([]tokenizer.Token), true
}

// insert adds the tokens to the cache. When the cache is full, the entry that hasn't been used longest is evicted.
func (c *tokenCache) insert(key string, tokens []tokenizer.Token) {
	if c.cache == nil {
		return
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cache.Add(key, tokens)
}

func (c *tokenCache) len() int {
	if c.cache == nil {
		return 0
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.cache.Len()
}
