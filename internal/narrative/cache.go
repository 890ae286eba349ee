package narrative

import (
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/licomply/licomply/internal/rules"
)

// Cache memoizes generated narratives per (rule-set ETag, profile) pair, so
// repeated identical requests skip the remote call. Entries for stale ETags
// are evicted lazily on the next Put with a newer ETag.
type Cache struct {
	mu      sync.RWMutex
	etag    string
	entries map[uint64]string
}

// NewCache creates an empty narrative cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[uint64]string)}
}

// Key hashes the rule-set ETag together with the coerced profile.
func Key(etag string, profile rules.BusinessProfile) uint64 {
	return xxhash.Sum64String(fmt.Sprintf("%s|%g|%d|%t|%t",
		etag, profile.Area, profile.Seats, profile.ServesMeat, profile.Deliveries))
}

// Get returns the cached narrative for key, if any.
func (c *Cache) Get(key uint64) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	text, ok := c.entries[key]
	return text, ok
}

// Put stores a narrative under key. When etag differs from the cache's
// current one, all older entries are dropped first: a changed rule set
// invalidates every previous narrative.
func (c *Cache) Put(etag string, key uint64, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if etag != c.etag {
		c.entries = make(map[uint64]string)
		c.etag = etag
	}
	c.entries[key] = text
}
