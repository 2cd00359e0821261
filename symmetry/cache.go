package symmetry

import (
	"container/list"
	"math"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/closset/meshpaint"
)

// Default cache configuration constants.
const (
	// DefaultMaxEntries bounds the world→surface lookup cache. Each entry
	// is small; the bound exists to keep long painting sessions from
	// growing the cache without limit.
	DefaultMaxEntries = 4096

	// cacheQuantum is the world-space rounding step for cache keys.
	// Points closer together than this share one cached lookup.
	cacheQuantum = 1e-3
)

// cacheKey is a world position rounded to the cache quantum.
type cacheKey [3]int64

func keyFor(p mgl64.Vec3) cacheKey {
	return cacheKey{
		int64(math.Round(p[0] / cacheQuantum)),
		int64(math.Round(p[1] / cacheQuantum)),
		int64(math.Round(p[2] / cacheQuantum)),
	}
}

// lookupCache is a bounded LRU cache of world-point→surface-coordinate
// lookups. The least recently used entry is evicted once the entry budget
// is exceeded.
type lookupCache struct {
	entries    map[cacheKey]*cacheEntry
	lru        *list.List // front = most recent
	maxEntries int

	// Statistics (atomic for zero-allocation reads).
	hits   atomic.Uint64
	misses atomic.Uint64
}

type cacheEntry struct {
	key     cacheKey
	uv      meshpaint.Point
	ok      bool
	element *list.Element
}

// CacheStats contains lookup cache statistics for monitoring.
type CacheStats struct {
	Entries int
	Hits    uint64
	Misses  uint64
	HitRate float64
}

func newLookupCache(maxEntries int) *lookupCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &lookupCache{
		entries:    make(map[cacheKey]*cacheEntry),
		lru:        list.New(),
		maxEntries: maxEntries,
	}
}

// get returns the cached lookup for the key and marks it recently used.
func (c *lookupCache) get(key cacheKey) (meshpaint.Point, bool, bool) {
	e, found := c.entries[key]
	if !found {
		c.misses.Add(1)
		return meshpaint.Point{}, false, false
	}
	c.hits.Add(1)
	c.lru.MoveToFront(e.element)
	return e.uv, e.ok, true
}

// put stores a lookup result, evicting the oldest entry when over budget.
func (c *lookupCache) put(key cacheKey, uv meshpaint.Point, ok bool) {
	if e, found := c.entries[key]; found {
		e.uv = uv
		e.ok = ok
		c.lru.MoveToFront(e.element)
		return
	}

	e := &cacheEntry{key: key, uv: uv, ok: ok}
	e.element = c.lru.PushFront(e)
	c.entries[key] = e

	for len(c.entries) > c.maxEntries {
		oldest := c.lru.Back()
		if oldest == nil {
			break
		}
		old := oldest.Value.(*cacheEntry)
		c.lru.Remove(oldest)
		delete(c.entries, old.key)
	}
}

// stats returns a snapshot of the cache statistics.
func (c *lookupCache) stats() CacheStats {
	hits := c.hits.Load()
	misses := c.misses.Load()
	total := hits + misses
	rate := 0.0
	if total > 0 {
		rate = float64(hits) / float64(total)
	}
	return CacheStats{
		Entries: len(c.entries),
		Hits:    hits,
		Misses:  misses,
		HitRate: rate,
	}
}
