package layout

import "github.com/dshills/inkstone/internal/engine/document"

// DefaultCacheSize is the layout cache capacity when none is
// configured.
const DefaultCacheSize = 256

type cacheKey struct {
	index    int
	revision uint64
	width    float64
}

type cacheEntry struct {
	layout     *ParagraphLayout
	lastAccess uint64
}

// Cache memoizes paragraph layouts keyed by paragraph index, content
// revision, and wrap width. Any edit bumps the paragraph revision, so
// stale geometry can never be served; old entries age out via least
// recently used eviction.
type Cache struct {
	capacity int
	entries  map[cacheKey]*cacheEntry
	clock    uint64

	hits   uint64
	misses uint64
}

// NewCache creates a cache holding up to capacity layouts.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[cacheKey]*cacheEntry),
	}
}

// Get returns the layout for a paragraph at the given width, building
// and caching it on a miss.
func (c *Cache) Get(index int, p *document.Paragraph, m Metrics, width float64) *ParagraphLayout {
	key := cacheKey{index: index, revision: p.Revision(), width: width}
	c.clock++
	if e, ok := c.entries[key]; ok {
		e.lastAccess = c.clock
		c.hits++
		return e.layout
	}
	c.misses++
	pl := LayoutParagraph(p, m, width)
	if len(c.entries) >= c.capacity {
		c.evict()
	}
	c.entries[key] = &cacheEntry{layout: pl, lastAccess: c.clock}
	return pl
}

// Peek returns the cached layout without building on a miss.
func (c *Cache) Peek(index int, revision uint64, width float64) (*ParagraphLayout, bool) {
	e, ok := c.entries[cacheKey{index: index, revision: revision, width: width}]
	if !ok {
		return nil, false
	}
	c.clock++
	e.lastAccess = c.clock
	return e.layout, true
}

// Invalidate drops all cached layouts for a paragraph index.
func (c *Cache) Invalidate(index int) {
	for key := range c.entries {
		if key.index == index {
			delete(c.entries, key)
		}
	}
}

// InvalidateFrom drops cached layouts for all paragraph indexes at or
// after index. Used when a structural change renumbers paragraphs.
func (c *Cache) InvalidateFrom(index int) {
	for key := range c.entries {
		if key.index >= index {
			delete(c.entries, key)
		}
	}
}

// Purge empties the cache.
func (c *Cache) Purge() {
	c.entries = make(map[cacheKey]*cacheEntry)
}

// Len returns the number of cached layouts.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Stats returns cumulative hit and miss counts.
func (c *Cache) Stats() (hits, misses uint64) {
	return c.hits, c.misses
}

func (c *Cache) evict() {
	var oldest cacheKey
	var oldestAccess uint64
	first := true
	for key, e := range c.entries {
		if first || e.lastAccess < oldestAccess {
			oldest = key
			oldestAccess = e.lastAccess
			first = false
		}
	}
	if !first {
		delete(c.entries, oldest)
	}
}
