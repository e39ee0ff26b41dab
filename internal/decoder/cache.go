package decoder

import (
	"sync"

	"github.com/couchcryptid/taf-decoder/internal/domain"
	"github.com/couchcryptid/taf-decoder/internal/observability"
)

// CachedDecoder wraps a Decoder with an in-memory LRU cache keyed by the
// normalized report text. Cached reports are shared and must not be mutated.
type CachedDecoder struct {
	inner   Decoder
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedDecoder creates a cache decorator around a decoder. metrics may be nil.
func NewCachedDecoder(inner Decoder, maxEntries int, metrics *observability.Metrics) *CachedDecoder {
	return &CachedDecoder{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedDecoder) Decode(raw string) *domain.DecodedTaf {
	key := Normalize(raw)
	if taf, ok := c.cache.get(key); ok {
		c.observe("hit")
		return taf
	}
	c.observe("miss")
	taf := c.inner.Decode(raw)
	c.cache.put(key, taf)
	return taf
}

// Len returns the number of cached reports.
func (c *CachedDecoder) Len() int {
	c.cache.mu.Lock()
	defer c.cache.mu.Unlock()
	return len(c.cache.entries)
}

func (c *CachedDecoder) observe(result string) {
	if c.metrics == nil {
		return
	}
	c.metrics.DecodeCache.WithLabelValues(result).Inc()
}

// lruCache is a simple thread-safe LRU cache of decoded reports.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value *domain.DecodedTaf
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (*domain.DecodedTaf, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value *domain.DecodedTaf) {
	if c.maxEntries <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
