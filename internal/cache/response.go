// Package cache implements the content-addressed response cache: LRU
// eviction over a configured capacity plus independent TTL expiry checked on
// read. Only successful tier responses are stored, so a transient outage
// never poisons the cache.
package cache

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

const (
	DefaultMaxSize = 100
	DefaultTTL     = time.Hour
)

type entry struct {
	key       string
	value     any
	createdAt time.Time
}

// Stats mirrors the counters the host exposes for observability.
type Stats struct {
	Hits      int     `json:"hits"`
	Misses    int     `json:"misses"`
	Evictions int     `json:"evictions"`
	Size      int     `json:"size"`
	HitRate   float64 `json:"hit_rate"`
}

// ResponseCache is safe for concurrent use.
type ResponseCache struct {
	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List // front = most recently used
	maxSize int
	ttl     time.Duration
	now     func() time.Time

	hits      int
	misses    int
	evictions int
}

// New builds a cache with the given capacity and TTL.
func New(maxSize int, ttl time.Duration) *ResponseCache {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ResponseCache{
		entries: make(map[string]*list.Element),
		order:   list.New(),
		maxSize: maxSize,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Key derives the content address for a turn: normalized message, the last-N
// context texts and the active tier configuration fingerprint.
func Key(normalized string, contextTexts []string, tierConfig string) string {
	h := sha256.New()
	h.Write([]byte(normalized))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(contextTexts, "|")))
	h.Write([]byte{0})
	h.Write([]byte(tierConfig))
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached value, or nil. An expired entry is treated as
// absent and removed.
func (c *ResponseCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	e := el.Value.(*entry)
	if c.now().Sub(e.createdAt) > c.ttl {
		c.removeLocked(el)
		c.misses++
		return nil, false
	}
	c.order.MoveToFront(el)
	c.hits++
	return e.value, true
}

// Set stores a value, evicting the least recently used entry over capacity.
func (c *ResponseCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*entry).value = value
		el.Value.(*entry).createdAt = c.now()
		c.order.MoveToFront(el)
		return
	}
	if c.order.Len() >= c.maxSize {
		if back := c.order.Back(); back != nil {
			c.removeLocked(back)
			c.evictions++
		}
	}
	c.entries[key] = c.order.PushFront(&entry{key: key, value: value, createdAt: c.now()})
}

// Cleanup drops every expired entry and reports how many were removed.
func (c *ResponseCache) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if c.now().Sub(el.Value.(*entry).createdAt) > c.ttl {
			c.removeLocked(el)
			removed++
		}
		el = prev
	}
	return removed
}

// Clear empties the cache and resets counters.
func (c *ResponseCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*list.Element)
	c.order.Init()
	c.hits, c.misses, c.evictions = 0, 0, 0
}

// Stats returns a snapshot of the counters.
func (c *ResponseCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Stats{Hits: c.hits, Misses: c.misses, Evictions: c.evictions, Size: c.order.Len()}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

// SetClock overrides the time source for tests.
func (c *ResponseCache) SetClock(now func() time.Time) { c.now = now }

func (c *ResponseCache) removeLocked(el *list.Element) {
	c.order.Remove(el)
	delete(c.entries, el.Value.(*entry).key)
}
