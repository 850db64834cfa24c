// Package catalog resolves free-text product names against a business-data
// snapshot. Lookups are memoized with a TTL; a snapshot update does not
// invalidate the memo, staleness up to the TTL is an accepted trade-off.
package catalog

import (
	"strings"
	"sync"
	"time"

	"veneziabot/internal/business"
	"veneziabot/internal/nlp"
)

const (
	DefaultCacheSize = 200
	DefaultTTL       = time.Hour
)

type memoEntry struct {
	product      *business.Product
	createdAt    time.Time
	lastAccessed time.Time
}

// Resolver matches candidate names in order: exact normalized-name match,
// substring match either direction, synonym-table lookup.
type Resolver struct {
	mu       sync.Mutex
	memo     map[string]*memoEntry
	maxSize  int
	ttl      time.Duration
	synonyms map[string][]string
	now      func() time.Time
}

// NewResolver builds a resolver with the domain synonym table.
func NewResolver(maxSize int, ttl time.Duration) *Resolver {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Resolver{
		memo:     make(map[string]*memoEntry),
		maxSize:  maxSize,
		ttl:      ttl,
		synonyms: nlp.ProductSynonyms(),
		now:      time.Now,
	}
}

// Resolve finds the snapshot product for a free-text name, or nil. A nil
// result is also memoized so repeated misses stay cheap.
func (r *Resolver) Resolve(candidate string, snap business.Snapshot) *business.Product {
	key := nlp.Fold(strings.TrimSpace(candidate))
	if key == "" {
		return nil
	}

	r.mu.Lock()
	if e, ok := r.memo[key]; ok {
		if r.now().Sub(e.createdAt) < r.ttl {
			e.lastAccessed = r.now()
			p := e.product
			r.mu.Unlock()
			return cloneProduct(p)
		}
		delete(r.memo, key)
	}
	r.mu.Unlock()

	found := r.lookup(key, snap)

	r.mu.Lock()
	if len(r.memo) >= r.maxSize {
		r.evictOldest()
	}
	r.memo[key] = &memoEntry{product: cloneProduct(found), createdAt: r.now(), lastAccessed: r.now()}
	r.mu.Unlock()

	return found
}

func (r *Resolver) lookup(key string, snap business.Snapshot) *business.Product {
	// Exact match.
	for i := range snap.Products {
		if nlp.Fold(snap.Products[i].Name) == key {
			return cloneProduct(&snap.Products[i])
		}
	}
	// Substring either direction.
	for i := range snap.Products {
		name := nlp.Fold(snap.Products[i].Name)
		if strings.Contains(name, key) || strings.Contains(key, name) {
			return cloneProduct(&snap.Products[i])
		}
	}
	// Synonym table.
	for canonical, variants := range r.synonyms {
		if key != canonical && !contains(variants, key) {
			continue
		}
		for i := range snap.Products {
			name := nlp.Fold(snap.Products[i].Name)
			if strings.Contains(name, canonical) || strings.Contains(canonical, name) {
				return cloneProduct(&snap.Products[i])
			}
		}
	}
	return nil
}

// evictOldest drops the least recently accessed entry. Caller holds the lock.
func (r *Resolver) evictOldest() {
	var oldestKey string
	var oldestTime time.Time
	first := true
	for k, e := range r.memo {
		if first || e.lastAccessed.Before(oldestTime) {
			oldestKey, oldestTime, first = k, e.lastAccessed, false
		}
	}
	if oldestKey != "" {
		delete(r.memo, oldestKey)
	}
}

// Size returns the number of memoized lookups.
func (r *Resolver) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.memo)
}

// SetClock overrides the time source for tests.
func (r *Resolver) SetClock(now func() time.Time) { r.now = now }

func cloneProduct(p *business.Product) *business.Product {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
