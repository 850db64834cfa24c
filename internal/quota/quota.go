// Package quota tracks the daily call budget for the metered generative
// tier. The count only moves backwards when a failed call releases its slot,
// resets exactly once on date rollover and is persisted as a {date, count}
// record.
package quota

import (
	"encoding/json"
	"sync"
	"time"
)

// DefaultDailyLimit matches the free-tier budget of the generative API.
const DefaultDailyLimit = 1500

const storeKey = "quota/generative"

// Record is the persisted per-day state.
type Record struct {
	Date  string `json:"date"` // ISO date, local time
	Count int    `json:"count"`
}

// Store is the subset of kvstore.Store the tracker needs.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}

// Tracker hands out reservations against the daily limit. Reserve is atomic
// with respect to the read-then-increment check, so concurrent turns can
// never push the count past the limit.
type Tracker struct {
	mu    sync.Mutex
	store Store
	limit int
	rec   Record
	now   func() time.Time
}

// NewTracker loads today's record from the store, if any.
func NewTracker(store Store, limit int) *Tracker {
	if limit <= 0 {
		limit = DefaultDailyLimit
	}
	t := &Tracker{store: store, limit: limit, now: time.Now}
	if store != nil {
		if raw, ok, err := store.Get(storeKey); err == nil && ok {
			var rec Record
			if json.Unmarshal(raw, &rec) == nil {
				t.rec = rec
			}
		}
	}
	return t
}

// Reserve consumes one call slot for today. It returns false when the budget
// is exhausted. Callers return failed reservations with Release so only
// successful calls count against the day.
func (t *Tracker) Reserve() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rolloverLocked()
	if t.rec.Count >= t.limit {
		return false
	}
	t.rec.Count++
	t.persistLocked()
	return true
}

// Release returns a reserved slot when the metered call failed. A no-op once
// the day has rolled over or the count is already zero, so a late release
// can never eat into a fresh day's budget.
func (t *Tracker) Release() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.rec.Date != t.now().Format("2006-01-02") || t.rec.Count == 0 {
		return
	}
	t.rec.Count--
	t.persistLocked()
}

// Exhausted reports whether the daily budget is used up, without consuming.
func (t *Tracker) Exhausted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rolloverLocked()
	return t.rec.Count >= t.limit
}

// Count returns today's consumed calls.
func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rolloverLocked()
	return t.rec.Count
}

// Remaining returns today's unused budget.
func (t *Tracker) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rolloverLocked()
	return t.limit - t.rec.Count
}

// Limit returns the configured daily limit.
func (t *Tracker) Limit() int { return t.limit }

// SetClock overrides the time source for tests.
func (t *Tracker) SetClock(now func() time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.now = now
}

// rolloverLocked resets the count when the calendar day changed.
func (t *Tracker) rolloverLocked() {
	today := t.now().Format("2006-01-02")
	if t.rec.Date != today {
		t.rec = Record{Date: today, Count: 0}
		t.persistLocked()
	}
}

func (t *Tracker) persistLocked() {
	if t.store == nil {
		return
	}
	raw, err := json.Marshal(t.rec)
	if err != nil {
		return
	}
	// Persistence failures degrade to in-memory tracking.
	_ = t.store.Set(storeKey, raw)
}
