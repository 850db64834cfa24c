// Package pending implements the confirmation gate for destructive commands:
// a matched destructive intent is parked as a PendingAction and only executes
// after an explicit confirm keyed by its id. Unresolved actions expire.
package pending

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"veneziabot/internal/business"
	"veneziabot/internal/intent"
)

const (
	DefaultTTL      = 5 * time.Minute
	DefaultCapacity = 10
)

// destructive is the static allow-list of commands that require confirmation.
var destructive = map[intent.Command]bool{
	intent.CmdAddStock:       true,
	intent.CmdCreateProduct:  true,
	intent.CmdUpdatePrice:    true,
	intent.CmdStockAndPrice:  true,
	intent.CmdCreateAndStock: true,
}

// Destructive reports whether a command needs the confirmation step.
func Destructive(cmd intent.Command) bool { return destructive[cmd] }

// Action is a parsed, not-yet-executed mutating command awaiting
// confirmation.
type Action struct {
	ID        string
	Intent    intent.Intent
	Summary   string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Gate holds the open pending actions for one engine instance. Multiple
// actions may be pending at once (map keyed by id, bounded); the
// one-active-confirmation UX is a front-end concern.
type Gate struct {
	mu       sync.Mutex
	actions  map[string]*Action
	order    []string // registration order, for capacity eviction
	ttl      time.Duration
	capacity int
	now      func() time.Time

	stop chan struct{}
	done chan struct{}
}

// NewGate builds a gate with the given confirmation window and capacity.
func NewGate(ttl time.Duration, capacity int) *Gate {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Gate{
		actions:  make(map[string]*Action),
		ttl:      ttl,
		capacity: capacity,
		now:      time.Now,
	}
}

// Register parks a destructive intent and returns its pending action. Over
// capacity, the oldest unresolved action is discarded.
func (g *Gate) Register(in intent.Intent, summary string) *Action {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.expireLocked()
	for len(g.order) >= g.capacity {
		oldest := g.order[0]
		g.order = g.order[1:]
		delete(g.actions, oldest)
	}

	now := g.now()
	a := &Action{
		ID:        uuid.NewString(),
		Intent:    in,
		Summary:   summary,
		CreatedAt: now,
		ExpiresAt: now.Add(g.ttl),
	}
	g.actions[a.ID] = a
	g.order = append(g.order, a.ID)
	return a
}

// Take resolves and removes the pending action with the given id. Exactly
// one caller can take a given action; a second call (or a call on an expired
// id) gets an error, never a silent success.
func (g *Gate) Take(id string) (*Action, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	a, ok := g.actions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", business.ErrPendingActionNotFound, id)
	}
	g.removeLocked(id)
	if g.now().After(a.ExpiresAt) {
		return nil, fmt.Errorf("%w: %s", business.ErrPendingActionExpired, id)
	}
	return a, nil
}

// Count returns the number of open pending actions, after lazy expiry.
func (g *Gate) Count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.expireLocked()
	return len(g.actions)
}

// StartSweeper runs a background expiry sweep so abandoned confirmations do
// not linger until the next access. Stop must be called on shutdown.
func (g *Gate) StartSweeper(interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	g.mu.Lock()
	if g.stop != nil {
		g.mu.Unlock()
		return
	}
	g.stop = make(chan struct{})
	g.done = make(chan struct{})
	stop, done := g.stop, g.done
	g.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				g.mu.Lock()
				g.expireLocked()
				g.mu.Unlock()
			case <-stop:
				return
			}
		}
	}()
}

// Stop halts the background sweeper, if running.
func (g *Gate) Stop() {
	g.mu.Lock()
	stop, done := g.stop, g.done
	g.stop, g.done = nil, nil
	g.mu.Unlock()
	if stop != nil {
		close(stop)
		<-done
	}
}

// SetClock overrides the time source for tests.
func (g *Gate) SetClock(now func() time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.now = now
}

func (g *Gate) expireLocked() {
	now := g.now()
	for id, a := range g.actions {
		if now.After(a.ExpiresAt) {
			g.removeLocked(id)
		}
	}
}

func (g *Gate) removeLocked(id string) {
	delete(g.actions, id)
	for i, v := range g.order {
		if v == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
}
