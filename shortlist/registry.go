package shortlist

import (
	"sync"
	"time"
)

// DefaultIdleTTL matches the lifetime of the visitor cookie
const DefaultIdleTTL = 30 * 24 * time.Hour

// sweepInterval bounds how often For scans for idle stores
const sweepInterval = time.Hour

type entry struct {
	store      *Store
	lastAccess time.Time
}

// Registry hands out one Store per visitor token. Stores not touched for
// longer than the idle TTL are evicted.
type Registry struct {
	mu        sync.Mutex
	stores    map[string]*entry
	idleTTL   time.Duration
	now       func() time.Time
	lastSweep time.Time
}

// NewRegistry returns an empty Registry evicting stores idle for DefaultIdleTTL
func NewRegistry() *Registry {
	return NewRegistryWithTTL(DefaultIdleTTL, time.Now)
}

// NewRegistryWithTTL returns an empty Registry with a custom idle TTL and clock
func NewRegistryWithTTL(idleTTL time.Duration, now func() time.Time) *Registry {
	return &Registry{
		stores:    make(map[string]*entry),
		idleTTL:   idleTTL,
		now:       now,
		lastSweep: now(),
	}
}

// For returns the visitor's Store, creating it on first use
func (r *Registry) For(visitor string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if now.Sub(r.lastSweep) >= sweepInterval {
		r.sweepLocked(now)
	}

	e, ok := r.stores[visitor]
	if !ok || r.idleLocked(e, now) {
		e = &entry{store: New()}
		r.stores[visitor] = e
	}
	e.lastAccess = now
	return e.store
}

// Lookup returns the visitor's Store without creating one
func (r *Registry) Lookup(visitor string) (*Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	e, ok := r.stores[visitor]
	if !ok {
		return nil, false
	}
	if r.idleLocked(e, now) {
		delete(r.stores, visitor)
		return nil, false
	}
	e.lastAccess = now
	return e.store, true
}

// Sweep evicts every store idle for longer than the TTL and returns how many
// were removed
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sweepLocked(r.now())
}

// Len returns the number of visitors with a Store
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}

func (r *Registry) idleLocked(e *entry, now time.Time) bool {
	return now.Sub(e.lastAccess) > r.idleTTL
}

func (r *Registry) sweepLocked(now time.Time) int {
	removed := 0
	for visitor, e := range r.stores {
		if r.idleLocked(e, now) {
			delete(r.stores, visitor)
			removed++
		}
	}
	r.lastSweep = now
	return removed
}
