// Package shortlist keeps the set of product ids a visitor is asking a
// quote for (the "cotización").
package shortlist

import (
	"slices"
	"sync"

	"github.com/samber/lo"
)

// Store is a set of product ids. The zero value is not usable; call New.
type Store struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

// New returns an empty Store
func New() *Store {
	return &Store{ids: make(map[string]struct{})}
}

// Add puts id in the set; adding a present id is a no-op
func (s *Store) Add(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[id] = struct{}{}
}

// Remove takes id out of the set; removing an absent id is a no-op
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ids, id)
}

// Contains reports whether id is in the set
func (s *Store) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

// Toggle adds id when absent and removes it when present. It returns
// whether id is in the set afterwards.
func (s *Store) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Clear empties the set
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.ids)
}

// Count returns the number of ids
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// IDs returns a sorted copy of the set
func (s *Store) IDs() []string {
	s.mu.RLock()
	ids := lo.Keys(s.ids)
	s.mu.RUnlock()
	slices.Sort(ids)
	return ids
}
