// FILE: pkg/notes/store.go
package notes

import (
	"strings"
	"sync"
)

// AddResult acknowledges a note save and reports the new total.
type AddResult struct {
	OK    bool `json:"ok"`
	Count int  `json:"count"`
}

// ListResult carries a snapshot of the stored notes in insertion order.
type ListResult struct {
	OK    bool     `json:"ok"`
	Count int      `json:"count"`
	Notes []string `json:"notes"`
}

// Store is an append-only in-memory note collection. Insertion order is the
// display order; there is no persistence, eviction, or per-user partitioning.
// Safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	notes []string
}

func NewStore() *Store {
	return &Store{}
}

// Add trims the text and appends it when non-empty. The returned count is the
// total after the call either way; OK is false when nothing was stored.
func (s *Store) Add(text string) AddResult {
	text = strings.TrimSpace(text)

	s.mu.Lock()
	defer s.mu.Unlock()
	if text == "" {
		return AddResult{OK: false, Count: len(s.notes)}
	}
	s.notes = append(s.notes, text)
	return AddResult{OK: true, Count: len(s.notes)}
}

// List returns an isolated copy so callers can never mutate the store, and a
// later append can never be observed through a previously returned slice.
func (s *Store) List() ListResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]string, len(s.notes))
	copy(snapshot, s.notes)
	return ListResult{OK: true, Count: len(snapshot), Notes: snapshot}
}
