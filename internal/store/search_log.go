package store

import (
	"sync"
	"time"

	"veldrith-backend/internal/models"
)

const (
	searchesFile = "searches.json"

	// DefaultSearchCap bounds the search log; the oldest entries are
	// discarded first once it is exceeded.
	DefaultSearchCap = 5000
)

// SearchLog is the append-only record of per-user query strings.
// Entries stay in insertion order; callers wanting reverse-chronological
// output sort on their side.
type SearchLog struct {
	mu      sync.Mutex
	store   *Store
	entries []models.SearchEntry
	cap     int
}

// NewSearchLog loads the search log from the store
func NewSearchLog(s *Store, capacity int) (*SearchLog, error) {
	if capacity <= 0 {
		capacity = DefaultSearchCap
	}
	l := &SearchLog{store: s, cap: capacity}
	if _, err := s.readDocument(searchesFile, &l.entries); err != nil {
		return nil, err
	}
	return l, nil
}

// Record appends a query unconditionally; no deduplication or content
// filtering. Session validity is the caller's precondition. A zero
// timestamp is replaced with the current clock.
func (l *SearchLog) Record(username, query string, timestamp time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if timestamp.IsZero() {
		timestamp = l.store.Now()
	}

	prev := l.entries
	l.entries = append(l.entries, models.SearchEntry{
		Username:  username,
		Query:     query,
		Timestamp: timestamp,
	})
	if excess := len(l.entries) - l.cap; excess > 0 {
		l.entries = l.entries[excess:]
	}

	if err := l.store.writeDocument(searchesFile, l.entries); err != nil {
		l.entries = prev
		return err
	}
	return nil
}

// List returns all entries in insertion order
func (l *SearchLog) List() []models.SearchEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.SearchEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
