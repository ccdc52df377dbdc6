// Package memory provides an in-memory record store, used as the default
// backend and in tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"spendsight/internal/core"
)

type Store struct {
	mu    sync.Mutex
	next  int
	items map[string][]core.ExpenseRecord // userID -> records
}

func New() *Store {
	return &Store{items: make(map[string][]core.ExpenseRecord)}
}

// Append stores the record and returns a synthetic id.
func (s *Store) Append(_ context.Context, userID string, r core.ExpenseRecord) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	r.ID = fmt.Sprintf("mem:%d", s.next)
	s.items[userID] = append(s.items[userID], r)
	return r.ID, nil
}

// ListRecent returns at most limit records dated at or after since, ordered
// newest-first.
func (s *Store) ListRecent(_ context.Context, userID string, since time.Time, limit int) ([]core.ExpenseRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []core.ExpenseRecord
	for _, r := range s.items[userID] {
		if r.Date.Before(since) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
