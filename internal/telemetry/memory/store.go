// Package memory implements the telemetry store in process memory. It stands
// in for PostgreSQL in development and unit tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/karigor/search-service/internal/domain"
)

// Store is an in-memory, append-only telemetry store.
type Store struct {
	mu     sync.RWMutex
	events []domain.TelemetryEvent
}

// New creates an empty in-memory telemetry store.
func New() *Store {
	return &Store{}
}

// Record appends one search event.
func (s *Store) Record(_ context.Context, event *domain.TelemetryEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	event.Query = strings.TrimSpace(strings.ToLower(event.Query))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, *event)
	return nil
}

// PopularQueries aggregates events in the trailing window.
func (s *Store) PopularQueries(_ context.Context, window time.Duration, limit int) ([]domain.PopularQuery, error) {
	since := time.Now().UTC().Add(-window)

	s.mu.RLock()
	agg := make(map[string]*domain.PopularQuery)
	for i := range s.events {
		ev := &s.events[i]
		if ev.Query == "" || ev.CreatedAt.Before(since) {
			continue
		}
		pq, ok := agg[ev.Query]
		if !ok {
			agg[ev.Query] = &domain.PopularQuery{Query: ev.Query, Count: 1, LastSearched: ev.CreatedAt}
			continue
		}
		pq.Count++
		if ev.CreatedAt.After(pq.LastSearched) {
			pq.LastSearched = ev.CreatedAt
		}
	}
	s.mu.RUnlock()

	out := make([]domain.PopularQuery, 0, len(agg))
	for _, pq := range agg {
		out = append(out, *pq)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].LastSearched.After(out[j].LastSearched)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Len returns the number of recorded events.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}
