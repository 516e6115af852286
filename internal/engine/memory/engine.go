// Package memory provides an in-memory Engine implementation. It evaluates
// execution plans directly against a map of entries and stands in for
// Elasticsearch in development and unit tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/karigor/search-service/internal/domain"
	"github.com/karigor/search-service/internal/planner"
)

// Text-stage field weights. These approximate the relevance boosts the
// Elasticsearch engine applies; they are not a scoring algorithm of their own.
const (
	weightTitle       = 3.0
	weightTagsSkills  = 2.0
	weightDescription = 1.0
	neutralScore      = 1.0
)

// Engine is an in-memory index store keyed by (item_type, item_id).
// Thread-safe via sync.RWMutex; per-key upserts are last-writer-wins.
type Engine struct {
	mu      sync.RWMutex
	entries map[string]domain.IndexEntry
}

// New creates an empty in-memory engine.
func New() *Engine {
	return &Engine{
		entries: make(map[string]domain.IndexEntry),
	}
}

// Upsert adds or replaces the entry for its (item_type, item_id) key.
func (e *Engine) Upsert(_ context.Context, entry *domain.IndexEntry) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.entries[entry.DocID()] = *entry
	return nil
}

// BulkUpsert adds or replaces multiple entries.
func (e *Engine) BulkUpsert(_ context.Context, entries []domain.IndexEntry) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range entries {
		e.entries[entries[i].DocID()] = entries[i]
	}
	return nil
}

// Delete removes the entry for the given entity reference. Missing entries
// are ignored.
func (e *Engine) Delete(_ context.Context, itemType domain.ItemType, itemID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.entries, domain.DocID(itemType, itemID))
	return nil
}

// Get returns the entry for the given entity reference, or nil when absent.
func (e *Engine) Get(_ context.Context, itemType domain.ItemType, itemID string) (*domain.IndexEntry, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	entry, ok := e.entries[domain.DocID(itemType, itemID)]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

// Len returns the number of indexed entries.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.entries)
}

type scored struct {
	entry domain.IndexEntry
	score float64
}

// Search evaluates the plan: structural filters, text stage, sort, paginate.
// Total counts all matches before the page slice is taken.
func (e *Engine) Search(_ context.Context, plan *planner.Plan) (*domain.SearchResult, error) {
	start := time.Now()

	e.mu.RLock()
	matched := make([]scored, 0)
	for _, entry := range e.entries {
		if !plan.Matches(&entry) {
			continue
		}
		score, ok := textScore(&entry, plan.Term)
		if !ok {
			continue
		}
		matched = append(matched, scored{entry: entry, score: score})
	}
	e.mu.RUnlock()

	sortScored(matched, plan.SortBy)

	total := len(matched)
	offset := plan.Offset()
	if offset > total {
		offset = total
	}
	end := offset + plan.Limit
	if end > total {
		end = total
	}

	hits := make([]domain.Hit, 0, end-offset)
	for _, m := range matched[offset:end] {
		hits = append(hits, domain.Hit{Entry: m.entry, Score: m.score})
	}

	totalPages := total / plan.Limit
	if total%plan.Limit > 0 {
		totalPages++
	}

	return &domain.SearchResult{
		Hits:       hits,
		Total:      total,
		Page:       plan.Page,
		Limit:      plan.Limit,
		TotalPages: totalPages,
		TookMs:     time.Since(start).Milliseconds(),
	}, nil
}

// textScore scores an entry against the free-text term over title,
// description, tags, and skills. An empty term matches everything with a
// uniform neutral score. A non-empty term must match at least one token.
func textScore(entry *domain.IndexEntry, term string) (float64, bool) {
	term = strings.TrimSpace(strings.ToLower(term))
	if term == "" {
		return neutralScore, true
	}

	title := strings.ToLower(entry.Title)
	desc := strings.ToLower(entry.Description)

	var score float64
	for _, token := range strings.Fields(term) {
		if strings.Contains(title, token) {
			score += weightTitle
		}
		if containsFold(entry.Tags, token) {
			score += weightTagsSkills
		}
		if containsFold(entry.Skills, token) {
			score += weightTagsSkills
		}
		if strings.Contains(desc, token) {
			score += weightDescription
		}
	}

	return score, score > 0
}

func containsFold(values []string, token string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), token) {
			return true
		}
	}
	return false
}

// sortScored orders matches by the requested sort key. Relevance ties fall
// back to recency; entries without a price sort after priced ones.
func sortScored(matched []scored, sortBy string) {
	switch sortBy {
	case domain.SortNewest:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].entry.CreatedAt.After(matched[j].entry.CreatedAt)
		})
	case domain.SortPriceAsc:
		sort.SliceStable(matched, func(i, j int) bool {
			return priceOrDefault(matched[i].entry, true) < priceOrDefault(matched[j].entry, true)
		})
	case domain.SortPriceDesc:
		sort.SliceStable(matched, func(i, j int) bool {
			return priceOrDefault(matched[i].entry, false) > priceOrDefault(matched[j].entry, false)
		})
	case domain.SortRating:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].entry.Rating.Average > matched[j].entry.Rating.Average
		})
	default: // relevance
		sort.SliceStable(matched, func(i, j int) bool {
			if matched[i].score != matched[j].score {
				return matched[i].score > matched[j].score
			}
			return matched[i].entry.LastUpdated.After(matched[j].entry.LastUpdated)
		})
	}
}

func priceOrDefault(e domain.IndexEntry, asc bool) float64 {
	if e.Price != nil {
		return *e.Price
	}
	if asc {
		return 1e18
	}
	return -1e18
}
