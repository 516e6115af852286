package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/karigor/search-service/internal/domain"
)

type suggestKey struct {
	title    string
	itemType domain.ItemType
	category string
}

// Suggest runs the text stage over active, approved entries in scope and coalesces the
// matches by (title, item_type, category), keeping the maximum score and the
// group size, ordered by score descending then count descending.
func (e *Engine) Suggest(_ context.Context, term string, scope domain.ItemType, limit int) ([]domain.Suggestion, error) {
	if limit <= 0 {
		limit = 10
	}

	e.mu.RLock()
	groups := make(map[suggestKey]*domain.Suggestion)
	for _, entry := range e.entries {
		if !entry.IsActive || !entry.IsApproved {
			continue
		}
		if scope != "" && entry.ItemType != scope {
			continue
		}
		score, ok := textScore(&entry, term)
		if !ok {
			continue
		}

		key := suggestKey{title: entry.Title, itemType: entry.ItemType, category: entry.Category}
		if g, exists := groups[key]; exists {
			g.Count++
			if score > g.Score {
				g.Score = score
			}
			continue
		}
		groups[key] = &domain.Suggestion{
			Title:    entry.Title,
			ItemType: entry.ItemType,
			Category: entry.Category,
			Score:    score,
			Count:    1,
		}
	}
	e.mu.RUnlock()

	out := make([]domain.Suggestion, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
