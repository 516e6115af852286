package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/karigor/search-service/internal/domain"
)

// suggestCandidates is how many raw hits are fetched before grouping; groups
// collapse duplicates, so this is deliberately larger than the caller's limit.
const suggestCandidates = 50

// esSuggestResponse decodes suggest query responses.
type esSuggestResponse struct {
	Hits struct {
		Hits []struct {
			Score  *float64 `json:"_score"`
			Source struct {
				Title    string          `json:"title"`
				ItemType domain.ItemType `json:"item_type"`
				Category string          `json:"category"`
			} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Suggest queries the autocomplete subfield and coalesces the hits by
// (title, item_type, category), keeping the maximum score and group size.
func (e *Engine) Suggest(ctx context.Context, term string, scope domain.ItemType, limit int) ([]domain.Suggestion, error) {
	if limit <= 0 {
		limit = 10
	}

	filters := []interface{}{
		map[string]interface{}{"term": map[string]interface{}{"is_active": true}},
		map[string]interface{}{"term": map[string]interface{}{"is_approved": true}},
	}
	if scope != "" {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{"item_type": scope},
		})
	}

	body := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []interface{}{
					map[string]interface{}{
						"multi_match": map[string]interface{}{
							"query":  term,
							"fields": []string{"title.autocomplete^2", "title", "tags", "skills"},
						},
					},
				},
				"filter": filters,
			},
		},
		"size":    suggestCandidates,
		"_source": []string{"title", "item_type", "category"},
		"sort": []interface{}{
			map[string]interface{}{"_score": "desc"},
		},
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch suggest: marshal query: %w", err)
	}

	res, err := e.client.Search(
		e.client.Search.WithIndex(e.indexName),
		e.client.Search.WithBody(bytes.NewReader(data)),
		e.client.Search.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch suggest: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return nil, e.decodeError(res.Body, res.Status(), "elasticsearch suggest")
	}

	var esResp esSuggestResponse
	if err := json.NewDecoder(res.Body).Decode(&esResp); err != nil {
		return nil, fmt.Errorf("elasticsearch suggest: decode response: %w", err)
	}

	type key struct {
		title    string
		itemType domain.ItemType
		category string
	}
	groups := make(map[key]*domain.Suggestion)
	for _, hit := range esResp.Hits.Hits {
		score := 1.0
		if hit.Score != nil {
			score = *hit.Score
		}
		k := key{title: hit.Source.Title, itemType: hit.Source.ItemType, category: hit.Source.Category}
		if g, exists := groups[k]; exists {
			g.Count++
			if score > g.Score {
				g.Score = score
			}
			continue
		}
		groups[k] = &domain.Suggestion{
			Title:    hit.Source.Title,
			ItemType: hit.Source.ItemType,
			Category: hit.Source.Category,
			Score:    score,
			Count:    1,
		}
	}

	out := make([]domain.Suggestion, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Count > out[j].Count
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
