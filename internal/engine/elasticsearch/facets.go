package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/karigor/search-service/internal/domain"
)

// facetSize bounds each terms aggregation.
const facetSize = 20

// esFacetResponse decodes the aggregation response for Facets.
type esFacetResponse struct {
	Aggregations struct {
		Categories termsAgg `json:"categories"`
		Locations  termsAgg `json:"locations"`
		Skills     termsAgg `json:"skills"`
		Tags       termsAgg `json:"tags"`
		Priced     struct {
			Stats struct {
				Min *float64 `json:"min"`
				Max *float64 `json:"max"`
				Avg *float64 `json:"avg"`
			} `json:"stats"`
		} `json:"priced"`
		Ratings struct {
			Buckets []struct {
				Key      string `json:"key"`
				DocCount int    `json:"doc_count"`
			} `json:"buckets"`
		} `json:"ratings"`
	} `json:"aggregations"`
}

type termsAgg struct {
	Buckets []struct {
		Key      string `json:"key"`
		DocCount int    `json:"doc_count"`
	} `json:"buckets"`
}

// Facets computes the filterable attribute distributions for the given scope
// with a single aggregation request over active, approved entries.
func (e *Engine) Facets(ctx context.Context, scope domain.ItemType) (*domain.FacetSet, error) {
	body := buildFacetBody(scope)

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch facets: marshal query: %w", err)
	}

	res, err := e.client.Search(
		e.client.Search.WithIndex(e.indexName),
		e.client.Search.WithBody(bytes.NewReader(data)),
		e.client.Search.WithContext(ctx),
		e.client.Search.WithSize(0),
	)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch facets: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return nil, e.decodeError(res.Body, res.Status(), "elasticsearch facets")
	}

	var esResp esFacetResponse
	if err := json.NewDecoder(res.Body).Decode(&esResp); err != nil {
		return nil, fmt.Errorf("elasticsearch facets: decode response: %w", err)
	}

	aggs := esResp.Aggregations
	facets := &domain.FacetSet{
		Categories: toValueCounts(aggs.Categories),
		Locations:  toValueCounts(aggs.Locations),
		Skills:     toValueCounts(aggs.Skills),
		Tags:       toValueCounts(aggs.Tags),
	}

	if aggs.Priced.Stats.Min != nil {
		facets.Price = domain.PriceStats{
			Min: *aggs.Priced.Stats.Min,
			Max: *aggs.Priced.Stats.Max,
			Avg: *aggs.Priced.Stats.Avg,
		}
	}

	counts := make(map[string]int, len(aggs.Ratings.Buckets))
	for _, b := range aggs.Ratings.Buckets {
		counts[b.Key] = b.DocCount
	}
	for floor := 1; floor <= 5; floor++ {
		facets.RatingBuckets = append(facets.RatingBuckets, domain.RatingBucket{
			Floor: floor,
			Count: counts[fmt.Sprintf("%d", floor)],
		})
	}

	return facets, nil
}

func buildFacetBody(scope domain.ItemType) map[string]interface{} {
	filters := []interface{}{term("is_active", true), term("is_approved", true)}
	if scope != "" {
		filters = append(filters, term("item_type", scope))
	}

	ratingRanges := make([]interface{}, 0, 5)
	for floor := 1; floor <= 5; floor++ {
		ratingRanges = append(ratingRanges, map[string]interface{}{
			"key":  fmt.Sprintf("%d", floor),
			"from": floor,
			"to":   floor + 1,
		})
	}

	return map[string]interface{}{
		"size": 0,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"filter": filters},
		},
		"aggs": map[string]interface{}{
			"categories": map[string]interface{}{
				"terms": map[string]interface{}{"field": "category", "size": facetSize},
			},
			"locations": map[string]interface{}{
				"terms": map[string]interface{}{"field": "location.city.keyword", "size": facetSize},
			},
			"skills": map[string]interface{}{
				"terms": map[string]interface{}{"field": "skills", "size": facetSize},
			},
			"tags": map[string]interface{}{
				"terms": map[string]interface{}{"field": "tags", "size": facetSize},
			},
			"priced": map[string]interface{}{
				"filter": map[string]interface{}{
					"range": map[string]interface{}{"price": map[string]interface{}{"gt": 0}},
				},
				"aggs": map[string]interface{}{
					"stats": map[string]interface{}{
						"stats": map[string]interface{}{"field": "price"},
					},
				},
			},
			"ratings": map[string]interface{}{
				"range": map[string]interface{}{
					"field":  "rating.average",
					"keyed":  false,
					"ranges": ratingRanges,
				},
			},
		},
	}
}

func toValueCounts(agg termsAgg) []domain.ValueCount {
	out := make([]domain.ValueCount, 0, len(agg.Buckets))
	for _, b := range agg.Buckets {
		out = append(out, domain.ValueCount{Value: b.Key, Count: b.DocCount})
	}
	return out
}
