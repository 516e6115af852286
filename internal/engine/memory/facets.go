package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/karigor/search-service/internal/domain"
)

// facetLimit bounds each value histogram.
const facetLimit = 20

// Facets computes attribute distributions over active, approved entries in
// the given entity-type scope. All aggregates are computed fresh per call.
func (e *Engine) Facets(_ context.Context, scope domain.ItemType) (*domain.FacetSet, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	categories := make(map[string]int)
	cities := make(map[string]int)
	skills := make(map[string]int)
	tags := make(map[string]int)
	ratingBuckets := make(map[int]int)

	var priceSum float64
	var priceCount int
	price := domain.PriceStats{}

	for _, entry := range e.entries {
		if !entry.IsActive || !entry.IsApproved {
			continue
		}
		if scope != "" && entry.ItemType != scope {
			continue
		}

		if entry.Category != "" {
			categories[entry.Category]++
		}
		if entry.Location.City != "" {
			cities[entry.Location.City]++
		}
		// Multi-valued fields count once per carried value.
		for _, s := range entry.Skills {
			skills[s]++
		}
		for _, t := range entry.Tags {
			tags[t]++
		}

		if entry.Price != nil && *entry.Price > 0 {
			p := *entry.Price
			if priceCount == 0 || p < price.Min {
				price.Min = p
			}
			if p > price.Max {
				price.Max = p
			}
			priceSum += p
			priceCount++
		}

		if floor := ratingFloor(entry.Rating.Average); floor > 0 {
			ratingBuckets[floor]++
		}
	}

	if priceCount > 0 {
		price.Avg = priceSum / float64(priceCount)
	}

	return &domain.FacetSet{
		Categories:    topValues(categories, facetLimit),
		Price:         price,
		Locations:     topValues(cities, facetLimit),
		Skills:        topValues(skills, facetLimit),
		Tags:          topValues(tags, facetLimit),
		RatingBuckets: ratingHistogram(ratingBuckets),
	}, nil
}

// ratingFloor maps an average rating into the fixed buckets [1,2) .. [5,6).
// Unrated entries (average below 1) fall outside the histogram.
func ratingFloor(avg float64) int {
	floor := int(avg)
	if floor < 1 || floor > 5 {
		return 0
	}
	return floor
}

// topValues returns the n most frequent values, ordered by count descending
// then value ascending for deterministic output.
func topValues(counts map[string]int, n int) []domain.ValueCount {
	out := make([]domain.ValueCount, 0, len(counts))
	for v, c := range counts {
		out = append(out, domain.ValueCount{Value: v, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return strings.ToLower(out[i].Value) < strings.ToLower(out[j].Value)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func ratingHistogram(buckets map[int]int) []domain.RatingBucket {
	out := make([]domain.RatingBucket, 0, 5)
	for floor := 1; floor <= 5; floor++ {
		out = append(out, domain.RatingBucket{Floor: floor, Count: buckets[floor]})
	}
	return out
}
