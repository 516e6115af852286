// Package planner translates an inbound faceted search query into an
// execution plan: an optional text-relevance stage, a conjunctive list of
// composable filter predicates, a sort specification, and pagination bounds.
// Engines interpret the plan; the planner never touches a store.
package planner

import (
	"fmt"

	apperrors "github.com/karigor/search-service/pkg/errors"

	"github.com/karigor/search-service/internal/domain"
)

// Defaults and caps for pagination.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Plan is the executable form of a SearchQuery. Term is the text-relevance
// stage (empty means every structurally matching entry gets a uniform neutral
// score). Filters are conjunctive.
type Plan struct {
	Term    string
	Filters []Filter
	SortBy  string
	Page    int
	Limit   int
}

// Offset returns the number of entries to skip for the requested page.
func (p *Plan) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Matches evaluates the full conjunction against an entry. Used by the
// in-memory engine; the Elasticsearch engine translates each filter into
// query DSL instead.
func (p *Plan) Matches(e *domain.IndexEntry) bool {
	for _, f := range p.Filters {
		if !f.Matches(e) {
			return false
		}
	}
	return true
}

// Build assembles an execution plan from a search query. Zero page/limit get
// defaults; negative values are a validation error. Geo center+radius takes
// precedence over a free-text location; the two are never combined.
func Build(q *domain.SearchQuery) (*Plan, error) {
	page := q.Page
	if page == 0 {
		page = 1
	}
	limit := q.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if page < 1 {
		return nil, apperrors.InvalidInput(fmt.Sprintf("page must be >= 1, got %d", page))
	}
	if limit < 1 {
		return nil, apperrors.InvalidInput(fmt.Sprintf("limit must be >= 1, got %d", limit))
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	sortBy := q.SortBy
	if !domain.IsValidSort(sortBy) {
		sortBy = domain.SortRelevance
	}

	// Active, moderation-approved entries only, regardless of request.
	filters := []Filter{ActiveFilter{}, ApprovedFilter{}}

	if q.ItemType != "" && domain.IsValidItemType(string(q.ItemType)) {
		filters = append(filters, ItemTypeFilter{Type: q.ItemType})
	}
	if q.Category != "" {
		filters = append(filters, CategoryFilter{Category: q.Category})
	}
	if q.MinPrice != nil || q.MaxPrice != nil {
		filters = append(filters, PriceRangeFilter{Min: q.MinPrice, Max: q.MaxPrice})
	}
	switch {
	case q.Geo != nil:
		filters = append(filters, GeoRadiusFilter{
			Lat:      q.Geo.Lat,
			Lng:      q.Geo.Lng,
			RadiusKM: q.Geo.RadiusKM,
		})
	case q.LocationText != "":
		filters = append(filters, CityFilter{City: q.LocationText})
	}
	if len(q.Skills) > 0 {
		filters = append(filters, AnyValueFilter{Field: FieldSkills, Values: q.Skills})
	}
	if len(q.Tags) > 0 {
		filters = append(filters, AnyValueFilter{Field: FieldTags, Values: q.Tags})
	}
	if q.AcceptsCustomOrders != nil {
		filters = append(filters, FlagFilter{Field: FieldAcceptsCustomOrders, Want: *q.AcceptsCustomOrders})
	}
	if q.AcceptsBookings != nil {
		filters = append(filters, FlagFilter{Field: FieldAcceptsBookings, Want: *q.AcceptsBookings})
	}
	if q.MinRating != nil {
		filters = append(filters, MinRatingFilter{Min: *q.MinRating})
	}
	if q.Availability != nil {
		filters = append(filters, AvailabilityFilter{Availability: *q.Availability})
	}

	return &Plan{
		Term:    q.Term,
		Filters: filters,
		SortBy:  sortBy,
		Page:    page,
		Limit:   limit,
	}, nil
}
