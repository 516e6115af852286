package planner

import (
	"math"
	"strings"

	"github.com/karigor/search-service/internal/domain"
)

// MultiValueField names a multi-valued entry attribute filterable with
// match-any semantics.
type MultiValueField string

const (
	FieldSkills MultiValueField = "skills"
	FieldTags   MultiValueField = "tags"
)

// BoolField names a boolean entry attribute filterable by equality.
type BoolField string

const (
	FieldAcceptsCustomOrders BoolField = "accepts_custom_orders"
	FieldAcceptsBookings     BoolField = "accepts_bookings"
)

// Filter is one composable structural predicate. Implementations evaluate
// directly against an entry (in-memory engine) and are translated into store
// query DSL by type switch (Elasticsearch engine).
type Filter interface {
	Matches(e *domain.IndexEntry) bool
}

// ActiveFilter restricts to active entries. Always present in a plan.
type ActiveFilter struct{}

func (ActiveFilter) Matches(e *domain.IndexEntry) bool {
	return e.IsActive
}

// ApprovedFilter restricts to entries whose source record passed moderation.
// Always present in a plan; an active-but-unapproved listing must not match,
// or it would count toward totals while never surviving hydration.
type ApprovedFilter struct{}

func (ApprovedFilter) Matches(e *domain.IndexEntry) bool {
	return e.IsApproved
}

// ItemTypeFilter restricts to one entity kind.
type ItemTypeFilter struct {
	Type domain.ItemType
}

func (f ItemTypeFilter) Matches(e *domain.IndexEntry) bool {
	return e.ItemType == f.Type
}

// CategoryFilter is an exact category match.
type CategoryFilter struct {
	Category string
}

func (f CategoryFilter) Matches(e *domain.IndexEntry) bool {
	return strings.EqualFold(e.Category, f.Category)
}

// PriceRangeFilter keeps entries whose price is within [Min, Max]; either
// bound is optional. Entries without a price never match.
type PriceRangeFilter struct {
	Min *float64
	Max *float64
}

func (f PriceRangeFilter) Matches(e *domain.IndexEntry) bool {
	if e.Price == nil {
		return false
	}
	if f.Min != nil && *e.Price < *f.Min {
		return false
	}
	if f.Max != nil && *e.Price > *f.Max {
		return false
	}
	return true
}

// GeoRadiusFilter keeps entries within RadiusKM kilometers of the center,
// measured as great-circle distance. Entries without coordinates never match.
type GeoRadiusFilter struct {
	Lat      float64
	Lng      float64
	RadiusKM float64
}

func (f GeoRadiusFilter) Matches(e *domain.IndexEntry) bool {
	if !e.Location.HasGeo {
		return false
	}
	return HaversineKM(f.Lat, f.Lng, e.Location.Lat, e.Location.Lng) <= f.RadiusKM
}

// CityFilter is the case-insensitive partial city match used when a request
// carries a free-text location instead of a geo center.
type CityFilter struct {
	City string
}

func (f CityFilter) Matches(e *domain.IndexEntry) bool {
	return strings.Contains(strings.ToLower(e.Location.City), strings.ToLower(f.City))
}

// AnyValueFilter keeps entries carrying at least one of the requested values
// in the named multi-valued field (OR within the field; the plan's conjunction
// provides AND across fields).
type AnyValueFilter struct {
	Field  MultiValueField
	Values []string
}

func (f AnyValueFilter) Matches(e *domain.IndexEntry) bool {
	var have []string
	switch f.Field {
	case FieldSkills:
		have = e.Skills
	case FieldTags:
		have = e.Tags
	}
	for _, want := range f.Values {
		for _, got := range have {
			if strings.EqualFold(got, want) {
				return true
			}
		}
	}
	return false
}

// FlagFilter is a boolean attribute equality check.
type FlagFilter struct {
	Field BoolField
	Want  bool
}

func (f FlagFilter) Matches(e *domain.IndexEntry) bool {
	switch f.Field {
	case FieldAcceptsCustomOrders:
		return e.AcceptsCustomOrders == f.Want
	case FieldAcceptsBookings:
		return e.AcceptsBookings == f.Want
	}
	return false
}

// MinRatingFilter keeps entries with rating average at or above the floor.
type MinRatingFilter struct {
	Min float64
}

func (f MinRatingFilter) Matches(e *domain.IndexEntry) bool {
	return e.Rating.Average >= f.Min
}

// AvailabilityFilter is an exact availability match.
type AvailabilityFilter struct {
	Availability domain.Availability
}

func (f AvailabilityFilter) Matches(e *domain.IndexEntry) bool {
	return e.Availability == f.Availability
}

const earthRadiusKM = 6371.0

// HaversineKM returns the great-circle distance between two coordinate pairs
// in kilometers.
func HaversineKM(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKM * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
