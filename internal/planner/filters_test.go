package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/karigor/search-service/internal/domain"
)

func TestPriceRangeFilter(t *testing.T) {
	price := 1200.0
	entry := &domain.IndexEntry{Price: &price}

	tests := []struct {
		name string
		min  *float64
		max  *float64
		want bool
	}{
		{"within both bounds", floatPtr(1000), floatPtr(2000), true},
		{"below min", floatPtr(1500), nil, false},
		{"above max", nil, floatPtr(1000), false},
		{"min only satisfied", floatPtr(1200), nil, true},
		{"max only satisfied", nil, floatPtr(1200), true},
		{"no bounds", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := PriceRangeFilter{Min: tt.min, Max: tt.max}
			assert.Equal(t, tt.want, f.Matches(entry))
		})
	}
}

func TestPriceRangeFilter_NoPriceNeverMatches(t *testing.T) {
	f := PriceRangeFilter{Min: floatPtr(0)}
	assert.False(t, f.Matches(&domain.IndexEntry{}))
}

func TestApprovedFilter(t *testing.T) {
	f := ApprovedFilter{}
	assert.True(t, f.Matches(&domain.IndexEntry{IsApproved: true}))
	assert.False(t, f.Matches(&domain.IndexEntry{IsActive: true}))
}

func TestCategoryFilter_CaseInsensitive(t *testing.T) {
	f := CategoryFilter{Category: "Textiles"}
	assert.True(t, f.Matches(&domain.IndexEntry{Category: "textiles"}))
	assert.False(t, f.Matches(&domain.IndexEntry{Category: "pottery"}))
}

func TestCityFilter_PartialMatch(t *testing.T) {
	entry := &domain.IndexEntry{
		Location: domain.Location{City: "Chattogram"},
	}

	assert.True(t, CityFilter{City: "chatto"}.Matches(entry))
	assert.True(t, CityFilter{City: "Chattogram"}.Matches(entry))
	assert.False(t, CityFilter{City: "Sylhet"}.Matches(entry))
}

func TestGeoRadiusFilter(t *testing.T) {
	// Dhaka center; Narayanganj is roughly 17 km away, Chattogram ~215 km.
	dhaka := GeoRadiusFilter{Lat: 23.8103, Lng: 90.4125, RadiusKM: 50}

	narayanganj := &domain.IndexEntry{
		Location: domain.Location{Lat: 23.6238, Lng: 90.4990, HasGeo: true},
	}
	chattogram := &domain.IndexEntry{
		Location: domain.Location{Lat: 22.3569, Lng: 91.7832, HasGeo: true},
	}
	noGeo := &domain.IndexEntry{
		Location: domain.Location{City: "Dhaka"},
	}

	assert.True(t, dhaka.Matches(narayanganj))
	assert.False(t, dhaka.Matches(chattogram))
	assert.False(t, dhaka.Matches(noGeo))
}

func TestHaversineKM(t *testing.T) {
	// Dhaka to Chattogram is about 215 km great-circle.
	d := HaversineKM(23.8103, 90.4125, 22.3569, 91.7832)
	assert.InDelta(t, 215, d, 10)

	// Identical points.
	assert.InDelta(t, 0, HaversineKM(23.8103, 90.4125, 23.8103, 90.4125), 0.001)
}

func TestAnyValueFilter(t *testing.T) {
	entry := &domain.IndexEntry{
		Skills: []string{"weaving", "dyeing"},
		Tags:   []string{"handmade", "eco-friendly"},
	}

	assert.True(t, AnyValueFilter{Field: FieldSkills, Values: []string{"pottery", "weaving"}}.Matches(entry))
	assert.False(t, AnyValueFilter{Field: FieldSkills, Values: []string{"pottery"}}.Matches(entry))
	assert.True(t, AnyValueFilter{Field: FieldTags, Values: []string{"Handmade"}}.Matches(entry))
	assert.False(t, AnyValueFilter{Field: FieldTags, Values: []string{"vintage"}}.Matches(entry))
}

func TestFlagFilter(t *testing.T) {
	entry := &domain.IndexEntry{
		AcceptsCustomOrders: true,
		AcceptsBookings:     false,
	}

	assert.True(t, FlagFilter{Field: FieldAcceptsCustomOrders, Want: true}.Matches(entry))
	assert.False(t, FlagFilter{Field: FieldAcceptsCustomOrders, Want: false}.Matches(entry))
	assert.True(t, FlagFilter{Field: FieldAcceptsBookings, Want: false}.Matches(entry))
}

func TestMinRatingFilter(t *testing.T) {
	entry := &domain.IndexEntry{Rating: domain.Rating{Average: 4.2}}

	assert.True(t, MinRatingFilter{Min: 4.0}.Matches(entry))
	assert.True(t, MinRatingFilter{Min: 4.2}.Matches(entry))
	assert.False(t, MinRatingFilter{Min: 4.5}.Matches(entry))
}

func TestAvailabilityFilter(t *testing.T) {
	entry := &domain.IndexEntry{Availability: domain.AvailabilityLimited}

	assert.True(t, AvailabilityFilter{Availability: domain.AvailabilityLimited}.Matches(entry))
	assert.False(t, AvailabilityFilter{Availability: domain.AvailabilityAvailable}.Matches(entry))
}
