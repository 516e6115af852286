package indexer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karigor/search-service/internal/domain"
)

func TestListingAvailability(t *testing.T) {
	tests := []struct {
		name  string
		stock int
		want  domain.Availability
	}{
		{"plenty of stock", 50, domain.AvailabilityAvailable},
		{"just above threshold", 11, domain.AvailabilityAvailable},
		{"at threshold", 10, domain.AvailabilityLimited},
		{"single unit", 1, domain.AvailabilityLimited},
		{"out of stock", 0, domain.AvailabilityUnavailable},
		{"negative stock", -3, domain.AvailabilityUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ListingAvailability(tt.stock))
		})
	}
}

func TestProjectListing(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	updated := created.Add(48 * time.Hour)

	l := &domain.Listing{
		ID:          "lst-1",
		Title:       "Jamdani Saree",
		Description: "Handwoven jamdani from Narayanganj",
		Category:    "Textiles",
		Price:       4500,
		Stock:       3,
		SellerID:    "seller-9",
		Location: domain.SourceLocation{
			City:     "Dhaka",
			District: "Narayanganj",
			Coords:   &domain.GeoPair{Lat: 23.79, Lng: 90.41},
		},
		Rating:     domain.Rating{Average: 4.6, Count: 31},
		IsActive:   true,
		IsApproved: true,
		CreatedAt:  created,
		UpdatedAt:  updated,
	}

	entry := ProjectListing(l)

	assert.Equal(t, domain.ItemTypeListing, entry.ItemType)
	assert.Equal(t, "lst-1", entry.ItemID)
	assert.Equal(t, "listing:lst-1", entry.DocID())
	assert.Equal(t, "Jamdani Saree", entry.Title)
	assert.Equal(t, "textiles", entry.Category)
	require.NotNil(t, entry.Price)
	assert.Equal(t, 4500.0, *entry.Price)
	assert.Equal(t, "seller-9", entry.OwnerID)
	assert.Equal(t, domain.AvailabilityLimited, entry.Availability)
	assert.True(t, entry.Location.HasGeo)
	assert.Equal(t, 23.79, entry.Location.Lat)
	assert.Equal(t, 90.41, entry.Location.Lng)
	assert.Equal(t, updated, entry.LastUpdated)
}

func TestProjectListing_NoCoordinates(t *testing.T) {
	l := &domain.Listing{
		ID:       "lst-2",
		Title:    "Clay Pots",
		Location: domain.SourceLocation{City: "Bogura"},
	}

	entry := ProjectListing(l)

	assert.False(t, entry.Location.HasGeo)
	assert.Equal(t, "Bogura", entry.Location.City)
}

func TestProjectPortfolioItem(t *testing.T) {
	p := &domain.PortfolioItem{
		ID:                  "pf-1",
		Title:               "Rickshaw Art Mural",
		Description:         "Commissioned wall mural",
		Category:            "Painting",
		Tags:                []string{"Mural", "mural", " Street-Art ", ""},
		Skills:              []string{"Acrylic", "Brushwork"},
		CreatorID:           "cr-7",
		AcceptsCustomOrders: true,
		Rating:              domain.Rating{Average: 4.9, Count: 12},
		IsActive:            true,
	}
	ownerLoc := domain.Location{City: "Chattogram", Lat: 22.35, Lng: 91.78, HasGeo: true}

	entry := ProjectPortfolioItem(p, ownerLoc)

	assert.Equal(t, domain.ItemTypePortfolio, entry.ItemType)
	assert.Nil(t, entry.Price)
	assert.Equal(t, ownerLoc, entry.Location)
	assert.Equal(t, "cr-7", entry.OwnerID)
	assert.Equal(t, []string{"mural", "street-art"}, entry.Tags)
	assert.Equal(t, []string{"acrylic", "brushwork"}, entry.Skills)
	assert.Equal(t, domain.AvailabilityAvailable, entry.Availability)
	assert.True(t, entry.AcceptsCustomOrders)
	assert.True(t, entry.IsApproved)
}

func TestProjectPortfolioItem_NoCustomOrders(t *testing.T) {
	p := &domain.PortfolioItem{ID: "pf-2", Title: "Sketchbook"}

	entry := ProjectPortfolioItem(p, domain.Location{})

	assert.Equal(t, domain.AvailabilityLimited, entry.Availability)
}

func TestProjectCreator(t *testing.T) {
	c := &domain.CreatorProfile{
		ID:              "cr-7",
		DisplayName:     "Anika Rahman",
		Bio:             "Textile artist and weaver",
		Category:        "Textiles",
		Skills:          []string{"Weaving", "Dyeing"},
		ServiceTypes:    []string{"Commission", "Workshop"},
		AcceptsBookings: false,
		IsVerified:      true,
		Location:        domain.SourceLocation{City: "Dhaka", Coords: &domain.GeoPair{Lat: 23.8, Lng: 90.4}},
		Rating:          domain.Rating{Average: 4.7, Count: 58},
		IsActive:        true,
	}

	entry := ProjectCreator(c)

	assert.Equal(t, domain.ItemTypeCreator, entry.ItemType)
	assert.Equal(t, "Anika Rahman", entry.Title)
	assert.Equal(t, "cr-7", entry.OwnerID)
	assert.Equal(t, []string{"commission", "workshop"}, entry.Tags)
	assert.Equal(t, []string{"weaving", "dyeing"}, entry.Skills)
	assert.Equal(t, domain.AvailabilityUnavailable, entry.Availability)
	assert.False(t, entry.AcceptsBookings)
	assert.True(t, entry.Location.HasGeo)
}
