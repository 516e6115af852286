package elasticsearch

import (
	"time"

	"github.com/karigor/search-service/internal/domain"
)

// document is the Elasticsearch representation of an index entry. It differs
// from the domain shape only in the location block, where coordinates are
// stored as a geo_point for geo_distance queries.
type document struct {
	ItemType            domain.ItemType     `json:"item_type"`
	ItemID              string              `json:"item_id"`
	Title               string              `json:"title"`
	Description         string              `json:"description"`
	Category            string              `json:"category"`
	Tags                []string            `json:"tags"`
	Skills              []string            `json:"skills"`
	Price               *float64            `json:"price,omitempty"`
	Location            docLocation         `json:"location"`
	OwnerID             string              `json:"owner_id"`
	Rating              domain.Rating       `json:"rating"`
	Availability        domain.Availability `json:"availability"`
	AcceptsCustomOrders bool                `json:"accepts_custom_orders"`
	AcceptsBookings     bool                `json:"accepts_bookings"`
	IsActive            bool                `json:"is_active"`
	IsApproved          bool                `json:"is_approved"`
	CreatedAt           time.Time           `json:"created_at"`
	LastUpdated         time.Time           `json:"last_updated"`
}

type docLocation struct {
	City     string    `json:"city"`
	District string    `json:"district,omitempty"`
	Point    *geoPoint `json:"point,omitempty"`
	HasGeo   bool      `json:"has_geo"`
}

type geoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func toDocument(e *domain.IndexEntry) document {
	loc := docLocation{
		City:     e.Location.City,
		District: e.Location.District,
		HasGeo:   e.Location.HasGeo,
	}
	if e.Location.HasGeo {
		loc.Point = &geoPoint{Lat: e.Location.Lat, Lon: e.Location.Lng}
	}
	return document{
		ItemType:            e.ItemType,
		ItemID:              e.ItemID,
		Title:               e.Title,
		Description:         e.Description,
		Category:            e.Category,
		Tags:                e.Tags,
		Skills:              e.Skills,
		Price:               e.Price,
		Location:            loc,
		OwnerID:             e.OwnerID,
		Rating:              e.Rating,
		Availability:        e.Availability,
		AcceptsCustomOrders: e.AcceptsCustomOrders,
		AcceptsBookings:     e.AcceptsBookings,
		IsActive:            e.IsActive,
		IsApproved:          e.IsApproved,
		CreatedAt:           e.CreatedAt,
		LastUpdated:         e.LastUpdated,
	}
}

func toEntry(d document) domain.IndexEntry {
	loc := domain.Location{
		City:     d.Location.City,
		District: d.Location.District,
		HasGeo:   d.Location.HasGeo,
	}
	if d.Location.Point != nil {
		loc.Lat = d.Location.Point.Lat
		loc.Lng = d.Location.Point.Lon
	}
	return domain.IndexEntry{
		ItemType:            d.ItemType,
		ItemID:              d.ItemID,
		Title:               d.Title,
		Description:         d.Description,
		Category:            d.Category,
		Tags:                d.Tags,
		Skills:              d.Skills,
		Price:               d.Price,
		Location:            loc,
		OwnerID:             d.OwnerID,
		Rating:              d.Rating,
		Availability:        d.Availability,
		AcceptsCustomOrders: d.AcceptsCustomOrders,
		AcceptsBookings:     d.AcceptsBookings,
		IsActive:            d.IsActive,
		IsApproved:          d.IsApproved,
		CreatedAt:           d.CreatedAt,
		LastUpdated:         d.LastUpdated,
	}
}
