package domain

import (
	"fmt"
	"time"
)

// ItemType discriminates the three source entity kinds behind the unified index.
type ItemType string

const (
	ItemTypeListing   ItemType = "listing"
	ItemTypePortfolio ItemType = "portfolio"
	ItemTypeCreator   ItemType = "creator"
)

// ValidItemTypes returns the list of indexable entity kinds.
func ValidItemTypes() []ItemType {
	return []ItemType{ItemTypeListing, ItemTypePortfolio, ItemTypeCreator}
}

// IsValidItemType checks whether the given string names a known entity kind.
func IsValidItemType(s string) bool {
	switch ItemType(s) {
	case ItemTypeListing, ItemTypePortfolio, ItemTypeCreator:
		return true
	}
	return false
}

// Availability is derived from type-specific stock/capacity rules at
// projection time and stored denormalized on the index entry.
type Availability string

const (
	AvailabilityAvailable   Availability = "available"
	AvailabilityLimited     Availability = "limited"
	AvailabilityUnavailable Availability = "unavailable"
)

// ValidAvailabilities returns the availability values a query may filter on.
func ValidAvailabilities() []Availability {
	return []Availability{AvailabilityAvailable, AvailabilityLimited, AvailabilityUnavailable}
}

// Location holds the searchable location of an index entry. HasGeo reports
// whether Lat/Lng carry real coordinates; entries without coordinates are
// excluded from geo-radius filtering but still match city text filters.
type Location struct {
	City     string  `json:"city"`
	District string  `json:"district,omitempty"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	HasGeo   bool    `json:"has_geo"`
}

// Rating is a precomputed aggregate consumed from the source entity.
type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// IndexEntry is the unified, read-optimized projection of a source entity.
// It is written exclusively by the synchronizer and is never the authoritative
// record for any field: display data is re-fetched from the source service at
// read time, while filterable and sortable fields live here for scan efficiency.
type IndexEntry struct {
	ItemType            ItemType     `json:"item_type"`
	ItemID              string       `json:"item_id"`
	Title               string       `json:"title"`
	Description         string       `json:"description"`
	Category            string       `json:"category"`
	Tags                []string     `json:"tags"`
	Skills              []string     `json:"skills"`
	Price               *float64     `json:"price,omitempty"`
	Location            Location     `json:"location"`
	OwnerID             string       `json:"owner_id"`
	Rating              Rating       `json:"rating"`
	Availability        Availability `json:"availability"`
	AcceptsCustomOrders bool         `json:"accepts_custom_orders"`
	AcceptsBookings     bool         `json:"accepts_bookings"`
	IsActive            bool         `json:"is_active"`
	IsApproved          bool         `json:"is_approved"`
	CreatedAt           time.Time    `json:"created_at"`
	LastUpdated         time.Time    `json:"last_updated"`
}

// DocID returns the index document identifier. The (item_type, item_id) pair
// is the entry's identity; concurrent upserts to the same pair are serialized
// by the index store's per-document atomicity.
func (e *IndexEntry) DocID() string {
	return DocID(e.ItemType, e.ItemID)
}

// DocID builds the index document identifier for an entity reference.
func DocID(itemType ItemType, itemID string) string {
	return fmt.Sprintf("%s:%s", itemType, itemID)
}
