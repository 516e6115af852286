package domain

import "time"

// Source entity snapshots. Each kind is owned and persisted by its own
// service; the search service only ever sees full snapshots, delivered on
// lifecycle events and re-fetched at hydration time.

// SourceLocation is the location shape shared by listing and creator records.
type SourceLocation struct {
	City     string   `json:"city"`
	District string   `json:"district,omitempty"`
	Coords   *GeoPair `json:"coordinates,omitempty"`
}

// GeoPair is a raw coordinate pair from a source service.
type GeoPair struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Listing is a sellable good owned by listing-service.
type Listing struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Price       float64        `json:"price"`
	Stock       int            `json:"stock"`
	ImageURLs   []string       `json:"image_urls,omitempty"`
	SellerID    string         `json:"seller_id"`
	SellerName  string         `json:"seller_name,omitempty"`
	Location    SourceLocation `json:"location"`
	Rating      Rating         `json:"rating"`
	IsActive    bool           `json:"is_active"`
	IsApproved  bool           `json:"is_approved"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// PortfolioItem is a creative work sample owned by portfolio-service. Its
// searchable location is its creator's location, not its own.
type PortfolioItem struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	Category            string    `json:"category"`
	Tags                []string  `json:"tags,omitempty"`
	Skills              []string  `json:"skills,omitempty"`
	MediaURLs           []string  `json:"media_urls,omitempty"`
	CreatorID           string    `json:"creator_id"`
	AcceptsCustomOrders bool      `json:"accepts_custom_orders"`
	Rating              Rating    `json:"rating"`
	IsActive            bool      `json:"is_active"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// CreatorProfile is a creator/seller account owned by creator-service.
type CreatorProfile struct {
	ID              string         `json:"id"`
	DisplayName     string         `json:"display_name"`
	Bio             string         `json:"bio"`
	Category        string         `json:"category"`
	Skills          []string       `json:"skills,omitempty"`
	ServiceTypes    []string       `json:"service_types,omitempty"`
	AvatarURL       string         `json:"avatar_url,omitempty"`
	AcceptsBookings bool           `json:"accepts_bookings"`
	IsVerified      bool           `json:"is_verified"`
	Location        SourceLocation `json:"location"`
	Rating          Rating         `json:"rating"`
	IsActive        bool           `json:"is_active"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}
