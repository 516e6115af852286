package domain

// Sort options for search results.
const (
	SortRelevance = "relevance"
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortRating    = "rating"
)

// ValidSortOptions returns the list of valid sort options.
func ValidSortOptions() []string {
	return []string{SortRelevance, SortNewest, SortPriceAsc, SortPriceDesc, SortRating}
}

// IsValidSort checks whether the given sort string is a valid sort option.
func IsValidSort(sort string) bool {
	for _, s := range ValidSortOptions() {
		if s == sort {
			return true
		}
	}
	return false
}

// GeoCircle is a geo-radius constraint: entries within RadiusKM kilometers of
// the center, measured as great-circle distance.
type GeoCircle struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	RadiusKM float64 `json:"radius_km"`
}

// SearchQuery holds all parameters of one search request. It is an ephemeral
// request value; optional filters are nil when not requested. An empty Term is
// a valid pure-filter browse.
type SearchQuery struct {
	Term                string        `json:"term"`
	ItemType            ItemType      `json:"item_type,omitempty"` // empty = all kinds
	Category            string        `json:"category,omitempty"`
	MinPrice            *float64      `json:"min_price,omitempty"`
	MaxPrice            *float64      `json:"max_price,omitempty"`
	Geo                 *GeoCircle    `json:"geo,omitempty"`
	LocationText        string        `json:"location_text,omitempty"` // city fallback when no geo center
	Skills              []string      `json:"skills,omitempty"`
	Tags                []string      `json:"tags,omitempty"`
	AcceptsCustomOrders *bool         `json:"accepts_custom_orders,omitempty"`
	AcceptsBookings     *bool         `json:"accepts_bookings,omitempty"`
	MinRating           *float64      `json:"min_rating,omitempty"`
	Availability        *Availability `json:"availability,omitempty"`
	SortBy              string        `json:"sort_by"`
	Page                int           `json:"page"`
	Limit               int           `json:"limit"`
}

// Hit is one scored index match, optionally carrying the hydrated source
// record for result-card display.
type Hit struct {
	Entry IndexEntry  `json:"entry"`
	Score float64     `json:"score"`
	Item  *ResultCard `json:"item,omitempty"`
}

// SearchResult holds one page of scored, hydrated matches.
type SearchResult struct {
	Hits       []Hit `json:"hits"`
	Total      int   `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
	TookMs     int64 `json:"took_ms"`
}

// ResultCard is the display projection of a hydrated source record. Fields
// irrelevant for a given entity kind stay zero-valued and are omitted from
// the JSON encoding.
type ResultCard struct {
	ItemType     ItemType `json:"item_type"`
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	ImageURL     string   `json:"image_url,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	Stock        *int     `json:"stock,omitempty"`
	OwnerName    string   `json:"owner_name,omitempty"`
	City         string   `json:"city,omitempty"`
	MediaURLs    []string `json:"media_urls,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	ServiceTypes []string `json:"service_types,omitempty"`
	IsVerified   bool     `json:"is_verified,omitempty"`
	Rating       Rating   `json:"rating"`
}
