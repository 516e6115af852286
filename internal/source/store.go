// Package source talks to the services that own the indexed entities. The
// search index is never authoritative: result cards are hydrated from these
// stores at read time, and full reindexes page through their list endpoints.
package source

import (
	"context"

	"github.com/karigor/search-service/internal/domain"
)

// ListingStore reads listings from listing-service. Get returns (nil, nil)
// when the listing does not exist.
type ListingStore interface {
	GetListing(ctx context.Context, id string) (*domain.Listing, error)
	ListListings(ctx context.Context, page, perPage int) ([]domain.Listing, int, error)
}

// PortfolioStore reads portfolio items from portfolio-service.
type PortfolioStore interface {
	GetPortfolioItem(ctx context.Context, id string) (*domain.PortfolioItem, error)
	ListPortfolioItems(ctx context.Context, page, perPage int) ([]domain.PortfolioItem, int, error)
}

// CreatorStore reads creator profiles from creator-service.
type CreatorStore interface {
	GetCreator(ctx context.Context, id string) (*domain.CreatorProfile, error)
	ListCreators(ctx context.Context, page, perPage int) ([]domain.CreatorProfile, int, error)
}

// Stores bundles the three entity stores for callers that need all of them.
type Stores struct {
	Listings  ListingStore
	Portfolio PortfolioStore
	Creators  CreatorStore
}
