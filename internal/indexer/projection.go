package indexer

import (
	"strings"

	"github.com/karigor/search-service/internal/domain"
)

// limitedStockThreshold is the stock level at or below which an in-stock
// listing is reported as limited rather than available.
const limitedStockThreshold = 10

// ListingAvailability derives availability from remaining stock.
func ListingAvailability(stock int) domain.Availability {
	switch {
	case stock <= 0:
		return domain.AvailabilityUnavailable
	case stock <= limitedStockThreshold:
		return domain.AvailabilityLimited
	default:
		return domain.AvailabilityAvailable
	}
}

// PortfolioAvailability derives availability from the custom-order flag.
// Portfolio items are work samples, so a creator who is not taking custom
// orders still shows as limited rather than unavailable.
func PortfolioAvailability(acceptsCustomOrders bool) domain.Availability {
	if acceptsCustomOrders {
		return domain.AvailabilityAvailable
	}
	return domain.AvailabilityLimited
}

// CreatorAvailability derives availability from the booking flag.
func CreatorAvailability(acceptsBookings bool) domain.Availability {
	if acceptsBookings {
		return domain.AvailabilityAvailable
	}
	return domain.AvailabilityUnavailable
}

// ProjectListing maps a listing snapshot onto the unified index shape.
func ProjectListing(l *domain.Listing) *domain.IndexEntry {
	price := l.Price
	return &domain.IndexEntry{
		ItemType:     domain.ItemTypeListing,
		ItemID:       l.ID,
		Title:        l.Title,
		Description:  l.Description,
		Category:     normalizeTerm(l.Category),
		Price:        &price,
		Location:     projectLocation(l.Location),
		OwnerID:      l.SellerID,
		Rating:       l.Rating,
		Availability: ListingAvailability(l.Stock),
		IsActive:     l.IsActive,
		IsApproved:   l.IsApproved,
		CreatedAt:    l.CreatedAt,
		LastUpdated:  l.UpdatedAt,
	}
}

// ProjectPortfolioItem maps a portfolio item onto the unified index shape.
// The item's searchable location is its creator's location, passed in by the
// caller after resolving the owner.
func ProjectPortfolioItem(p *domain.PortfolioItem, ownerLocation domain.Location) *domain.IndexEntry {
	return &domain.IndexEntry{
		ItemType:            domain.ItemTypePortfolio,
		ItemID:              p.ID,
		Title:               p.Title,
		Description:         p.Description,
		Category:            normalizeTerm(p.Category),
		Tags:                normalizeTerms(p.Tags),
		Skills:              normalizeTerms(p.Skills),
		Location:            ownerLocation,
		OwnerID:             p.CreatorID,
		Rating:              p.Rating,
		Availability:        PortfolioAvailability(p.AcceptsCustomOrders),
		AcceptsCustomOrders: p.AcceptsCustomOrders,
		IsActive:            p.IsActive,
		IsApproved:          true,
		CreatedAt:           p.CreatedAt,
		LastUpdated:         p.UpdatedAt,
	}
}

// ProjectCreator maps a creator profile onto the unified index shape. Service
// types are folded into tags so a single multi-value filter covers both kinds.
func ProjectCreator(c *domain.CreatorProfile) *domain.IndexEntry {
	return &domain.IndexEntry{
		ItemType:        domain.ItemTypeCreator,
		ItemID:          c.ID,
		Title:           c.DisplayName,
		Description:     c.Bio,
		Category:        normalizeTerm(c.Category),
		Tags:            normalizeTerms(c.ServiceTypes),
		Skills:          normalizeTerms(c.Skills),
		Location:        projectLocation(c.Location),
		OwnerID:         c.ID,
		Rating:          c.Rating,
		Availability:    CreatorAvailability(c.AcceptsBookings),
		AcceptsBookings: c.AcceptsBookings,
		IsActive:        c.IsActive,
		IsApproved:      true,
		CreatedAt:       c.CreatedAt,
		LastUpdated:     c.UpdatedAt,
	}
}

func projectLocation(src domain.SourceLocation) domain.Location {
	loc := domain.Location{
		City:     strings.TrimSpace(src.City),
		District: strings.TrimSpace(src.District),
	}
	if src.Coords != nil {
		loc.Lat = src.Coords.Lat
		loc.Lng = src.Coords.Lng
		loc.HasGeo = true
	}
	return loc
}

func normalizeTerm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeTerms(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		t := normalizeTerm(s)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
