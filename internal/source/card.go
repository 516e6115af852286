package source

import "github.com/karigor/search-service/internal/domain"

// CardFromListing builds the display card for a hydrated listing.
func CardFromListing(l *domain.Listing) *domain.ResultCard {
	price := l.Price
	stock := l.Stock
	card := &domain.ResultCard{
		ItemType:  domain.ItemTypeListing,
		ID:        l.ID,
		Title:     l.Title,
		Price:     &price,
		Stock:     &stock,
		OwnerName: l.SellerName,
		City:      l.Location.City,
		Rating:    l.Rating,
	}
	if len(l.ImageURLs) > 0 {
		card.ImageURL = l.ImageURLs[0]
	}
	return card
}

// CardFromPortfolioItem builds the display card for a hydrated portfolio item.
func CardFromPortfolioItem(p *domain.PortfolioItem) *domain.ResultCard {
	card := &domain.ResultCard{
		ItemType:  domain.ItemTypePortfolio,
		ID:        p.ID,
		Title:     p.Title,
		MediaURLs: p.MediaURLs,
		Tags:      p.Tags,
		Rating:    p.Rating,
	}
	if len(p.MediaURLs) > 0 {
		card.ImageURL = p.MediaURLs[0]
	}
	return card
}

// CardFromCreator builds the display card for a hydrated creator profile.
func CardFromCreator(c *domain.CreatorProfile) *domain.ResultCard {
	return &domain.ResultCard{
		ItemType:     domain.ItemTypeCreator,
		ID:           c.ID,
		Title:        c.DisplayName,
		ImageURL:     c.AvatarURL,
		City:         c.Location.City,
		ServiceTypes: c.ServiceTypes,
		IsVerified:   c.IsVerified,
		Rating:       c.Rating,
	}
}
