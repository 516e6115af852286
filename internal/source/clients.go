package source

import (
	"context"
	"log/slog"

	"github.com/karigor/search-service/internal/domain"
)

// ListingClient is the HTTP ListingStore backed by listing-service.
type ListingClient struct {
	*serviceClient
}

// NewListingClient creates a listing-service client rooted at baseURL.
func NewListingClient(baseURL string, logger *slog.Logger) *ListingClient {
	return &ListingClient{serviceClient: newServiceClient(baseURL, "listing-service", logger)}
}

func (c *ListingClient) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	var env envelope[domain.Listing]
	found, err := c.getJSON(ctx, "/api/v1/listings/"+id, &env)
	if err != nil || !found {
		return nil, err
	}
	return &env.Data, nil
}

func (c *ListingClient) ListListings(ctx context.Context, page, perPage int) ([]domain.Listing, int, error) {
	var env pageEnvelope[domain.Listing]
	if err := c.listJSON(ctx, "/api/v1/listings", page, perPage, &env); err != nil {
		return nil, 0, err
	}
	return env.Data.Data, env.Data.TotalCount, nil
}

// PortfolioClient is the HTTP PortfolioStore backed by portfolio-service.
type PortfolioClient struct {
	*serviceClient
}

// NewPortfolioClient creates a portfolio-service client rooted at baseURL.
func NewPortfolioClient(baseURL string, logger *slog.Logger) *PortfolioClient {
	return &PortfolioClient{serviceClient: newServiceClient(baseURL, "portfolio-service", logger)}
}

func (c *PortfolioClient) GetPortfolioItem(ctx context.Context, id string) (*domain.PortfolioItem, error) {
	var env envelope[domain.PortfolioItem]
	found, err := c.getJSON(ctx, "/api/v1/portfolio-items/"+id, &env)
	if err != nil || !found {
		return nil, err
	}
	return &env.Data, nil
}

func (c *PortfolioClient) ListPortfolioItems(ctx context.Context, page, perPage int) ([]domain.PortfolioItem, int, error) {
	var env pageEnvelope[domain.PortfolioItem]
	if err := c.listJSON(ctx, "/api/v1/portfolio-items", page, perPage, &env); err != nil {
		return nil, 0, err
	}
	return env.Data.Data, env.Data.TotalCount, nil
}

// CreatorClient is the HTTP CreatorStore backed by creator-service.
type CreatorClient struct {
	*serviceClient
}

// NewCreatorClient creates a creator-service client rooted at baseURL.
func NewCreatorClient(baseURL string, logger *slog.Logger) *CreatorClient {
	return &CreatorClient{serviceClient: newServiceClient(baseURL, "creator-service", logger)}
}

func (c *CreatorClient) GetCreator(ctx context.Context, id string) (*domain.CreatorProfile, error) {
	var env envelope[domain.CreatorProfile]
	found, err := c.getJSON(ctx, "/api/v1/creators/"+id, &env)
	if err != nil || !found {
		return nil, err
	}
	return &env.Data, nil
}

func (c *CreatorClient) ListCreators(ctx context.Context, page, perPage int) ([]domain.CreatorProfile, int, error) {
	var env pageEnvelope[domain.CreatorProfile]
	if err := c.listJSON(ctx, "/api/v1/creators", page, perPage, &env); err != nil {
		return nil, 0, err
	}
	return env.Data.Data, env.Data.TotalCount, nil
}
