package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karigor/search-service/internal/domain"
	enginememory "github.com/karigor/search-service/internal/engine/memory"
	"github.com/karigor/search-service/internal/indexer"
	"github.com/karigor/search-service/internal/source"
	telemetrymemory "github.com/karigor/search-service/internal/telemetry/memory"
)

// fakeStores serves source records from maps, mimicking the owner services.
type fakeStores struct {
	listings  map[string]*domain.Listing
	portfolio map[string]*domain.PortfolioItem
	creators  map[string]*domain.CreatorProfile
}

func (f *fakeStores) GetListing(_ context.Context, id string) (*domain.Listing, error) {
	return f.listings[id], nil
}

func (f *fakeStores) ListListings(_ context.Context, page, perPage int) ([]domain.Listing, int, error) {
	return pageOf(f.listings, page, perPage)
}

func (f *fakeStores) GetPortfolioItem(_ context.Context, id string) (*domain.PortfolioItem, error) {
	return f.portfolio[id], nil
}

func (f *fakeStores) ListPortfolioItems(_ context.Context, page, perPage int) ([]domain.PortfolioItem, int, error) {
	return pageOf(f.portfolio, page, perPage)
}

func (f *fakeStores) GetCreator(_ context.Context, id string) (*domain.CreatorProfile, error) {
	return f.creators[id], nil
}

func (f *fakeStores) ListCreators(_ context.Context, page, perPage int) ([]domain.CreatorProfile, int, error) {
	return pageOf(f.creators, page, perPage)
}

func (f *fakeStores) stores() source.Stores {
	return source.Stores{Listings: f, Portfolio: f, Creators: f}
}

func newFakeStores() *fakeStores {
	return &fakeStores{
		listings:  make(map[string]*domain.Listing),
		portfolio: make(map[string]*domain.PortfolioItem),
		creators:  make(map[string]*domain.CreatorProfile),
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	svc       *SearchService
	engine    *enginememory.Engine
	stores    *fakeStores
	telemetry *telemetrymemory.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	eng := enginememory.New()
	stores := newFakeStores()
	tel := telemetrymemory.New()
	svc := NewSearchService(eng, stores.stores(), tel, Options{
		HydrateTimeout:  time.Second,
		PopularWindow:   24 * time.Hour,
		ReindexPageSize: 2,
	}, testLogger())
	return &fixture{svc: svc, engine: eng, stores: stores, telemetry: tel}
}

// addListing registers the listing with the owner service fake and indexes it.
func (f *fixture) addListing(t *testing.T, l *domain.Listing) {
	t.Helper()
	f.stores.listings[l.ID] = l
	require.NoError(t, f.engine.Upsert(context.Background(), indexer.ProjectListing(l)))
}

func (f *fixture) addCreator(t *testing.T, c *domain.CreatorProfile) {
	t.Helper()
	f.stores.creators[c.ID] = c
	require.NoError(t, f.engine.Upsert(context.Background(), indexer.ProjectCreator(c)))
}

func TestSearchService_Search_HydratesHits(t *testing.T) {
	f := newFixture(t)
	f.addListing(t, &domain.Listing{
		ID:         "lst-1",
		Title:      "Jamdani Saree",
		Category:   "textiles",
		Price:      4500,
		Stock:      8,
		SellerName: "Tanti House",
		ImageURLs:  []string{"https://img/saree.jpg"},
		IsActive:   true,
		IsApproved: true,
	})

	result, err := f.svc.Search(context.Background(), &domain.SearchQuery{Term: "jamdani"})
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)

	card := result.Hits[0].Item
	require.NotNil(t, card)
	assert.Equal(t, "Jamdani Saree", card.Title)
	assert.Equal(t, "Tanti House", card.OwnerName)
	assert.Equal(t, "https://img/saree.jpg", card.ImageURL)
}

func TestSearchService_Search_DropsVanishedHits(t *testing.T) {
	f := newFixture(t)
	f.addListing(t, &domain.Listing{ID: "lst-1", Title: "Brass Lamp", IsActive: true, IsApproved: true})

	// The record disappears from the owner service after indexing.
	delete(f.stores.listings, "lst-1")

	result, err := f.svc.Search(context.Background(), &domain.SearchQuery{Term: "brass"})
	require.NoError(t, err)
	assert.Empty(t, result.Hits)
}

func TestSearchService_Search_DropsDeactivatedHits(t *testing.T) {
	f := newFixture(t)
	f.addListing(t, &domain.Listing{ID: "lst-1", Title: "Brass Lamp", IsActive: true, IsApproved: true})

	// Deactivated upstream but the tombstone event has not arrived yet.
	f.stores.listings["lst-1"].IsActive = false

	result, err := f.svc.Search(context.Background(), &domain.SearchQuery{Term: "brass"})
	require.NoError(t, err)
	assert.Empty(t, result.Hits)
}

func TestSearchService_Search_InvalidPage(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Search(context.Background(), &domain.SearchQuery{Page: -1})
	assert.Error(t, err)
}

func TestSearchService_Search_RecordsTelemetry(t *testing.T) {
	f := newFixture(t)
	f.addListing(t, &domain.Listing{ID: "lst-1", Title: "Clay Pots", Category: "pottery", IsActive: true, IsApproved: true})

	_, err := f.svc.Search(context.Background(), &domain.SearchQuery{Term: "Clay Pots", Category: "pottery"})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return f.telemetry.Len() == 1
	}, time.Second, 10*time.Millisecond)

	popular, err := f.telemetry.PopularQueries(context.Background(), time.Hour, 5)
	require.NoError(t, err)
	require.Len(t, popular, 1)
	assert.Equal(t, "clay pots", popular[0].Query)
}

func TestSearchService_Suggest_ShortTermReturnsEmpty(t *testing.T) {
	f := newFixture(t)
	f.addListing(t, &domain.Listing{ID: "lst-1", Title: "Jamdani", IsActive: true, IsApproved: true})

	for _, term := range []string{"", " ", "j", " j "} {
		suggestions, err := f.svc.Suggest(context.Background(), term, "", 10)
		require.NoError(t, err)
		assert.Empty(t, suggestions)
	}
}

func TestSearchService_Suggest(t *testing.T) {
	f := newFixture(t)
	f.addListing(t, &domain.Listing{ID: "lst-1", Title: "Jamdani Saree", Category: "textiles", IsActive: true, IsApproved: true})
	f.addListing(t, &domain.Listing{ID: "lst-2", Title: "Jamdani Saree", Category: "textiles", IsActive: true, IsApproved: true})
	f.addCreator(t, &domain.CreatorProfile{ID: "cr-1", DisplayName: "Jamdani Weavers Guild", IsActive: true})

	suggestions, err := f.svc.Suggest(context.Background(), "jam", "", 10)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)

	// Duplicate titles collapse into one suggestion with a count.
	byTitle := make(map[string]domain.Suggestion)
	for _, sug := range suggestions {
		byTitle[sug.Title] = sug
	}
	assert.Equal(t, 2, byTitle["Jamdani Saree"].Count)
	assert.Equal(t, 1, byTitle["Jamdani Weavers Guild"].Count)
}

func TestSearchService_Facets(t *testing.T) {
	f := newFixture(t)
	f.addListing(t, &domain.Listing{ID: "lst-1", Title: "Saree", Category: "textiles", Price: 4500, Stock: 2, IsActive: true, IsApproved: true})
	f.addListing(t, &domain.Listing{ID: "lst-2", Title: "Shawl", Category: "textiles", Price: 1500, Stock: 9, IsActive: true, IsApproved: true})

	facets, err := f.svc.Facets(context.Background(), domain.ItemTypeListing)
	require.NoError(t, err)
	require.NotNil(t, facets)
	require.Len(t, facets.Categories, 1)
	assert.Equal(t, "textiles", facets.Categories[0].Value)
	assert.Equal(t, 2, facets.Categories[0].Count)
	assert.Equal(t, 1500.0, facets.Price.Min)
	assert.Equal(t, 4500.0, facets.Price.Max)
}

func TestSearchService_Popular(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 3; i++ {
		require.NoError(t, f.telemetry.Record(context.Background(), &domain.TelemetryEvent{Query: "pottery"}))
	}
	require.NoError(t, f.telemetry.Record(context.Background(), &domain.TelemetryEvent{Query: "saree"}))

	popular, err := f.svc.Popular(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, popular, 2)
	assert.Equal(t, "pottery", popular[0].Query)
	assert.Equal(t, 3, popular[0].Count)
}
