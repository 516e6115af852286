package source

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karigor/search-service/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestListingClient_GetListing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/listings/lst-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": domain.Listing{ID: "lst-1", Title: "Brass Lamp", Price: 1200, Stock: 4},
		})
	}))
	defer srv.Close()

	client := NewListingClient(srv.URL, testLogger())
	l, err := client.GetListing(context.Background(), "lst-1")
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Equal(t, "Brass Lamp", l.Title)
	assert.Equal(t, 1200.0, l.Price)
}

func TestListingClient_GetListing_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewListingClient(srv.URL, testLogger())
	l, err := client.GetListing(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, l)
}

func TestListingClient_ListListings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/listings", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "50", r.URL.Query().Get("per_page"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"data":        []domain.Listing{{ID: "a"}, {ID: "b"}},
				"total_count": 120,
			},
		})
	}))
	defer srv.Close()

	client := NewListingClient(srv.URL, testLogger())
	listings, total, err := client.ListListings(context.Background(), 2, 50)
	require.NoError(t, err)
	assert.Len(t, listings, 2)
	assert.Equal(t, 120, total)
}

func TestCreatorClient_GetCreator_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"code": "INVALID_INPUT", "message": "bad id"},
		})
	}))
	defer srv.Close()

	client := NewCreatorClient(srv.URL, testLogger())
	c, err := client.GetCreator(context.Background(), "bad id")
	require.Error(t, err)
	assert.Nil(t, c)
}

func TestPortfolioClient_GetPortfolioItem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/portfolio-items/pf-1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": domain.PortfolioItem{ID: "pf-1", Title: "Mural", CreatorID: "cr-1"},
		})
	}))
	defer srv.Close()

	client := NewPortfolioClient(srv.URL, testLogger())
	p, err := client.GetPortfolioItem(context.Background(), "pf-1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "cr-1", p.CreatorID)
}

func TestCardFromListing(t *testing.T) {
	l := &domain.Listing{
		ID:         "lst-1",
		Title:      "Brass Lamp",
		Price:      1200,
		Stock:      4,
		ImageURLs:  []string{"https://img/1.jpg", "https://img/2.jpg"},
		SellerName: "Karim Metals",
		Location:   domain.SourceLocation{City: "Dhaka"},
		Rating:     domain.Rating{Average: 4.2, Count: 9},
	}

	card := CardFromListing(l)

	assert.Equal(t, domain.ItemTypeListing, card.ItemType)
	assert.Equal(t, "https://img/1.jpg", card.ImageURL)
	require.NotNil(t, card.Price)
	assert.Equal(t, 1200.0, *card.Price)
	require.NotNil(t, card.Stock)
	assert.Equal(t, 4, *card.Stock)
	assert.Equal(t, "Karim Metals", card.OwnerName)
}

func TestCardFromCreator(t *testing.T) {
	c := &domain.CreatorProfile{
		ID:           "cr-1",
		DisplayName:  "Anika Rahman",
		AvatarURL:    "https://img/avatar.jpg",
		ServiceTypes: []string{"commission"},
		IsVerified:   true,
		Location:     domain.SourceLocation{City: "Sylhet"},
	}

	card := CardFromCreator(c)

	assert.Equal(t, domain.ItemTypeCreator, card.ItemType)
	assert.Equal(t, "Anika Rahman", card.Title)
	assert.True(t, card.IsVerified)
	assert.Equal(t, "Sylhet", card.City)
	assert.Nil(t, card.Price)
}
