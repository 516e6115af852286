package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/karigor/search-service/internal/domain"
	"github.com/karigor/search-service/internal/indexer"
)

// ReindexResult summarizes one full rebuild.
type ReindexResult struct {
	Listings       int           `json:"listings"`
	PortfolioItems int           `json:"portfolio_items"`
	Creators       int           `json:"creators"`
	Took           time.Duration `json:"-"`
}

// Total returns the number of entries written.
func (r *ReindexResult) Total() int {
	return r.Listings + r.PortfolioItems + r.Creators
}

// Reindex rebuilds the index from the owner services, paging through their
// list endpoints and bulk-writing projections. Creators go first so portfolio
// items can inherit locations from the same pass without per-item lookups.
func (s *SearchService) Reindex(ctx context.Context) (*ReindexResult, error) {
	start := time.Now()
	result := &ReindexResult{}
	creatorLocations := make(map[string]domain.Location)

	for page := 1; ; page++ {
		creators, total, err := s.stores.Creators.ListCreators(ctx, page, s.opts.ReindexPageSize)
		if err != nil {
			return nil, fmt.Errorf("reindex: list creators page %d: %w", page, err)
		}
		if len(creators) == 0 {
			break
		}

		entries := make([]domain.IndexEntry, 0, len(creators))
		for i := range creators {
			entry := indexer.ProjectCreator(&creators[i])
			creatorLocations[creators[i].ID] = entry.Location
			entries = append(entries, *entry)
		}
		if err := s.engine.BulkUpsert(ctx, entries); err != nil {
			return nil, fmt.Errorf("reindex: bulk upsert creators page %d: %w", page, err)
		}
		result.Creators += len(entries)

		if result.Creators >= total {
			break
		}
	}

	for page := 1; ; page++ {
		listings, total, err := s.stores.Listings.ListListings(ctx, page, s.opts.ReindexPageSize)
		if err != nil {
			return nil, fmt.Errorf("reindex: list listings page %d: %w", page, err)
		}
		if len(listings) == 0 {
			break
		}

		entries := make([]domain.IndexEntry, 0, len(listings))
		for i := range listings {
			entries = append(entries, *indexer.ProjectListing(&listings[i]))
		}
		if err := s.engine.BulkUpsert(ctx, entries); err != nil {
			return nil, fmt.Errorf("reindex: bulk upsert listings page %d: %w", page, err)
		}
		result.Listings += len(entries)

		if result.Listings >= total {
			break
		}
	}

	for page := 1; ; page++ {
		items, total, err := s.stores.Portfolio.ListPortfolioItems(ctx, page, s.opts.ReindexPageSize)
		if err != nil {
			return nil, fmt.Errorf("reindex: list portfolio items page %d: %w", page, err)
		}
		if len(items) == 0 {
			break
		}

		entries := make([]domain.IndexEntry, 0, len(items))
		for i := range items {
			loc, err := s.ownerLocation(ctx, items[i].CreatorID, creatorLocations)
			if err != nil {
				return nil, fmt.Errorf("reindex: resolve creator for item %s: %w", items[i].ID, err)
			}
			entries = append(entries, *indexer.ProjectPortfolioItem(&items[i], loc))
		}
		if err := s.engine.BulkUpsert(ctx, entries); err != nil {
			return nil, fmt.Errorf("reindex: bulk upsert portfolio items page %d: %w", page, err)
		}
		result.PortfolioItems += len(entries)

		if result.PortfolioItems >= total {
			break
		}
	}

	result.Took = time.Since(start)
	s.logger.InfoContext(ctx, "reindex completed",
		slog.Int("listings", result.Listings),
		slog.Int("portfolio_items", result.PortfolioItems),
		slog.Int("creators", result.Creators),
		slog.Duration("took", result.Took),
	)
	return result, nil
}

// ownerLocation resolves a creator's location from the reindex cache, falling
// back to a direct lookup for creators missing from the list pass.
func (s *SearchService) ownerLocation(ctx context.Context, creatorID string, cache map[string]domain.Location) (domain.Location, error) {
	if creatorID == "" {
		return domain.Location{}, nil
	}
	if loc, ok := cache[creatorID]; ok {
		return loc, nil
	}

	creator, err := s.stores.Creators.GetCreator(ctx, creatorID)
	if err != nil {
		return domain.Location{}, err
	}
	if creator == nil {
		cache[creatorID] = domain.Location{}
		return domain.Location{}, nil
	}

	loc := indexer.ProjectCreator(creator).Location
	cache[creatorID] = loc
	return loc, nil
}
