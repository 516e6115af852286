// Package service implements the search business logic: planning, execution,
// hydration, suggestions, facets, trending queries, and full reindex.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/karigor/search-service/internal/domain"
	"github.com/karigor/search-service/internal/engine"
	"github.com/karigor/search-service/internal/planner"
	"github.com/karigor/search-service/internal/source"
	"github.com/karigor/search-service/internal/telemetry"
	"github.com/karigor/search-service/pkg/logger"
)

// minSuggestTermLength is the minimum number of runes before suggestions run.
const minSuggestTermLength = 2

// Options tunes the search service.
type Options struct {
	// HydrateTimeout bounds each per-hit source lookup.
	HydrateTimeout time.Duration
	// PopularWindow is the trailing window for trending queries.
	PopularWindow time.Duration
	// ReindexPageSize is how many records each reindex page fetches.
	ReindexPageSize int
}

// DefaultOptions returns the production tuning.
func DefaultOptions() Options {
	return Options{
		HydrateTimeout:  2 * time.Second,
		PopularWindow:   7 * 24 * time.Hour,
		ReindexPageSize: 100,
	}
}

// SearchService coordinates the query path. The engine answers which entries
// match; the source stores answer what the matches currently look like.
type SearchService struct {
	engine    engine.Engine
	stores    source.Stores
	telemetry telemetry.Store
	opts      Options
	logger    *slog.Logger
}

// NewSearchService creates the search service.
func NewSearchService(eng engine.Engine, stores source.Stores, tel telemetry.Store, opts Options, logger *slog.Logger) *SearchService {
	if opts.HydrateTimeout <= 0 {
		opts.HydrateTimeout = DefaultOptions().HydrateTimeout
	}
	if opts.PopularWindow <= 0 {
		opts.PopularWindow = DefaultOptions().PopularWindow
	}
	if opts.ReindexPageSize <= 0 {
		opts.ReindexPageSize = DefaultOptions().ReindexPageSize
	}
	return &SearchService{
		engine:    eng,
		stores:    stores,
		telemetry: tel,
		opts:      opts,
		logger:    logger,
	}
}

// Search plans and executes a query, hydrates the hits into result cards, and
// records the search asynchronously. Hits whose source record has vanished or
// gone inactive since indexing are dropped from the page without error.
func (s *SearchService) Search(ctx context.Context, query *domain.SearchQuery) (*domain.SearchResult, error) {
	plan, err := planner.Build(query)
	if err != nil {
		return nil, err
	}

	result, err := s.engine.Search(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result.Hits = s.hydrate(ctx, result.Hits)

	s.recordSearch(ctx, query, result.Total)

	return result, nil
}

// hydrate resolves each hit's current source record and projects it into a
// display card. Misses are silently dropped: the index is eventually
// consistent and a stale hit is not the client's problem.
func (s *SearchService) hydrate(ctx context.Context, hits []domain.Hit) []domain.Hit {
	out := make([]domain.Hit, 0, len(hits))
	for i := range hits {
		card, reason := s.hydrateOne(ctx, &hits[i].Entry)
		if card == nil {
			HydrationMisses.WithLabelValues(string(hits[i].Entry.ItemType), reason).Inc()
			s.logger.DebugContext(ctx, "dropped stale hit",
				slog.String("doc_id", hits[i].Entry.DocID()),
				slog.String("reason", reason),
			)
			continue
		}
		hit := hits[i]
		hit.Item = card
		out = append(out, hit)
	}
	return out
}

// hydrateOne fetches and re-validates one entry's source record. A nil card
// means the hit must be dropped; the reason labels the miss metric.
func (s *SearchService) hydrateOne(ctx context.Context, entry *domain.IndexEntry) (*domain.ResultCard, string) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.HydrateTimeout)
	defer cancel()

	switch entry.ItemType {
	case domain.ItemTypeListing:
		l, err := s.stores.Listings.GetListing(ctx, entry.ItemID)
		if err != nil {
			return nil, "error"
		}
		if l == nil {
			return nil, "missing"
		}
		if !l.IsActive || !l.IsApproved {
			return nil, "inactive"
		}
		return source.CardFromListing(l), ""

	case domain.ItemTypePortfolio:
		p, err := s.stores.Portfolio.GetPortfolioItem(ctx, entry.ItemID)
		if err != nil {
			return nil, "error"
		}
		if p == nil {
			return nil, "missing"
		}
		if !p.IsActive {
			return nil, "inactive"
		}
		return source.CardFromPortfolioItem(p), ""

	case domain.ItemTypeCreator:
		c, err := s.stores.Creators.GetCreator(ctx, entry.ItemID)
		if err != nil {
			return nil, "error"
		}
		if c == nil {
			return nil, "missing"
		}
		if !c.IsActive {
			return nil, "inactive"
		}
		return source.CardFromCreator(c), ""
	}

	return nil, "unknown_type"
}

// recordSearch persists the telemetry event without blocking or failing the
// request. The write continues past request cancellation so fast clients do
// not punch holes in the log.
func (s *SearchService) recordSearch(ctx context.Context, query *domain.SearchQuery, resultCount int) {
	event := &domain.TelemetryEvent{
		Query:       query.Term,
		UserID:      logger.UserIDFromContext(ctx),
		Filters:     telemetryFilters(query),
		ResultCount: resultCount,
	}

	bgCtx := context.WithoutCancel(ctx)
	go func() {
		writeCtx, cancel := context.WithTimeout(bgCtx, 5*time.Second)
		defer cancel()
		if err := s.telemetry.Record(writeCtx, event); err != nil {
			TelemetryWriteFailures.Inc()
			s.logger.Warn("failed to record search event",
				slog.String("query", event.Query),
				slog.String("error", err.Error()),
			)
		}
	}()
}

// telemetryFilters flattens the applied filters for the event log.
func telemetryFilters(q *domain.SearchQuery) map[string]string {
	filters := make(map[string]string)
	if q.ItemType != "" {
		filters["item_type"] = string(q.ItemType)
	}
	if q.Category != "" {
		filters["category"] = q.Category
	}
	if q.MinPrice != nil {
		filters["min_price"] = strconv.FormatFloat(*q.MinPrice, 'f', -1, 64)
	}
	if q.MaxPrice != nil {
		filters["max_price"] = strconv.FormatFloat(*q.MaxPrice, 'f', -1, 64)
	}
	if q.Geo != nil {
		filters["radius_km"] = strconv.FormatFloat(q.Geo.RadiusKM, 'f', -1, 64)
	}
	if q.LocationText != "" {
		filters["location"] = q.LocationText
	}
	if len(q.Skills) > 0 {
		filters["skills"] = strings.Join(q.Skills, ",")
	}
	if len(q.Tags) > 0 {
		filters["tags"] = strings.Join(q.Tags, ",")
	}
	if q.MinRating != nil {
		filters["min_rating"] = strconv.FormatFloat(*q.MinRating, 'f', -1, 64)
	}
	if q.Availability != nil {
		filters["availability"] = string(*q.Availability)
	}
	if len(filters) == 0 {
		return nil
	}
	return filters
}

// Suggest returns autocomplete suggestions for a partial term. Terms shorter
// than two runes return an empty list without touching the engine.
func (s *SearchService) Suggest(ctx context.Context, term string, scope domain.ItemType, limit int) ([]domain.Suggestion, error) {
	term = strings.TrimSpace(term)
	if utf8.RuneCountInString(term) < minSuggestTermLength {
		return []domain.Suggestion{}, nil
	}

	suggestions, err := s.engine.Suggest(ctx, term, scope, limit)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	if suggestions == nil {
		suggestions = []domain.Suggestion{}
	}
	return suggestions, nil
}

// Facets returns the filterable attribute distributions for the given scope.
// Facets are computed fresh on every call so counts track the live index.
func (s *SearchService) Facets(ctx context.Context, scope domain.ItemType) (*domain.FacetSet, error) {
	facets, err := s.engine.Facets(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("compute facets: %w", err)
	}
	return facets, nil
}

// Popular returns the trending queries over the configured window.
func (s *SearchService) Popular(ctx context.Context, limit int) ([]domain.PopularQuery, error) {
	if limit <= 0 {
		limit = 10
	}

	popular, err := s.telemetry.PopularQueries(ctx, s.opts.PopularWindow, limit)
	if err != nil {
		return nil, fmt.Errorf("popular queries: %w", err)
	}
	if popular == nil {
		popular = []domain.PopularQuery{}
	}
	return popular, nil
}
