package engine

import (
	"context"

	"github.com/karigor/search-service/internal/domain"
	"github.com/karigor/search-service/internal/planner"
)

// Engine is the index store abstraction. The synchronizer writes through
// Upsert/BulkUpsert/Delete; the query path reads through Search/Facets/Suggest.
// Implementations may use Elasticsearch or in-memory storage.
type Engine interface {
	// Upsert adds or replaces the entry keyed by (item_type, item_id).
	Upsert(ctx context.Context, entry *domain.IndexEntry) error

	// BulkUpsert adds or replaces multiple entries in one round trip.
	BulkUpsert(ctx context.Context, entries []domain.IndexEntry) error

	// Delete tombstones the entry for the given entity reference. Deleting a
	// missing entry is not an error.
	Delete(ctx context.Context, itemType domain.ItemType, itemID string) error

	// Get fetches a single entry by its entity reference. A missing entry
	// returns (nil, nil).
	Get(ctx context.Context, itemType domain.ItemType, itemID string) (*domain.IndexEntry, error)

	// Search executes the plan and returns one page of scored entries,
	// together with the total count over the same filter. Hits carry no
	// hydrated source records; hydration happens above the engine.
	Search(ctx context.Context, plan *planner.Plan) (*domain.SearchResult, error)

	// Facets computes the filterable attribute distributions for the given
	// entity-type scope (empty scope = all kinds), over active entries only.
	Facets(ctx context.Context, scope domain.ItemType) (*domain.FacetSet, error)

	// Suggest runs the text stage for the term and returns suggestions
	// grouped by (title, item_type, category), sorted by score then count,
	// capped at limit.
	Suggest(ctx context.Context, term string, scope domain.ItemType, limit int) ([]domain.Suggestion, error)
}
