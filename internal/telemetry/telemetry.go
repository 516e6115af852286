// Package telemetry records executed searches and aggregates them into
// trending queries. The event log is append-only.
package telemetry

import (
	"context"
	"time"

	"github.com/karigor/search-service/internal/domain"
)

// Store persists search telemetry.
type Store interface {
	// Record appends one search event. The store assigns the ID and
	// timestamp if the caller left them zero.
	Record(ctx context.Context, event *domain.TelemetryEvent) error

	// PopularQueries aggregates events within the trailing window into
	// per-query counts, ordered by count descending then recency.
	PopularQueries(ctx context.Context, window time.Duration, limit int) ([]domain.PopularQuery, error)
}
