// Package postgres implements the telemetry store on PostgreSQL.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/karigor/search-service/internal/domain"
	"github.com/karigor/search-service/pkg/database"
)

// Store is the PostgreSQL-backed telemetry store.
type Store struct {
	pool database.DBTX
}

// New creates a PostgreSQL telemetry store.
func New(pool database.DBTX) *Store {
	return &Store{pool: pool}
}

// Record appends one search event to the log.
func (s *Store) Record(ctx context.Context, event *domain.TelemetryEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	event.Query = strings.TrimSpace(strings.ToLower(event.Query))

	filtersJSON, err := json.Marshal(event.Filters)
	if err != nil {
		return fmt.Errorf("marshal filters: %w", err)
	}

	query := `
		INSERT INTO search_events (id, query, user_id, filters, result_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = s.pool.Exec(ctx, query,
		event.ID,
		event.Query,
		event.UserID,
		filtersJSON,
		event.ResultCount,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert search event: %w", err)
	}

	return nil
}

// PopularQueries aggregates events in the trailing window. Empty queries are
// pure-filter browses and are excluded from trending.
func (s *Store) PopularQueries(ctx context.Context, window time.Duration, limit int) ([]domain.PopularQuery, error) {
	query := `
		SELECT query, count(*) AS search_count, max(created_at) AS last_searched
		FROM search_events
		WHERE query <> '' AND created_at >= $1
		GROUP BY query
		ORDER BY search_count DESC, last_searched DESC
		LIMIT $2`

	since := time.Now().UTC().Add(-window)

	rows, err := s.pool.Query(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("query popular searches: %w", err)
	}
	defer rows.Close()

	var out []domain.PopularQuery
	for rows.Next() {
		var pq domain.PopularQuery
		if err := rows.Scan(&pq.Query, &pq.Count, &pq.LastSearched); err != nil {
			return nil, fmt.Errorf("scan popular search row: %w", err)
		}
		out = append(out, pq)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate popular search rows: %w", err)
	}

	return out, nil
}
