package domain

import "time"

// TelemetryEvent is one executed search, recorded append-only. UserID is
// empty for anonymous searches. Events are never updated or deleted; they are
// read only in aggregate for trending queries.
type TelemetryEvent struct {
	ID          string            `json:"id"`
	Query       string            `json:"query"`
	UserID      string            `json:"user_id,omitempty"`
	Filters     map[string]string `json:"filters,omitempty"`
	ResultCount int               `json:"result_count"`
	CreatedAt   time.Time         `json:"created_at"`
}

// PopularQuery is one trending-query aggregate row.
type PopularQuery struct {
	Query        string    `json:"query"`
	Count        int       `json:"count"`
	LastSearched time.Time `json:"last_searched"`
}
