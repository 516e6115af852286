package indexer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EntriesSynchronized counts successful index upserts by entity kind.
	EntriesSynchronized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_index_entries_synchronized_total",
			Help: "Total number of index entries written by the synchronizer",
		},
		[]string{"item_type"},
	)

	// EntriesTombstoned counts successful index deletions by entity kind.
	EntriesTombstoned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_index_entries_tombstoned_total",
			Help: "Total number of index entries removed by the synchronizer",
		},
		[]string{"item_type"},
	)

	// SyncFailures counts synchronizer operations that exhausted retries.
	SyncFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_index_sync_failures_total",
			Help: "Total number of synchronizer operations that failed after retries",
		},
		[]string{"item_type", "operation"},
	)
)
