package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HydrationMisses counts hits dropped at read time because the owning
	// service no longer returned a live record for them.
	HydrationMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_hydration_misses_total",
			Help: "Total number of search hits dropped because hydration found no live source record",
		},
		[]string{"item_type", "reason"},
	)

	// TelemetryWriteFailures counts search events that could not be recorded.
	TelemetryWriteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "search_telemetry_write_failures_total",
			Help: "Total number of search telemetry events that failed to persist",
		},
	)
)
