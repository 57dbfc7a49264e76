// Package metrics holds the Prometheus instruments of the graph engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NodesAdded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "travelmate_graph_nodes_added_total",
			Help: "Entities created by graph merges",
		},
	)

	EdgesAdded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "travelmate_graph_edges_added_total",
			Help: "Relationships created by graph merges",
		},
	)

	DestinationsBuilt = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travelmate_destinations_total",
			Help: "Destinations passed through the existence gate",
		},
		[]string{"outcome"}, // "cached", "built", "failed"
	)

	EvidenceStatements = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travelmate_evidence_statements_total",
			Help: "Evidence statements produced by path retrieval",
		},
		[]string{"kind"}, // "path", "not_found", "error", "empty_batch"
	)

	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travelmate_store_errors_total",
			Help: "Graph store operations that failed",
		},
		[]string{"op"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "travelmate_upstream_request_duration_seconds",
			Help:    "Latency of calls to external sources and language models",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"upstream", "status"},
	)

	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "travelmate_upstream_breaker_state",
			Help: "Circuit breaker state per upstream (0 closed, 1 half-open, 2 open)",
		},
		[]string{"upstream"},
	)
)
