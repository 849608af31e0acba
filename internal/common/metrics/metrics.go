// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueueItemsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recompute_queue_items_processed_total",
			Help: "Total number of recompute queue items processed, by entity type and outcome",
		},
		[]string{"entity_type", "outcome"},
	)

	QueueItemsReleased = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recompute_queue_items_released_total",
			Help: "Total number of claimed items released back to pending on budget exhaustion",
		},
	)

	PairsScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_pairs_scored_total",
			Help: "Total number of pairs scored, by direction",
		},
		[]string{"direction"},
	)

	DegradedPairs = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "match_pairs_degraded_total",
			Help: "Total number of pairs scored without a semantic contribution",
		},
	)

	EmbeddingCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "embedding_cache_hits_total",
			Help: "Embedding cache hits, by layer (redis, postgres)",
		},
		[]string{"layer"},
	)

	EmbeddingCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "embedding_cache_misses_total",
			Help: "Embedding cache misses that required a provider call",
		},
	)

	InvocationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_invocation_duration_seconds",
			Help: "Duration of one worker invocation in seconds",
		},
		[]string{"worker"},
	)

	QueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recompute_queue_pending_items",
			Help: "Pending items observed in the recompute queue at claim time",
		},
	)
)
