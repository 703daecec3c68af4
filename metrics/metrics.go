package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits counts queries served from the store without a fetch (counter)
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stayfront",
			Name:      "cache_hits_total",
			Help:      "The total number of queries served from the cache",
		},
		[]string{"query"},
	)

	// CacheMisses counts queries that had to fetch from the remote API (counter)
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stayfront",
			Name:      "cache_misses_total",
			Help:      "The total number of queries that fetched from the remote API",
		},
		[]string{"query"},
	)

	// Invalidations counts processed cache invalidation events per entity type (counter)
	Invalidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stayfront",
			Name:      "cache_invalidations_total",
			Help:      "The total number of processed cache invalidation events",
		},
		[]string{"entity_type"},
	)

	// Refetches counts invalidation-triggered query re-executions (counter)
	Refetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stayfront",
			Name:      "cache_refetches_total",
			Help:      "The total number of invalidation-triggered refetches",
		},
		[]string{"query"},
	)

	// MessagesProcessed counts processed invalidation bus messages (counter)
	MessagesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stayfront",
			Name:      "messages_processed_total",
			Help:      "The total number of processed invalidation bus messages",
		},
		[]string{"topic", "handler"},
	)

	// MessagesProcessingFailed counts message processing failures (counter)
	MessagesProcessingFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stayfront",
			Name:      "messages_processing_failed_total",
			Help:      "The total number of message processing failures",
		},
		[]string{"topic", "handler"},
	)

	// MessagesProcessingDuration is the time spent processing bus messages (summary with quantiles 0.5, 0.9, and 0.99)
	MessagesProcessingDuration = promauto.NewSummaryVec(
		prometheus.SummaryOpts{
			Namespace:  "stayfront",
			Name:       "messages_processing_duration_seconds",
			Help:       "The total time spent processing invalidation bus messages",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"topic", "handler"},
	)

	// RequestDuration is the time spent on remote API requests (summary with quantiles 0.5, 0.9, and 0.99)
	RequestDuration = promauto.NewSummaryVec(
		prometheus.SummaryOpts{
			Namespace:  "stayfront",
			Name:       "api_request_duration_seconds",
			Help:       "The time spent on remote API requests",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"method", "path"},
	)

	// RequestsFailed counts remote API requests that ended in an error (counter)
	RequestsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stayfront",
			Name:      "api_requests_failed_total",
			Help:      "The total number of failed remote API requests",
		},
		[]string{"method", "path"},
	)
)
