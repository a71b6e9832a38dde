package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the tiered cache. The per-instance analytics
// snapshot drives prefetch ranking; these exist for operators.
var (
	metricHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordcache_hits_total",
		Help: "Total number of cache hits, labelled by serving tier",
	}, []string{"tier"})

	metricMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wordcache_misses_total",
		Help: "Total number of lookups that missed both cache tiers",
	})

	metricEvictions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wordcache_evictions_total",
		Help: "Total number of entries evicted from the hot tier",
	})

	metricGetDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wordcache_get_duration_seconds",
		Help:    "Duration of cache get operations",
		Buckets: prometheus.DefBuckets,
	})

	metricStoreErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wordcache_store_errors_total",
		Help: "Total number of durable-store failures swallowed by the cache",
	})
)
