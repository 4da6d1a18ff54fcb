package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Fetch metrics
	FetchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "price_sync_fetch_requests_total",
			Help: "The total number of market API fetch attempts",
		},
		[]string{"outcome"},
	)

	FetchRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "price_sync_fetch_request_duration_seconds",
			Help:    "The market API request latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	FetchRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "price_sync_fetch_retries_total",
			Help: "The total number of market API request retries",
		},
	)

	// Cache metrics
	CacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "price_sync_cache_hits_total",
			Help: "The total number of valid cache reads",
		},
		[]string{"cache_backend"},
	)

	CacheMissesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "price_sync_cache_misses_total",
			Help: "The total number of cache reads that found no usable record",
		},
		[]string{"cache_backend"},
	)

	CacheStaleTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "price_sync_cache_stale_total",
			Help: "The total number of cache reads rejected for exceeding the TTL",
		},
		[]string{"cache_backend"},
	)

	CacheWriteErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "price_sync_cache_write_errors_total",
			Help: "The total number of failed cache writes",
		},
		[]string{"cache_backend"},
	)

	// Refresh cycle metrics
	CyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "price_sync_cycles_total",
			Help: "The total number of refresh cycles by terminal state",
		},
		[]string{"state"},
	)

	// Current price info
	CurrentPrice = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "price_sync_current_price",
			Help: "The tracked item's current base price",
		},
		[]string{"item_id"},
	)

	// Service info
	ServiceInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "price_sync_service_info",
			Help: "Information about the price sync service",
		},
		[]string{"version", "cache_backend"},
	)
)

// SetServiceInfo records the service version and active cache backend.
func SetServiceInfo(version, cacheBackend string) {
	ServiceInfo.WithLabelValues(version, cacheBackend).Set(1)
}
