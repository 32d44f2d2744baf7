package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collectors for the external metadata cache and its upstream provider.
var (
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "musicchat_search_cache_hits_total",
		Help: "External search queries answered from the cache.",
	})

	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "musicchat_search_cache_misses_total",
		Help: "External search queries that had to call upstream.",
	})

	CacheEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "musicchat_search_cache_entries",
		Help: "Entries currently held by the search query cache.",
	})

	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "musicchat_upstream_requests_total",
		Help: "Upstream metadata provider calls by outcome.",
	}, []string{"outcome"})

	UpstreamDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "musicchat_upstream_request_seconds",
		Help:    "Latency of upstream metadata provider calls.",
		Buckets: prometheus.DefBuckets,
	})
)

// Collectors for the HTTP surface.
var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "musicchat_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "musicchat_http_request_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)
