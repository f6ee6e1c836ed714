// Package metrics holds the Prometheus collectors for the storefront.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CatalogRequests counts catalog list fetches by outcome
	// (populated, empty, error, superseded).
	CatalogRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "catalog",
		Name:      "requests_total",
		Help:      "Catalog list fetches by outcome.",
	}, []string{"outcome"})

	// CatalogDuration observes catalog list latency.
	CatalogDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "storefront",
		Subsystem: "catalog",
		Name:      "request_duration_seconds",
		Help:      "Catalog list fetch latency.",
		Buckets:   prometheus.DefBuckets,
	})

	// CacheHits and CacheMisses count read-through cache lookups.
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "catalog_cache",
		Name:      "hits_total",
		Help:      "Catalog cache hits.",
	})
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "catalog_cache",
		Name:      "misses_total",
		Help:      "Catalog cache misses.",
	})

	// HTTPRequests counts handled HTTP requests by route and status class.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route pattern and status class.",
	}, []string{"route", "class"})
)
