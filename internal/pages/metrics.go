package pages

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "book_pages_cache_hits_total",
		Help: "Page count requests served from the cache",
	})

	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "book_pages_cache_misses_total",
		Help: "Page count requests that had to fetch the catalog",
	})

	upstreamErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "book_pages_upstream_errors_total",
		Help: "Catalog fetches that failed",
	})
)
