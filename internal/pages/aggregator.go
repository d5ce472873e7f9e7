// Package pages computes the total page count across the catalog using a
// cache-aside entry in the shared key-value store.
package pages

import (
	"context"
	"fmt"
	"strconv"

	"github.com/serroba/book-pages-go/internal/catalog"
)

// CacheKey holds the global aggregate. It has no expiry.
const CacheKey = "total-pages"

// Source reports where a total was read from.
type Source string

const (
	SourceCache    Source = "cache"
	SourceUpstream Source = "upstream"
)

// Cache is the subset of the shared key-value store the aggregator needs.
type Cache interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// BookSource lists every record in the remote catalog.
type BookSource interface {
	Books(ctx context.Context) ([]catalog.Book, error)
}

// Result is a computed or cached total.
type Result struct {
	Total  int64
	Source Source
}

// Aggregator serves the cached total or computes and stores it on a miss.
//
// Concurrent misses are not coalesced: each fetches the catalog and writes
// the same value.
type Aggregator struct {
	cache  Cache
	source BookSource
}

// NewAggregator creates a new page count aggregator.
func NewAggregator(cache Cache, source BookSource) *Aggregator {
	return &Aggregator{cache: cache, source: source}
}

// Total returns the aggregate page count. On any failure the cache entry is
// left untouched.
func (a *Aggregator) Total(ctx context.Context) (*Result, error) {
	cached, found, err := a.cache.Get(ctx, CacheKey)
	if err != nil {
		return nil, err
	}

	if found {
		total, err := strconv.ParseInt(cached, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cached %s is not an integer: %w", CacheKey, err)
		}

		cacheHitsTotal.Inc()

		return &Result{Total: total, Source: SourceCache}, nil
	}

	cacheMissesTotal.Inc()

	books, err := a.source.Books(ctx)
	if err != nil {
		upstreamErrorsTotal.Inc()

		return nil, err
	}

	total := Sum(books)

	if err = a.cache.Set(ctx, CacheKey, strconv.FormatInt(total, 10)); err != nil {
		return nil, err
	}

	return &Result{Total: total, Source: SourceUpstream}, nil
}

// Sum adds up the page counts of books.
func Sum(books []catalog.Book) int64 {
	var total int64

	for _, b := range books {
		total += b.PageCount
	}

	return total
}
