package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/book-pages-go/internal/ratelimit"
)

// RegisterRoutes registers the service routes. Only the page count is rate limited.
func RegisterRoutes(api huma.API, booksHandler *BooksHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "index",
		Method:        http.MethodGet,
		Path:          "/",
		Summary:       "Root",
		DefaultStatus: http.StatusCreated,
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Disabled: true},
		},
	}, Index)

	huma.Register(api, huma.Operation{
		OperationID: "get-page-count",
		Method:      http.MethodGet,
		Path:        "/books/page-count",
		Summary:     "Total page count",
		Description: "Returns the sum of page counts across the book catalog, served from cache when available.",
		Tags:        []string{"Books"},
		Errors:      []int{http.StatusTooManyRequests, http.StatusInternalServerError},
	}, booksHandler.PageCount)
}
