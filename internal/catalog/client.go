// Package catalog reads book records from the remote public catalog API.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

// DefaultURL is the public books endpoint. It is unauthenticated and unpaginated.
const DefaultURL = "https://api.freeapi.app/api/v1/public/books"

// booksPath is where the record array lives in the response envelope.
const booksPath = "data.data.data"

var (
	// ErrUnexpectedStatus is returned for any non-2xx response.
	ErrUnexpectedStatus = errors.New("catalog returned unexpected status")
	// ErrMalformedBody is returned when the body is not JSON or has no record array.
	ErrMalformedBody = errors.New("catalog response is malformed")
)

// Book is a single catalog record reduced to the fields the service uses.
type Book struct {
	ID        string
	Title     string
	PageCount int64
}

// Client fetches books from the catalog over HTTP.
type Client struct {
	httpClient *http.Client
	url        string
}

// NewClient creates a catalog client. A zero timeout means no client-side timeout.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
	}
}

// NewClientWithHTTP creates a catalog client around an existing HTTP client.
func NewClientWithHTTP(url string, httpClient *http.Client) *Client {
	return &Client{httpClient: httpClient, url: url}
}

// Books issues a single GET and returns every record in the response.
func (c *Client) Books(ctx context.Context) ([]Book, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read catalog body: %w", err)
	}

	return ParseBooks(body)
}

// ParseBooks decodes the catalog envelope {data: {data: {data: [...]}}}.
// Records without a numeric volumeInfo.pageCount count as zero pages.
func ParseBooks(body []byte) ([]Book, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid json", ErrMalformedBody)
	}

	records := gjson.GetBytes(body, booksPath)
	if !records.IsArray() {
		return nil, fmt.Errorf("%w: %s is not an array", ErrMalformedBody, booksPath)
	}

	items := records.Array()
	books := make([]Book, 0, len(items))

	for _, item := range items {
		books = append(books, Book{
			ID:        item.Get("id").String(),
			Title:     item.Get("volumeInfo.title").String(),
			PageCount: pageCount(item),
		})
	}

	return books, nil
}

func pageCount(item gjson.Result) int64 {
	v := item.Get("volumeInfo.pageCount")
	if v.Type != gjson.Number {
		return 0
	}

	return v.Int()
}
