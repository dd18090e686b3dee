package bearreader

import "context"

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch returns the HTML body of the page at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// PageCache stores fetched pages keyed by URL.
type PageCache interface {
	// Get returns the cached page. The boolean is false on a miss.
	Get(url string) (string, bool)

	// Put stores the page, replacing any previous entry.
	Put(url string, html string) error

	// Size returns the total size of cached pages in bytes.
	Size() (int64, error)

	// Clear removes all cached pages.
	Clear() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
