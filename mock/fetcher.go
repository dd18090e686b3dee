package mock

import (
	"context"

	"github.com/fwojciec/bearreader"
)

var _ bearreader.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of bearreader.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ bearreader.PageCache = (*PageCache)(nil)

// PageCache is a mock implementation of bearreader.PageCache.
type PageCache struct {
	GetFn   func(url string) (string, bool)
	PutFn   func(url string, html string) error
	SizeFn  func() (int64, error)
	ClearFn func() error
}

func (c *PageCache) Get(url string) (string, bool) {
	return c.GetFn(url)
}

func (c *PageCache) Put(url string, html string) error {
	return c.PutFn(url, html)
}

func (c *PageCache) Size() (int64, error) {
	return c.SizeFn()
}

func (c *PageCache) Clear() error {
	return c.ClearFn()
}

var _ bearreader.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of bearreader.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
