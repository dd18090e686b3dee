package reader

import (
	"context"

	"github.com/fwojciec/bearreader"
)

// PageFunc loads one page of a listing.
type PageFunc func(ctx context.Context, page int) ([]bearreader.PostSummary, error)

// Pager walks a paged listing, dropping posts already returned by an
// earlier page. Discovery pages shift while they are read, so the same post
// often shows up on consecutive pages.
type Pager struct {
	load PageFunc
	seen bearreader.SeenFilter
	page int
	done bool
}

// NewPager creates a Pager starting at page start.
func NewPager(load PageFunc, seen bearreader.SeenFilter, start int) *Pager {
	return &Pager{load: load, seen: seen, page: start}
}

// Page returns the number of the page the next call to Next loads.
func (p *Pager) Page() int {
	return p.page
}

// Done reports whether the listing has run out of posts.
func (p *Pager) Done() bool {
	return p.done
}

// Next loads the next page and returns the posts not seen before.
// An empty source page marks the pager as done.
func (p *Pager) Next(ctx context.Context) ([]bearreader.PostSummary, error) {
	if p.done {
		return nil, nil
	}

	posts, err := p.load(ctx, p.page)
	if err != nil {
		return nil, err
	}
	p.page++

	if len(posts) == 0 {
		p.done = true
		return nil, nil
	}

	fresh := make([]bearreader.PostSummary, 0, len(posts))
	for _, post := range posts {
		if p.seen.TestAndAdd(post.Key()) {
			continue
		}
		fresh = append(fresh, post)
	}
	return fresh, nil
}

// Collect loads up to n pages and returns the concatenated fresh posts.
func (p *Pager) Collect(ctx context.Context, n int) ([]bearreader.PostSummary, error) {
	var all []bearreader.PostSummary
	for i := 0; i < n && !p.done; i++ {
		posts, err := p.Next(ctx)
		if err != nil {
			return all, err
		}
		all = append(all, posts...)
	}
	return all, nil
}
