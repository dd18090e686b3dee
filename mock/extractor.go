package mock

import (
	"context"

	"github.com/fwojciec/bearreader"
)

var _ bearreader.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of bearreader.ContentExtractor.
type ContentExtractor struct {
	ExtractContentFn func(html string, sel bearreader.Selectors) ([]bearreader.Block, error)
}

func (e *ContentExtractor) ExtractContent(html string, sel bearreader.Selectors) ([]bearreader.Block, error) {
	return e.ExtractContentFn(html, sel)
}

var _ bearreader.ListingExtractor = (*ListingExtractor)(nil)

// ListingExtractor is a mock implementation of bearreader.ListingExtractor.
type ListingExtractor struct {
	ExtractListingsFn func(html string, sel bearreader.Selectors) ([]bearreader.PostSummary, error)
	ExtractBlogFeedFn func(html string, pageURL string) ([]bearreader.PostSummary, error)
}

func (e *ListingExtractor) ExtractListings(html string, sel bearreader.Selectors) ([]bearreader.PostSummary, error) {
	return e.ExtractListingsFn(html, sel)
}

func (e *ListingExtractor) ExtractBlogFeed(html string, pageURL string) ([]bearreader.PostSummary, error) {
	return e.ExtractBlogFeedFn(html, pageURL)
}

var _ bearreader.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of bearreader.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*bearreader.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*bearreader.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ bearreader.SelectorPreviewer = (*SelectorPreviewer)(nil)

// SelectorPreviewer is a mock implementation of bearreader.SelectorPreviewer.
type SelectorPreviewer struct {
	PreviewSelectorFn func(html string, selector string) bearreader.SelectorPreview
}

func (p *SelectorPreviewer) PreviewSelector(html string, selector string) bearreader.SelectorPreview {
	return p.PreviewSelectorFn(html, selector)
}

var _ bearreader.PostWriter = (*PostWriter)(nil)

// PostWriter is a mock implementation of bearreader.PostWriter.
type PostWriter struct {
	WritePostFn func(ctx context.Context, post *bearreader.PostContent) (string, error)
}

func (w *PostWriter) WritePost(ctx context.Context, post *bearreader.PostContent) (string, error) {
	return w.WritePostFn(ctx, post)
}

var _ bearreader.SeenFilter = (*SeenFilter)(nil)

// SeenFilter is a mock implementation of bearreader.SeenFilter.
type SeenFilter struct {
	TestAndAddFn func(url string) bool
}

func (f *SeenFilter) TestAndAdd(url string) bool {
	return f.TestAndAddFn(url)
}
