package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/bearreader"
)

var (
	_ bearreader.ContentExtractor = (*LoggingContentExtractor)(nil)
	_ bearreader.ListingExtractor = (*LoggingListingExtractor)(nil)
)

// LoggingContentExtractor wraps a ContentExtractor with debug logging.
type LoggingContentExtractor struct {
	next   bearreader.ContentExtractor
	logger *slog.Logger
}

// NewLoggingContentExtractor creates a new LoggingContentExtractor.
func NewLoggingContentExtractor(next bearreader.ContentExtractor, logger *slog.Logger) *LoggingContentExtractor {
	return &LoggingContentExtractor{next: next, logger: logger}
}

// ExtractContent delegates to the wrapped extractor and logs the block count.
func (e *LoggingContentExtractor) ExtractContent(html string, sel bearreader.Selectors) (blocks []bearreader.Block, err error) {
	defer func(begin time.Time) {
		e.logger.Debug("extract content",
			"selector", sel.MainContent,
			"found", blocks != nil,
			"blocks", len(blocks),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractContent(html, sel)
}

// LoggingListingExtractor wraps a ListingExtractor with debug logging.
type LoggingListingExtractor struct {
	next   bearreader.ListingExtractor
	logger *slog.Logger
}

// NewLoggingListingExtractor creates a new LoggingListingExtractor.
func NewLoggingListingExtractor(next bearreader.ListingExtractor, logger *slog.Logger) *LoggingListingExtractor {
	return &LoggingListingExtractor{next: next, logger: logger}
}

// ExtractListings delegates to the wrapped extractor and logs the post count.
func (e *LoggingListingExtractor) ExtractListings(html string, sel bearreader.Selectors) (posts []bearreader.PostSummary, err error) {
	defer func(begin time.Time) {
		e.logger.Debug("extract listings",
			"selector", sel.PostsList,
			"posts", len(posts),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractListings(html, sel)
}

// ExtractBlogFeed delegates to the wrapped extractor and logs the post count.
func (e *LoggingListingExtractor) ExtractBlogFeed(html string, pageURL string) (posts []bearreader.PostSummary, err error) {
	defer func(begin time.Time) {
		e.logger.Debug("extract blog feed",
			"url", pageURL,
			"posts", len(posts),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractBlogFeed(html, pageURL)
}
