package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/bearreader"
)

// Ensure LoggingFeedService implements bearreader.FeedService.
var _ bearreader.FeedService = (*LoggingFeedService)(nil)

// LoggingFeedService wraps a FeedService with logging.
type LoggingFeedService struct {
	next   bearreader.FeedService
	logger *slog.Logger
}

// NewLoggingFeedService creates a new LoggingFeedService.
func NewLoggingFeedService(next bearreader.FeedService, logger *slog.Logger) *LoggingFeedService {
	return &LoggingFeedService{next: next, logger: logger}
}

// FetchFeed delegates to the wrapped service and logs the operation.
func (s *LoggingFeedService) FetchFeed(ctx context.Context, domain string) (feed *bearreader.BlogFeed, err error) {
	defer func(begin time.Time) {
		count := 0
		if feed != nil {
			count = len(feed.Posts)
		}
		s.logger.Info("feed fetch",
			"domain", domain,
			"count", count,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FetchFeed(ctx, domain)
}
