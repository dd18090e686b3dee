package mock

import (
	"context"
	"time"

	"github.com/fwojciec/bearreader"
)

var _ bearreader.SubscriptionService = (*SubscriptionService)(nil)

// SubscriptionService is a mock implementation of bearreader.SubscriptionService.
type SubscriptionService struct {
	SubscribeFn         func(ctx context.Context, sub *bearreader.BlogSubscription) error
	UnsubscribeFn       func(ctx context.Context, domain string) error
	IsSubscribedFn      func(ctx context.Context, domain string) (bool, error)
	FindSubscriptionsFn func(ctx context.Context) ([]*bearreader.BlogSubscription, error)
	MarkFetchedFn       func(ctx context.Context, domain string, at time.Time) error
}

func (s *SubscriptionService) Subscribe(ctx context.Context, sub *bearreader.BlogSubscription) error {
	return s.SubscribeFn(ctx, sub)
}

func (s *SubscriptionService) Unsubscribe(ctx context.Context, domain string) error {
	return s.UnsubscribeFn(ctx, domain)
}

func (s *SubscriptionService) IsSubscribed(ctx context.Context, domain string) (bool, error) {
	return s.IsSubscribedFn(ctx, domain)
}

func (s *SubscriptionService) FindSubscriptions(ctx context.Context) ([]*bearreader.BlogSubscription, error) {
	return s.FindSubscriptionsFn(ctx)
}

func (s *SubscriptionService) MarkFetched(ctx context.Context, domain string, at time.Time) error {
	return s.MarkFetchedFn(ctx, domain, at)
}

var _ bearreader.FeedService = (*FeedService)(nil)

// FeedService is a mock implementation of bearreader.FeedService.
type FeedService struct {
	FetchFeedFn func(ctx context.Context, domain string) (*bearreader.BlogFeed, error)
}

func (s *FeedService) FetchFeed(ctx context.Context, domain string) (*bearreader.BlogFeed, error) {
	return s.FetchFeedFn(ctx, domain)
}
