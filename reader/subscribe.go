package reader

import (
	"context"
	"time"

	"github.com/fwojciec/bearreader"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of blogs refreshed at once.
const DefaultConcurrency = 4

// BlogUpdate is the outcome of refreshing one subscribed blog.
type BlogUpdate struct {
	Subscription *bearreader.BlogSubscription
	Posts        []bearreader.PostSummary
	Err          error
}

// Subscribe follows the blog at domain. The title comes from the blog's
// feed when it can be read, else from the domain itself.
func (r *Reader) Subscribe(ctx context.Context, domain string) (*bearreader.BlogSubscription, error) {
	d := NormalizeDomain(domain)
	if d == "" {
		return nil, bearreader.Errorf(bearreader.EINVALID, "blog domain required")
	}

	title := bearreader.BlogTitleFromDomain(d)
	if r.Feeds != nil {
		feed, err := r.Feeds.FetchFeed(ctx, d)
		switch {
		case err != nil:
			r.logger().Debug("fetch feed title", "domain", d, "err", err)
		case feed.Title != "":
			title = feed.Title
		}
	}

	sub := &bearreader.BlogSubscription{
		Domain:  d,
		FeedURL: bearreader.BlogFeedURL(d),
		Title:   title,
	}
	if err := r.Subscriptions.Subscribe(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Unsubscribe stops following the blog at domain.
func (r *Reader) Unsubscribe(ctx context.Context, domain string) error {
	return r.Subscriptions.Unsubscribe(ctx, NormalizeDomain(domain))
}

// RefreshSubscriptions fetches the post list of every subscribed blog
// concurrently. A failing blog is reported in its BlogUpdate and does not
// stop the others. Updates are returned in subscription order.
func (r *Reader) RefreshSubscriptions(ctx context.Context) ([]BlogUpdate, error) {
	subs, err := r.Subscriptions.FindSubscriptions(ctx)
	if err != nil {
		return nil, err
	}

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	updates := make([]BlogUpdate, len(subs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, sub := range subs {
		g.Go(func() error {
			updates[i] = r.refreshBlog(gctx, sub)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return updates, err
	}
	return updates, nil
}

func (r *Reader) refreshBlog(ctx context.Context, sub *bearreader.BlogSubscription) BlogUpdate {
	posts, err := r.BlogPosts(ctx, sub.Domain, true)
	if err != nil {
		r.logger().Warn("refresh blog", "domain", sub.Domain, "err", err)
		return BlogUpdate{Subscription: sub, Err: err}
	}

	at := r.now().UTC()
	if err := r.Subscriptions.MarkFetched(ctx, sub.Domain, at); err != nil {
		r.logger().Warn("mark blog fetched", "domain", sub.Domain, "err", err)
	} else {
		sub.LastFetchedAt = &at
	}
	return BlogUpdate{Subscription: sub, Posts: posts}
}

// RefreshIfStale refreshes every subscription when at least one blog was
// never fetched or was last fetched interval or more ago. The boolean
// reports whether a refresh ran.
func (r *Reader) RefreshIfStale(ctx context.Context, interval time.Duration) ([]BlogUpdate, bool, error) {
	subs, err := r.Subscriptions.FindSubscriptions(ctx)
	if err != nil {
		return nil, false, err
	}

	now := r.now()
	stale := false
	for _, sub := range subs {
		if sub.IsStale(now, interval) {
			stale = true
			break
		}
	}
	if !stale {
		return nil, false, nil
	}

	updates, err := r.RefreshSubscriptions(ctx)
	return updates, true, err
}
