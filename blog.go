package bearreader

import (
	"context"
	"strings"
	"time"
)

// DefaultRefreshInterval is how long a subscribed blog's feed stays fresh.
const DefaultRefreshInterval = time.Hour

// BlogSubscription is a blog the user follows.
type BlogSubscription struct {
	ID            string     `json:"id"`
	Domain        string     `json:"domain"`
	FeedURL       string     `json:"feedUrl"`
	Title         string     `json:"title"`
	SubscribedAt  time.Time  `json:"subscribedAt"`
	LastFetchedAt *time.Time `json:"lastFetchedAt"`
}

// Validate returns an error if the subscription contains invalid fields.
func (s *BlogSubscription) Validate() error {
	if s.Domain == "" {
		return Errorf(EINVALID, "blog domain required")
	}
	if s.FeedURL == "" {
		return Errorf(EINVALID, "blog feed URL required")
	}
	return nil
}

// IsStale reports whether the blog was never fetched or was last fetched
// at least interval before now.
func (s *BlogSubscription) IsStale(now time.Time, interval time.Duration) bool {
	if s.LastFetchedAt == nil {
		return true
	}
	return now.Sub(*s.LastFetchedAt) >= interval
}

// BlogFeedURL returns the post list page of a blog. The domain may be given
// with or without a scheme.
func BlogFeedURL(domain string) string {
	u := domain
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = "https://" + u
	}
	u = strings.TrimSuffix(u, "/")
	return u + "/blog/"
}

// BlogTitleFromDomain derives a display title from the first label of the
// domain, e.g. "herman.bearblog.dev" becomes "Herman".
func BlogTitleFromDomain(domain string) string {
	label, _, _ := strings.Cut(domain, ".")
	if label == "" {
		return domain
	}
	return strings.ToUpper(label[:1]) + strings.ToLower(label[1:])
}

// SubscriptionService represents a service for managing blog subscriptions.
type SubscriptionService interface {
	// Subscribe creates the subscription, replacing any existing
	// subscription to the same domain.
	Subscribe(ctx context.Context, sub *BlogSubscription) error

	// Unsubscribe removes the subscription to a domain.
	// Returns ENOTFOUND if the domain is not subscribed.
	Unsubscribe(ctx context.Context, domain string) error

	// IsSubscribed reports whether the domain is subscribed.
	IsSubscribed(ctx context.Context, domain string) (bool, error)

	// FindSubscriptions returns all subscriptions, newest first.
	FindSubscriptions(ctx context.Context) ([]*BlogSubscription, error)

	// MarkFetched records the time the blog's feed was last fetched.
	// Returns ENOTFOUND if the domain is not subscribed.
	MarkFetched(ctx context.Context, domain string, at time.Time) error
}

// BlogFeed is a blog's syndication feed.
type BlogFeed struct {
	Title string
	Posts []PostSummary
}

// FeedService reads a blog's Atom feed.
type FeedService interface {
	FetchFeed(ctx context.Context, domain string) (*BlogFeed, error)
}
