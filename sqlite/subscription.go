package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fwojciec/bearreader"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ bearreader.SubscriptionService = (*SubscriptionService)(nil)

// SubscriptionService implements bearreader.SubscriptionService using SQLite.
type SubscriptionService struct {
	db *DB
}

// NewSubscriptionService creates a new SubscriptionService.
func NewSubscriptionService(db *DB) *SubscriptionService {
	return &SubscriptionService{db: db}
}

// Subscribe creates the subscription, replacing any existing subscription
// to the same domain. ID and SubscribedAt are set when empty.
func (s *SubscriptionService) Subscribe(ctx context.Context, sub *bearreader.BlogSubscription) error {
	if err := sub.Validate(); err != nil {
		return err
	}

	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	if sub.SubscribedAt.IsZero() {
		sub.SubscribedAt = s.db.now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO subscribed_blogs (id, domain, feed_url, title, subscribed_at, last_fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, sub.ID, sub.Domain, sub.FeedURL, sub.Title, formatTime(sub.SubscribedAt), formatNullTime(sub.LastFetchedAt))

	return err
}

// Unsubscribe removes the subscription to a domain.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, domain string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM subscribed_blogs WHERE domain = ?", domain)
	if err != nil {
		return err
	}
	return requireRow(result, "subscription not found")
}

// IsSubscribed reports whether the domain is subscribed.
func (s *SubscriptionService) IsSubscribed(ctx context.Context, domain string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM subscribed_blogs WHERE domain = ?)", domain,
	).Scan(&exists)
	return exists, err
}

// FindSubscriptions returns all subscriptions, newest first.
func (s *SubscriptionService) FindSubscriptions(ctx context.Context) ([]*bearreader.BlogSubscription, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, domain, feed_url, title, subscribed_at, last_fetched_at
		FROM subscribed_blogs
		ORDER BY subscribed_at DESC, domain
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := []*bearreader.BlogSubscription{}
	for rows.Next() {
		var sub bearreader.BlogSubscription
		var subscribedAt string
		var lastFetchedAt sql.NullString
		if err := rows.Scan(&sub.ID, &sub.Domain, &sub.FeedURL, &sub.Title, &subscribedAt, &lastFetchedAt); err != nil {
			return nil, err
		}
		if sub.SubscribedAt, err = parseTime(subscribedAt, "subscribed_at"); err != nil {
			return nil, err
		}
		if sub.LastFetchedAt, err = parseNullTime(lastFetchedAt, "last_fetched_at"); err != nil {
			return nil, err
		}
		subs = append(subs, &sub)
	}

	return subs, rows.Err()
}

// MarkFetched records the time the blog's feed was last fetched.
func (s *SubscriptionService) MarkFetched(ctx context.Context, domain string, at time.Time) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE subscribed_blogs SET last_fetched_at = ? WHERE domain = ?", formatTime(at), domain,
	)
	if err != nil {
		return err
	}
	return requireRow(result, "subscription not found")
}
