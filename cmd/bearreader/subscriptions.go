package main

import (
	"fmt"

	"github.com/fwojciec/bearreader"
	"github.com/fwojciec/bearreader/reader"
)

// Run executes the subscribe command.
func (c *SubscribeCmd) Run(deps *Dependencies) error {
	sub, err := deps.Reader.Subscribe(deps.Ctx, c.Domain)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bearreader.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Subscribed to %s (%s)\n", sub.Title, sub.Domain)
	return nil
}

// Run executes the unsubscribe command.
func (c *UnsubscribeCmd) Run(deps *Dependencies) error {
	domain := reader.NormalizeDomain(c.Domain)
	if err := deps.Reader.Unsubscribe(deps.Ctx, domain); err != nil {
		if bearreader.ErrorCode(err) == bearreader.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: not subscribed to %s. Use 'bearreader subscriptions' to see followed blogs.\n", domain)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", bearreader.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Unsubscribed from %s\n", domain)
	return nil
}

// Run executes the subscriptions command.
func (c *SubscriptionsCmd) Run(deps *Dependencies) error {
	subs, err := deps.Subscriptions.FindSubscriptions(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bearreader.ErrorMessage(err))
		return err
	}

	if len(subs) == 0 {
		fmt.Fprintln(deps.Stdout, "No subscriptions. Use 'bearreader subscribe' to follow a blog.")
		return nil
	}

	for _, s := range subs {
		fetched := "never fetched"
		if s.LastFetchedAt != nil {
			fetched = "fetched " + formatTime(*s.LastFetchedAt)
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", s.Domain, s.Title, fetched)
	}
	return nil
}

// Run executes the refresh command.
func (c *RefreshCmd) Run(deps *Dependencies) error {
	var updates []reader.BlogUpdate
	var err error
	if c.IfStale {
		var ran bool
		updates, ran, err = deps.Reader.RefreshIfStale(deps.Ctx, bearreader.DefaultRefreshInterval)
		if err == nil && !ran {
			fmt.Fprintln(deps.Stdout, "All blogs are up to date.")
			return nil
		}
	} else {
		updates, err = deps.Reader.RefreshSubscriptions(deps.Ctx)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bearreader.ErrorMessage(err))
		return err
	}

	if len(updates) == 0 {
		fmt.Fprintln(deps.Stdout, "No subscriptions. Use 'bearreader subscribe' to follow a blog.")
		return nil
	}

	failed := 0
	for _, u := range updates {
		if u.Err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "%s: %s\n", u.Subscription.Domain, bearreader.ErrorMessage(u.Err))
			continue
		}
		fmt.Fprintf(deps.Stdout, "== %s (%d posts)\n", u.Subscription.Title, len(u.Posts))
		printPosts(deps.Stdout, u.Posts)
	}

	if failed > 0 {
		fmt.Fprintf(deps.Stderr, "%d of %d blogs failed to refresh\n", failed, len(updates))
	}
	return nil
}
