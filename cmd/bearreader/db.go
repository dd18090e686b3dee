package main

import (
	"fmt"

	"github.com/fwojciec/bearreader"
)

// Run executes the db stats command.
func (c *DBStatsCmd) Run(deps *Dependencies) error {
	stats, err := deps.Posts.PostStats(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bearreader.ErrorMessage(err))
		return err
	}

	subs, err := deps.Subscriptions.FindSubscriptions(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bearreader.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Tracked posts:  %d\n", stats.Total)
	fmt.Fprintf(deps.Stdout, "  read:         %d\n", stats.Read)
	fmt.Fprintf(deps.Stdout, "  unread:       %d\n", stats.Encountered())
	fmt.Fprintf(deps.Stdout, "  bookmarked:   %d\n", stats.Bookmarked)
	fmt.Fprintf(deps.Stdout, "Subscriptions:  %d\n", len(subs))

	if deps.Cache != nil {
		size, err := deps.Cache.Size()
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		fmt.Fprintf(deps.Stdout, "Page cache:     %s\n", formatBytes(size))
	}
	return nil
}

// Run executes the db clear-posts command.
func (c *DBClearPostsCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return bearreader.Errorf(bearreader.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Posts.DeleteAllPosts(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bearreader.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, "Deleted all tracked posts")
	return nil
}

// Run executes the db clear-cache command.
func (c *DBClearCacheCmd) Run(deps *Dependencies) error {
	size, err := deps.Cache.Size()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	if err := deps.Cache.Clear(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Cleared %s of cached pages\n", formatBytes(size))
	return nil
}
