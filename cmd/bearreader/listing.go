package main

import (
	"fmt"

	"github.com/fwojciec/bearreader"
	"github.com/fwojciec/bearreader/reader"
)

// Run executes the trending command.
func (c *TrendingCmd) Run(deps *Dependencies) error {
	return runListing(deps, deps.Reader.Trending, c.Page, c.Pages)
}

// Run executes the recent command.
func (c *RecentCmd) Run(deps *Dependencies) error {
	return runListing(deps, deps.Reader.Recent, c.Page, c.Pages)
}

func runListing(deps *Dependencies, load reader.PageFunc, page, pages int) error {
	if page < 0 {
		fmt.Fprintln(deps.Stderr, "error: page must not be negative")
		return bearreader.Errorf(bearreader.EINVALID, "page must not be negative")
	}
	if pages < 1 {
		pages = 1
	}

	pager := reader.NewPager(load, deps.Seen, page)
	posts, err := pager.Collect(deps.Ctx, pages)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bearreader.ErrorMessage(err))
		return err
	}

	if len(posts) == 0 {
		fmt.Fprintln(deps.Stdout, "No posts found. Check the posts list selector with 'bearreader settings preview'.")
		return nil
	}

	printPosts(deps.Stdout, posts)
	if !pager.Done() {
		fmt.Fprintf(deps.Stderr, "More: --page %d\n", pager.Page())
	}
	return nil
}

// Run executes the blog command.
func (c *BlogCmd) Run(deps *Dependencies) error {
	domain := reader.NormalizeDomain(c.Domain)
	posts, err := deps.Reader.BlogPosts(deps.Ctx, domain, c.Refresh)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bearreader.ErrorMessage(err))
		return err
	}

	if len(posts) == 0 {
		fmt.Fprintf(deps.Stdout, "No posts found on %s.\n", domain)
		return nil
	}

	printPosts(deps.Stdout, posts)
	return nil
}
