package main

import (
	"fmt"

	"github.com/fwojciec/bearreader"
	"github.com/fwojciec/bearreader/reader"
)

// Run executes the bookmarks command.
func (c *BookmarksCmd) Run(deps *Dependencies) error {
	return listTracked(deps, bearreader.PostFilter{
		Bookmarked: true,
		SortBy:     bearreader.SortByLastAccessed,
		Limit:      c.Limit,
	}, "No bookmarks. Use 'bearreader bookmark' to add one.")
}

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	return listTracked(deps, bearreader.PostFilter{
		Loaded: true,
		SortBy: bearreader.SortByLastAccessed,
		Limit:  c.Limit,
	}, "No posts read yet.")
}

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	if c.Query == "" {
		fmt.Fprintln(deps.Stderr, "error: search query required")
		return bearreader.Errorf(bearreader.EINVALID, "search query required")
	}
	return listTracked(deps, bearreader.PostFilter{
		Query:  &c.Query,
		SortBy: bearreader.SortByLastAccessed,
		Limit:  c.Limit,
	}, fmt.Sprintf("No tracked posts match %q.", c.Query))
}

func listTracked(deps *Dependencies, filter bearreader.PostFilter, empty string) error {
	posts, err := deps.Posts.FindPosts(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bearreader.ErrorMessage(err))
		return err
	}

	if len(posts) == 0 {
		fmt.Fprintln(deps.Stdout, empty)
		return nil
	}

	printTrackedPosts(deps.Stdout, posts)
	return nil
}

// Run executes the bookmark command.
func (c *BookmarkCmd) Run(deps *Dependencies) error {
	url := reader.NormalizePostURL(c.URL)
	on, err := deps.Posts.ToggleBookmark(deps.Ctx, url)
	if err != nil {
		if bearreader.ErrorCode(err) == bearreader.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: %s is not tracked. Read it or list it first.\n", url)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", bearreader.ErrorMessage(err))
		}
		return err
	}

	if on {
		fmt.Fprintf(deps.Stdout, "Bookmarked %s\n", url)
	} else {
		fmt.Fprintf(deps.Stdout, "Removed bookmark from %s\n", url)
	}
	return nil
}

// Run executes the position command.
func (c *PositionCmd) Run(deps *Dependencies) error {
	url := reader.NormalizePostURL(c.URL)
	if err := deps.Posts.UpdateViewID(deps.Ctx, url, c.Position); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bearreader.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved position %d for %s\n", c.Position, url)
	return nil
}

// Run executes the forget command.
func (c *ForgetCmd) Run(deps *Dependencies) error {
	url := reader.NormalizePostURL(c.URL)
	if err := deps.Posts.DeletePost(deps.Ctx, url); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bearreader.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Forgot %s\n", url)
	return nil
}
