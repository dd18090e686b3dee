package main

import (
	"fmt"

	"github.com/fwojciec/bearreader"
	"github.com/fwojciec/bearreader/reader"
)

// Run executes the read command.
func (c *ReadCmd) Run(deps *Dependencies) error {
	content, err := deps.Reader.ReadPost(deps.Ctx, c.URL, reader.ReadOptions{
		Refresh:  c.Refresh,
		Fallback: c.Fallback != "" && c.Fallback != "none",
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bearreader.ErrorMessage(err))
		if bearreader.ErrorCode(err) == bearreader.ENOTFOUND {
			fmt.Fprintln(deps.Stderr, "Hint: try --fallback trafilatura, or adjust the main content selector")
		}
		return err
	}

	fmt.Fprintln(deps.Stdout, bearreader.FormatPost(content))

	if c.Save != "" && deps.Writer != nil {
		path, err := deps.Writer.WritePost(deps.Ctx, content)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", bearreader.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stderr, "Saved to %s\n", path)
	}
	return nil
}

// Run executes the summarize command.
func (c *SummarizeCmd) Run(deps *Dependencies) error {
	content, err := deps.Reader.ReadPost(deps.Ctx, c.URL, reader.ReadOptions{
		Refresh:  c.Refresh,
		Fallback: c.Fallback != "" && c.Fallback != "none",
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bearreader.ErrorMessage(err))
		return err
	}

	summary, err := deps.Summarizer.Summarize(deps.Ctx, content)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bearreader.ErrorMessage(err))
		return err
	}

	if content.Title != "" {
		fmt.Fprintf(deps.Stdout, "# %s\n\n", content.Title)
	}
	fmt.Fprintln(deps.Stdout, summary)
	return nil
}
