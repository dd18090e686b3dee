package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fwojciec/bearreader"
)

// printPosts writes one entry per listing summary.
func printPosts(w io.Writer, posts []bearreader.PostSummary) {
	for _, p := range posts {
		title := p.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintln(w, title)
		fmt.Fprintf(w, "  %s", p.URL)
		if p.Age != "" {
			fmt.Fprintf(w, "  %s", p.Age)
		}
		if p.Rating != "" {
			fmt.Fprintf(w, "  ▲ %s", p.Rating)
		}
		fmt.Fprintln(w)
	}
}

// printTrackedPosts writes one entry per tracked post, with its flags.
func printTrackedPosts(w io.Writer, posts []*bearreader.TrackedPost) {
	for _, p := range posts {
		title := p.Title
		if title == "" {
			title = p.URL
		}
		marker := " "
		if p.Bookmarked {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s\n", marker, title)
		fmt.Fprintf(w, "  %s", p.URL)
		if p.LastAccessedAt != nil {
			fmt.Fprintf(w, "  read %s", formatTime(*p.LastAccessedAt))
		}
		fmt.Fprintln(w)
	}
}

// formatTime formats a stored timestamp in local time.
func formatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

// formatBytes formats bytes in human-readable form.
func formatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
