package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/bearreader"
	"github.com/fwojciec/bearreader/reader"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Reader        *reader.Reader
	Posts         bearreader.PostService
	Subscriptions bearreader.SubscriptionService
	Settings      bearreader.SettingsService
	Cache         bearreader.PageCache

	// Fetcher loads pages for the selector preview, outside the cache.
	Fetcher   bearreader.Fetcher
	Previewer bearreader.SelectorPreviewer

	// Seen drops posts repeated across pages of a listing.
	Seen bearreader.SeenFilter

	Writer     bearreader.PostWriter
	Summarizer bearreader.Summarizer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool          `short:"v" help:"Log requests and extraction details to stderr"`
	Lang    string        `env:"BEARREADER_LANG" help:"Language filter for discovery pages, e.g. en"`
	Timeout time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`

	Trending      TrendingCmd      `cmd:"" help:"List trending posts"`
	Recent        RecentCmd        `cmd:"" help:"List the newest posts"`
	Read          ReadCmd          `cmd:"" help:"Read a post"`
	Summarize     SummarizeCmd     `cmd:"" help:"Summarize a post with Gemini"`
	Blog          BlogCmd          `cmd:"" help:"List the posts of one blog"`
	Subscribe     SubscribeCmd     `cmd:"" help:"Follow a blog"`
	Unsubscribe   UnsubscribeCmd   `cmd:"" help:"Stop following a blog"`
	Subscriptions SubscriptionsCmd `cmd:"" help:"List followed blogs"`
	Refresh       RefreshCmd       `cmd:"" help:"Fetch new posts from followed blogs"`
	Bookmarks     BookmarksCmd     `cmd:"" help:"List bookmarked posts"`
	Bookmark      BookmarkCmd      `cmd:"" help:"Toggle the bookmark on a post"`
	History       HistoryCmd       `cmd:"" help:"List recently read posts"`
	Search        SearchCmd        `cmd:"" help:"Search tracked posts by title or blog"`
	Position      PositionCmd      `cmd:"" help:"Remember the reading position in a post"`
	Forget        ForgetCmd        `cmd:"" help:"Remove a post from the local history"`
	Settings      SettingsCmd      `cmd:"" help:"Show or change settings"`
	DB            DBCmd            `cmd:"" name:"db" help:"Inspect or clear local data"`
}

// TrendingCmd is the "trending" subcommand.
type TrendingCmd struct {
	Page  int `short:"p" default:"0" help:"First page to show"`
	Pages int `short:"n" default:"1" help:"Number of pages to load"`
}

// RecentCmd is the "recent" subcommand.
type RecentCmd struct {
	Page  int `short:"p" default:"0" help:"First page to show"`
	Pages int `short:"n" default:"1" help:"Number of pages to load"`
}

// BlogCmd is the "blog" subcommand.
type BlogCmd struct {
	Domain  string `arg:"" help:"Blog domain, e.g. herman.bearblog.dev"`
	Refresh bool   `short:"r" help:"Ignore the cached post list"`
}

// ReadCmd is the "read" subcommand.
type ReadCmd struct {
	URL      string `arg:"" help:"Post URL"`
	Refresh  bool   `short:"r" help:"Ignore the cached page"`
	Render   bool   `help:"Render the page in a headless browser before extracting"`
	Fallback string `enum:"none,trafilatura,readability" default:"none" help:"Locate content heuristically when the main content selector matches nothing (none, trafilatura, readability)"`
	Save     string `short:"s" placeholder:"DIR" help:"Also save the post as Markdown under DIR"`
}

// SummarizeCmd is the "summarize" subcommand.
type SummarizeCmd struct {
	URL      string `arg:"" help:"Post URL"`
	Refresh  bool   `short:"r" help:"Ignore the cached page"`
	Render   bool   `help:"Render the page in a headless browser before extracting"`
	Fallback string `enum:"none,trafilatura,readability" default:"none" help:"Locate content heuristically when the main content selector matches nothing"`
}

// SubscribeCmd is the "subscribe" subcommand.
type SubscribeCmd struct {
	Domain string `arg:"" help:"Blog domain"`
}

// UnsubscribeCmd is the "unsubscribe" subcommand.
type UnsubscribeCmd struct {
	Domain string `arg:"" help:"Blog domain"`
}

// SubscriptionsCmd is the "subscriptions" subcommand.
type SubscriptionsCmd struct{}

// RefreshCmd is the "refresh" subcommand.
type RefreshCmd struct {
	IfStale bool `help:"Only refresh when a blog was not fetched in the last hour"`
}

// BookmarksCmd is the "bookmarks" subcommand.
type BookmarksCmd struct {
	Limit int `short:"l" default:"50" help:"Maximum number of posts"`
}

// BookmarkCmd is the "bookmark" subcommand.
type BookmarkCmd struct {
	URL string `arg:"" help:"Post URL"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Limit int `short:"l" default:"20" help:"Maximum number of posts"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query string `arg:"" help:"Text to find in titles and blog domains"`
	Limit int    `short:"l" default:"50" help:"Maximum number of posts"`
}

// PositionCmd is the "position" subcommand.
type PositionCmd struct {
	URL      string `arg:"" help:"Post URL"`
	Position int    `arg:"" help:"Block index to resume from"`
}

// ForgetCmd is the "forget" subcommand.
type ForgetCmd struct {
	URL string `arg:"" help:"Post URL"`
}

// SettingsCmd groups the settings subcommands.
type SettingsCmd struct {
	Show    SettingsShowCmd    `cmd:"" default:"1" help:"Print current settings as YAML"`
	Set     SettingsSetCmd     `cmd:"" help:"Change settings"`
	Reset   SettingsResetCmd   `cmd:"" help:"Restore default settings"`
	Preview SettingsPreviewCmd `cmd:"" help:"Show what a CSS selector matches on a page"`
	Export  SettingsExportCmd  `cmd:"" help:"Write settings to a YAML file"`
	Import  SettingsImportCmd  `cmd:"" help:"Load settings from a YAML file"`
}

// SettingsShowCmd is the "settings show" subcommand.
type SettingsShowCmd struct{}

// SettingsSetCmd is the "settings set" subcommand. Empty flags keep the
// current value.
type SettingsSetCmd struct {
	ServiceURL  string `name:"service-url" help:"Discovery page URL"`
	UserAgent   string `name:"user-agent" help:"User-Agent header sent with requests"`
	PostsList   string `name:"posts-list" help:"Selector for listing items"`
	PostTitle   string `name:"post-title" help:"Selector for the title link inside an item"`
	PostAge     string `name:"post-age" help:"Selector for the age inside an item"`
	PostRating  string `name:"post-rating" help:"Selector for the rating inside an item"`
	MainContent string `name:"main-content" help:"Selector for the post body"`
}

// SettingsResetCmd is the "settings reset" subcommand.
type SettingsResetCmd struct{}

// SettingsPreviewCmd is the "settings preview" subcommand.
type SettingsPreviewCmd struct {
	Selector string `arg:"" help:"CSS selector to evaluate"`
	URL      string `short:"u" help:"Page to evaluate against (default: first trending page)"`
}

// SettingsExportCmd is the "settings export" subcommand.
type SettingsExportCmd struct {
	Path string `arg:"" help:"Output file, or - for stdout"`
}

// SettingsImportCmd is the "settings import" subcommand.
type SettingsImportCmd struct {
	Path string `arg:"" help:"YAML file to load"`
}

// DBCmd groups the local data subcommands.
type DBCmd struct {
	Stats      DBStatsCmd      `cmd:"" default:"1" help:"Show counts of tracked posts, subscriptions and cached pages"`
	ClearPosts DBClearPostsCmd `cmd:"" name:"clear-posts" help:"Delete all tracked posts"`
	ClearCache DBClearCacheCmd `cmd:"" name:"clear-cache" help:"Delete all cached pages"`
}

// DBStatsCmd is the "db stats" subcommand.
type DBStatsCmd struct{}

// DBClearPostsCmd is the "db clear-posts" subcommand.
type DBClearPostsCmd struct {
	Force bool `help:"Confirm deletion"`
}

// DBClearCacheCmd is the "db clear-cache" subcommand.
type DBClearCacheCmd struct{}
