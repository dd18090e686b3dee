// Package reader orchestrates listing, reading and following Bear blogs.
// It coordinates fetching, caching, extraction and local tracking.
package reader

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/bearreader"
)

// fallbackSelectors is used on content located by a fallback Extractor,
// which is wrapped in a main element before block extraction.
var fallbackSelectors = bearreader.Selectors{MainContent: "main"}

// Reader is the application's entry point for everything that touches the
// network. Fields left nil disable the corresponding behavior: a nil Cache
// always fetches, a nil Limiter never waits, a nil Fallback reports missing
// content, and nil Posts skips tracking.
type Reader struct {
	Fetcher       bearreader.Fetcher
	Cache         bearreader.PageCache
	Limiter       bearreader.DomainLimiter
	Listings      bearreader.ListingExtractor
	Content       bearreader.ContentExtractor
	Fallback      bearreader.Extractor
	Posts         bearreader.PostService
	Settings      bearreader.SettingsService
	Subscriptions bearreader.SubscriptionService
	Feeds         bearreader.FeedService
	Logger        *slog.Logger

	// RetryDelays are the waits between fetch attempts. Nil disables retries.
	RetryDelays []time.Duration

	// Concurrency bounds the number of blogs refreshed at once.
	Concurrency int

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// ReadOptions controls how a post is loaded.
type ReadOptions struct {
	// Refresh bypasses the page cache.
	Refresh bool

	// Fallback locates content with the fallback Extractor when the main
	// content selector matches nothing.
	Fallback bool
}

func (r *Reader) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}

func (r *Reader) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

func (r *Reader) settings(ctx context.Context) (*bearreader.Settings, error) {
	if r.Settings == nil {
		return bearreader.DefaultSettings(), nil
	}
	return r.Settings.Settings(ctx)
}

// NormalizePostURL turns a scheme-relative URL into an https URL.
// Other URLs are returned unchanged.
func NormalizePostURL(rawURL string) string {
	if strings.HasPrefix(rawURL, "//") {
		return "https:" + rawURL
	}
	return rawURL
}

// NormalizeDomain reduces a blog address to its host, so "https://a.dev/blog/"
// and "a.dev" name the same blog.
func NormalizeDomain(domain string) string {
	d := strings.TrimSpace(domain)
	if !strings.Contains(d, "://") {
		d = "https://" + strings.TrimPrefix(d, "//")
	}
	u, err := url.Parse(d)
	if err != nil || u.Host == "" {
		return strings.TrimSuffix(strings.TrimSpace(domain), "/")
	}
	return strings.ToLower(u.Host)
}

// Trending returns a page of trending posts from the discovery feed.
func (r *Reader) Trending(ctx context.Context, page int) ([]bearreader.PostSummary, error) {
	s, err := r.settings(ctx)
	if err != nil {
		return nil, err
	}
	return r.listing(ctx, s.TrendingURL(page), s.Selectors)
}

// Recent returns a page of the newest posts from the discovery feed.
func (r *Reader) Recent(ctx context.Context, page int) ([]bearreader.PostSummary, error) {
	s, err := r.settings(ctx)
	if err != nil {
		return nil, err
	}
	return r.listing(ctx, s.RecentURL(page), s.Selectors)
}

func (r *Reader) listing(ctx context.Context, pageURL string, sel bearreader.Selectors) ([]bearreader.PostSummary, error) {
	html, err := r.fetch(ctx, pageURL, cacheBypass)
	if err != nil {
		return nil, err
	}
	posts, err := r.Listings.ExtractListings(html, sel)
	if err != nil {
		return nil, err
	}
	r.record(ctx, posts)
	return posts, nil
}

// BlogPosts returns the posts listed on a blog's own post list page.
// Cached pages are used unless refresh is set.
func (r *Reader) BlogPosts(ctx context.Context, domain string, refresh bool) ([]bearreader.PostSummary, error) {
	pageURL := bearreader.BlogFeedURL(domain)
	html, err := r.fetch(ctx, pageURL, cacheModeFor(refresh))
	if err != nil {
		return nil, err
	}
	posts, err := r.Listings.ExtractBlogFeed(html, pageURL)
	if err != nil {
		return nil, err
	}
	r.record(ctx, posts)
	return posts, nil
}

// record forwards summaries to the post tracker. Failures are logged and
// never reach the caller.
func (r *Reader) record(ctx context.Context, posts []bearreader.PostSummary) {
	if r.Posts == nil {
		return
	}
	for _, p := range posts {
		if p.URL == "" {
			continue
		}
		if err := r.Posts.RecordEncounteredPost(ctx, p); err != nil {
			r.logger().Warn("record post", "url", p.URL, "err", err)
		}
	}
}

// ReadPost fetches a post and converts it into content blocks.
// Returns ENOTFOUND when no main content can be located.
func (r *Reader) ReadPost(ctx context.Context, rawURL string, opts ReadOptions) (*bearreader.PostContent, error) {
	postURL := NormalizePostURL(rawURL)
	if postURL == "" {
		return nil, bearreader.Errorf(bearreader.EINVALID, "post URL required")
	}

	s, err := r.settings(ctx)
	if err != nil {
		return nil, err
	}

	html, err := r.fetch(ctx, postURL, cacheModeFor(opts.Refresh))
	if err != nil {
		return nil, err
	}

	blocks, err := r.Content.ExtractContent(html, s.Selectors)
	if err != nil {
		return nil, err
	}

	var title string
	if blocks == nil && opts.Fallback && r.Fallback != nil {
		blocks, title, err = r.fallback(html)
		if err != nil {
			return nil, err
		}
	}
	if blocks == nil {
		return nil, bearreader.Errorf(bearreader.ENOTFOUND, "no content found at %s", postURL)
	}

	content := &bearreader.PostContent{URL: postURL, Title: title, Blocks: blocks}
	r.markLoaded(ctx, content)
	return content, nil
}

func (r *Reader) fallback(html string) ([]bearreader.Block, string, error) {
	res, err := r.Fallback.Extract(html)
	if err != nil {
		r.logger().Debug("fallback extraction", "err", err)
		return nil, "", nil
	}
	wrapped := "<html><body><main>" + res.ContentHTML + "</main></body></html>"
	blocks, err := r.Content.ExtractContent(wrapped, fallbackSelectors)
	if err != nil {
		return nil, "", err
	}
	return blocks, res.Title, nil
}

// markLoaded records the post as read and fills in a known title.
func (r *Reader) markLoaded(ctx context.Context, content *bearreader.PostContent) {
	if r.Posts == nil {
		return
	}
	if tracked, err := r.Posts.FindPostByURL(ctx, content.URL); err == nil {
		if content.Title == "" {
			content.Title = tracked.Title
		}
	} else if bearreader.ErrorCode(err) == bearreader.ENOTFOUND {
		if err := r.Posts.RecordEncounteredPost(ctx, bearreader.PostSummary{Title: content.Title, URL: content.URL}); err != nil {
			r.logger().Warn("record post", "url", content.URL, "err", err)
		}
	}
	if err := r.Posts.MarkAsLoaded(ctx, content.URL); err != nil {
		r.logger().Warn("mark post loaded", "url", content.URL, "err", err)
	}
}

// cacheMode selects how a fetch interacts with the page cache.
type cacheMode int

const (
	// cacheBypass neither reads nor writes the cache. Discovery listings
	// change constantly and are never cached.
	cacheBypass cacheMode = iota

	// cacheReload skips the cached copy and stores the fresh one.
	cacheReload

	// cacheUse returns the cached copy when present, else loads and stores.
	cacheUse
)

func cacheModeFor(refresh bool) cacheMode {
	if refresh {
		return cacheReload
	}
	return cacheUse
}

// fetch retrieves a page through the cache, limiter and retry policy.
func (r *Reader) fetch(ctx context.Context, pageURL string, mode cacheMode) (string, error) {
	if mode == cacheUse && r.Cache != nil {
		if html, ok := r.Cache.Get(pageURL); ok {
			return html, nil
		}
	}

	domain := bearreader.DomainOf(pageURL)
	fetch := func(ctx context.Context, u string) (string, error) {
		if r.Limiter != nil {
			if err := r.Limiter.Wait(ctx, domain); err != nil {
				return "", err
			}
		}
		return r.Fetcher.Fetch(ctx, u)
	}

	html, err := FetchWithRetry(ctx, pageURL, fetch, r.logger(), r.RetryDelays)
	if err != nil {
		return "", err
	}

	if mode != cacheBypass && r.Cache != nil {
		if err := r.Cache.Put(pageURL, html); err != nil {
			r.logger().Warn("cache page", "url", pageURL, "err", err)
		}
	}
	return html, nil
}
