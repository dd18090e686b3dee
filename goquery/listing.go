package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/bearreader"
)

// Ensure ListingExtractor implements bearreader.ListingExtractor at compile time.
var _ bearreader.ListingExtractor = (*ListingExtractor)(nil)

// Fixed structure of a blog's own post list page.
const (
	blogPostsSelector = "ul.blog-posts li"
	blogTimeSelector  = "span i time"
)

// NoRating is shown for posts listed on a blog's own page, which carries no
// upvote counts.
const NoRating = "—"

// ListingExtractor extracts post summaries from listing pages.
// Extraction is pure: recording encountered posts is left to the caller.
type ListingExtractor struct{}

// NewListingExtractor creates a new ListingExtractor.
func NewListingExtractor() *ListingExtractor {
	return &ListingExtractor{}
}

// ExtractListings returns one summary per element matching sel.PostsList,
// in document order. Duplicate URLs are kept.
func (x *ListingExtractor) ExtractListings(html string, sel bearreader.Selectors) ([]bearreader.PostSummary, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, bearreader.Errorf(bearreader.EPARSE, "failed to parse HTML: %v", err)
	}

	posts := []bearreader.PostSummary{}
	doc.Find(sel.PostsList).Each(func(_ int, item *goquery.Selection) {
		title := item.Find(sel.PostTitle)
		posts = append(posts, bearreader.PostSummary{
			Title:  joinedText(title),
			URL:    firstAttr(title, "href"),
			Age:    joinedText(item.Find(sel.PostAge)),
			Rating: joinedText(item.Find(sel.PostRating)),
		})
	})

	return posts, nil
}

// ExtractBlogFeed returns the posts listed on a blog's own post list page.
// Items without a link are skipped.
func (x *ListingExtractor) ExtractBlogFeed(html string, pageURL string) ([]bearreader.PostSummary, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, bearreader.Errorf(bearreader.EPARSE, "failed to parse HTML: %v", err)
	}

	posts := []bearreader.PostSummary{}
	doc.Find(blogPostsSelector).Each(func(_ int, item *goquery.Selection) {
		link, ok := firstMatch(item, "a")
		if !ok {
			return
		}

		var age string
		if t, ok := firstMatch(item, blogTimeSelector); ok {
			age = strings.TrimSpace(textContent(t))
		}

		href, _ := attr(link, "href")
		posts = append(posts, bearreader.PostSummary{
			Title:  strings.TrimSpace(textContent(link)),
			URL:    ResolveHref(pageURL, href),
			Age:    age,
			Rating: NoRating,
		})
	})

	return posts, nil
}

// ResolveHref resolves a link found on pageURL.
// Absolute http(s) links pass through. Root-relative links resolve against
// the scheme and host of pageURL. Anything else is appended to pageURL.
func ResolveHref(pageURL, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}

	base, err := url.Parse(pageURL)
	canResolve := err == nil && base.Scheme != "" && base.Host != ""

	if strings.HasPrefix(href, "//") {
		if canResolve {
			return base.Scheme + ":" + href
		}
		return "https:" + href
	}

	if strings.HasPrefix(href, "/") {
		if canResolve {
			return base.Scheme + "://" + base.Host + href
		}
		return strings.ReplaceAll(pageURL, "/blog/", "") + href
	}

	return pageURL + href
}
