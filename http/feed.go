package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/bearreader"
)

// Ensure FeedService implements bearreader.FeedService.
var _ bearreader.FeedService = (*FeedService)(nil)

// FeedService reads a blog's syndication feed. Bear serves Atom at /feed/;
// RSS 2.0 documents are accepted as well.
type FeedService struct {
	client    *http.Client
	userAgent string
}

// NewFeedService creates a new FeedService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewFeedService(client *http.Client, userAgent string) *FeedService {
	if client == nil {
		client = http.DefaultClient
	}
	return &FeedService{client: client, userAgent: userAgent}
}

// FeedURL returns the feed location of a blog. The domain may be given with
// or without a scheme.
func FeedURL(domain string) string {
	u := domain
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = "https://" + u
	}
	return strings.TrimSuffix(u, "/") + "/feed/"
}

// FetchFeed downloads and parses the feed of the blog at domain.
func (s *FeedService) FetchFeed(ctx context.Context, domain string) (*bearreader.BlogFeed, error) {
	feedURL := FeedURL(domain)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, bearreader.Errorf(bearreader.ENOTFOUND, "no feed at %s", feedURL)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, feedURL)
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(resp.Body); err != nil {
		return nil, bearreader.Errorf(bearreader.EPARSE, "parsing feed XML: %v", err)
	}

	return ParseFeed(doc)
}

// ParseFeed converts an Atom or RSS document into a BlogFeed.
func ParseFeed(doc *etree.Document) (*bearreader.BlogFeed, error) {
	root := doc.Root()
	if root == nil {
		return nil, bearreader.Errorf(bearreader.EPARSE, "empty feed XML")
	}

	switch root.Tag {
	case "feed":
		return parseAtom(root), nil
	case "rss":
		channel := root.SelectElement("channel")
		if channel == nil {
			return nil, bearreader.Errorf(bearreader.EPARSE, "rss feed without channel")
		}
		return parseRSS(channel), nil
	default:
		return nil, bearreader.Errorf(bearreader.EPARSE, "unsupported feed root <%s>", root.Tag)
	}
}

func parseAtom(root *etree.Element) *bearreader.BlogFeed {
	feed := &bearreader.BlogFeed{
		Title: childText(root, "title"),
		Posts: []bearreader.PostSummary{},
	}
	for _, entry := range root.SelectElements("entry") {
		link := atomLink(entry)
		if link == "" {
			continue
		}
		age := childText(entry, "published")
		if age == "" {
			age = childText(entry, "updated")
		}
		feed.Posts = append(feed.Posts, bearreader.PostSummary{
			Title: childText(entry, "title"),
			URL:   link,
			Age:   age,
		})
	}
	return feed
}

// atomLink prefers the alternate link and falls back to the first link.
func atomLink(entry *etree.Element) string {
	var first string
	for _, l := range entry.SelectElements("link") {
		href := strings.TrimSpace(l.SelectAttrValue("href", ""))
		if href == "" {
			continue
		}
		rel := l.SelectAttrValue("rel", "alternate")
		if rel == "alternate" {
			return href
		}
		if first == "" {
			first = href
		}
	}
	return first
}

func parseRSS(channel *etree.Element) *bearreader.BlogFeed {
	feed := &bearreader.BlogFeed{
		Title: childText(channel, "title"),
		Posts: []bearreader.PostSummary{},
	}
	for _, item := range channel.SelectElements("item") {
		link := childText(item, "link")
		if link == "" {
			continue
		}
		feed.Posts = append(feed.Posts, bearreader.PostSummary{
			Title: childText(item, "title"),
			URL:   link,
			Age:   childText(item, "pubDate"),
		})
	}
	return feed
}

func childText(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}
