package bearreader

import (
	"context"
	"net/url"
	"time"
)

// UnknownDomain is reported when a post URL has no parseable host.
const UnknownDomain = "unknown"

// PostSummary is a post as it appears on a listing page.
// URL may be absolute or scheme-relative ("//blog.bearblog.dev/post/").
type PostSummary struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Age    string `json:"age"`
	Rating string `json:"rating"`
}

// Key returns the identity of the summary. Two summaries with the same URL
// are the same post.
func (p PostSummary) Key() string {
	return p.URL
}

// Domain returns the host of the post URL, or UnknownDomain if the URL
// cannot be parsed or carries no host.
func (p PostSummary) Domain() string {
	return DomainOf(p.URL)
}

// Validate returns an error if the summary cannot be tracked.
func (p PostSummary) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "post URL required")
	}
	return nil
}

// DomainOf returns the host of rawURL, or UnknownDomain.
func DomainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return UnknownDomain
	}
	return u.Hostname()
}

// ListingExtractor extracts post summaries from listing pages.
type ListingExtractor interface {
	// ExtractListings extracts summaries from a discovery page using the
	// list, title, age and rating selectors. Missing fields are empty.
	ExtractListings(html string, sel Selectors) ([]PostSummary, error)

	// ExtractBlogFeed extracts summaries from a single blog's post list.
	// Relative links are resolved against pageURL.
	ExtractBlogFeed(html string, pageURL string) ([]PostSummary, error)
}

// SeenFilter remembers which post URLs have already been listed so paged
// listings can skip repeats. Implementations may report false positives.
type SeenFilter interface {
	// TestAndAdd reports whether url was seen before and marks it as seen.
	TestAndAdd(url string) bool
}

// PostRecorder records posts the user has been shown.
type PostRecorder interface {
	// RecordEncounteredPost stores the summary unless a post with the same
	// URL is already tracked.
	RecordEncounteredPost(ctx context.Context, post PostSummary) error
}

// TrackedPost is a post stored locally, either encountered on a listing or read.
type TrackedPost struct {
	ID             int64      `json:"id"`
	URL            string     `json:"url"`
	Title          string     `json:"title"`
	Age            string     `json:"age"`
	Rating         string     `json:"rating"`
	Domain         string     `json:"domain"`
	WasLoaded      bool       `json:"wasLoaded"`
	ViewID         int        `json:"viewId"`
	EncounteredAt  time.Time  `json:"encounteredAt"`
	LastAccessedAt *time.Time `json:"lastAccessedAt"`
	Bookmarked     bool       `json:"bookmarked"`
}

// Summary converts the tracked post back to a listing summary.
func (p *TrackedPost) Summary() PostSummary {
	return PostSummary{Title: p.Title, URL: p.URL, Age: p.Age, Rating: p.Rating}
}

// PostStats summarizes the tracked post store.
type PostStats struct {
	Total int

	// Read counts posts opened at least once.
	Read int

	Bookmarked int
}

// Encountered returns the number of posts seen on listings but never read.
func (s PostStats) Encountered() int {
	return s.Total - s.Read
}

// PostService represents a service for managing tracked posts.
type PostService interface {
	PostRecorder

	// MarkAsLoaded flags the post as loaded and updates its access time.
	MarkAsLoaded(ctx context.Context, url string) error

	// UpdateViewID stores the reading position of the post.
	UpdateViewID(ctx context.Context, url string, viewID int) error

	// FindPostByURL retrieves a tracked post.
	// Returns ENOTFOUND if the post is not tracked.
	FindPostByURL(ctx context.Context, url string) (*TrackedPost, error)

	// FindPosts retrieves tracked posts matching the filter.
	FindPosts(ctx context.Context, filter PostFilter) ([]*TrackedPost, error)

	// ToggleBookmark flips the bookmark flag and returns the new value.
	// Returns ENOTFOUND if the post is not tracked.
	ToggleBookmark(ctx context.Context, url string) (bool, error)

	// DeletePost removes a tracked post.
	// Returns ENOTFOUND if the post is not tracked.
	DeletePost(ctx context.Context, url string) error

	// DeleteAllPosts removes every tracked post.
	DeleteAllPosts(ctx context.Context) error

	// PostStats counts tracked posts.
	PostStats(ctx context.Context) (*PostStats, error)
}

// PostSortOrder represents the sort order for post queries.
type PostSortOrder string

// PostSortOrder constants for PostFilter.
const (
	SortByLastAccessed PostSortOrder = "last_accessed_at"
	SortByEncountered  PostSortOrder = "encountered_at"
)

// PostFilter represents a filter for FindPosts.
type PostFilter struct {
	// Query matches a substring of the title or domain.
	Query *string `json:"query"`

	// Read restricts results to posts with a stored reading position.
	Read bool `json:"read"`

	// Loaded restricts results to posts that were opened at least once.
	Loaded bool `json:"loaded"`

	Bookmarked bool `json:"bookmarked"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	SortBy PostSortOrder `json:"sortBy"`
}
