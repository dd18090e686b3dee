package goquery_test

import (
	"testing"

	"github.com/fwojciec/bearreader"
	"github.com/fwojciec/bearreader/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const discoverPage = `<!DOCTYPE html>
<html>
<body>
<main>
<ul class="discover-posts">
	<li>
		<span>1.</span>
		<div>
			<a href="https://alice.bearblog.dev/first-post/">First post</a>
			<small>
				<small>2 hours ago</small>
				<small>12</small>
			</small>
		</div>
	</li>
	<li>
		<span>2.</span>
		<div>
			<a href="//bob.bearblog.dev/hello/">Hello &amp; welcome</a>
			<small>
				<small>1 day ago</small>
				<small>7</small>
			</small>
		</div>
	</li>
	<li>
		<span>3.</span>
		<div>
			<a href="https://alice.bearblog.dev/first-post/">First post</a>
			<small>
				<small>2 hours ago</small>
				<small>12</small>
			</small>
		</div>
	</li>
</ul>
</main>
</body>
</html>`

func TestListingExtractor_ExtractListings(t *testing.T) {
	t.Parallel()

	t.Run("extracts posts with default selectors", func(t *testing.T) {
		t.Parallel()

		x := goquery.NewListingExtractor()
		posts, err := x.ExtractListings(discoverPage, bearreader.DefaultSelectors())

		require.NoError(t, err)
		require.Len(t, posts, 3)
		assert.Equal(t, bearreader.PostSummary{
			Title:  "First post",
			URL:    "https://alice.bearblog.dev/first-post/",
			Age:    "2 hours ago",
			Rating: "12",
		}, posts[0])
		assert.Equal(t, "Hello & welcome", posts[1].Title)
		assert.Equal(t, "//bob.bearblog.dev/hello/", posts[1].URL)
		assert.Equal(t, "bob.bearblog.dev", posts[1].Domain())
	})

	t.Run("keeps duplicate URLs", func(t *testing.T) {
		t.Parallel()

		x := goquery.NewListingExtractor()
		posts, err := x.ExtractListings(discoverPage, bearreader.DefaultSelectors())

		require.NoError(t, err)
		assert.Equal(t, posts[0], posts[2])
	})

	t.Run("missing fields degrade to empty strings", func(t *testing.T) {
		t.Parallel()

		x := goquery.NewListingExtractor()
		posts, err := x.ExtractListings(`<ul><li><div><span>no link</span></div></li></ul>`, bearreader.DefaultSelectors())

		require.NoError(t, err)
		assert.Equal(t, []bearreader.PostSummary{{}}, posts)
	})

	t.Run("no matches yields empty slice", func(t *testing.T) {
		t.Parallel()

		x := goquery.NewListingExtractor()
		posts, err := x.ExtractListings(`<html><body><p>Nothing here</p></body></html>`, bearreader.DefaultSelectors())

		require.NoError(t, err)
		require.NotNil(t, posts)
		assert.Empty(t, posts)
	})

	t.Run("invalid selector yields empty slice", func(t *testing.T) {
		t.Parallel()

		sel := bearreader.DefaultSelectors()
		sel.PostsList = "ul >"

		x := goquery.NewListingExtractor()
		posts, err := x.ExtractListings(discoverPage, sel)

		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("custom selectors", func(t *testing.T) {
		t.Parallel()

		html := `<section>
<article><h3><a href="/p/1">One</a></h3><time>today</time><b>5</b></article>
<article><h3><a href="/p/2">Two</a></h3><time>yesterday</time><b>3</b></article>
</section>`
		sel := bearreader.Selectors{
			PostsList:   "section > article",
			PostTitle:   "h3 a",
			PostAge:     "time",
			PostRating:  "b",
			MainContent: "main",
		}

		x := goquery.NewListingExtractor()
		posts, err := x.ExtractListings(html, sel)

		require.NoError(t, err)
		assert.Equal(t, []bearreader.PostSummary{
			{Title: "One", URL: "/p/1", Age: "today", Rating: "5"},
			{Title: "Two", URL: "/p/2", Age: "yesterday", Rating: "3"},
		}, posts)
	})
}

func TestListingExtractor_ExtractBlogFeed(t *testing.T) {
	t.Parallel()

	html := `<main>
<ul class="blog-posts">
	<li>
		<span><i><time datetime="2024-05-01">01 May, 2024</time></i></span>
		<a href="/first/">First</a>
	</li>
	<li>
		<span><i><time>02 May, 2024</time></i></span>
		<a href="https://other.example.com/second/">Second</a>
	</li>
	<li>
		<span><i><time>03 May, 2024</time></i></span>
		<span>draft without link</span>
	</li>
	<li>
		<a href="third/">Third</a>
	</li>
</ul>
</main>`

	x := goquery.NewListingExtractor()
	posts, err := x.ExtractBlogFeed(html, "https://alice.bearblog.dev/blog/")

	require.NoError(t, err)
	assert.Equal(t, []bearreader.PostSummary{
		{Title: "First", URL: "https://alice.bearblog.dev/first/", Age: "01 May, 2024", Rating: goquery.NoRating},
		{Title: "Second", URL: "https://other.example.com/second/", Age: "02 May, 2024", Rating: goquery.NoRating},
		{Title: "Third", URL: "https://alice.bearblog.dev/blog/third/", Age: "", Rating: goquery.NoRating},
	}, posts)
}

func TestResolveHref(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pageURL string
		href    string
		want    string
	}{
		{"absolute https", "https://a.dev/blog/", "https://b.dev/x/", "https://b.dev/x/"},
		{"absolute http", "https://a.dev/blog/", "http://b.dev/x/", "http://b.dev/x/"},
		{"root relative", "https://a.dev/blog/", "/post/", "https://a.dev/post/"},
		{"root relative keeps port", "http://127.0.0.1:8080/blog/", "/post/", "http://127.0.0.1:8080/post/"},
		{"root relative without host", "a.dev/blog/", "/post/", "a.dev/post/"},
		{"scheme relative", "http://a.dev/blog/", "//b.dev/x/", "http://b.dev/x/"},
		{"scheme relative to another host", "https://a.bearblog.dev/blog/", "//other.dev/x/", "https://other.dev/x/"},
		{"scheme relative without base", "", "//b.dev/x/", "https://b.dev/x/"},
		{"relative", "https://a.dev/blog/", "post/", "https://a.dev/blog/post/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, goquery.ResolveHref(tt.pageURL, tt.href))
		})
	}
}
