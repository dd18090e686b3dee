package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/bearreader"
	bearhttp "github.com/fwojciec/bearreader/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const atomFeed = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Herman's blog</title>
  <link href="https://herman.bearblog.dev/" rel="alternate"/>
  <entry>
    <title>Second post</title>
    <link href="https://herman.bearblog.dev/feed/" rel="self"/>
    <link href="https://herman.bearblog.dev/second/" rel="alternate"/>
    <published>2024-05-02T10:00:00+00:00</published>
  </entry>
  <entry>
    <title>First post</title>
    <link href="https://herman.bearblog.dev/first/"/>
    <updated>2024-05-01T10:00:00+00:00</updated>
  </entry>
  <entry>
    <title>No link</title>
  </entry>
</feed>`

const rssFeed = `<?xml version="1.0" encoding="utf-8"?>
<rss version="2.0">
  <channel>
    <title><![CDATA[Alice writes]]></title>
    <item>
      <title>Hello</title>
      <link>https://alice.bearblog.dev/hello/</link>
      <pubDate>Wed, 01 May 2024 10:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

func feedServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/feed/" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFeedService_FetchFeed(t *testing.T) {
	t.Parallel()

	t.Run("parses atom feed", func(t *testing.T) {
		t.Parallel()

		srv := feedServer(t, http.StatusOK, atomFeed)
		svc := bearhttp.NewFeedService(srv.Client(), "")

		feed, err := svc.FetchFeed(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Equal(t, "Herman's blog", feed.Title)
		assert.Equal(t, []bearreader.PostSummary{
			{Title: "Second post", URL: "https://herman.bearblog.dev/second/", Age: "2024-05-02T10:00:00+00:00"},
			{Title: "First post", URL: "https://herman.bearblog.dev/first/", Age: "2024-05-01T10:00:00+00:00"},
		}, feed.Posts)
	})

	t.Run("parses rss feed", func(t *testing.T) {
		t.Parallel()

		srv := feedServer(t, http.StatusOK, rssFeed)
		svc := bearhttp.NewFeedService(srv.Client(), "")

		feed, err := svc.FetchFeed(context.Background(), srv.URL+"/")

		require.NoError(t, err)
		assert.Equal(t, "Alice writes", feed.Title)
		require.Len(t, feed.Posts, 1)
		assert.Equal(t, "https://alice.bearblog.dev/hello/", feed.Posts[0].URL)
	})

	t.Run("missing feed is not found", func(t *testing.T) {
		t.Parallel()

		srv := feedServer(t, http.StatusNotFound, "")
		svc := bearhttp.NewFeedService(srv.Client(), "")

		_, err := svc.FetchFeed(context.Background(), srv.URL)

		assert.Equal(t, bearreader.ENOTFOUND, bearreader.ErrorCode(err))
	})

	t.Run("server error", func(t *testing.T) {
		t.Parallel()

		srv := feedServer(t, http.StatusInternalServerError, "")
		svc := bearhttp.NewFeedService(srv.Client(), "")

		_, err := svc.FetchFeed(context.Background(), srv.URL)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "500")
	})

	t.Run("malformed XML", func(t *testing.T) {
		t.Parallel()

		srv := feedServer(t, http.StatusOK, "<feed><title>oops")
		svc := bearhttp.NewFeedService(srv.Client(), "")

		_, err := svc.FetchFeed(context.Background(), srv.URL)

		assert.Equal(t, bearreader.EPARSE, bearreader.ErrorCode(err))
	})

	t.Run("unsupported root", func(t *testing.T) {
		t.Parallel()

		srv := feedServer(t, http.StatusOK, "<html><body/></html>")
		svc := bearhttp.NewFeedService(srv.Client(), "")

		_, err := svc.FetchFeed(context.Background(), srv.URL)

		assert.Equal(t, bearreader.EPARSE, bearreader.ErrorCode(err))
	})
}

func TestFeedURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://herman.bearblog.dev/feed/", bearhttp.FeedURL("herman.bearblog.dev"))
	assert.Equal(t, "https://herman.bearblog.dev/feed/", bearhttp.FeedURL("https://herman.bearblog.dev/"))
	assert.Equal(t, "http://localhost:8080/feed/", bearhttp.FeedURL("http://localhost:8080"))
}
