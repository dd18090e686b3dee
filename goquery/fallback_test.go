package goquery_test

import (
	"testing"

	"github.com/fwojciec/bearreader/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareFallback(t *testing.T) {
	t.Parallel()

	t.Run("lifts furniture in document order", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="post">
<p>Prose stays.</p>
<iframe src="https://www.youtube.com/embed/abc123" title="Talk"></iframe>
<iframe src="https://ads.example.com/frame"></iframe>
<p class="tags"><a href="/blog/?q=go">#go</a></p>
<form id="upvote-form"><input name="uid" value="u1"><input name="title" value="T"><span class="upvote-count">3</span></form>
</div></body></html>`

		page, furniture, err := goquery.PrepareFallback(html)

		require.NoError(t, err)
		require.Len(t, furniture, 3)
		assert.Contains(t, furniture[0], "youtube.com/embed/abc123")
		assert.Contains(t, furniture[1], `class="tags"`)
		assert.Contains(t, furniture[2], `id="upvote-form"`)

		assert.Contains(t, page, "Prose stays.")
		assert.Contains(t, page, "ads.example.com")
		assert.NotContains(t, page, "youtube.com")
		assert.NotContains(t, page, "upvote-form")
		assert.NotContains(t, page, "#go")
	})

	t.Run("rewrites highlight blocks as pre", func(t *testing.T) {
		t.Parallel()

		html := `<main><div highlight="go"><code>if a &lt; b {}</code></div><div highlight=""><code>kept</code></div></main>`

		page, furniture, err := goquery.PrepareFallback(html)

		require.NoError(t, err)
		assert.Empty(t, furniture)
		assert.Contains(t, page, "<pre><code>if a &lt; b {}</code></pre>")
		assert.Contains(t, page, `<div highlight=""><code>kept</code></div>`)
	})
}
