package goquery_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/fwojciec/bearreader"
	"github.com/fwojciec/bearreader/goquery"
	"github.com/fwojciec/bearreader/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoConverter returns the markup it receives so tests can see exactly
// which fragment was handed to the converter.
func echoConverter() *mock.Converter {
	return &mock.Converter{
		ConvertFn: func(html string) (bearreader.StyledText, error) {
			return bearreader.StyledText(strings.TrimSpace(html)), nil
		},
	}
}

func extract(t *testing.T, html string) []bearreader.Block {
	t.Helper()
	x := goquery.NewContentExtractor(echoConverter())
	blocks, err := x.ExtractContent(html, bearreader.DefaultSelectors())
	require.NoError(t, err)
	return blocks
}

func TestContentExtractor_NoContent(t *testing.T) {
	t.Parallel()

	t.Run("returns nil when main content is missing", func(t *testing.T) {
		t.Parallel()

		blocks := extract(t, `<html><body><div><p>Hello</p></div></body></html>`)

		assert.Nil(t, blocks)
	})

	t.Run("returns empty non-nil slice for empty main", func(t *testing.T) {
		t.Parallel()

		blocks := extract(t, `<html><body><main></main></body></html>`)

		require.NotNil(t, blocks)
		assert.Empty(t, blocks)
	})

	t.Run("uses custom main content selector", func(t *testing.T) {
		t.Parallel()

		x := goquery.NewContentExtractor(echoConverter())
		sel := bearreader.DefaultSelectors()
		sel.MainContent = "article.post"

		blocks, err := x.ExtractContent(`<main><h2>Skip</h2></main><article class="post"><h2>Keep</h2></article>`, sel)

		require.NoError(t, err)
		assert.Equal(t, []bearreader.Block{bearreader.Header2Block{Text: "Keep"}}, blocks)
	})

	t.Run("invalid main content selector matches nothing", func(t *testing.T) {
		t.Parallel()

		x := goquery.NewContentExtractor(echoConverter())
		sel := bearreader.DefaultSelectors()
		sel.MainContent = "main[class"

		blocks, err := x.ExtractContent(`<main><h2>Title</h2></main>`, sel)

		require.NoError(t, err)
		assert.Nil(t, blocks)
	})
}

func TestContentExtractor_Images(t *testing.T) {
	t.Parallel()

	t.Run("direct image needs padding", func(t *testing.T) {
		t.Parallel()

		blocks := extract(t, `<main><img src="https://x/a.png" alt="A cat"></main>`)

		assert.Equal(t, []bearreader.Block{
			bearreader.ImageBlock{URL: "https://x/a.png", AltText: "A cat", NeedsPadding: true},
		}, blocks)
	})

	t.Run("missing alt defaults to empty", func(t *testing.T) {
		t.Parallel()

		blocks := extract(t, `<main><img src="a.png"></main>`)

		assert.Equal(t, []bearreader.Block{
			bearreader.ImageBlock{URL: "a.png", NeedsPadding: true},
		}, blocks)
	})

	t.Run("image without src is skipped", func(t *testing.T) {
		t.Parallel()

		blocks := extract(t, `<main><img alt="nothing"><img src=""></main>`)

		assert.Empty(t, blocks)
	})

	t.Run("paragraph images come before text and have no padding", func(t *testing.T) {
		t.Parallel()

		blocks := extract(t, `<main><p>Look <img src="a.png" alt="A"> here</p></main>`)

		require.Len(t, blocks, 2)
		assert.Equal(t, bearreader.ImageBlock{URL: "a.png", AltText: "A"}, blocks[0])
		assert.Equal(t, bearreader.TextBlock{Text: "<p>Look  here</p>"}, blocks[1])
	})

	t.Run("paragraph with only an image yields no text", func(t *testing.T) {
		t.Parallel()

		x := goquery.NewContentExtractor(&mock.Converter{
			ConvertFn: func(html string) (bearreader.StyledText, error) {
				// Markdown of an empty paragraph is empty.
				if html == "<p></p>" {
					return "", nil
				}
				return bearreader.StyledText(html), nil
			},
		})

		blocks, err := x.ExtractContent(`<main><p><img src="a.png"></p></main>`, bearreader.DefaultSelectors())

		require.NoError(t, err)
		assert.Equal(t, []bearreader.Block{bearreader.ImageBlock{URL: "a.png"}}, blocks)
	})

	t.Run("does not modify the source tree when stripping images", func(t *testing.T) {
		t.Parallel()

		html := `<main><p>One <img src="a.png"></p></main>`
		first := extract(t, html)
		second := extract(t, html)

		assert.Equal(t, first, second)
	})
}

func TestContentExtractor_Tags(t *testing.T) {
	t.Parallel()

	t.Run("extracts tags with queries", func(t *testing.T) {
		t.Parallel()

		blocks := extract(t, `<main><p class="tags"><a href="/blog/?q=ai">#ai</a> <a href="/blog/?q=ml">#ml</a></p></main>`)

		assert.Equal(t, []bearreader.Block{
			bearreader.TagListBlock{Tags: []bearreader.TagRef{
				{Text: "#ai", Query: "ai"},
				{Text: "#ml", Query: "ml"},
			}},
		}, blocks)
	})

	t.Run("ignores anchors without hash prefix", func(t *testing.T) {
		t.Parallel()

		blocks := extract(t, `<main><p class="tags"><a href="/about">About</a><a href="/blog/">#home</a></p></main>`)

		assert.Equal(t, []bearreader.Block{
			bearreader.TagListBlock{Tags: []bearreader.TagRef{{Text: "#home", Query: ""}}},
		}, blocks)
	})

	t.Run("tags paragraph without tags yields nothing", func(t *testing.T) {
		t.Parallel()

		blocks := extract(t, `<main><p class="tags"><a href="/about">About</a></p></main>`)

		assert.Empty(t, blocks)
	})

	t.Run("class must match exactly", func(t *testing.T) {
		t.Parallel()

		blocks := extract(t, `<main><p class="tags extra"><a href="/blog/?q=ai">#ai</a></p></main>`)

		require.Len(t, blocks, 1)
		assert.Equal(t, bearreader.BlockText, blocks[0].Kind())
	})
}

func TestTagQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		href string
		want string
	}{
		{"/blog/?q=ai", "ai"},
		{"https://x.bearblog.dev/blog/?q=go-lang", "go-lang"},
		{"/blog/", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, goquery.TagQuery(tt.href))
		})
	}
}

func TestContentExtractor_Videos(t *testing.T) {
	t.Parallel()

	t.Run("youtube embed", func(t *testing.T) {
		t.Parallel()

		blocks := extract(t, `<main><iframe src="https://www.youtube.com/embed/dQw4w9WgXcQ?si=abc" title="Never"></iframe></main>`)

		assert.Equal(t, []bearreader.Block{
			bearreader.VideoBlock{
				EmbedURL:     "https://www.youtube.com/embed/dQw4w9WgXcQ?si=abc",
				ThumbnailURL: "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg",
				Title:        "Never",
				Platform:     bearreader.PlatformYouTube,
			},
		}, blocks)
	})

	t.Run("youtube nocookie embed with default title", func(t *testing.T) {
		t.Parallel()

		blocks := extract(t, `<main><iframe src="https://www.youtube-nocookie.com/embed/abc123"></iframe></main>`)

		require.Len(t, blocks, 1)
		video := blocks[0].(bearreader.VideoBlock)
		assert.Equal(t, "https://img.youtube.com/vi/abc123/maxresdefault.jpg", video.ThumbnailURL)
		assert.Equal(t, "Video", video.Title)
		assert.Equal(t, bearreader.PlatformYouTube, video.Platform)
	})

	t.Run("empty title attribute is kept", func(t *testing.T) {
		t.Parallel()

		blocks := extract(t, `<main><iframe src="https://www.youtube.com/embed/abc123" title=""></iframe></main>`)

		require.Len(t, blocks, 1)
		assert.Empty(t, blocks[0].(bearreader.VideoBlock).Title)
	})

	t.Run("vimeo embed has no thumbnail", func(t *testing.T) {
		t.Parallel()

		blocks := extract(t, `<main><iframe src="https://player.vimeo.com/video/76979871" title="Demo"></iframe></main>`)

		assert.Equal(t, []bearreader.Block{
			bearreader.VideoBlock{
				EmbedURL: "https://player.vimeo.com/video/76979871",
				Title:    "Demo",
				Platform: bearreader.PlatformVimeo,
			},
		}, blocks)
	})

	t.Run("unsupported iframe is ignored", func(t *testing.T) {
		t.Parallel()

		blocks := extract(t, `<main><iframe src="https://maps.example.com/embed"></iframe><h2>After</h2></main>`)

		assert.Equal(t, []bearreader.Block{bearreader.Header2Block{Text: "After"}}, blocks)
	})
}

func TestYouTubeVideoID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", goquery.YouTubeVideoID("https://www.youtube.com/embed/abc"))
	assert.Equal(t, "abc", goquery.YouTubeVideoID("https://www.youtube.com/embed/abc?start=10"))
	assert.Equal(t, "abc", goquery.YouTubeVideoID("abc"))
}

func TestContentExtractor_Code(t *testing.T) {
	t.Parallel()

	t.Run("pre keeps raw text", func(t *testing.T) {
		t.Parallel()

		blocks := extract(t, "<main><pre><code>func main() {\n\t<b>go</b>()\n}</code></pre></main>")

		assert.Equal(t, []bearreader.Block{
			bearreader.CodeBlock{Text: "func main() {\n\tgo()\n}"},
		}, blocks)
	})

	t.Run("blank pre is skipped", func(t *testing.T) {
		t.Parallel()

		blocks := extract(t, "<main><pre>   \n  </pre></main>")

		assert.Empty(t, blocks)
	})

	t.Run("highlight attribute div", func(t *testing.T) {
		t.Parallel()

		blocks := extract(t, `<main><div highlight="go"><span>ignored</span><code>x := 1</code></div></main>`)

		assert.Equal(t, []bearreader.Block{bearreader.CodeBlock{Text: "x := 1"}}, blocks)
	})

	t.Run("highlight class div recurses into pre", func(t *testing.T) {
		t.Parallel()

		blocks := extract(t, `<main><div class="highlight"><pre><span>y</span> = 2</pre></div></main>`)

		assert.Equal(t, []bearreader.Block{bearreader.CodeBlock{Text: "y = 2"}}, blocks)
	})
}

func TestContentExtractor_Structure(t *testing.T) {
	t.Parallel()

	t.Run("headings", func(t *testing.T) {
		t.Parallel()

		blocks := extract(t, `<main><h1>Post title</h1><h2>  Section  </h2><h3>Sub</h3><h2>   </h2></main>`)

		assert.Equal(t, []bearreader.Block{
			bearreader.Header2Block{Text: "Section"},
			bearreader.Header3Block{Text: "Sub"},
		}, blocks)
	})

	t.Run("h1 nested in a div is ignored", func(t *testing.T) {
		t.Parallel()

		blocks := extract(t, `<main><div><h1>Post title</h1><p>x</p></div></main>`)

		assert.Equal(t, []bearreader.Block{
			bearreader.TextBlock{Text: "<p>x</p>"},
		}, blocks)
	})

	t.Run("h1 nested in another element is dropped from its text", func(t *testing.T) {
		t.Parallel()

		blocks := extract(t, `<main><section><h1>Post title</h1><p>x</p></section></main>`)

		assert.Equal(t, []bearreader.Block{
			bearreader.TextBlock{Text: "<section><p>x</p></section>"},
		}, blocks)
	})

	t.Run("nested divs are spliced in document order", func(t *testing.T) {
		t.Parallel()

		blocks := extract(t, `<main>
<h2>A</h2>
<div><h3>B</h3><div><img src="c.png"></div></div>
<h2>D</h2>
</main>`)

		assert.Equal(t, []bearreader.Block{
			bearreader.Header2Block{Text: "A"},
			bearreader.Header3Block{Text: "B"},
			bearreader.ImageBlock{URL: "c.png", NeedsPadding: true},
			bearreader.Header2Block{Text: "D"},
		}, blocks)
	})

	t.Run("other elements convert whole", func(t *testing.T) {
		t.Parallel()

		blocks := extract(t, `<main><ul><li>one</li><li>two</li></ul><blockquote>quote</blockquote></main>`)

		assert.Equal(t, []bearreader.Block{
			bearreader.TextBlock{Text: "<ul><li>one</li><li>two</li></ul>"},
			bearreader.TextBlock{Text: "<blockquote>quote</blockquote>"},
		}, blocks)
	})

	t.Run("direct anchor is handled like a paragraph", func(t *testing.T) {
		t.Parallel()

		blocks := extract(t, `<main><a href="/x"><img src="i.png">link</a></main>`)

		assert.Equal(t, []bearreader.Block{
			bearreader.ImageBlock{URL: "i.png"},
			bearreader.TextBlock{Text: `<a href="/x">link</a>`},
		}, blocks)
	})

	t.Run("container itself never becomes a block", func(t *testing.T) {
		t.Parallel()

		blocks := extract(t, `<main>loose text only</main>`)

		assert.Empty(t, blocks)
	})
}

func TestContentExtractor_Upvote(t *testing.T) {
	t.Parallel()

	form := func(id, uid, title, count string) string {
		return `<main><form id="` + id + `" action="/upvote/" method="post">
<input type="hidden" name="uid" value="` + uid + `">
<input type="hidden" name="title" value="` + title + `">
<button><span class="upvote-count">` + count + `</span></button>
</form></main>`
	}

	t.Run("valid form", func(t *testing.T) {
		t.Parallel()

		blocks := extract(t, form("upvote-form", "u1", "Hello", " 42 "))

		assert.Equal(t, []bearreader.Block{
			bearreader.UpvoteBlock{UID: "u1", Title: "Hello", Count: 42},
		}, blocks)
	})

	tests := []struct {
		name string
		html string
	}{
		{"wrong id", form("other-form", "u1", "Hello", "1")},
		{"empty uid", form("upvote-form", "", "Hello", "1")},
		{"empty title", form("upvote-form", "u1", "", "1")},
		{"non-numeric count", form("upvote-form", "u1", "Hello", "many")},
		{"negative count", form("upvote-form", "u1", "Hello", "-3")},
		{"missing count", `<main><form id="upvote-form"><input name="uid" value="u"><input name="title" value="t"></form></main>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Empty(t, extract(t, tt.html))
		})
	}
}

func TestContentExtractor_FaultTolerance(t *testing.T) {
	t.Parallel()

	t.Run("converter error drops only that element", func(t *testing.T) {
		t.Parallel()

		x := goquery.NewContentExtractor(&mock.Converter{
			ConvertFn: func(html string) (bearreader.StyledText, error) {
				if strings.Contains(html, "bad") {
					return "", errors.New("boom")
				}
				return bearreader.StyledText(html), nil
			},
		})

		blocks, err := x.ExtractContent(`<main><p>good</p><p>bad</p><p>fine</p></main>`, bearreader.DefaultSelectors())

		require.NoError(t, err)
		assert.Equal(t, []bearreader.Block{
			bearreader.TextBlock{Text: "<p>good</p>"},
			bearreader.TextBlock{Text: "<p>fine</p>"},
		}, blocks)
	})

	t.Run("panic in one element is recovered", func(t *testing.T) {
		t.Parallel()

		x := goquery.NewContentExtractor(&mock.Converter{
			ConvertFn: func(html string) (bearreader.StyledText, error) {
				if strings.Contains(html, "explode") {
					panic("unexpected")
				}
				return bearreader.StyledText(html), nil
			},
		})

		blocks, err := x.ExtractContent(`<main><h2>Top</h2><p>explode</p><p>after</p></main>`, bearreader.DefaultSelectors())

		require.NoError(t, err)
		assert.Equal(t, []bearreader.Block{
			bearreader.Header2Block{Text: "Top"},
			bearreader.TextBlock{Text: "<p>after</p>"},
		}, blocks)
	})

	t.Run("concurrent extraction is independent", func(t *testing.T) {
		t.Parallel()

		x := goquery.NewContentExtractor(echoConverter())
		html := `<main><h2>A</h2><p>B</p><img src="c.png"></main>`
		want, err := x.ExtractContent(html, bearreader.DefaultSelectors())
		require.NoError(t, err)

		var wg sync.WaitGroup
		results := make([][]bearreader.Block, 8)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], _ = x.ExtractContent(html, bearreader.DefaultSelectors())
			}(i)
		}
		wg.Wait()

		for _, got := range results {
			assert.Equal(t, want, got)
		}
	})
}
