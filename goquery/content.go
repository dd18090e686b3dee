package goquery

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/bearreader"
)

// Ensure ContentExtractor implements bearreader.ContentExtractor at compile time.
var _ bearreader.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor converts the main-content element of a post page into
// content blocks. It is stateless and safe for concurrent use.
type ContentExtractor struct {
	conv   bearreader.Converter
	logger *slog.Logger
}

// ContentOption configures a ContentExtractor.
type ContentOption func(*ContentExtractor)

// WithLogger sets the logger used to report skipped elements.
// Defaults to a logger that discards everything.
func WithLogger(logger *slog.Logger) ContentOption {
	return func(e *ContentExtractor) {
		e.logger = logger
	}
}

// NewContentExtractor creates a ContentExtractor that renders prose with conv.
func NewContentExtractor(conv bearreader.Converter, opts ...ContentOption) *ContentExtractor {
	e := &ContentExtractor{
		conv:   conv,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractContent converts the element matched by sel.MainContent into blocks.
// Returns nil, nil when nothing matches.
func (e *ContentExtractor) ExtractContent(html string, sel bearreader.Selectors) ([]bearreader.Block, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, bearreader.Errorf(bearreader.EPARSE, "failed to parse HTML: %v", err)
	}

	main := doc.Find(sel.MainContent).First()
	if main.Length() == 0 {
		return nil, nil
	}

	blocks := e.extractChildren(main)
	if blocks == nil {
		blocks = []bearreader.Block{}
	}
	return blocks, nil
}

// elementKind is the extraction rule an element falls under.
type elementKind int

const (
	kindOther elementKind = iota
	kindImage
	kindParagraph
	kindIframe
	kindPre
	kindHighlight
	kindContainer
	kindHeading1
	kindHeading2
	kindHeading3
	kindForm
)

// classify maps an element to its extraction rule.
func classify(sel *goquery.Selection) elementKind {
	switch tagName(sel) {
	case "img":
		return kindImage
	case "p", "a":
		return kindParagraph
	case "iframe":
		return kindIframe
	case "pre":
		return kindPre
	case "div":
		if isHighlightBlock(sel) {
			return kindHighlight
		}
		return kindContainer
	case "h1":
		return kindHeading1
	case "h2":
		return kindHeading2
	case "h3":
		return kindHeading3
	case "form":
		return kindForm
	default:
		return kindOther
	}
}

// isHighlightBlock reports whether a div is the attribute-marked code block
// shape: a non-empty highlight attribute wrapping a code element.
func isHighlightBlock(sel *goquery.Selection) bool {
	v, ok := attr(sel, "highlight")
	if !ok || strings.TrimSpace(v) == "" {
		return false
	}
	_, ok = firstMatch(sel, "code")
	return ok
}

// extractChildren converts the direct children of container, in order.
func (e *ContentExtractor) extractChildren(container *goquery.Selection) []bearreader.Block {
	var blocks []bearreader.Block
	for _, child := range directChildren(container) {
		blocks = append(blocks, e.extractElement(child)...)
	}
	return blocks
}

// extractElement applies the rule for a single element. A failure inside one
// element drops that element only.
func (e *ContentExtractor) extractElement(sel *goquery.Selection) (blocks []bearreader.Block) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("skip element", "tag", tagName(sel), "err", fmt.Sprint(r))
			blocks = nil
		}
	}()

	switch classify(sel) {
	case kindImage:
		return e.images(sel, true)
	case kindParagraph:
		return e.paragraph(sel)
	case kindIframe:
		return e.video(sel)
	case kindPre:
		return e.code(sel)
	case kindHighlight:
		code, _ := firstMatch(sel, "code")
		return e.code(code)
	case kindContainer:
		return e.extractChildren(sel)
	case kindHeading1:
		return nil
	case kindHeading2:
		if text := strings.TrimSpace(textContent(sel)); text != "" {
			return []bearreader.Block{bearreader.Header2Block{Text: text}}
		}
		return nil
	case kindHeading3:
		if text := strings.TrimSpace(textContent(sel)); text != "" {
			return []bearreader.Block{bearreader.Header3Block{Text: text}}
		}
		return nil
	case kindForm:
		return e.upvote(sel)
	case kindOther:
		return e.text(sel)
	}
	return nil
}

// images emits one block per img with a non-empty src in sel or below it.
func (e *ContentExtractor) images(sel *goquery.Selection, needsPadding bool) []bearreader.Block {
	var blocks []bearreader.Block
	selfOrDescendants(sel, "img").Each(func(_ int, img *goquery.Selection) {
		src, _ := attr(img, "src")
		if src == "" {
			return
		}
		alt, _ := attr(img, "alt")
		blocks = append(blocks, bearreader.ImageBlock{
			URL:          src,
			AltText:      alt,
			NeedsPadding: needsPadding,
		})
	})
	return blocks
}

// paragraph handles p and a elements: either a tag list, or images followed
// by the remaining prose.
func (e *ContentExtractor) paragraph(sel *goquery.Selection) []bearreader.Block {
	if class, _ := attr(sel, "class"); class == "tags" {
		tags := tagRefs(sel)
		if len(tags) == 0 {
			return nil
		}
		return []bearreader.Block{bearreader.TagListBlock{Tags: tags}}
	}

	blocks := e.images(sel, false)

	// Images are already emitted; the converter must not see them.
	stripped := removeMatching(sel, "img")
	if text, ok := e.convert(stripped); ok {
		blocks = append(blocks, bearreader.TextBlock{Text: text})
	}
	return blocks
}

// tagRefs collects anchors whose text starts with "#".
func tagRefs(sel *goquery.Selection) []bearreader.TagRef {
	var tags []bearreader.TagRef
	selfOrDescendants(sel, "a").Each(func(_ int, a *goquery.Selection) {
		text := strings.TrimSpace(textContent(a))
		if !strings.HasPrefix(text, "#") {
			return
		}
		href, _ := attr(a, "href")
		tags = append(tags, bearreader.TagRef{Text: text, Query: TagQuery(href)})
	})
	return tags
}

// TagQuery returns the part of a tag link after "?q=", e.g. "ai" for
// "/blog/?q=ai". Returns an empty string when the link has no query.
func TagQuery(href string) string {
	_, query, found := strings.Cut(href, "?q=")
	if !found {
		return ""
	}
	return query
}

// video recognizes YouTube and Vimeo iframes. Other sources are skipped.
func (e *ContentExtractor) video(sel *goquery.Selection) []bearreader.Block {
	src, _ := attr(sel, "src")
	if src == "" {
		return nil
	}

	title, ok := attr(sel, "title")
	if !ok {
		title = "Video"
	}

	switch {
	case strings.Contains(src, "youtube.com/embed") || strings.Contains(src, "youtube-nocookie.com/embed/"):
		return []bearreader.Block{bearreader.VideoBlock{
			EmbedURL:     src,
			ThumbnailURL: bearreader.YouTubeThumbnailURL(YouTubeVideoID(src)),
			Title:        title,
			Platform:     bearreader.PlatformYouTube,
		}}
	case strings.Contains(src, "vimeo.com"):
		// Vimeo thumbnails need an API request, which extraction never makes.
		return []bearreader.Block{bearreader.VideoBlock{
			EmbedURL: src,
			Title:    title,
			Platform: bearreader.PlatformVimeo,
		}}
	default:
		e.logger.Debug("unsupported iframe", "src", src)
		return nil
	}
}

// YouTubeVideoID returns the last path segment of an embed URL with any
// query string removed.
func YouTubeVideoID(embedURL string) string {
	segment := embedURL
	if i := strings.LastIndex(segment, "/"); i >= 0 {
		segment = segment[i+1:]
	}
	id, _, _ := strings.Cut(segment, "?")
	return id
}

// code emits the raw text of a preformatted element.
func (e *ContentExtractor) code(sel *goquery.Selection) []bearreader.Block {
	text := textContent(sel)
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return []bearreader.Block{bearreader.CodeBlock{Text: text}}
}

// upvote recognizes the upvote form. Any missing piece skips the form.
func (e *ContentExtractor) upvote(sel *goquery.Selection) []bearreader.Block {
	if id, _ := attr(sel, "id"); id != "upvote-form" {
		return nil
	}

	uidInput, ok := firstMatch(sel, "input[name='uid']")
	if !ok {
		return nil
	}
	uid, _ := attr(uidInput, "value")
	if uid == "" {
		return nil
	}

	titleInput, ok := firstMatch(sel, "input[name='title']")
	if !ok {
		return nil
	}
	title, _ := attr(titleInput, "value")
	if title == "" {
		return nil
	}

	countEl, ok := firstMatch(sel, ".upvote-count")
	if !ok {
		return nil
	}
	count, err := strconv.Atoi(strings.TrimSpace(textContent(countEl)))
	if err != nil || count < 0 {
		e.logger.Debug("skip upvote form", "count", textContent(countEl))
		return nil
	}

	return []bearreader.Block{bearreader.UpvoteBlock{UID: uid, Title: title, Count: count}}
}

// text converts any other element as a whole. Post titles are never
// content, so nested h1 elements are dropped first.
func (e *ContentExtractor) text(sel *goquery.Selection) []bearreader.Block {
	if text, ok := e.convert(removeMatching(sel, "h1")); ok {
		return []bearreader.Block{bearreader.TextBlock{Text: text}}
	}
	return nil
}

// convert renders the outer markup of sel. The boolean is false when there
// is nothing to show.
func (e *ContentExtractor) convert(sel *goquery.Selection) (bearreader.StyledText, bool) {
	markup := outerMarkup(sel)
	if strings.TrimSpace(markup) == "" {
		return "", false
	}
	text, err := e.conv.Convert(markup)
	if err != nil {
		e.logger.Debug("skip text", "tag", tagName(sel), "err", err)
		return "", false
	}
	if strings.TrimSpace(string(text)) == "" {
		return "", false
	}
	return text, true
}
