package goquery

import (
	stdhtml "html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/bearreader"
)

// furnitureSelector matches the parts of a post page that content heuristics
// discard: the tag list, the upvote form and video embeds.
const furnitureSelector = "p.tags, form#upvote-form, " +
	"iframe[src*='youtube.com/embed'], iframe[src*='youtube-nocookie.com/embed/'], iframe[src*='vimeo.com']"

// PrepareFallback readies a post page for a heuristic content locator.
//
// Furniture (tag lists, the upvote form and video embeds) is removed from the
// page and returned as markup in document order, to be appended to whatever
// the locator finds. Attribute-marked code blocks are rewritten as pre
// elements so the locator keeps them as code.
func PrepareFallback(html string) (page string, furniture []string, err error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", nil, bearreader.Errorf(bearreader.EPARSE, "failed to parse HTML: %v", err)
	}

	found := doc.Find(furnitureSelector)
	found.Each(func(_ int, s *goquery.Selection) {
		if markup := outerMarkup(s); markup != "" {
			furniture = append(furniture, markup)
		}
	})
	found.Remove()

	doc.Find("div[highlight]").Each(func(_ int, s *goquery.Selection) {
		if !isHighlightBlock(s) {
			return
		}
		code, _ := firstMatch(s, "code")
		s.ReplaceWithHtml("<pre><code>" + stdhtml.EscapeString(textContent(code)) + "</code></pre>")
	})

	page, err = doc.Html()
	if err != nil {
		return "", nil, bearreader.Errorf(bearreader.EPARSE, "failed to render HTML: %v", err)
	}
	return page, furniture, nil
}
