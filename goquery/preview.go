package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/bearreader"
)

// Ensure SelectorPreviewer implements bearreader.SelectorPreviewer at compile time.
var _ bearreader.SelectorPreviewer = (*SelectorPreviewer)(nil)

// Preview limits.
const (
	DefaultMaxPreviewMatches = 5
	maxPreviewLength         = 100
)

// SelectorPreviewer shows what a selector matches so it can be tuned
// against a live page.
type SelectorPreviewer struct {
	MaxMatches int
}

// NewSelectorPreviewer creates a SelectorPreviewer listing up to
// DefaultMaxPreviewMatches matches.
func NewSelectorPreviewer() *SelectorPreviewer {
	return &SelectorPreviewer{MaxMatches: DefaultMaxPreviewMatches}
}

// PreviewSelector evaluates selector against html. Problems with the
// selector are reported in the result.
func (p *SelectorPreviewer) PreviewSelector(html string, selector string) bearreader.SelectorPreview {
	if strings.TrimSpace(selector) == "" {
		return bearreader.SelectorPreview{Error: "Selector cannot be empty"}
	}

	// goquery treats invalid selectors as matching nothing, so compile
	// explicitly to report the error.
	compiled, err := cascadia.Compile(selector)
	if err != nil {
		return bearreader.SelectorPreview{Error: "Invalid CSS selector: " + err.Error()}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return bearreader.SelectorPreview{Error: "Failed to parse HTML: " + err.Error()}
	}

	matches := doc.FindMatcher(compiled)
	result := bearreader.SelectorPreview{
		MatchCount: matches.Length(),
		Matches:    []string{},
		Valid:      true,
	}
	matches.EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i >= p.MaxMatches {
			return false
		}
		text := strings.TrimSpace(textContent(s))
		if text == "" {
			text = "<empty>"
		}
		result.Matches = append(result.Matches, truncate(tagName(s)+": "+text, maxPreviewLength))
		return true
	})

	return result
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
