// Package readability locates the body of a post page with go-readability.
// It backs "read --fallback readability" for blogs whose theme does not
// match the main content selector.
package readability

import (
	"fmt"
	"strings"

	"github.com/fwojciec/bearreader"
	"github.com/fwojciec/bearreader/goquery"
	"github.com/go-shiori/go-readability"
)

var _ bearreader.Extractor = (*Extractor)(nil)

// Extractor finds the post body with readability scoring. Post furniture
// the scoring would drop is kept and appended after the body.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the post title and body markup.
func (e *Extractor) Extract(rawHTML string) (*bearreader.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, bearreader.Errorf(bearreader.EINVALID, "empty HTML input")
	}

	page, furniture, err := goquery.PrepareFallback(rawHTML)
	if err != nil {
		return nil, err
	}

	// Parsers hold per-document state, so each call gets its own.
	parser := readability.NewParser()
	parser.KeepClasses = true

	article, err := parser.Parse(strings.NewReader(page), nil)
	if err != nil {
		return nil, fmt.Errorf("readability: %w", err)
	}

	return &bearreader.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content + strings.Join(furniture, ""),
	}, nil
}
