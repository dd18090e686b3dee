// Package trafilatura locates the body of a post page with go-trafilatura.
// It backs "read --fallback trafilatura" for blogs whose theme does not
// match the main content selector.
package trafilatura

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fwojciec/bearreader"
	"github.com/fwojciec/bearreader/goquery"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

var _ bearreader.Extractor = (*Extractor)(nil)

// Extractor finds the post body with trafilatura. Post furniture, which
// trafilatura never keeps, is appended after the body.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{opts: trafilatura.Options{
		EnableFallback:  true,
		IncludeImages:   true,
		IncludeLinks:    true,
		ExcludeComments: true,
	}}
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

	result, err := trafilatura.Extract(strings.NewReader(page), e.opts)
	if err != nil {
		return nil, fmt.Errorf("trafilatura: %w", err)
	}

	var body bytes.Buffer
	if result.ContentNode != nil {
		// The content node is a bare container; only its children are rendered.
		for c := result.ContentNode.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&body, c); err != nil {
				return nil, fmt.Errorf("render content: %w", err)
			}
		}
	}
	for _, f := range furniture {
		body.WriteString(f)
	}

	return &bearreader.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: body.String(),
	}, nil
}
