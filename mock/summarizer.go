package mock

import (
	"context"

	"github.com/fwojciec/bearreader"
)

var _ bearreader.Summarizer = (*Summarizer)(nil)

// Summarizer is a mock implementation of bearreader.Summarizer.
type Summarizer struct {
	SummarizeFn func(ctx context.Context, content *bearreader.PostContent) (string, error)
}

func (s *Summarizer) Summarize(ctx context.Context, content *bearreader.PostContent) (string, error) {
	return s.SummarizeFn(ctx, content)
}

var _ bearreader.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of bearreader.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (c *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return c.CountTokensFn(ctx, text)
}
