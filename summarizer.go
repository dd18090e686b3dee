package bearreader

import "context"

// Summarizer produces a short natural-language summary of a post.
type Summarizer interface {
	Summarize(ctx context.Context, content *PostContent) (string, error)
}

// TokenCounter counts tokens in text for a specific model.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
