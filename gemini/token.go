package gemini

import (
	"context"
	"fmt"

	"github.com/fwojciec/bearreader"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ bearreader.TokenCounter = (*TokenCounter)(nil)

// TokenCounter sizes summary requests offline with the Gemini tokenizer.
// Counts include the summary system instruction, so they match what
// Summarize would send.
type TokenCounter struct {
	tok    *tokenizer.LocalTokenizer
	config *genai.CountTokensConfig
}

// NewTokenCounter loads the tokenizer for model, or for Model when model
// is empty.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = Model
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer for %s: %w", model, err)
	}
	return &TokenCounter{
		tok:    tok,
		config: &genai.CountTokensConfig{SystemInstruction: BuildConfig().SystemInstruction},
	}, nil
}

// CountTokens returns the size of a summary request whose user turn is
// text. Empty text is never sent and counts as zero.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	result, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}, tc.config)
	if err != nil {
		return 0, fmt.Errorf("count tokens: %w", err)
	}
	return int(result.TotalTokens), nil
}

// CountPost returns the size of the summary request for content.
func (tc *TokenCounter) CountPost(ctx context.Context, content *bearreader.PostContent) (int, error) {
	return tc.CountTokens(ctx, BuildUserPrompt(content))
}
