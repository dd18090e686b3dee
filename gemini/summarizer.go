// Package gemini implements post summaries with Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/bearreader"
	"google.golang.org/genai"
)

// Model is the Gemini model used for summaries.
const Model = "gemini-2.5-flash"

// DefaultMaxTokens caps the prompt size sent to the model.
const DefaultMaxTokens = 100_000

// Ensure Summarizer implements bearreader.Summarizer at compile time.
var _ bearreader.Summarizer = (*Summarizer)(nil)

// Summarizer implements bearreader.Summarizer using Google Gemini.
type Summarizer struct {
	client *genai.Client

	// Counter checks the prompt size before calling the API. Optional.
	Counter   bearreader.TokenCounter
	MaxTokens int
}

// NewSummarizer creates a new Summarizer.
func NewSummarizer(client *genai.Client) *Summarizer {
	return &Summarizer{client: client, MaxTokens: DefaultMaxTokens}
}

// Summarize returns a short summary of the post.
func (s *Summarizer) Summarize(ctx context.Context, content *bearreader.PostContent) (string, error) {
	if content == nil || len(content.Blocks) == 0 {
		return "", bearreader.Errorf(bearreader.EINVALID, "post has no content to summarize")
	}

	prompt := BuildUserPrompt(content)

	if s.Counter != nil && s.MaxTokens > 0 {
		n, err := s.Counter.CountTokens(ctx, prompt)
		if err != nil {
			return "", fmt.Errorf("count tokens: %w", err)
		}
		if n > s.MaxTokens {
			return "", bearreader.Errorf(bearreader.EINVALID, "post too long to summarize: %d tokens (max %d)", n, s.MaxTokens)
		}
	}

	if s.client == nil {
		return "", bearreader.Errorf(bearreader.EINTERNAL, "gemini client not configured")
	}

	result, err := s.client.Models.GenerateContent(ctx, Model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", bearreader.Errorf(bearreader.EINTERNAL, "gemini returned nil result")
	}

	return strings.TrimSpace(result.Text()), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.3)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You summarize personal blog posts. Write three to five sentences in the author's language. Describe what the post says, not what you think of it. Use only the post provided.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt renders the post as Markdown wrapped in a post element.
func BuildUserPrompt(content *bearreader.PostContent) string {
	var sb strings.Builder
	sb.WriteString("<post>\n")
	fmt.Fprintf(&sb, "<source>%s</source>\n", content.URL)
	fmt.Fprintf(&sb, "<content>\n%s\n</content>\n", bearreader.FormatPost(content))
	sb.WriteString("</post>\n\n")
	sb.WriteString("Summarize this post.")
	return sb.String()
}
