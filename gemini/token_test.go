package gemini_test

import (
	"context"
	"strings"
	"testing"

	"github.com/fwojciec/bearreader"
	"github.com/fwojciec/bearreader/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// longPost returns a post with n paragraphs of prose.
func longPost(n int) *bearreader.PostContent {
	blocks := make([]bearreader.Block, 0, n)
	for range n {
		blocks = append(blocks, bearreader.TextBlock{
			Text: "Small blogs load fast because they ship almost nothing but text.",
		})
	}
	return &bearreader.PostContent{
		URL:    "https://herman.bearblog.dev/long/",
		Title:  "Long",
		Blocks: blocks,
	}
}

func TestTokenCounter(t *testing.T) {
	t.Parallel()

	tc, err := gemini.NewTokenCounter("")
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("empty text counts as zero", func(t *testing.T) {
		t.Parallel()

		n, err := tc.CountTokens(ctx, "")

		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("request size includes the system instruction", func(t *testing.T) {
		t.Parallel()

		// A single word plus the instruction is well over a handful of tokens.
		n, err := tc.CountTokens(ctx, "Hi")

		require.NoError(t, err)
		assert.Greater(t, n, 10)
	})

	t.Run("longer posts count more", func(t *testing.T) {
		t.Parallel()

		short, err := tc.CountPost(ctx, longPost(1))
		require.NoError(t, err)
		long, err := tc.CountPost(ctx, longPost(20))
		require.NoError(t, err)

		assert.Greater(t, long, short)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := tc.CountTokens(canceled, strings.Repeat("word ", 10))

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSummarizer_TokenLimit(t *testing.T) {
	t.Parallel()

	tc, err := gemini.NewTokenCounter(gemini.Model)
	require.NoError(t, err)

	post := longPost(50)
	size, err := tc.CountPost(context.Background(), post)
	require.NoError(t, err)

	t.Run("rejects a post over the limit before calling the API", func(t *testing.T) {
		t.Parallel()

		s := gemini.NewSummarizer(nil)
		s.Counter = tc
		s.MaxTokens = size - 1

		_, err := s.Summarize(context.Background(), post)

		assert.Equal(t, bearreader.EINVALID, bearreader.ErrorCode(err))
		assert.Contains(t, bearreader.ErrorMessage(err), "too long")
	})

	t.Run("passes a post at the limit", func(t *testing.T) {
		t.Parallel()

		s := gemini.NewSummarizer(nil)
		s.Counter = tc
		s.MaxTokens = size

		_, err := s.Summarize(context.Background(), post)

		// Without a client the call stops after the size check.
		assert.Equal(t, bearreader.EINTERNAL, bearreader.ErrorCode(err))
	})
}
