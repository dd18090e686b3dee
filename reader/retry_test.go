package reader_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/bearreader"
	"github.com/fwojciec/bearreader/reader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var noDelays = []time.Duration{0, 0, 0}

func TestFetchWithRetry(t *testing.T) {
	t.Parallel()

	t.Run("returns first success", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		fetch := func(ctx context.Context, url string) (string, error) {
			if calls.Add(1) < 3 {
				return "", errors.New("connection reset")
			}
			return "<html>ok</html>", nil
		}

		html, err := reader.FetchWithRetry(context.Background(), "https://a.dev/", fetch, nil, noDelays)

		require.NoError(t, err)
		assert.Equal(t, "<html>ok</html>", html)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("gives up after all attempts", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		fetch := func(ctx context.Context, url string) (string, error) {
			calls.Add(1)
			return "", errors.New("timeout")
		}

		_, err := reader.FetchWithRetry(context.Background(), "https://a.dev/", fetch, nil, noDelays)

		require.EqualError(t, err, "timeout")
		assert.Equal(t, int32(4), calls.Load())
	})

	t.Run("does not retry not found", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		fetch := func(ctx context.Context, url string) (string, error) {
			calls.Add(1)
			return "", bearreader.Errorf(bearreader.ENOTFOUND, "HTTP 404")
		}

		_, err := reader.FetchWithRetry(context.Background(), "https://a.dev/", fetch, nil, noDelays)

		assert.Equal(t, bearreader.ENOTFOUND, bearreader.ErrorCode(err))
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("stops when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		fetch := func(ctx context.Context, url string) (string, error) {
			cancel()
			return "", errors.New("boom")
		}

		_, err := reader.FetchWithRetry(ctx, "https://a.dev/", fetch, nil, []time.Duration{time.Hour})

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("default delays", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, reader.DefaultRetryDelays())
	})
}
