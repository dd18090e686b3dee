package fs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/bearreader/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache(t *testing.T) {
	t.Parallel()

	t.Run("miss then hit", func(t *testing.T) {
		t.Parallel()

		c, err := fs.NewCache(t.TempDir())
		require.NoError(t, err)

		_, ok := c.Get("https://a.dev/p/")
		assert.False(t, ok)

		require.NoError(t, c.Put("https://a.dev/p/", "<html>p</html>"))

		html, ok := c.Get("https://a.dev/p/")
		assert.True(t, ok)
		assert.Equal(t, "<html>p</html>", html)
	})

	t.Run("put replaces entry", func(t *testing.T) {
		t.Parallel()

		c, err := fs.NewCache(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, c.Put("u", "old"))
		require.NoError(t, c.Put("u", "new"))

		html, ok := c.Get("u")
		assert.True(t, ok)
		assert.Equal(t, "new", html)
	})

	t.Run("size and clear", func(t *testing.T) {
		t.Parallel()

		c, err := fs.NewCache(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, c.Put("a", "12345"))
		require.NoError(t, c.Put("b", "123"))

		size, err := c.Size()
		require.NoError(t, err)
		assert.Equal(t, int64(8), size)

		require.NoError(t, c.Clear())

		size, err = c.Size()
		require.NoError(t, err)
		assert.Zero(t, size)
		_, ok := c.Get("a")
		assert.False(t, ok)
	})

	t.Run("expired entries miss", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		c, err := fs.NewCache(dir, fs.WithMaxAge(time.Hour))
		require.NoError(t, err)

		require.NoError(t, c.Put("u", "page"))
		_, ok := c.Get("u")
		require.True(t, ok)

		old := time.Now().Add(-2 * time.Hour)
		require.NoError(t, os.Chtimes(filepath.Join(dir, fs.CacheKey("u")), old, old))

		_, ok = c.Get("u")
		assert.False(t, ok)
	})

	t.Run("creates directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "nested", "cache")
		_, err := fs.NewCache(dir)
		require.NoError(t, err)

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}

func TestCacheKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, fs.CacheKey("https://a.dev/"), fs.CacheKey("https://a.dev/"))
	assert.NotEqual(t, fs.CacheKey("https://a.dev/"), fs.CacheKey("https://b.dev/"))
	assert.Len(t, fs.CacheKey("x"), len("0123456789abcdef.html"))
}
