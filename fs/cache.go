package fs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/bearreader"
)

// Ensure Cache implements bearreader.PageCache at compile time.
var _ bearreader.PageCache = (*Cache)(nil)

// Cache stores fetched pages as files named by the xxhash of their URL.
type Cache struct {
	dir    string
	maxAge time.Duration
	now    func() time.Time
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithMaxAge makes entries older than d count as misses.
// A zero duration keeps entries forever, which is the default.
func WithMaxAge(d time.Duration) CacheOption {
	return func(c *Cache) {
		c.maxAge = d
	}
}

// NewCache creates a Cache rooted at dir, creating the directory if needed.
func NewCache(dir string, opts ...CacheOption) (*Cache, error) {
	c := &Cache{dir: dir, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return c, nil
}

// CacheKey returns the file name used for url.
func CacheKey(url string) string {
	return fmt.Sprintf("%016x.html", xxhash.Sum64String(url))
}

func (c *Cache) path(url string) string {
	return filepath.Join(c.dir, CacheKey(url))
}

// Get returns the cached page for url.
func (c *Cache) Get(url string) (string, bool) {
	p := c.path(url)
	if c.maxAge > 0 {
		info, err := os.Stat(p)
		if err != nil || c.now().Sub(info.ModTime()) > c.maxAge {
			return "", false
		}
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Put stores the page for url.
func (c *Cache) Put(url string, html string) error {
	return writeFileAtomic(c.path(url), []byte(html))
}

// Size returns the total size of cached pages in bytes.
func (c *Cache) Size() (int64, error) {
	var total int64
	err := filepath.WalkDir(c.dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	return total, err
}

// Clear removes all cached pages.
func (c *Cache) Clear() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".html") {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}
