// Package fs provides file-based storage for fetched pages and saved posts.
package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/bearreader"
)

// URLToPath converts a post URL to a relative file path grouped by blog.
// Example: https://herman.bearblog.dev/my-post/ → herman.bearblog.dev/my-post.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	host := u.Hostname()
	if host == "" {
		return "", bearreader.Errorf(bearreader.EINVALID, "post URL has no host: %s", rawURL)
	}

	path := strings.Trim(u.Path, "/")
	if path == "" {
		path = "index"
	}

	rel := filepath.Join(host, filepath.FromSlash(path)+".md")
	if !filepath.IsLocal(rel) {
		return "", bearreader.Errorf(bearreader.EINVALID, "post URL escapes output directory: %s", rawURL)
	}
	return rel, nil
}

// FormatPost formats a post as Markdown with YAML frontmatter.
func FormatPost(post *bearreader.PostContent, savedAt time.Time) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(post.URL)
	b.WriteString("\ntitle: ")
	b.WriteString(post.Title)
	b.WriteString("\nsaved: ")
	b.WriteString(savedAt.Format("2006-01-02"))
	b.WriteString("\n---\n\n")
	b.WriteString(bearreader.FormatBlocks(post.Blocks))
	b.WriteString("\n")
	return b.String()
}

// Ensure Writer implements bearreader.PostWriter at compile time.
var _ bearreader.PostWriter = (*Writer)(nil)

// Writer writes posts as markdown files to a directory.
type Writer struct {
	baseDir string

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir, Now: time.Now}
}

// WritePost writes a post to disk as a markdown file and returns its path.
func (w *Writer) WritePost(ctx context.Context, post *bearreader.PostContent) (string, error) {
	if post.URL == "" {
		return "", bearreader.Errorf(bearreader.EINVALID, "post URL required")
	}

	relPath, err := URLToPath(post.URL)
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(w.baseDir, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", err
	}

	content := FormatPost(post, w.Now())
	if err := writeFileAtomic(fullPath, []byte(content)); err != nil {
		return "", err
	}
	return fullPath, nil
}

// writeFileAtomic writes to a temporary file in the same directory and
// renames it into place.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
