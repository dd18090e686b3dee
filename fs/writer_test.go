package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/bearreader"
	"github.com/fwojciec/bearreader/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLToPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "post slug with trailing slash",
			url:  "https://herman.bearblog.dev/my-post/",
			want: filepath.Join("herman.bearblog.dev", "my-post.md"),
		},
		{
			name: "nested path",
			url:  "https://alice.dev/blog/2024/hello",
			want: filepath.Join("alice.dev", "blog", "2024", "hello.md"),
		},
		{
			name: "root becomes index",
			url:  "https://alice.dev/",
			want: filepath.Join("alice.dev", "index.md"),
		},
		{
			name: "port is dropped",
			url:  "http://localhost:8080/post/",
			want: filepath.Join("localhost", "post.md"),
		},
		{
			name:    "missing host",
			url:     "/relative/post/",
			wantErr: true,
		},
		{
			name:    "path traversal",
			url:     "https://alice.dev/../../etc/passwd",
			wantErr: true,
		},
		{
			name:    "encoded traversal",
			url:     "https://alice.dev/%2e%2e/%2e%2e/%2e%2e/outside",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fs.URLToPath(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatPost(t *testing.T) {
	t.Parallel()

	post := &bearreader.PostContent{
		URL:   "https://herman.bearblog.dev/my-post/",
		Title: "My post",
		Blocks: []bearreader.Block{
			bearreader.Header2Block{Text: "Intro"},
			bearreader.TextBlock{Text: "Hello."},
		},
	}

	got := fs.FormatPost(post, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))

	want := "---\nsource: https://herman.bearblog.dev/my-post/\ntitle: My post\nsaved: 2024-05-01\n---\n\n## Intro\n\nHello.\n"
	assert.Equal(t, want, got)
}

func TestWriter_WritePost(t *testing.T) {
	t.Parallel()

	t.Run("writes markdown under blog directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter(dir)
		w.Now = func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }

		path, err := w.WritePost(context.Background(), &bearreader.PostContent{
			URL:    "https://herman.bearblog.dev/my-post/",
			Title:  "My post",
			Blocks: []bearreader.Block{bearreader.TextBlock{Text: "Body"}},
		})

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "herman.bearblog.dev", "my-post.md"), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "title: My post")
		assert.Contains(t, string(data), "Body")
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter(dir)
		post := &bearreader.PostContent{URL: "https://a.dev/p/", Blocks: []bearreader.Block{bearreader.TextBlock{Text: "v1"}}}

		_, err := w.WritePost(context.Background(), post)
		require.NoError(t, err)

		post.Blocks = []bearreader.Block{bearreader.TextBlock{Text: "v2"}}
		path, err := w.WritePost(context.Background(), post)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "v2")
		assert.NotContains(t, string(data), "v1")

		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temporary files should not remain")
	})

	t.Run("rejects missing URL", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter(t.TempDir())
		_, err := w.WritePost(context.Background(), &bearreader.PostContent{})

		assert.Equal(t, bearreader.EINVALID, bearreader.ErrorCode(err))
	})
}
