package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/fwojciec/bearreader"
)

// Compile-time interface verification.
var _ bearreader.PostService = (*PostService)(nil)

// PostService implements bearreader.PostService using SQLite.
type PostService struct {
	db *DB
}

// NewPostService creates a new PostService.
func NewPostService(db *DB) *PostService {
	return &PostService{db: db}
}

const postColumns = `id, url, title, age, rating, domain, was_loaded, view_id, encountered_at, last_accessed_at, bookmarked`

// RecordEncounteredPost stores the summary unless the URL is already tracked.
func (s *PostService) RecordEncounteredPost(ctx context.Context, post bearreader.PostSummary) error {
	if err := post.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO tracked_posts (url, title, age, rating, domain, encountered_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, post.URL, post.Title, post.Age, post.Rating, post.Domain(), formatTime(s.db.now()))

	return err
}

// MarkAsLoaded flags the post as loaded and updates its access time.
func (s *PostService) MarkAsLoaded(ctx context.Context, url string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE tracked_posts SET was_loaded = 1, last_accessed_at = ? WHERE url = ?
	`, formatTime(s.db.now()), url)
	if err != nil {
		return err
	}
	return requireRow(result, "post not found")
}

// UpdateViewID stores the reading position of the post.
func (s *PostService) UpdateViewID(ctx context.Context, url string, viewID int) error {
	if viewID < 0 {
		return bearreader.Errorf(bearreader.EINVALID, "view ID must not be negative")
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE tracked_posts SET view_id = ?, last_accessed_at = ? WHERE url = ?
	`, viewID, formatTime(s.db.now()), url)
	if err != nil {
		return err
	}
	return requireRow(result, "post not found")
}

// FindPostByURL retrieves a tracked post.
func (s *PostService) FindPostByURL(ctx context.Context, url string) (*bearreader.TrackedPost, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM tracked_posts WHERE url = ?`, url)
	post, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, bearreader.Errorf(bearreader.ENOTFOUND, "post not found")
	}
	return post, err
}

// FindPosts retrieves tracked posts matching the filter.
func (s *PostService) FindPosts(ctx context.Context, filter bearreader.PostFilter) ([]*bearreader.TrackedPost, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT ` + postColumns + ` FROM tracked_posts WHERE 1=1`)

	if filter.Query != nil && *filter.Query != "" {
		pattern := "%" + escapeLike(*filter.Query) + "%"
		query.WriteString(` AND (title LIKE ? ESCAPE '\' OR domain LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}
	if filter.Read {
		query.WriteString(" AND view_id > 0")
	}
	if filter.Loaded {
		query.WriteString(" AND was_loaded = 1")
	}
	if filter.Bookmarked {
		query.WriteString(" AND bookmarked = 1")
	}

	switch filter.SortBy {
	case bearreader.SortByLastAccessed:
		query.WriteString(" ORDER BY last_accessed_at IS NULL, last_accessed_at DESC, id DESC")
	default:
		query.WriteString(" ORDER BY encountered_at DESC, id DESC")
	}

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []*bearreader.TrackedPost{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	return posts, rows.Err()
}

// ToggleBookmark flips the bookmark flag and returns the new value.
func (s *PostService) ToggleBookmark(ctx context.Context, url string) (bool, error) {
	var bookmarked bool
	err := s.db.QueryRowContext(ctx, `
		UPDATE tracked_posts SET bookmarked = 1 - bookmarked WHERE url = ? RETURNING bookmarked
	`, url).Scan(&bookmarked)
	if err == sql.ErrNoRows {
		return false, bearreader.Errorf(bearreader.ENOTFOUND, "post not found")
	}
	return bookmarked, err
}

// DeletePost removes a tracked post.
func (s *PostService) DeletePost(ctx context.Context, url string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM tracked_posts WHERE url = ?", url)
	if err != nil {
		return err
	}
	return requireRow(result, "post not found")
}

// DeleteAllPosts removes every tracked post.
func (s *PostService) DeleteAllPosts(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM tracked_posts")
	return err
}

// PostStats counts tracked posts.
func (s *PostService) PostStats(ctx context.Context) (*bearreader.PostStats, error) {
	var stats bearreader.PostStats
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(was_loaded), 0), COALESCE(SUM(bookmarked), 0) FROM tracked_posts
	`).Scan(&stats.Total, &stats.Read, &stats.Bookmarked)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (*bearreader.TrackedPost, error) {
	var post bearreader.TrackedPost
	var encounteredAt string
	var lastAccessedAt sql.NullString

	if err := row.Scan(&post.ID, &post.URL, &post.Title, &post.Age, &post.Rating, &post.Domain,
		&post.WasLoaded, &post.ViewID, &encounteredAt, &lastAccessedAt, &post.Bookmarked); err != nil {
		return nil, err
	}

	var err error
	if post.EncounteredAt, err = parseTime(encounteredAt, "encountered_at"); err != nil {
		return nil, err
	}
	if post.LastAccessedAt, err = parseNullTime(lastAccessedAt, "last_accessed_at"); err != nil {
		return nil, err
	}
	return &post, nil
}

// requireRow returns ENOTFOUND with msg when the statement touched no rows.
func requireRow(result sql.Result, msg string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return bearreader.Errorf(bearreader.ENOTFOUND, "%s", msg)
	}
	return nil
}
