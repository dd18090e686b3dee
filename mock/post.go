package mock

import (
	"context"

	"github.com/fwojciec/bearreader"
)

var _ bearreader.PostService = (*PostService)(nil)

// PostService is a mock implementation of bearreader.PostService.
type PostService struct {
	RecordEncounteredPostFn func(ctx context.Context, post bearreader.PostSummary) error
	MarkAsLoadedFn          func(ctx context.Context, url string) error
	UpdateViewIDFn          func(ctx context.Context, url string, viewID int) error
	FindPostByURLFn         func(ctx context.Context, url string) (*bearreader.TrackedPost, error)
	FindPostsFn             func(ctx context.Context, filter bearreader.PostFilter) ([]*bearreader.TrackedPost, error)
	ToggleBookmarkFn        func(ctx context.Context, url string) (bool, error)
	DeletePostFn            func(ctx context.Context, url string) error
	DeleteAllPostsFn        func(ctx context.Context) error
	PostStatsFn             func(ctx context.Context) (*bearreader.PostStats, error)
}

func (s *PostService) RecordEncounteredPost(ctx context.Context, post bearreader.PostSummary) error {
	return s.RecordEncounteredPostFn(ctx, post)
}

func (s *PostService) MarkAsLoaded(ctx context.Context, url string) error {
	return s.MarkAsLoadedFn(ctx, url)
}

func (s *PostService) UpdateViewID(ctx context.Context, url string, viewID int) error {
	return s.UpdateViewIDFn(ctx, url, viewID)
}

func (s *PostService) FindPostByURL(ctx context.Context, url string) (*bearreader.TrackedPost, error) {
	return s.FindPostByURLFn(ctx, url)
}

func (s *PostService) FindPosts(ctx context.Context, filter bearreader.PostFilter) ([]*bearreader.TrackedPost, error) {
	return s.FindPostsFn(ctx, filter)
}

func (s *PostService) ToggleBookmark(ctx context.Context, url string) (bool, error) {
	return s.ToggleBookmarkFn(ctx, url)
}

func (s *PostService) DeletePost(ctx context.Context, url string) error {
	return s.DeletePostFn(ctx, url)
}

func (s *PostService) DeleteAllPosts(ctx context.Context) error {
	return s.DeleteAllPostsFn(ctx)
}

func (s *PostService) PostStats(ctx context.Context) (*bearreader.PostStats, error) {
	return s.PostStatsFn(ctx)
}

var _ bearreader.PostRecorder = (*PostRecorder)(nil)

// PostRecorder is a mock implementation of bearreader.PostRecorder.
type PostRecorder struct {
	RecordEncounteredPostFn func(ctx context.Context, post bearreader.PostSummary) error
}

func (r *PostRecorder) RecordEncounteredPost(ctx context.Context, post bearreader.PostSummary) error {
	return r.RecordEncounteredPostFn(ctx, post)
}
