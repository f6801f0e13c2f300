package mock

import (
	"context"

	"github.com/cornellsun/sunreader"
)

var (
	_ sunreader.PostService = (*PostService)(nil)
	_ sunreader.FeedService = (*FeedService)(nil)
	_ sunreader.PostWriter  = (*PostWriter)(nil)
)

// PostService is a mock implementation of sunreader.PostService.
type PostService struct {
	FetchPostFn func(ctx context.Context, url string) (*sunreader.Post, error)
}

func (s *PostService) FetchPost(ctx context.Context, url string) (*sunreader.Post, error) {
	return s.FetchPostFn(ctx, url)
}

// FeedService is a mock implementation of sunreader.FeedService.
type FeedService struct {
	FetchFeedFn func(ctx context.Context, url string) ([]*sunreader.Post, error)
}

func (s *FeedService) FetchFeed(ctx context.Context, url string) ([]*sunreader.Post, error) {
	return s.FetchFeedFn(ctx, url)
}

// PostWriter is a mock implementation of sunreader.PostWriter.
type PostWriter struct {
	WritePostFn func(ctx context.Context, post *sunreader.Post, body string) error
}

func (w *PostWriter) WritePost(ctx context.Context, post *sunreader.Post, body string) error {
	return w.WritePostFn(ctx, post, body)
}
