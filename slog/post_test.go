package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/cornellsun/sunreader"
	"github.com/cornellsun/sunreader/mock"
	srslog "github.com/cornellsun/sunreader/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingPostService_FetchPost(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.PostService{
		FetchPostFn: func(ctx context.Context, url string) (*sunreader.Post, error) {
			return &sunreader.Post{ID: 42, Link: url}, nil
		},
	}

	post, err := srslog.NewLoggingPostService(inner, logger).FetchPost(context.Background(), "https://example.com/post")

	require.NoError(t, err)
	assert.Equal(t, 42, post.ID)
	output := buf.String()
	assert.Contains(t, output, "fetch post")
	assert.Contains(t, output, "id=42")
	assert.Contains(t, output, "duration=")
}

func TestLoggingFeedService_FetchFeed(t *testing.T) {
	t.Parallel()

	t.Run("logs item count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.FeedService{
			FetchFeedFn: func(ctx context.Context, url string) ([]*sunreader.Post, error) {
				return []*sunreader.Post{{ID: 1}, {ID: 2}, {ID: 3}}, nil
			},
		}

		posts, err := srslog.NewLoggingFeedService(inner, logger).FetchFeed(context.Background(), "https://example.com/feed")

		require.NoError(t, err)
		assert.Len(t, posts, 3)
		output := buf.String()
		assert.Contains(t, output, "fetch feed")
		assert.Contains(t, output, "count=3")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.FeedService{
			FetchFeedFn: func(ctx context.Context, url string) ([]*sunreader.Post, error) {
				return nil, errors.New("connection failed")
			},
		}

		_, err := srslog.NewLoggingFeedService(inner, logger).FetchFeed(context.Background(), "https://example.com/feed")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"connection failed\"")
	})
}
