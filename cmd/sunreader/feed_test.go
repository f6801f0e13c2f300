package main_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/cornellsun/sunreader"
	main "github.com/cornellsun/sunreader/cmd/sunreader"
	"github.com/cornellsun/sunreader/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedPosts(n int) []*sunreader.Post {
	posts := make([]*sunreader.Post, n)
	for i := range posts {
		posts[i] = &sunreader.Post{
			ID:      i + 1,
			Title:   fmt.Sprintf("Story %d", i+1),
			Link:    fmt.Sprintf("https://cornellsun.com/story-%d/", i+1),
			Content: fmt.Sprintf("<h2>Heading %d</h2>", i+1),
			Author:  sunreader.Author{Name: "Unknown"},
			Type:    sunreader.PostTypeArticle,
		}
	}
	return posts
}

func TestFeedCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints posts in feed order", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Feeds = &mock.FeedService{
			FetchFeedFn: func(ctx context.Context, url string) ([]*sunreader.Post, error) {
				assert.Equal(t, "https://cornellsun.com/feed/", url)
				return feedPosts(5), nil
			},
		}
		cmd := &main.FeedCmd{URL: "https://cornellsun.com/feed/", Concurrency: 3}

		err := cmd.Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		last := -1
		for i := 1; i <= 5; i++ {
			idx := strings.Index(output, fmt.Sprintf("## Heading %d", i))
			require.GreaterOrEqual(t, idx, 0)
			assert.Greater(t, idx, last)
			last = idx
		}
		assert.Equal(t, 4, strings.Count(output, "---"))
	})

	t.Run("prints posts as json", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Feeds = &mock.FeedService{
			FetchFeedFn: func(ctx context.Context, url string) ([]*sunreader.Post, error) {
				return feedPosts(2), nil
			},
		}
		cmd := &main.FeedCmd{ParseFlags: main.ParseFlags{Format: main.FormatJSON}, URL: "https://cornellsun.com/feed/"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		var got []struct {
			Post   sunreader.Post    `json:"post"`
			Blocks []sunreader.Block `json:"blocks"`
		}
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, 1, got[0].Post.ID)
		assert.Equal(t, []sunreader.Block{sunreader.NewHeading("Heading 2")}, got[1].Blocks)
	})

	t.Run("resolves relative images against each post link", func(t *testing.T) {
		t.Parallel()

		posts := feedPosts(2)
		posts[0].Content = `<img src="photo.jpg">`
		posts[1].Content = `<img src="photo.jpg">`
		deps, stdout, _ := newDeps()
		deps.Feeds = &mock.FeedService{
			FetchFeedFn: func(ctx context.Context, url string) ([]*sunreader.Post, error) {
				return posts, nil
			},
		}
		cmd := &main.FeedCmd{URL: "https://cornellsun.com/feed/"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "[image] https://cornellsun.com/story-1/photo.jpg")
		assert.Contains(t, stdout.String(), "[image] https://cornellsun.com/story-2/photo.jpg")
	})

	t.Run("writes posts as markdown files", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		written := map[string]string{}
		deps, stdout, _ := newDeps()
		deps.Feeds = &mock.FeedService{
			FetchFeedFn: func(ctx context.Context, url string) ([]*sunreader.Post, error) {
				return feedPosts(3), nil
			},
		}
		deps.NewWriter = func(dir string) sunreader.PostWriter {
			assert.Equal(t, "/tmp/out", dir)
			return &mock.PostWriter{
				WritePostFn: func(ctx context.Context, post *sunreader.Post, body string) error {
					mu.Lock()
					defer mu.Unlock()
					written[post.Link] = body
					return nil
				},
			}
		}
		cmd := &main.FeedCmd{URL: "https://cornellsun.com/feed/", Out: "/tmp/out"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Len(t, written, 3)
		assert.Equal(t, "## Heading 2", written["https://cornellsun.com/story-2/"])
		assert.Equal(t, "Wrote 3 of 3 posts to /tmp/out\n", stdout.String())
	})

	t.Run("reports posts that could not be written", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newDeps()
		deps.Feeds = &mock.FeedService{
			FetchFeedFn: func(ctx context.Context, url string) ([]*sunreader.Post, error) {
				return feedPosts(2), nil
			},
		}
		deps.NewWriter = func(dir string) sunreader.PostWriter {
			return &mock.PostWriter{
				WritePostFn: func(ctx context.Context, post *sunreader.Post, body string) error {
					if post.ID == 1 {
						return sunreader.Errorf(sunreader.EINVALID, "post link required")
					}
					return nil
				},
			}
		}
		cmd := &main.FeedCmd{URL: "https://cornellsun.com/feed/", Out: "/tmp/out"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "skip https://cornellsun.com/story-1/: post link required")
		assert.Contains(t, stdout.String(), "Wrote 1 of 2 posts")
	})

	t.Run("shows message for empty feed", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Feeds = &mock.FeedService{
			FetchFeedFn: func(ctx context.Context, url string) ([]*sunreader.Post, error) {
				return []*sunreader.Post{}, nil
			},
		}
		cmd := &main.FeedCmd{URL: "https://cornellsun.com/feed/"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No posts")
	})

	t.Run("returns error when feed fails", func(t *testing.T) {
		t.Parallel()

		feedErr := errors.New("connection refused")
		deps, _, stderr := newDeps()
		deps.Feeds = &mock.FeedService{
			FetchFeedFn: func(ctx context.Context, url string) ([]*sunreader.Post, error) {
				return nil, feedErr
			},
		}
		cmd := &main.FeedCmd{URL: "https://cornellsun.com/feed/"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, feedErr, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
