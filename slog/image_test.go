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

func TestLoggingImageFetcher_FetchImage(t *testing.T) {
	t.Parallel()

	t.Run("logs size of downloaded image", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ImageFetcher{
			FetchImageFn: func(ctx context.Context, url string) (*sunreader.Image, error) {
				return &sunreader.Image{URL: url, Data: []byte("abc"), Size: 3}, nil
			},
		}

		img, err := srslog.NewLoggingImageFetcher(inner, logger).FetchImage(context.Background(), "https://example.com/a.jpg")

		require.NoError(t, err)
		assert.Equal(t, 3, img.Size)
		output := buf.String()
		assert.Contains(t, output, "fetch image")
		assert.Contains(t, output, "bytes=3")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ImageFetcher{
			FetchImageFn: func(ctx context.Context, url string) (*sunreader.Image, error) {
				return nil, errors.New("status 404")
			},
		}

		_, err := srslog.NewLoggingImageFetcher(inner, logger).FetchImage(context.Background(), "https://example.com/a.jpg")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"status 404\"")
	})
}

func TestLoggingImageStore(t *testing.T) {
	t.Parallel()

	t.Run("logs save", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ImageStore{
			SaveImageFn: func(ctx context.Context, img *sunreader.Image) error { return nil },
		}

		err := srslog.NewLoggingImageStore(inner, logger).SaveImage(context.Background(), &sunreader.Image{
			URL:  "https://example.com/a.jpg",
			Data: []byte("abcd"),
		})

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "save image")
		assert.Contains(t, output, "url=https://example.com/a.jpg")
		assert.Contains(t, output, "bytes=4")
	})

	t.Run("logs delete error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ImageStore{
			DeleteImageFn: func(ctx context.Context, url string) error {
				return sunreader.Errorf(sunreader.ENOTFOUND, "image not found")
			},
		}

		err := srslog.NewLoggingImageStore(inner, logger).DeleteImage(context.Background(), "https://example.com/a.jpg")

		assert.Equal(t, sunreader.ENOTFOUND, sunreader.ErrorCode(err))
		assert.Contains(t, buf.String(), "delete image")
	})

	t.Run("delegates reads", func(t *testing.T) {
		t.Parallel()

		logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		inner := &mock.ImageStore{
			HasImageFn: func(ctx context.Context, url string) (bool, error) { return true, nil },
			FindImageByURLFn: func(ctx context.Context, url string) (*sunreader.Image, error) {
				return &sunreader.Image{URL: url}, nil
			},
			FindImagesFn: func(ctx context.Context, filter sunreader.ImageFilter) ([]*sunreader.Image, error) {
				return []*sunreader.Image{{URL: "a"}, {URL: "b"}}, nil
			},
		}
		store := srslog.NewLoggingImageStore(inner, logger)

		ok, err := store.HasImage(context.Background(), "a")
		require.NoError(t, err)
		assert.True(t, ok)

		img, err := store.FindImageByURL(context.Background(), "a")
		require.NoError(t, err)
		assert.Equal(t, "a", img.URL)

		imgs, err := store.FindImages(context.Background(), sunreader.ImageFilter{})
		require.NoError(t, err)
		assert.Len(t, imgs, 2)
	})
}
