package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/cornellsun/sunreader"
)

// Ensure the decorators implement their interfaces.
var (
	_ sunreader.ImageFetcher = (*LoggingImageFetcher)(nil)
	_ sunreader.ImageStore   = (*LoggingImageStore)(nil)
)

// LoggingImageFetcher wraps an ImageFetcher with debug logging.
type LoggingImageFetcher struct {
	next   sunreader.ImageFetcher
	logger *slog.Logger
}

// NewLoggingImageFetcher creates a new LoggingImageFetcher.
func NewLoggingImageFetcher(next sunreader.ImageFetcher, logger *slog.Logger) *LoggingImageFetcher {
	return &LoggingImageFetcher{next: next, logger: logger}
}

// FetchImage delegates to the wrapped fetcher and logs the download.
func (f *LoggingImageFetcher) FetchImage(ctx context.Context, url string) (img *sunreader.Image, err error) {
	defer func(begin time.Time) {
		size := 0
		if img != nil {
			size = img.Size
		}
		f.logger.Info("fetch image",
			"url", url,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchImage(ctx, url)
}

// LoggingImageStore wraps an ImageStore with debug logging.
type LoggingImageStore struct {
	next   sunreader.ImageStore
	logger *slog.Logger
}

// NewLoggingImageStore creates a new LoggingImageStore.
func NewLoggingImageStore(next sunreader.ImageStore, logger *slog.Logger) *LoggingImageStore {
	return &LoggingImageStore{next: next, logger: logger}
}

// SaveImage delegates to the wrapped store and logs the write.
func (s *LoggingImageStore) SaveImage(ctx context.Context, img *sunreader.Image) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save image",
			"url", img.URL,
			"bytes", len(img.Data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveImage(ctx, img)
}

// FindImageByURL delegates to the wrapped store.
func (s *LoggingImageStore) FindImageByURL(ctx context.Context, url string) (*sunreader.Image, error) {
	return s.next.FindImageByURL(ctx, url)
}

// HasImage delegates to the wrapped store and logs cache hits.
func (s *LoggingImageStore) HasImage(ctx context.Context, url string) (ok bool, err error) {
	defer func() {
		s.logger.Debug("has image", "url", url, "cached", ok, "err", err)
	}()
	return s.next.HasImage(ctx, url)
}

// FindImages delegates to the wrapped store.
func (s *LoggingImageStore) FindImages(ctx context.Context, filter sunreader.ImageFilter) ([]*sunreader.Image, error) {
	return s.next.FindImages(ctx, filter)
}

// DeleteImage delegates to the wrapped store and logs the removal.
func (s *LoggingImageStore) DeleteImage(ctx context.Context, url string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete image",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteImage(ctx, url)
}
