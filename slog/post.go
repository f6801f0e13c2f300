package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/cornellsun/sunreader"
)

// Ensure the decorators implement their interfaces.
var (
	_ sunreader.PostService = (*LoggingPostService)(nil)
	_ sunreader.FeedService = (*LoggingFeedService)(nil)
)

// LoggingPostService wraps a PostService with debug logging.
type LoggingPostService struct {
	next   sunreader.PostService
	logger *slog.Logger
}

// NewLoggingPostService creates a new LoggingPostService.
func NewLoggingPostService(next sunreader.PostService, logger *slog.Logger) *LoggingPostService {
	return &LoggingPostService{next: next, logger: logger}
}

// FetchPost delegates to the wrapped service and logs the request.
func (s *LoggingPostService) FetchPost(ctx context.Context, url string) (post *sunreader.Post, err error) {
	defer func(begin time.Time) {
		id := 0
		if post != nil {
			id = post.ID
		}
		s.logger.Info("fetch post",
			"url", url,
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FetchPost(ctx, url)
}

// LoggingFeedService wraps a FeedService with debug logging.
type LoggingFeedService struct {
	next   sunreader.FeedService
	logger *slog.Logger
}

// NewLoggingFeedService creates a new LoggingFeedService.
func NewLoggingFeedService(next sunreader.FeedService, logger *slog.Logger) *LoggingFeedService {
	return &LoggingFeedService{next: next, logger: logger}
}

// FetchFeed delegates to the wrapped service and logs the item count.
func (s *LoggingFeedService) FetchFeed(ctx context.Context, url string) (posts []*sunreader.Post, err error) {
	defer func(begin time.Time) {
		s.logger.Info("fetch feed",
			"url", url,
			"count", len(posts),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FetchFeed(ctx, url)
}
