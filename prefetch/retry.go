package prefetch

import (
	"context"
	"time"

	"github.com/cornellsun/sunreader"
)

// FetchFunc is the signature for an image fetch function.
type FetchFunc func(ctx context.Context, url string) (*sunreader.Image, error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry attempts to fetch an image, waiting delays[i] before retry
// i+1. Permanent failures (ENOTFOUND, EINVALID) are not retried.
// onRetry, if provided, is called before each retry attempt.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, delays []time.Duration, onRetry func(attempt int, err error)) (*sunreader.Image, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		img, err := fetch(ctx, url)
		if err == nil {
			return img, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 || permanent(err) {
			break
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if onRetry != nil {
			onRetry(attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}

func permanent(err error) bool {
	switch sunreader.ErrorCode(err) {
	case sunreader.ENOTFOUND, sunreader.EINVALID:
		return true
	}
	return false
}
