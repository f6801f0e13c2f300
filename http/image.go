package http

import (
	"context"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/cornellsun/sunreader"
)

// DefaultMaxImageBytes is the largest image ImageFetcher downloads.
const DefaultMaxImageBytes = 10 << 20

// Ensure ImageFetcher implements sunreader.ImageFetcher at compile time.
var _ sunreader.ImageFetcher = (*ImageFetcher)(nil)

// ImageFetcher downloads images over HTTP.
type ImageFetcher struct {
	client    *http.Client
	maxBytes  int64
	userAgent string

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// ImageOption configures an ImageFetcher.
type ImageOption func(*ImageFetcher)

// WithMaxBytes sets the size limit for downloaded images.
// Defaults to DefaultMaxImageBytes (10 MiB) if not specified.
func WithMaxBytes(n int64) ImageOption {
	return func(f *ImageFetcher) {
		f.maxBytes = n
	}
}

// NewImageFetcher creates a new ImageFetcher with the given HTTP client.
// If client is nil, a client with DefaultFetchTimeout is used.
func NewImageFetcher(client *http.Client, opts ...ImageOption) *ImageFetcher {
	if client == nil {
		client = &http.Client{Timeout: DefaultFetchTimeout}
	}
	f := &ImageFetcher{
		client:    client,
		maxBytes:  DefaultMaxImageBytes,
		userAgent: DefaultUserAgent,
		Now:       time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchImage downloads the image at url. The response must carry an image
// content type, either declared or sniffed from the body, and must not
// exceed the size limit.
func (f *ImageFetcher) FetchImage(ctx context.Context, url string) (*sunreader.Image, error) {
	body, header, err := get(ctx, f.client, url, f.userAgent)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, f.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > f.maxBytes {
		return nil, sunreader.Errorf(sunreader.EINVALID, "image %s exceeds %d bytes", url, f.maxBytes)
	}
	if len(data) == 0 {
		return nil, sunreader.Errorf(sunreader.EINVALID, "image %s is empty", url)
	}

	contentType := imageContentType(header.Get("Content-Type"), data)
	if contentType == "" {
		return nil, sunreader.Errorf(sunreader.EINVALID, "%s is not an image", url)
	}

	return &sunreader.Image{
		URL:         url,
		ContentType: contentType,
		Data:        data,
		Size:        len(data),
		FetchedAt:   f.Now().UTC(),
	}, nil
}

// imageContentType returns the media type of an image response, or an
// empty string if the response is not an image. Generic or missing
// declarations fall back to sniffing the body.
func imageContentType(declared string, data []byte) string {
	mediaType, _, err := mime.ParseMediaType(declared)
	if err == nil && strings.HasPrefix(mediaType, "image/") {
		return mediaType
	}
	if err == nil && mediaType != "application/octet-stream" && mediaType != "binary/octet-stream" {
		return ""
	}
	sniffed, _, _ := mime.ParseMediaType(http.DetectContentType(data))
	if strings.HasPrefix(sniffed, "image/") {
		return sniffed
	}
	return ""
}
