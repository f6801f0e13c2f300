package sunreader

import (
	"context"
	"time"
)

// Image is a cached image downloaded by the prefetcher.
type Image struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	ContentType string    `json:"contentType"`
	Data        []byte    `json:"-"`
	ContentHash string    `json:"contentHash"`
	Size        int       `json:"size"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the image contains invalid fields.
func (img *Image) Validate() error {
	if img.URL == "" {
		return Errorf(EINVALID, "image URL required")
	}
	if len(img.Data) == 0 {
		return Errorf(EINVALID, "image data required")
	}
	return nil
}

// ImageFetcher downloads images.
type ImageFetcher interface {
	FetchImage(ctx context.Context, url string) (*Image, error)
}

// ImageStore represents a service for managing cached images.
type ImageStore interface {
	// SaveImage stores an image, replacing any image with the same URL.
	SaveImage(ctx context.Context, img *Image) error

	// FindImageByURL retrieves an image by its source URL.
	// Returns ENOTFOUND if the image is not cached.
	FindImageByURL(ctx context.Context, url string) (*Image, error)

	// HasImage reports whether an image is cached for url.
	HasImage(ctx context.Context, url string) (bool, error)

	// FindImages retrieves images matching the filter, without their data.
	FindImages(ctx context.Context, filter ImageFilter) ([]*Image, error)

	// DeleteImage removes the image cached for url.
	// Returns ENOTFOUND if the image is not cached.
	DeleteImage(ctx context.Context, url string) error
}

// ImageSortOrder represents the sort order for image queries.
type ImageSortOrder string

// ImageSortOrder constants for ImageFilter.
const (
	SortByFetchedAt ImageSortOrder = "fetched_at"
	SortBySize      ImageSortOrder = "size"
)

// ImageFilter represents a filter for FindImages.
type ImageFilter struct {
	URL *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	SortBy ImageSortOrder `json:"sortBy"`
}

// DomainLimiter rate limits requests per host.
type DomainLimiter interface {
	// Wait blocks until a request to domain is allowed or ctx is done.
	Wait(ctx context.Context, domain string) error
}
