package mock

import (
	"context"

	"github.com/cornellsun/sunreader"
)

var (
	_ sunreader.ImageFetcher  = (*ImageFetcher)(nil)
	_ sunreader.ImageStore    = (*ImageStore)(nil)
	_ sunreader.DomainLimiter = (*DomainLimiter)(nil)
)

// ImageFetcher is a mock implementation of sunreader.ImageFetcher.
type ImageFetcher struct {
	FetchImageFn func(ctx context.Context, url string) (*sunreader.Image, error)
}

func (f *ImageFetcher) FetchImage(ctx context.Context, url string) (*sunreader.Image, error) {
	return f.FetchImageFn(ctx, url)
}

// ImageStore is a mock implementation of sunreader.ImageStore.
type ImageStore struct {
	SaveImageFn      func(ctx context.Context, img *sunreader.Image) error
	FindImageByURLFn func(ctx context.Context, url string) (*sunreader.Image, error)
	HasImageFn       func(ctx context.Context, url string) (bool, error)
	FindImagesFn     func(ctx context.Context, filter sunreader.ImageFilter) ([]*sunreader.Image, error)
	DeleteImageFn    func(ctx context.Context, url string) error
}

func (s *ImageStore) SaveImage(ctx context.Context, img *sunreader.Image) error {
	return s.SaveImageFn(ctx, img)
}

func (s *ImageStore) FindImageByURL(ctx context.Context, url string) (*sunreader.Image, error) {
	return s.FindImageByURLFn(ctx, url)
}

func (s *ImageStore) HasImage(ctx context.Context, url string) (bool, error) {
	return s.HasImageFn(ctx, url)
}

func (s *ImageStore) FindImages(ctx context.Context, filter sunreader.ImageFilter) ([]*sunreader.Image, error) {
	return s.FindImagesFn(ctx, filter)
}

func (s *ImageStore) DeleteImage(ctx context.Context, url string) error {
	return s.DeleteImageFn(ctx, url)
}

// DomainLimiter is a mock implementation of sunreader.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
