// Package readability reduces full article pages to their body with
// go-readability.
package readability

import (
	nurl "net/url"
	"strings"

	"github.com/cornellsun/sunreader"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements sunreader.Extractor at compile time.
var _ sunreader.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract the article body from a page.
type Extractor struct {
	pageURL *nurl.URL
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithPageURL sets the URL the page was served from. Relative links and
// image sources in the extracted body are resolved against it.
func WithPageURL(u *nurl.URL) Option {
	return func(e *Extractor) {
		e.pageURL = u
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes raw HTML and returns the article body.
// Returns ENOTFOUND if no readable content is found.
func (e *Extractor) Extract(rawHTML string) (*sunreader.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, sunreader.Errorf(sunreader.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), e.pageURL)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(article.TextContent) == "" {
		return nil, sunreader.Errorf(sunreader.ENOTFOUND, "no article content found")
	}

	return &sunreader.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
