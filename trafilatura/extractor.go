// Package trafilatura reduces full article pages to their body with
// go-trafilatura.
package trafilatura

import (
	"bytes"
	nurl "net/url"
	"strings"

	"github.com/cornellsun/sunreader"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements sunreader.Extractor at compile time.
var _ sunreader.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract the article body from a page.
// Images and links are kept so that the body still yields image blocks.
type Extractor struct {
	pageURL *nurl.URL
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithPageURL sets the URL the page was served from.
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
// Returns ENOTFOUND if no content node is found.
func (e *Extractor) Extract(rawHTML string) (*sunreader.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, sunreader.Errorf(sunreader.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
		IncludeImages:  true,
		IncludeLinks:   true,
		OriginalURL:    e.pageURL,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}
	if result.ContentNode == nil {
		return nil, sunreader.Errorf(sunreader.ENOTFOUND, "no article content found")
	}

	contentHTML, err := renderNode(result.ContentNode)
	if err != nil {
		return nil, err
	}

	return &sunreader.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
