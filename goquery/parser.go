// Package goquery implements sunreader.Parser on top of goquery.
package goquery

import (
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/PuerkitoBio/goquery"
	"github.com/cornellsun/sunreader"
)

// Ensure Parser implements sunreader.Parser at compile time.
var _ sunreader.Parser = (*Parser)(nil)

// Parser classifies the elements of an article HTML fragment and extracts
// one content block per recognized element.
//
// Parser is safe for concurrent use: every Parse call loads its own document.
type Parser struct {
	config     sunreader.ParseConfig
	base       *url.URL
	prefetcher sunreader.ImagePrefetcher
	styler     Styler

	styleFailures atomic.Int64
}

// Option configures a Parser.
type Option func(*Parser)

// WithPrefetcher sets the prefetcher notified of every extracted image URL.
func WithPrefetcher(p sunreader.ImagePrefetcher) Option {
	return func(parser *Parser) {
		parser.prefetcher = p
	}
}

// WithStyler replaces the paragraph text styler.
// Defaults to a DOMStyler if not specified.
func WithStyler(s Styler) Option {
	return func(parser *Parser) {
		parser.styler = s
	}
}

// NewParser creates a Parser for the given vocabulary.
// An unparsable cfg.BaseURL is ignored and relative image URLs are kept as-is.
func NewParser(cfg sunreader.ParseConfig, opts ...Option) *Parser {
	p := &Parser{
		config: cfg,
		styler: NewDOMStyler(),
	}
	if cfg.BaseURL != "" {
		if base, err := url.Parse(cfg.BaseURL); err == nil {
			p.base = base
		}
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// StyleFailures returns how many paragraphs were dropped because styling
// them failed.
func (p *Parser) StyleFailures() int64 {
	return p.styleFailures.Load()
}

// Parse returns the blocks of html in document order.
func (p *Parser) Parse(html string) []sunreader.Block {
	blocks := []sunreader.Block{}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return blocks
	}

	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		if block, ok := p.extract(sel); ok {
			blocks = append(blocks, block)
		}
	})

	return blocks
}

// extract classifies a single element and extracts its block.
func (p *Parser) extract(sel *goquery.Selection) (sunreader.Block, bool) {
	rule, ok := p.config.Match(goquery.NodeName(sel), sel.HasClass)
	if !ok {
		return sunreader.Block{}, false
	}

	switch rule.Kind {
	case sunreader.KindHeading:
		return textBlock(sel, sunreader.NewHeading)
	case sunreader.KindCaption:
		return textBlock(sel, sunreader.NewCaption)
	case sunreader.KindImageCredit:
		return textBlock(sel, sunreader.NewImageCredit)
	case sunreader.KindParagraph:
		return p.paragraph(sel)
	case sunreader.KindImage:
		return p.image(sel)
	case sunreader.KindBlockQuote:
		return blockQuote(sel)
	}
	return sunreader.Block{}, false
}

func textBlock(sel *goquery.Selection, newBlock func(string) sunreader.Block) (sunreader.Block, bool) {
	text := visibleText(sel)
	if isBlank(text) {
		return sunreader.Block{}, false
	}
	return newBlock(text), true
}

// paragraph styles the element's markup. A paragraph whose styling fails
// is dropped rather than emitted empty.
func (p *Parser) paragraph(sel *goquery.Selection) (sunreader.Block, bool) {
	if isBlank(visibleText(sel)) {
		return sunreader.Block{}, false
	}

	rich, err := p.styler.Style(sel, p.config.Style)
	if err != nil || rich.Len() == 0 {
		p.styleFailures.Add(1)
		return sunreader.Block{}, false
	}

	return sunreader.NewParagraph(rich), true
}

// image looks for a src on the element or its descendants, then falls back
// to the data-lazy attribute used by slideshow images.
func (p *Parser) image(sel *goquery.Selection) (sunreader.Block, bool) {
	src, ok := sel.Attr("src")
	if !ok {
		src, ok = sel.Find("[src]").First().Attr("src")
	}
	if ok {
		if u, valid := p.resolveURL(src); valid {
			p.prefetch(u)
			return sunreader.NewImage(u), true
		}
	}

	if lazy, ok := sel.Attr("data-lazy"); ok {
		if u, valid := p.resolveURL(lazy); valid {
			p.prefetch(u)
			return sunreader.NewImage(u), true
		}
	}

	return sunreader.Block{}, false
}

func blockQuote(sel *goquery.Selection) (sunreader.Block, bool) {
	text := normalizeText(visibleText(sel))
	if isBlank(text) {
		return sunreader.Block{}, false
	}
	return sunreader.NewBlockQuote(text), true
}

// resolveURL validates raw and resolves it against the base URL, if any.
func (p *Parser) resolveURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if !sunreader.IsValidURL(raw) {
		return "", false
	}
	if p.base == nil {
		return raw, true
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	return p.base.ResolveReference(ref).String(), true
}

// prefetch hands url to the prefetcher without waiting on it.
// A misbehaving prefetcher never affects the parse.
func (p *Parser) prefetch(url string) {
	if p.prefetcher == nil {
		return
	}
	defer func() { _ = recover() }()
	p.prefetcher.Prefetch(url)
}
