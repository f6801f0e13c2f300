package mock

import "github.com/cornellsun/sunreader"

var (
	_ sunreader.Parser          = (*Parser)(nil)
	_ sunreader.ImagePrefetcher = (*ImagePrefetcher)(nil)
	_ sunreader.Renderer        = (*Renderer)(nil)
)

// Parser is a mock implementation of sunreader.Parser.
type Parser struct {
	ParseFn func(html string) []sunreader.Block
}

func (p *Parser) Parse(html string) []sunreader.Block {
	return p.ParseFn(html)
}

// ImagePrefetcher is a mock implementation of sunreader.ImagePrefetcher.
type ImagePrefetcher struct {
	PrefetchFn func(url string)
}

func (p *ImagePrefetcher) Prefetch(url string) {
	p.PrefetchFn(url)
}

// Renderer is a mock implementation of sunreader.Renderer.
type Renderer struct {
	RenderFn func(blocks []sunreader.Block) (string, error)
}

func (r *Renderer) Render(blocks []sunreader.Block) (string, error) {
	return r.RenderFn(blocks)
}
