package mock

import "github.com/cornellsun/sunreader"

var _ sunreader.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of sunreader.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*sunreader.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*sunreader.ExtractResult, error) {
	return e.ExtractFn(html)
}
