package sunreader

// Parser converts an article HTML fragment into content blocks.
type Parser interface {
	// Parse returns the blocks of html in document order.
	// Parse never fails: unparsable input yields an empty slice and
	// elements that cannot be extracted are skipped.
	Parse(html string) []Block
}

// ImagePrefetcher warms an image cache ahead of rendering.
type ImagePrefetcher interface {
	// Prefetch requests that the image at url be cached.
	// It must return immediately and must tolerate repeated URLs.
	// Callers never learn whether the request succeeded.
	Prefetch(url string)
}

// PrefetchFunc adapts an ordinary function to the ImagePrefetcher interface.
type PrefetchFunc func(url string)

// Prefetch calls f(url).
func (f PrefetchFunc) Prefetch(url string) {
	f(url)
}

// Renderer turns content blocks into a display format.
type Renderer interface {
	Render(blocks []Block) (string, error)
}
