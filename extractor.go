package sunreader

// ExtractResult holds the article body found in a full web page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the article body as HTML with page chrome
	// (navigation, footer, sidebar, ads) removed.
	ContentHTML string
}

// Extractor reduces a full web page to its article body so that the body
// can be handed to a Parser.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}
