package skim

// ExtractResult holds the content extracted from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// Text is the readable plain-text body.
	// May be empty when the page has no recognizable main content.
	Text string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// Extractor reduces an HTML page to its main readable content.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	// A page without readable content is not an error: implementations
	// return a result with empty Text and let the caller decide.
	Extract(html string) (*ExtractResult, error)
}
