package bearreader

// ExtractResult holds the main content located by an Extractor.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// Extractor locates the main content of arbitrary HTML pages using
// readability heuristics. It is used as a fallback when the configured
// main-content selector matches nothing on a page.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}
