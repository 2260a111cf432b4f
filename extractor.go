package sportsense

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the article title extracted from metadata.
	Title string

	// ContentHTML is the main article body as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string

	// PublishedAt is the publish date from page metadata, in RFC3339
	// form, if detected.
	PublishedAt string

	// Language is the detected language tag, if any.
	Language string
}

// Extractor extracts the main article body from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	// The title and publish date come from page metadata (meta tags, JSON+LD, etc.).
	// The content HTML has boilerplate removed but preserves structure.
	Extract(html string) (*ExtractResult, error)
}
