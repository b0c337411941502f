package modex

// Converter renders HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown, preserving link targets
	// inline. Empty input yields an empty string, not an error: a heading
	// that owns no content is valid.
	Convert(html string) (string, error)
}
