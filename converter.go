package bearreader

// Converter converts inline HTML into styled text.
type Converter interface {
	// Convert transforms an HTML fragment (paragraphs, emphasis, links,
	// lists) into StyledText. The fragment should not contain images.
	Convert(html string) (StyledText, error)
}
