package driven

import "context"

// Extraction is the raw text pulled out of a source file.
type Extraction struct {
	// Text is the extracted plain text.
	Text string

	// PageCount is the page count when the format has pages (PDF),
	// otherwise an estimate or zero.
	PageCount int
}

// TextExtractor extracts plain text from a source file.
// Implementations handle specific file formats; a registry dispatches
// on file extension.
type TextExtractor interface {
	// SupportedExtensions returns the lowercase file extensions this
	// extractor handles, including the leading dot.
	SupportedExtensions() []string

	// Extract reads the file and returns its text. An empty result or
	// any read failure is reported as domain.ErrExtraction.
	Extract(ctx context.Context, path string) (*Extraction, error)
}
