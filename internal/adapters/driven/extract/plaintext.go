package extract

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/korpus-labs/korpus-cli/internal/core/domain"
	"github.com/korpus-labs/korpus-cli/internal/core/ports/driven"
)

// Ensure Plaintext implements the port.
var _ driven.TextExtractor = (*Plaintext)(nil)

// Plaintext reads UTF-8 text files as-is.
type Plaintext struct{}

// NewPlaintext creates a plain text extractor.
func NewPlaintext() *Plaintext {
	return &Plaintext{}
}

// SupportedExtensions returns the extensions this extractor handles.
func (p *Plaintext) SupportedExtensions() []string {
	return []string{".txt"}
}

// Extract reads the whole file. Plain text has no page notion, so the
// page count stays zero.
func (p *Plaintext) Extract(_ context.Context, path string) (*driven.Extraction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrExtraction, path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %s is not valid UTF-8", domain.ErrExtraction, path)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, fmt.Errorf("%w: %s is empty", domain.ErrExtraction, path)
	}
	return &driven.Extraction{Text: text}, nil
}
