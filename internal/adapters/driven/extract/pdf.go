package extract

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/korpus-labs/korpus-cli/internal/core/domain"
	"github.com/korpus-labs/korpus-cli/internal/core/ports/driven"
	"github.com/korpus-labs/korpus-cli/internal/logger"
)

// Ensure PDF implements the port.
var _ driven.TextExtractor = (*PDF)(nil)

// defaultPageChars is the fallback page-size estimate (characters per
// page) used when the PDF structure cannot be read.
const defaultPageChars = 1800

// PDF extracts text by shelling out to pdftotext and counts pages with
// pdfcpu. The external tool handles layout reconstruction far better
// than pure-Go text extraction.
type PDF struct {
	runner driven.CommandRunner

	// pageChars is the characters-per-page estimate for the fallback
	// page count. Zero means defaultPageChars.
	pageChars int
}

// NewPDF creates a PDF extractor using the given command runner.
func NewPDF(runner driven.CommandRunner, pageChars int) *PDF {
	if pageChars <= 0 {
		pageChars = defaultPageChars
	}
	return &PDF{runner: runner, pageChars: pageChars}
}

// SupportedExtensions returns the extensions this extractor handles.
func (p *PDF) SupportedExtensions() []string {
	return []string{".pdf"}
}

// Extract runs pdftotext with layout preservation and reads the page
// count from the PDF structure.
func (p *PDF) Extract(ctx context.Context, path string) (*driven.Extraction, error) {
	// "-" sends the text to stdout.
	out, err := p.runner.Run(ctx, "pdftotext", "-layout", "-enc", "UTF-8", path, "-")
	if err != nil {
		return nil, fmt.Errorf("%w: pdftotext failed for %s: %v\n\n%s",
			domain.ErrExtraction, path, err, InstallInstructions())
	}

	text := strings.TrimSpace(string(out))
	if text == "" {
		return nil, fmt.Errorf("%w: no text layer in %s (scanned image?)", domain.ErrExtraction, path)
	}

	pages, err := api.PageCountFile(path)
	if err != nil {
		// Fall back to a size estimate so the timing report still
		// gets a page figure.
		pages = utf8.RuneCountInString(text)/p.pageChars + 1
		logger.Debug("pdfcpu page count failed for %s, estimating %d pages: %v", path, pages, err)
	}

	return &driven.Extraction{Text: text, PageCount: pages}, nil
}

// InstallInstructions returns help text for installing pdftotext.
func InstallInstructions() string {
	return `PDF extraction requires the pdftotext tool (poppler).

Install it with:
  macOS:         brew install poppler
  Debian/Ubuntu: sudo apt install poppler-utils
  Fedora:        sudo dnf install poppler-utils`
}
