package extract

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/korpus-labs/korpus-cli/internal/core/domain"
	"github.com/korpus-labs/korpus-cli/internal/core/ports/driven"
)

// Ensure Docx implements the port.
var _ driven.TextExtractor = (*Docx)(nil)

// Docx extracts paragraph text from DOCX archives.
type Docx struct{}

// NewDocx creates a DOCX extractor.
func NewDocx() *Docx {
	return &Docx{}
}

// SupportedExtensions returns the extensions this extractor handles.
func (d *Docx) SupportedExtensions() []string {
	return []string{".docx"}
}

// Extract opens the file as a ZIP archive and pulls the text runs out
// of word/document.xml, one line per paragraph.
func (d *Docx) Extract(_ context.Context, path string) (*driven.Extraction, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", domain.ErrExtraction, path, err)
	}
	defer reader.Close()

	text, err := extractDocumentText(&reader.Reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrExtraction, path, err)
	}
	if text == "" {
		return nil, fmt.Errorf("%w: %s contains no text", domain.ErrExtraction, path)
	}
	return &driven.Extraction{Text: text}, nil
}

// extractDocumentText extracts text from word/document.xml.
func extractDocumentText(reader *zip.Reader) (string, error) {
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", err
		}

		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", err
		}

		return parseDocumentXML(content)
	}
	return "", fmt.Errorf("word/document.xml not found")
}

// documentXML represents the structure of word/document.xml.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

// parseDocumentXML extracts text content from the document XML.
func parseDocumentXML(content []byte) (string, error) {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return "", err
	}

	var result strings.Builder
	for i, para := range doc.Body.Paragraphs {
		if i > 0 {
			result.WriteString("\n")
		}
		for _, r := range para.Runs {
			for _, text := range r.Text {
				result.WriteString(text.Content)
			}
		}
	}

	return strings.TrimSpace(result.String()), nil
}
