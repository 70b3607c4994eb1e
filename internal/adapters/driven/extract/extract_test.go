package extract

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/korpus-labs/korpus-cli/internal/core/domain"
)

// mockRunner is a test double for CommandRunner.
type mockRunner struct {
	output []byte
	err    error
	name   string
	args   []string
}

func (m *mockRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	m.name = name
	m.args = args
	return m.output, m.err
}

// --- Plaintext ---

func TestPlaintext_Extract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("Кот сидит.\n"), 0644))

	result, err := NewPlaintext().Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Кот сидит.", result.Text)
	assert.Zero(t, result.PageCount)
}

func TestPlaintext_Extract_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("  \n\t"), 0644))

	_, err := NewPlaintext().Extract(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestPlaintext_Extract_MissingFile(t *testing.T) {
	_, err := NewPlaintext().Extract(context.Background(), filepath.Join(t.TempDir(), "absent.txt"))
	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestPlaintext_Extract_InvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latin1.txt")
	require.NoError(t, os.WriteFile(path, []byte{0xEF, 0xE0, 0xFF}, 0644))

	_, err := NewPlaintext().Extract(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrExtraction)
}

// --- DOCX ---

// writeDocx builds a minimal DOCX archive with the given paragraphs.
func writeDocx(t *testing.T, paragraphs ...string) string {
	t.Helper()

	xmlBody := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`
	for _, p := range paragraphs {
		xmlBody += `<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`
	}
	xmlBody += `</w:body></w:document>`

	path := filepath.Join(t.TempDir(), "doc.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(xmlBody))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	return path
}

func TestDocx_Extract(t *testing.T) {
	path := writeDocx(t, "Кот сидит.", "Собака лает.")

	result, err := NewDocx().Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Кот сидит.\nСобака лает.", result.Text)
	assert.Zero(t, result.PageCount)
}

func TestDocx_Extract_NotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.docx")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0644))

	_, err := NewDocx().Extract(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestDocx_Extract_MissingDocumentXML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hollow.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	_, err = zw.Create("word/other.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = NewDocx().Extract(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrExtraction)
}

// --- PDF ---

func TestPDF_Extract(t *testing.T) {
	runner := &mockRunner{output: []byte("Кот сидит на крыше.\n")}
	pdf := NewPDF(runner, 0)

	// The page count falls back to the size estimate because the path
	// is not a real PDF.
	result, err := pdf.Extract(context.Background(), filepath.Join(t.TempDir(), "doc.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "Кот сидит на крыше.", result.Text)
	assert.Equal(t, 1, result.PageCount)

	assert.Equal(t, "pdftotext", runner.name)
	assert.Contains(t, runner.args, "-layout")
	assert.Equal(t, "-", runner.args[len(runner.args)-1])
}

func TestPDF_Extract_ToolMissing(t *testing.T) {
	runner := &mockRunner{err: errors.New("executable not found")}
	pdf := NewPDF(runner, 0)

	_, err := pdf.Extract(context.Background(), "/tmp/doc.pdf")
	require.ErrorIs(t, err, domain.ErrExtraction)
	assert.Contains(t, err.Error(), "pdftotext")
	assert.Contains(t, err.Error(), "poppler")
}

func TestPDF_Extract_NoTextLayer(t *testing.T) {
	runner := &mockRunner{output: []byte("   \n")}
	pdf := NewPDF(runner, 0)

	_, err := pdf.Extract(context.Background(), "/tmp/scan.pdf")
	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestInstallInstructions(t *testing.T) {
	instructions := InstallInstructions()
	assert.Contains(t, instructions, "pdftotext")
	assert.Contains(t, instructions, "brew install poppler")
	assert.Contains(t, instructions, "apt install poppler-utils")
}

// --- Registry ---

func TestRegistry_DispatchesByExtension(t *testing.T) {
	txt := filepath.Join(t.TempDir(), "doc.TXT")
	require.NoError(t, os.WriteFile(txt, []byte("Кот."), 0644))

	reg := NewRegistry(NewPlaintext(), NewDocx(), NewPDF(&mockRunner{}, 0))

	result, err := reg.Extract(context.Background(), txt)
	require.NoError(t, err)
	assert.Equal(t, "Кот.", result.Text)

	assert.Equal(t, []string{".docx", ".pdf", ".txt"}, reg.SupportedExtensions())
}

func TestRegistry_UnsupportedExtension(t *testing.T) {
	reg := NewRegistry(NewPlaintext())

	_, err := reg.Extract(context.Background(), "/tmp/data.csv")
	require.ErrorIs(t, err, domain.ErrExtraction)
	assert.Contains(t, err.Error(), ".csv")
	assert.Contains(t, err.Error(), ".txt")
}
