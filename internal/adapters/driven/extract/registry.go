package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/korpus-labs/korpus-cli/internal/core/domain"
	"github.com/korpus-labs/korpus-cli/internal/core/ports/driven"
	"github.com/korpus-labs/korpus-cli/internal/logger"
)

// Ensure Registry implements the port.
var _ driven.TextExtractor = (*Registry)(nil)

// Registry routes extraction to the extractor registered for the
// file's extension.
type Registry struct {
	byExt map[string]driven.TextExtractor
}

// NewRegistry creates a registry over the given extractors. A later
// extractor claiming an already-registered extension wins.
func NewRegistry(extractors ...driven.TextExtractor) *Registry {
	r := &Registry{byExt: make(map[string]driven.TextExtractor)}
	for _, e := range extractors {
		for _, ext := range e.SupportedExtensions() {
			r.byExt[strings.ToLower(ext)] = e
		}
	}
	return r
}

// SupportedExtensions returns every registered extension, sorted.
func (r *Registry) SupportedExtensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Extract dispatches to the extractor for the file's extension.
func (r *Registry) Extract(ctx context.Context, path string) (*driven.Extraction, error) {
	ext := strings.ToLower(filepath.Ext(path))
	e, ok := r.byExt[ext]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported file type %q (supported: %s)",
			domain.ErrExtraction, ext, strings.Join(r.SupportedExtensions(), ", "))
	}
	logger.Debug("extracting %s via %T", path, e)
	return e.Extract(ctx, path)
}
