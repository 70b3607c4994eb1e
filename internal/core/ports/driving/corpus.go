package driving

import (
	"context"

	"github.com/korpus-labs/korpus-cli/internal/core/domain"
)

// CorpusService manages documents already in the corpus.
type CorpusService interface {
	// List returns metadata for every document, ordered by id.
	List(ctx context.Context) ([]domain.Document, error)

	// Get retrieves one document's metadata.
	Get(ctx context.Context, id int64) (*domain.Document, error)

	// Text retrieves the full raw text of a document.
	Text(ctx context.Context, id int64) (string, error)

	// Delete removes a document with its whole annotation graph.
	Delete(ctx context.Context, id int64) error

	// ProcessingStats returns the processing-time report rows.
	ProcessingStats(ctx context.Context) ([]domain.ProcessingStat, error)
}
