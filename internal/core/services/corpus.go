package services

import (
	"context"
	"fmt"

	"github.com/korpus-labs/korpus-cli/internal/core/domain"
	"github.com/korpus-labs/korpus-cli/internal/core/ports/driven"
	"github.com/korpus-labs/korpus-cli/internal/core/ports/driving"
	"github.com/korpus-labs/korpus-cli/internal/logger"
)

// Ensure CorpusService implements the interface.
var _ driving.CorpusService = (*CorpusService)(nil)

// CorpusService exposes document management over the corpus store.
type CorpusService struct {
	store driven.CorpusStore
}

// NewCorpusService creates a new corpus service.
func NewCorpusService(store driven.CorpusStore) *CorpusService {
	return &CorpusService{store: store}
}

// List returns all documents in the corpus without their raw text.
func (s *CorpusService) List(ctx context.Context) ([]domain.Document, error) {
	docs, err := s.store.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// Get returns a single document's metadata by id.
func (s *CorpusService) Get(ctx context.Context, id int64) (*domain.Document, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: document id must be positive", domain.ErrValidation)
	}
	doc, err := s.store.GetDocument(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get document %d: %w", id, err)
	}
	return doc, nil
}

// Text returns the stored raw text of a document.
func (s *CorpusService) Text(ctx context.Context, id int64) (string, error) {
	if id <= 0 {
		return "", fmt.Errorf("%w: document id must be positive", domain.ErrValidation)
	}
	text, err := s.store.DocumentText(ctx, id)
	if err != nil {
		return "", fmt.Errorf("document text %d: %w", id, err)
	}
	return text, nil
}

// Delete removes a document and, through the schema's cascades, all of
// its sentences, tokens and grammar features.
func (s *CorpusService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: document id must be positive", domain.ErrValidation)
	}
	if err := s.store.DeleteDocument(ctx, id); err != nil {
		return fmt.Errorf("delete document %d: %w", id, err)
	}
	logger.Info("deleted document %d", id)
	return nil
}

// ProcessingStats returns per-document ingestion timing for documents
// that recorded both a processing time and a page count.
func (s *CorpusService) ProcessingStats(ctx context.Context) ([]domain.ProcessingStat, error) {
	stats, err := s.store.ProcessingStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("processing stats: %w", err)
	}
	return stats, nil
}
