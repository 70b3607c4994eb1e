package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/korpus-labs/korpus-cli/internal/core/domain"
	"github.com/korpus-labs/korpus-cli/internal/core/ports/driven"
	"github.com/korpus-labs/korpus-cli/internal/core/ports/driving"
	"github.com/korpus-labs/korpus-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// eventBuffer bounds the completion channel so a burst of finished
// workers does not block while the front end is between polls.
const eventBuffer = 32

// IngestService runs the ingestion pipeline: duplicate check, text
// extraction, morphological annotation and transactional persistence
// of the sentence/token/feature graph.
//
// Extraction and annotation of concurrent jobs run in parallel; the
// persistence phase serializes on the store lock.
type IngestService struct {
	store     driven.CorpusStore
	extractor driven.TextExtractor
	annotator driven.Annotator

	events chan domain.IngestEvent
	wg     sync.WaitGroup

	mu        sync.Mutex
	pending   map[string]struct{} // titles with an in-flight job
	observers []func()
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	store driven.CorpusStore,
	extractor driven.TextExtractor,
	annotator driven.Annotator,
) *IngestService {
	return &IngestService{
		store:     store,
		extractor: extractor,
		annotator: annotator,
		events:    make(chan domain.IngestEvent, eventBuffer),
		pending:   make(map[string]struct{}),
	}
}

// Events returns the completion channel for background jobs.
func (s *IngestService) Events() <-chan domain.IngestEvent {
	return s.events
}

// OnChange registers an observer invoked after every successful
// ingestion.
func (s *IngestService) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Wait blocks until all in-flight jobs have finished.
func (s *IngestService) Wait() {
	s.wg.Wait()
}

// AddDocument validates the request and starts a background ingest
// job. Validation failures (missing fields, duplicate title) are
// returned immediately and produce no event.
func (s *IngestService) AddDocument(ctx context.Context, req domain.IngestRequest) (string, error) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return "", fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if strings.TrimSpace(req.Path) == "" {
		return "", fmt.Errorf("%w: file path is required", domain.ErrValidation)
	}

	// Reject duplicates before any extraction work begins. The check
	// is repeated inside the persistence transaction, so two racing
	// jobs with the same title can never both insert.
	exists, err := s.store.DocumentExists(ctx, req.Title)
	if err != nil {
		return "", fmt.Errorf("checking title: %w", err)
	}
	if exists {
		return "", fmt.Errorf("%w: %q", domain.ErrDuplicateTitle, req.Title)
	}
	if !s.claimTitle(req.Title) {
		return "", fmt.Errorf("%w: %q is already being processed", domain.ErrDuplicateTitle, req.Title)
	}

	// An accepted job runs to completion or failure; there is no
	// user-initiated abort. The caller's context (and its cancellation
	// after AddDocument returns) must not reach the worker.
	jobID := uuid.New().String()
	jobCtx := context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.releaseTitle(req.Title)
		s.process(jobCtx, jobID, req)
	}()

	return jobID, nil
}

// process runs one ingest job to completion and delivers exactly one
// event. Every failure is converted into an error event; no raw fault
// crosses the pipeline boundary.
func (s *IngestService) process(ctx context.Context, jobID string, req domain.IngestRequest) {
	started := time.Now()

	err := s.ingest(ctx, req, started)
	if err != nil {
		logger.Warn("ingest %q failed: %v", req.Title, err)
		s.events <- domain.IngestEvent{
			JobID:   jobID,
			Kind:    domain.IngestFailed,
			Title:   req.Title,
			Message: err.Error(),
			Err:     err,
		}
		return
	}

	logger.Info("ingested %q in %.2fs", req.Title, time.Since(started).Seconds())
	s.events <- domain.IngestEvent{
		JobID:   jobID,
		Kind:    domain.IngestSucceeded,
		Title:   req.Title,
		Message: fmt.Sprintf("document %q added", req.Title),
	}
	s.notify()
}

// ingest performs extraction, annotation and persistence.
func (s *IngestService) ingest(ctx context.Context, req domain.IngestRequest, started time.Time) error {
	logger.Debug("extracting %s", req.Path)
	extraction, err := s.extractor.Extract(ctx, req.Path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrExtraction, req.Path, err)
	}
	if extraction == nil || strings.TrimSpace(extraction.Text) == "" {
		return fmt.Errorf("%w: no text could be extracted from %s", domain.ErrExtraction, req.Path)
	}

	logger.Debug("annotating %q (%d bytes)", req.Title, len(extraction.Text))
	annotation, err := s.annotator.Annotate(ctx, extraction.Text)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrAnnotation, err)
	}
	if err := annotation.Validate(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrAnnotation, err)
	}

	seconds := time.Since(started).Seconds()
	doc := &domain.Document{
		Title:             req.Title,
		Author:            req.Author,
		Date:              req.Date,
		Genre:             req.Genre,
		Text:              extraction.Text,
		ProcessingSeconds: &seconds,
	}
	// A zero page count means the format has no page notion; the
	// timing report only covers paged documents.
	if extraction.PageCount > 0 {
		pages := extraction.PageCount
		doc.PageCount = &pages
	}

	logger.Debug("persisting %q: %d sentences, %d tokens",
		req.Title, len(annotation.Sentences), annotation.TokenCount())
	return s.persist(ctx, doc, annotation)
}

// persist writes the whole annotation graph in one transaction.
// Generated ids are captured at insert time, so sentences and tokens
// never need positional re-alignment against a re-read.
func (s *IngestService) persist(ctx context.Context, doc *domain.Document, annotation *domain.Annotation) error {
	err := s.store.RunInTransaction(ctx, func(tx driven.CorpusTx) error {
		exists, err := tx.DocumentExists(doc.Title)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %q", domain.ErrDuplicateTitle, doc.Title)
		}

		docID, err := tx.InsertDocument(doc)
		if err != nil {
			return err
		}

		for _, sent := range annotation.Sentences {
			sentID, err := tx.InsertSentence(docID, sent.Text)
			if err != nil {
				return err
			}
			for _, tok := range sent.Tokens {
				tokID, err := tx.InsertToken(sentID, tok)
				if err != nil {
					return err
				}
				for name, value := range tok.Feats {
					if err := tx.InsertFeature(tokID, name, value); err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
	if err != nil {
		// Store-level failures arrive already classified; wrapping
		// again would stutter the user-visible message.
		if errors.Is(err, domain.ErrDuplicateTitle) || errors.Is(err, domain.ErrPersistence) {
			return err
		}
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}

// notify invokes the registered data-changed observers.
func (s *IngestService) notify() {
	s.mu.Lock()
	observers := make([]func(), len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, fn := range observers {
		fn()
	}
}

// claimTitle marks a title as having an in-flight job.
func (s *IngestService) claimTitle(title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.pending[title]; busy {
		return false
	}
	s.pending[title] = struct{}{}
	return true
}

func (s *IngestService) releaseTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, title)
}
