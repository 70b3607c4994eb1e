package driving

import (
	"context"

	"github.com/korpus-labs/korpus-cli/internal/core/domain"
)

// IngestService runs the document ingestion pipeline.
//
// AddDocument validates synchronously (missing fields, duplicate
// title) and then performs extraction, annotation and persistence on a
// background worker. Exactly one IngestEvent per accepted job arrives
// on Events.
type IngestService interface {
	// AddDocument starts ingestion of one document and returns the job
	// id. Validation failures are returned immediately and produce no
	// event.
	AddDocument(ctx context.Context, req domain.IngestRequest) (string, error)

	// Events is the completion channel for background jobs. The
	// channel is never closed while the service is in use; callers
	// drain it on their own schedule.
	Events() <-chan domain.IngestEvent

	// OnChange registers an observer invoked after every successful
	// ingestion, so dependent views can refresh.
	OnChange(fn func())

	// Wait blocks until all in-flight jobs have finished.
	Wait()
}
