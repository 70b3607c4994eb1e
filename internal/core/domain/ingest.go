package domain

// IngestRequest describes one document to add to the corpus.
type IngestRequest struct {
	// Path is the source file (txt, pdf or docx).
	Path string

	// Title must be unique within the corpus.
	Title string

	Author string
	Date   string
	Genre  string
}

// IngestEventKind classifies the outcome reported for an ingest job.
type IngestEventKind string

const (
	IngestSucceeded IngestEventKind = "success"
	IngestFailed    IngestEventKind = "error"
)

// IngestEvent is the single completion message delivered for each
// background ingest job. Workers never surface raw faults; every
// failure arrives here as a human-readable message.
type IngestEvent struct {
	JobID   string
	Kind    IngestEventKind
	Title   string
	Message string

	// Err carries the underlying sentinel for callers that branch on
	// the failure class. Nil on success.
	Err error
}
