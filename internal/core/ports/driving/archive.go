package driving

import "context"

// ImportSummary reports the outcome of a corpus import.
type ImportSummary struct {
	// Imported is the number of documents added.
	Imported int

	// Skipped is the number of documents whose title already existed.
	Skipped int
}

// ArchiveService serializes the annotation graph to and from the XML
// interchange format.
//
// The format carries metadata, sentences and tokens. Grammar features
// and raw text stay local; imported documents carry empty text and no
// processing record.
type ArchiveService interface {
	// ExportDocument writes one document with its annotation to path.
	ExportDocument(ctx context.Context, documentID int64, path string) error

	// ExportCorpus writes every document into one aggregate file.
	ExportCorpus(ctx context.Context, path string) error

	// ImportCorpus reads an exported corpus file. Documents whose
	// title already exists are skipped; the rest are inserted with
	// sentences and tokens in source order, offsets taken verbatim.
	ImportCorpus(ctx context.Context, path string) (*ImportSummary, error)
}
