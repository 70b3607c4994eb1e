package domain

// Document is a corpus document with its metadata and the full raw
// text the annotation was produced from.
type Document struct {
	// ID is the store-generated identifier.
	ID int64

	// Title uniquely identifies the document within the corpus.
	Title string

	// Author is the document author, free-form.
	Author string

	// Date is the publication date, free-form (kept as entered).
	Date string

	// Genre is the genre label, free-form.
	Genre string

	// Text is the full extracted raw text.
	Text string

	// ProcessingSeconds is the wall-clock ingestion duration.
	// Nil for documents that entered the corpus via import.
	ProcessingSeconds *float64

	// PageCount is the page count reported by the extractor.
	// Nil when the source format has no page notion.
	PageCount *int
}

// ProcessingStat is one row of the processing-time report.
type ProcessingStat struct {
	DocumentID        int64
	Title             string
	ProcessingSeconds float64
	PageCount         int
}
