package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateTitle indicates a document with the same title
	// already exists in the corpus.
	ErrDuplicateTitle = errors.New("document with this title already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidation indicates a rejected user request, e.g. a missing
	// required field. No store mutation was attempted.
	ErrValidation = errors.New("validation failed")

	// ErrExtraction indicates the extractor produced no text for a file.
	ErrExtraction = errors.New("text extraction failed")

	// ErrAnnotation indicates the external annotator failed.
	ErrAnnotation = errors.New("annotation failed")

	// ErrPersistence indicates a transaction failure; the whole
	// transaction was rolled back, no partial rows remain.
	ErrPersistence = errors.New("persistence failed")
)
