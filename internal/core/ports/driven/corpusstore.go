package driven

import (
	"context"

	"github.com/korpus-labs/korpus-cli/internal/core/domain"
)

// TokenQuery is the typed predicate list a token search compiles to.
// The store composes it into one parameterized conjunctive query;
// values are never interpolated into SQL text.
type TokenQuery struct {
	// Kind and Term form the primary clause. Term matching is
	// case-insensitive; Prefix switches exact match to prefix match.
	Kind   domain.SearchKind
	Term   string
	Prefix bool

	// POS, when non-empty, constrains the token's part-of-speech
	// column directly.
	POS string

	// Features requires, per entry, a grammar feature row with that
	// exact name and value on the matched token (EXISTS semantics).
	Features map[string]string

	// Limit bounds the result set. Zero means domain.MaxSearchResults.
	Limit int
}

// CorpusTx is the write surface available inside a store transaction.
// Insert methods return generated ids at insert time, so callers never
// re-read and positionally re-align rows.
type CorpusTx interface {
	// DocumentExists reports whether a document with the title exists.
	// Used to re-check duplicates atomically inside the transaction.
	DocumentExists(title string) (bool, error)

	// InsertDocument inserts the document row and returns its id.
	InsertDocument(doc *domain.Document) (int64, error)

	// InsertSentence inserts one sentence row and returns its id.
	InsertSentence(documentID int64, text string) (int64, error)

	// InsertToken inserts one token row and returns its id.
	InsertToken(sentenceID int64, tok domain.AnnotatedToken) (int64, error)

	// InsertFeature inserts one grammar feature row.
	InsertFeature(tokenID int64, name, value string) error
}

// CorpusStore is the persistent annotation store. Implementations
// guarantee mutual exclusion per unit of work: a coarse process-wide
// lock around each method and around the whole of RunInTransaction.
type CorpusStore interface {
	// RunInTransaction executes fn under exclusive access; all writes
	// inside fn commit atomically or none do.
	RunInTransaction(ctx context.Context, fn func(tx CorpusTx) error) error

	// DocumentExists reports whether a document with the title exists.
	DocumentExists(ctx context.Context, title string) (bool, error)

	// GetDocument retrieves document metadata (without raw text).
	GetDocument(ctx context.Context, id int64) (*domain.Document, error)

	// DocumentText retrieves the full raw text of a document.
	DocumentText(ctx context.Context, id int64) (string, error)

	// ListDocuments returns metadata for all documents ordered by id.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// DeleteDocument removes a document and cascades to its sentences,
	// tokens and grammar features.
	DeleteDocument(ctx context.Context, id int64) error

	// SearchTokens runs a composed token query. Results are ordered by
	// document title, sentence id, token start offset.
	SearchTokens(ctx context.Context, q TokenQuery) ([]domain.SearchHit, error)

	// FindOccurrences locates every token whose surface form equals
	// the given form (case-insensitive), in search result order.
	FindOccurrences(ctx context.Context, surface string) ([]domain.Occurrence, error)

	// SentenceTokens returns all tokens of a sentence ordered by
	// start offset ascending.
	SentenceTokens(ctx context.Context, sentenceID int64) ([]domain.Token, error)

	// DocumentSentences returns all sentences of a document in
	// insertion (document) order.
	DocumentSentences(ctx context.Context, documentID int64) ([]domain.Sentence, error)

	// ProcessingStats returns the processing-time report rows for
	// documents where both duration and page count were recorded.
	ProcessingStats(ctx context.Context) ([]domain.ProcessingStat, error)
}
