package driving

import (
	"context"

	"github.com/korpus-labs/korpus-cli/internal/core/domain"
)

// SearchService composes filtered corpus searches and reconstructs
// concordance context windows.
type SearchService interface {
	// Search runs a filtered search. Empty queries and malformed
	// filter combinations return an empty result set, never the whole
	// corpus.
	Search(ctx context.Context, q domain.SearchQuery) ([]domain.SearchHit, error)

	// Concordance returns one context string per occurrence of the
	// surface form anywhere in the corpus: up to left tokens before
	// and right tokens after the match, joined with single spaces.
	Concordance(ctx context.Context, surface string, left, right int) ([]string, error)
}
