package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/korpus-labs/korpus-cli/internal/core/domain"
	"github.com/korpus-labs/korpus-cli/internal/core/ports/driven"
	"github.com/korpus-labs/korpus-cli/internal/core/ports/driving"
	"github.com/korpus-labs/korpus-cli/internal/logger"
	"github.com/korpus-labs/korpus-cli/internal/translate"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// noMatch is the sentinel a filter resolves to when its display value
// cannot be translated. It contains a NUL byte, which never appears in
// stored annotation values, so the filter matches nothing instead of
// being dropped.
const noMatch = "\x00unmatched"

// SearchService composes filtered token searches and reconstructs
// concordance windows from the stored token order.
type SearchService struct {
	store driven.CorpusStore
}

// NewSearchService creates a new search service.
func NewSearchService(store driven.CorpusStore) *SearchService {
	return &SearchService{store: store}
}

// Search runs a filtered corpus search. The empty query returns an
// empty result set; an unrecognized filter value resolves to a
// predicate that matches nothing (fail-closed).
func (s *SearchService) Search(ctx context.Context, q domain.SearchQuery) ([]domain.SearchHit, error) {
	if q.IsEmpty() {
		logger.Debug("empty search query, returning no results")
		return []domain.SearchHit{}, nil
	}

	tq := driven.TokenQuery{
		Kind:   q.Kind,
		Term:   strings.TrimSpace(q.Term),
		Prefix: q.Prefix,
		Limit:  domain.MaxSearchResults,
	}

	// A part-of-speech query may arrive as a display label.
	if q.Kind == domain.SearchPOS && tq.Term != "" {
		code, ok := translate.POSCode(tq.Term)
		if !ok {
			code = noMatch
		}
		tq.Term = code
	}

	for name, value := range q.Filters {
		if strings.TrimSpace(value) == "" {
			continue
		}
		if name == domain.FilterKeyPOS {
			code, ok := translate.POSCode(value)
			if !ok {
				logger.Debug("unrecognized pos filter %q, failing closed", value)
				code = noMatch
			}
			tq.POS = code
			continue
		}
		code, ok := translate.FeatureCode(name, value)
		if !ok {
			logger.Debug("unrecognized filter %s=%q, failing closed", name, value)
			code = noMatch
		}
		if tq.Features == nil {
			tq.Features = make(map[string]string)
		}
		tq.Features[name] = code
	}

	hits, err := s.store.SearchTokens(ctx, tq)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	logger.Debug("search %s %q: %d hits", q.Kind, q.Term, len(hits))
	return hits, nil
}

// Concordance returns one context string per occurrence of the surface
// form in the corpus, using the token-window strategy: up to left
// tokens before and right tokens after the match in stored token
// order, joined with single spaces.
func (s *SearchService) Concordance(ctx context.Context, surface string, left, right int) ([]string, error) {
	surface = strings.TrimSpace(surface)
	if surface == "" {
		return []string{}, nil
	}
	if left < 0 || right < 0 {
		return nil, fmt.Errorf("%w: negative context window", domain.ErrInvalidInput)
	}

	occurrences, err := s.store.FindOccurrences(ctx, surface)
	if err != nil {
		return nil, fmt.Errorf("concordance: %w", err)
	}

	lines := make([]string, 0, len(occurrences))
	// Sentences repeat when a form occurs several times in one
	// sentence; fetch each sentence's tokens once.
	tokensBySentence := make(map[int64][]domain.Token)

	for _, occ := range occurrences {
		tokens, ok := tokensBySentence[occ.SentenceID]
		if !ok {
			tokens, err = s.store.SentenceTokens(ctx, occ.SentenceID)
			if err != nil {
				return nil, fmt.Errorf("concordance: %w", err)
			}
			tokensBySentence[occ.SentenceID] = tokens
		}

		idx := -1
		for i, tok := range tokens {
			if tok.ID == occ.TokenID {
				idx = i
				break
			}
		}
		if idx < 0 {
			// The occurrence vanished between queries; skip rather
			// than fail the whole concordance.
			logger.Warn("token %d not found in sentence %d", occ.TokenID, occ.SentenceID)
			continue
		}

		lines = append(lines, window(tokens, idx, left, right))
	}

	return lines, nil
}

// window joins the surface forms of tokens[idx-left : idx+right+1],
// truncating gracefully at sentence boundaries.
func window(tokens []domain.Token, idx, left, right int) string {
	lo := idx - left
	if lo < 0 {
		lo = 0
	}
	hi := idx + right + 1
	if hi > len(tokens) {
		hi = len(tokens)
	}

	forms := make([]string, 0, hi-lo)
	for _, tok := range tokens[lo:hi] {
		forms = append(forms, tok.Text)
	}
	return strings.Join(forms, " ")
}
