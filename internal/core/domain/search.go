package domain

import "strings"

// MaxSearchResults bounds every search to protect interactive latency.
const MaxSearchResults = 500

// FilterKeyPOS is the reserved filter key that applies to the token's
// part-of-speech column directly instead of the feature table.
const FilterKeyPOS = "pos"

// SearchKind selects the primary search predicate.
type SearchKind string

const (
	SearchLemma    SearchKind = "lemma"
	SearchWordForm SearchKind = "wordform"
	SearchPOS      SearchKind = "pos"
)

// ParseSearchKind maps a user-supplied kind string to a SearchKind.
func ParseSearchKind(s string) (SearchKind, error) {
	switch SearchKind(strings.ToLower(strings.TrimSpace(s))) {
	case SearchLemma:
		return SearchLemma, nil
	case SearchWordForm:
		return SearchWordForm, nil
	case SearchPOS:
		return SearchPOS, nil
	}
	return "", ErrInvalidInput
}

// SearchQuery describes one corpus search.
type SearchQuery struct {
	// Kind selects which token field the Term matches.
	Kind SearchKind

	// Term is the query string. Matching is case-insensitive.
	Term string

	// Filters maps a grammar feature name (or FilterKeyPOS) to the
	// required value. Values may be internal codes or localized
	// display labels; display labels are translated before querying.
	Filters map[string]string

	// Prefix requests prefix matching for the Term instead of exact.
	Prefix bool
}

// IsEmpty reports whether the query has neither a term nor filters.
// Empty queries return no results rather than the whole corpus.
func (q SearchQuery) IsEmpty() bool {
	return strings.TrimSpace(q.Term) == "" && len(q.Filters) == 0
}

// SearchHit is one row of a search result.
type SearchHit struct {
	Token         string
	Lemma         string
	POS           string
	SentenceText  string
	DocumentTitle string
}
