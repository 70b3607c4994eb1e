package sqlite

import (
	"sort"
	"strings"

	"github.com/korpus-labs/korpus-cli/internal/core/domain"
	"github.com/korpus-labs/korpus-cli/internal/core/ports/driven"
)

// searchBase is the join every token search is built on.
const searchBase = `
	SELECT t.token, t.lemma, t.pos, s.sentence_text, d.title
	FROM tokens t
	JOIN sentences s ON t.sentence_id = s.id
	JOIN documents d ON s.doc_id = d.id`

// searchOrder keeps result order deterministic: document title, then
// sentence, then token position within the sentence.
const searchOrder = "ORDER BY d.title, s.id, t.start_offset"

// predicate is one typed clause of a conjunctive token query.
type predicate struct {
	expr string
	args []any
}

// queryBuilder accumulates predicates and emits a parameterized query.
// Values travel exclusively through args; nothing user-supplied is
// ever interpolated into the SQL text.
type queryBuilder struct {
	predicates []predicate
}

func (b *queryBuilder) where(expr string, args ...any) {
	b.predicates = append(b.predicates, predicate{expr: expr, args: args})
}

// build assembles the final statement. A builder with no predicates
// matches nothing: the caller decides what an unconstrained search
// means, never the store.
func (b *queryBuilder) build(base, order string, limit int) (string, []any) {
	var sb strings.Builder
	sb.WriteString(base)

	var args []any
	if len(b.predicates) == 0 {
		sb.WriteString("\n\tWHERE 0")
	} else {
		sb.WriteString("\n\tWHERE ")
		for i, p := range b.predicates {
			if i > 0 {
				sb.WriteString(" AND ")
			}
			sb.WriteString(p.expr)
			args = append(args, p.args...)
		}
	}

	sb.WriteString("\n\t")
	sb.WriteString(order)
	sb.WriteString("\n\tLIMIT ?")
	args = append(args, limit)

	return sb.String(), args
}

// buildTokenQuery compiles a TokenQuery into SQL plus arguments.
func buildTokenQuery(q driven.TokenQuery) (string, []any) {
	b := &queryBuilder{}

	term := strings.ToLower(strings.TrimSpace(q.Term))
	if term != "" {
		column := ""
		switch q.Kind {
		case domain.SearchLemma:
			column = "t.lemma_lower"
		case domain.SearchWordForm:
			column = "t.token_lower"
		case domain.SearchPOS:
			// POS codes are stored uppercase and matched exactly;
			// prefix matching makes no sense for a closed tag set.
			b.where("t.pos = ?", strings.ToUpper(term))
		}
		if column != "" {
			if q.Prefix {
				b.where(column+" LIKE ? ESCAPE '\\'", escapeLike(term)+"%")
			} else {
				b.where(column+" = ?", term)
			}
		}
	}

	if q.POS != "" {
		b.where("t.pos = ?", q.POS)
	}

	// Deterministic clause order for stable statements.
	names := make([]string, 0, len(q.Features))
	for name := range q.Features {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.where(`EXISTS (
			SELECT 1 FROM grammar_features gf
			WHERE gf.token_id = t.id AND gf.feature = ? AND gf.value = ?)`,
			name, q.Features[name])
	}

	limit := q.Limit
	if limit <= 0 || limit > domain.MaxSearchResults {
		limit = domain.MaxSearchResults
	}

	return b.build(searchBase, searchOrder, limit)
}

// escapeLike escapes LIKE wildcards in a literal term so user input
// can never widen a prefix match.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
