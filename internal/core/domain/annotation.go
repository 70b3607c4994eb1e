package domain

import (
	"fmt"
	"unicode/utf8"
)

// Annotation is the in-memory sentence/token graph produced by an
// Annotator for one document, before persistence.
type Annotation struct {
	Sentences []AnnotatedSentence
}

// AnnotatedSentence is one segmentation unit in document order.
type AnnotatedSentence struct {
	// Text is the sentence text.
	Text string

	// Tokens are the sentence tokens ordered by Start ascending.
	Tokens []AnnotatedToken
}

// AnnotatedToken is a single token with its morphological analysis.
// Start and End are rune offsets into the owning sentence's Text,
// half-open [Start, End).
type AnnotatedToken struct {
	Text  string
	Lemma string
	POS   string

	// Feats holds morphological category/value pairs, e.g.
	// "Case" -> "Nom". May be empty.
	Feats map[string]string

	Start int
	End   int
}

// Validate checks the offset invariant of every token against its
// owning sentence: 0 <= Start < End <= len(sentence) in runes, and
// tokens ordered by Start ascending.
func (a *Annotation) Validate() error {
	for si, sent := range a.Sentences {
		length := utf8.RuneCountInString(sent.Text)
		prev := -1
		for ti, tok := range sent.Tokens {
			if tok.Start < 0 || tok.Start >= tok.End || tok.End > length {
				return fmt.Errorf("%w: sentence %d token %d: offsets [%d,%d) outside sentence of length %d",
					ErrInvalidInput, si, ti, tok.Start, tok.End, length)
			}
			if tok.Start < prev {
				return fmt.Errorf("%w: sentence %d token %d: tokens not ordered by start offset",
					ErrInvalidInput, si, ti)
			}
			prev = tok.Start
		}
	}
	return nil
}

// TokenCount returns the total number of tokens across all sentences.
func (a *Annotation) TokenCount() int {
	n := 0
	for _, sent := range a.Sentences {
		n += len(sent.Tokens)
	}
	return n
}

// Sentence is a persisted sentence row.
type Sentence struct {
	ID         int64
	DocumentID int64
	Text       string
}

// Token is a persisted token row. Start and End are rune offsets into
// the owning sentence's text, half-open [Start, End).
type Token struct {
	ID         int64
	SentenceID int64
	Text       string
	Lemma      string
	POS        string
	Start      int
	End        int
}

// Feature is a persisted morphological category/value pair for a token.
type Feature struct {
	TokenID int64
	Name    string
	Value   string
}

// Occurrence locates one match of a surface form in the corpus.
type Occurrence struct {
	TokenID    int64
	SentenceID int64
	Start      int
}
