// Package basic is a dependency-free annotator: deterministic
// segmentation, lowercase lemmas and a suffix-based part-of-speech
// guess. It produces no grammar features and serves as the fallback
// when no external morphological analyzer is configured.
package basic

import (
	"context"
	"strings"
	"unicode"

	"github.com/korpus-labs/korpus-cli/internal/adapters/driven/annotate"
	"github.com/korpus-labs/korpus-cli/internal/core/domain"
	"github.com/korpus-labs/korpus-cli/internal/core/ports/driven"
)

// Ensure Annotator implements the port.
var _ driven.Annotator = (*Annotator)(nil)

// Annotator tags tokens without any external analyzer.
type Annotator struct{}

// New creates a basic annotator.
func New() *Annotator {
	return &Annotator{}
}

// verbSuffixes are common Russian verb endings checked longest-first.
var verbSuffixes = []string{
	"ться", "тся", "ешь", "ете", "ишь", "ите",
	"ать", "ять", "еть", "ить", "уть", "ыть", "ти",
	"ет", "ит", "ют", "ут", "ят", "ат", "ла", "ли", "ло",
}

// adjSuffixes are common Russian adjective endings.
var adjSuffixes = []string{
	"ый", "ий", "ой", "ая", "яя", "ое", "ее", "ые", "ие",
	"ого", "его", "ому", "ему", "ыми", "ими",
}

// Annotate segments the text and tags every token.
func (a *Annotator) Annotate(_ context.Context, text string) (*domain.Annotation, error) {
	var annotation domain.Annotation

	for _, sent := range annotate.SplitSentences(text) {
		annotated := domain.AnnotatedSentence{Text: sent.Text}
		for _, tok := range annotate.Tokenize(sent.Text) {
			lemma := strings.ToLower(tok.Text)
			annotated.Tokens = append(annotated.Tokens, domain.AnnotatedToken{
				Text:  tok.Text,
				Lemma: lemma,
				POS:   guessPOS(tok.Text, lemma),
				Start: tok.Start,
				End:   tok.End,
			})
		}
		annotation.Sentences = append(annotation.Sentences, annotated)
	}

	return &annotation, nil
}

// guessPOS assigns a coarse part-of-speech tag from the token shape.
func guessPOS(token, lemma string) string {
	if annotate.IsPunct(token) {
		return "PUNCT"
	}
	if isNumeric(token) {
		return "NUM"
	}
	for _, suf := range verbSuffixes {
		if len(lemma) > len(suf)+1 && strings.HasSuffix(lemma, suf) {
			return "VERB"
		}
	}
	for _, suf := range adjSuffixes {
		if len(lemma) > len(suf)+1 && strings.HasSuffix(lemma, suf) {
			return "ADJ"
		}
	}
	if strings.HasSuffix(lemma, "о") && len([]rune(lemma)) > 3 {
		return "ADV"
	}
	return "NOUN"
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
