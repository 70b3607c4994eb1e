// Package annotate holds the shared segmentation primitives used by
// the morphological annotators: sentence splitting and tokenization
// with rune-accurate offsets.
package annotate

import "unicode"

// SentenceSpan is one sentence with its start position in the
// document, counted in runes.
type SentenceSpan struct {
	Text  string
	Start int
}

// TokenSpan is one token with rune offsets relative to the owning
// sentence, half-open [Start, End).
type TokenSpan struct {
	Text  string
	Start int
	End   int
}

// terminator reports whether r ends a sentence.
func terminator(r rune) bool {
	return r == '.' || r == '!' || r == '?' || r == '…'
}

// SplitSentences splits text into sentences at runs of terminal
// punctuation followed by whitespace or end of text. Line wraps inside
// a sentence are preserved; extracted PDF text keeps its layout
// without producing spurious boundaries.
func SplitSentences(text string) []SentenceSpan {
	runes := []rune(text)
	var sents []SentenceSpan
	start := -1

	flush := func(end int) {
		if start < 0 {
			return
		}
		// Trim trailing whitespace without losing the start offset.
		for end > start && unicode.IsSpace(runes[end-1]) {
			end--
		}
		if end > start {
			sents = append(sents, SentenceSpan{Text: string(runes[start:end]), Start: start})
		}
		start = -1
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if start < 0 {
			if !unicode.IsSpace(r) {
				start = i
			}
			continue
		}
		if !terminator(r) {
			continue
		}
		// Swallow the whole terminator run ("...", "?!").
		for i+1 < len(runes) && terminator(runes[i+1]) {
			i++
		}
		if i+1 == len(runes) || unicode.IsSpace(runes[i+1]) {
			flush(i + 1)
		}
	}
	flush(len(runes))

	return sents
}

// wordRune reports whether r belongs inside a word token.
func wordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Tokenize splits a sentence into word and punctuation tokens. Words
// are runs of letters and digits, with inner hyphens and apostrophes
// kept ("кто-то"); every other non-space rune becomes a single-rune
// punctuation token.
func Tokenize(sentence string) []TokenSpan {
	runes := []rune(sentence)
	var toks []TokenSpan

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case wordRune(r):
			j := i + 1
			for j < len(runes) {
				if wordRune(runes[j]) {
					j++
					continue
				}
				// Joiners stay inside the word when flanked by word
				// runes on both sides.
				if (runes[j] == '-' || runes[j] == '\'') && j+1 < len(runes) && wordRune(runes[j+1]) {
					j += 2
					continue
				}
				break
			}
			toks = append(toks, TokenSpan{Text: string(runes[i:j]), Start: i, End: j})
			i = j
		default:
			toks = append(toks, TokenSpan{Text: string(r), Start: i, End: i + 1})
			i++
		}
	}

	return toks
}

// IsPunct reports whether a token produced by Tokenize is punctuation.
func IsPunct(token string) bool {
	for _, r := range token {
		if wordRune(r) {
			return false
		}
	}
	return true
}
