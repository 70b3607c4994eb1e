// Package mystem annotates text with Yandex mystem, an external
// morphological analyzer for Russian. The binary is invoked once per
// document; its analyses are aligned against the shared tokenizer so
// offsets stay rune-accurate relative to each sentence.
package mystem

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/korpus-labs/korpus-cli/internal/adapters/driven/annotate"
	"github.com/korpus-labs/korpus-cli/internal/core/domain"
	"github.com/korpus-labs/korpus-cli/internal/core/ports/driven"
	"github.com/korpus-labs/korpus-cli/internal/logger"
)

// Ensure Annotator implements the port.
var _ driven.Annotator = (*Annotator)(nil)

// DefaultBinary is the mystem executable name resolved via PATH.
const DefaultBinary = "mystem"

// Annotator shells out to mystem for lemmas, part-of-speech tags and
// grammar features.
type Annotator struct {
	runner driven.CommandRunner
	binary string
}

// New creates a mystem annotator. An empty binary means DefaultBinary.
func New(runner driven.CommandRunner, binary string) *Annotator {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Annotator{runner: runner, binary: binary}
}

// entry is one analyzed token in mystem's JSON output.
type entry struct {
	Text     string `json:"text"`
	Analysis []struct {
		Lex string `json:"lex"`
		Gr  string `json:"gr"`
	} `json:"analysis"`
}

// Annotate runs mystem over the whole text and rebuilds the sentence
// and token graph with sentence-relative rune offsets.
func (a *Annotator) Annotate(ctx context.Context, text string) (*domain.Annotation, error) {
	entries, err := a.analyze(ctx, text)
	if err != nil {
		return nil, err
	}

	// Word entries arrive in document order; align them with the
	// shared tokenizer's word tokens.
	words := make([]entry, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.Text) != "" && len(e.Analysis) > 0 {
			words = append(words, e)
		}
	}

	var annotation domain.Annotation
	next := 0
	for _, sent := range annotate.SplitSentences(text) {
		annotated := domain.AnnotatedSentence{Text: sent.Text}
		for _, tok := range annotate.Tokenize(sent.Text) {
			annotated.Tokens = append(annotated.Tokens, a.tagToken(tok, words, &next))
		}
		annotation.Sentences = append(annotation.Sentences, annotated)
	}
	return &annotation, nil
}

// analyze invokes the binary over a temp file and decodes its output:
// one JSON array of token entries per input line.
func (a *Annotator) analyze(ctx context.Context, text string) ([]entry, error) {
	tmp, err := os.CreateTemp("", "korpus-mystem-*.txt")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("writing temp file: %w", err)
	}

	// -i grammar info, -d disambiguation, -g group lemmas.
	out, err := a.runner.Run(ctx, a.binary, "--format", "json", "-i", "-d", tmp.Name())
	if err != nil {
		return nil, fmt.Errorf("running %s: %w\n\n%s", a.binary, err, InstallInstructions())
	}

	var entries []entry
	dec := json.NewDecoder(strings.NewReader(string(out)))
	for dec.More() {
		var line []entry
		if err := dec.Decode(&line); err != nil {
			return nil, fmt.Errorf("decoding %s output: %w", a.binary, err)
		}
		entries = append(entries, line...)
	}
	if len(entries) == 0 && strings.TrimSpace(string(out)) != "" {
		return nil, fmt.Errorf("unrecognized %s output: %q", a.binary, firstLine(string(out)))
	}
	return entries, nil
}

// tagToken pairs one tokenizer token with the next matching mystem
// word entry. Punctuation and unmatched words fall back to identity
// lemmas so a tokenizer/analyzer disagreement never loses a token.
func (a *Annotator) tagToken(tok annotate.TokenSpan, words []entry, next *int) domain.AnnotatedToken {
	token := domain.AnnotatedToken{
		Text:  tok.Text,
		Lemma: strings.ToLower(tok.Text),
		Start: tok.Start,
		End:   tok.End,
	}
	if annotate.IsPunct(tok.Text) {
		token.POS = "PUNCT"
		return token
	}

	// Scan a short lookahead window in case mystem split differently.
	for i := *next; i < len(words) && i < *next+3; i++ {
		if !strings.EqualFold(words[i].Text, tok.Text) {
			continue
		}
		analysis := words[i].Analysis[0]
		*next = i + 1

		if analysis.Lex != "" {
			token.Lemma = analysis.Lex
		}
		token.POS, token.Feats = parseGr(analysis.Gr)
		return token
	}

	logger.Debug("mystem produced no analysis for %q", tok.Text)
	token.POS = "NOUN"
	return token
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// InstallInstructions returns help text for installing mystem.
func InstallInstructions() string {
	return `Morphological annotation requires the mystem analyzer.

Download it from https://yandex.ru/dev/mystem/ and place the binary on
your PATH, or point the "mystem_path" config key at it. Alternatively
set "annotator" to "basic" to use the built-in tagger.`
}
