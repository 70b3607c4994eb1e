package services

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"

	"github.com/korpus-labs/korpus-cli/internal/core/domain"
	"github.com/korpus-labs/korpus-cli/internal/core/ports/driven"
	"github.com/korpus-labs/korpus-cli/internal/core/ports/driving"
	"github.com/korpus-labs/korpus-cli/internal/logger"
)

// Ensure ArchiveService implements the interface.
var _ driving.ArchiveService = (*ArchiveService)(nil)

// ArchiveService writes and reads the XML interchange format. A corpus
// file holds one <corpus> root with a <document> element per document;
// a single-document export uses the <document> element as root.
type ArchiveService struct {
	store driven.CorpusStore
}

// NewArchiveService creates a new archive service.
func NewArchiveService(store driven.CorpusStore) *ArchiveService {
	return &ArchiveService{store: store}
}

// xmlToken mirrors one annotated token. Offsets are rune offsets into
// the owning sentence text.
type xmlToken struct {
	ID    int64  `xml:"id,attr"`
	Text  string `xml:"text"`
	Lemma string `xml:"lemma"`
	POS   string `xml:"pos"`
	Start int    `xml:"start"`
	End   int    `xml:"end"`
}

type xmlSentence struct {
	ID     int64      `xml:"id,attr"`
	Text   string     `xml:"text"`
	Tokens []xmlToken `xml:"token"`
}

type xmlDocument struct {
	XMLName   xml.Name      `xml:"document"`
	ID        int64         `xml:"id,attr"`
	Title     string        `xml:"title"`
	Author    string        `xml:"author"`
	Date      string        `xml:"date"`
	Genre     string        `xml:"genre"`
	Sentences []xmlSentence `xml:"annotations>sentence"`
}

type xmlCorpus struct {
	XMLName   xml.Name      `xml:"corpus"`
	Documents []xmlDocument `xml:"document"`
}

// ExportDocument writes one document with its annotation to path.
func (s *ArchiveService) ExportDocument(ctx context.Context, documentID int64, path string) error {
	doc, err := s.buildDocument(ctx, documentID)
	if err != nil {
		return err
	}
	if err := writeXML(path, doc); err != nil {
		return err
	}
	logger.Info("exported document %d to %s", documentID, path)
	return nil
}

// ExportCorpus writes every document into one aggregate file.
func (s *ArchiveService) ExportCorpus(ctx context.Context, path string) error {
	docs, err := s.store.ListDocuments(ctx)
	if err != nil {
		return fmt.Errorf("export corpus: %w", err)
	}

	corpus := xmlCorpus{Documents: make([]xmlDocument, 0, len(docs))}
	for _, doc := range docs {
		elem, err := s.buildDocument(ctx, doc.ID)
		if err != nil {
			return err
		}
		corpus.Documents = append(corpus.Documents, *elem)
	}

	if err := writeXML(path, corpus); err != nil {
		return err
	}
	logger.Info("exported %d documents to %s", len(corpus.Documents), path)
	return nil
}

// ImportCorpus reads an exported file and adds its documents without
// touching existing ones. Documents whose title already exists are
// skipped; each imported document commits in its own transaction.
func (s *ArchiveService) ImportCorpus(ctx context.Context, path string) (*driving.ImportSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading archive: %w", err)
	}

	docs, err := parseArchive(data)
	if err != nil {
		return nil, err
	}

	summary := &driving.ImportSummary{}
	for _, doc := range docs {
		if doc.Title == "" {
			return nil, fmt.Errorf("%w: document without title in archive", domain.ErrInvalidInput)
		}
		imported, err := s.importDocument(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("importing %q: %w", doc.Title, err)
		}
		if imported {
			summary.Imported++
		} else {
			summary.Skipped++
			logger.Debug("skipping existing document %q", doc.Title)
		}
	}

	logger.Info("import complete: %d added, %d skipped", summary.Imported, summary.Skipped)
	return summary, nil
}

// parseArchive accepts both a <corpus> aggregate and a single
// <document> export.
func parseArchive(data []byte) ([]xmlDocument, error) {
	var corpus xmlCorpus
	if err := xml.Unmarshal(data, &corpus); err == nil {
		return corpus.Documents, nil
	}

	var doc xmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: not a corpus archive: %v", domain.ErrInvalidInput, err)
	}
	return []xmlDocument{doc}, nil
}

// importDocument inserts one archived document atomically. Returns
// false without error when the title already exists.
func (s *ArchiveService) importDocument(ctx context.Context, doc xmlDocument) (bool, error) {
	imported := false
	err := s.store.RunInTransaction(ctx, func(tx driven.CorpusTx) error {
		exists, err := tx.DocumentExists(doc.Title)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}

		// Imported documents carry no raw text and no processing
		// record; only the annotation travels.
		docID, err := tx.InsertDocument(&domain.Document{
			Title:  doc.Title,
			Author: doc.Author,
			Date:   doc.Date,
			Genre:  doc.Genre,
		})
		if err != nil {
			return err
		}

		for _, sent := range doc.Sentences {
			sentID, err := tx.InsertSentence(docID, sent.Text)
			if err != nil {
				return err
			}
			for _, tok := range sent.Tokens {
				_, err := tx.InsertToken(sentID, domain.AnnotatedToken{
					Text:  tok.Text,
					Lemma: tok.Lemma,
					POS:   tok.POS,
					Start: tok.Start,
					End:   tok.End,
				})
				if err != nil {
					return err
				}
			}
		}

		imported = true
		return nil
	})
	return imported, err
}

// buildDocument assembles the XML element for one stored document.
func (s *ArchiveService) buildDocument(ctx context.Context, documentID int64) (*xmlDocument, error) {
	doc, err := s.store.GetDocument(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("export document %d: %w", documentID, err)
	}

	sents, err := s.store.DocumentSentences(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("export document %d: %w", documentID, err)
	}

	elem := &xmlDocument{
		ID:        doc.ID,
		Title:     doc.Title,
		Author:    doc.Author,
		Date:      doc.Date,
		Genre:     doc.Genre,
		Sentences: make([]xmlSentence, 0, len(sents)),
	}

	for _, sent := range sents {
		tokens, err := s.store.SentenceTokens(ctx, sent.ID)
		if err != nil {
			return nil, fmt.Errorf("export document %d: %w", documentID, err)
		}

		sentElem := xmlSentence{
			ID:     sent.ID,
			Text:   sent.Text,
			Tokens: make([]xmlToken, 0, len(tokens)),
		}
		for _, tok := range tokens {
			sentElem.Tokens = append(sentElem.Tokens, xmlToken{
				ID:    tok.ID,
				Text:  tok.Text,
				Lemma: tok.Lemma,
				POS:   tok.POS,
				Start: tok.Start,
				End:   tok.End,
			})
		}
		elem.Sentences = append(elem.Sentences, sentElem)
	}

	return elem, nil
}

func writeXML(path string, v any) error {
	data, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding archive: %w", err)
	}
	out := append([]byte(xml.Header), data...)
	out = append(out, '\n')
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing archive: %w", err)
	}
	return nil
}
