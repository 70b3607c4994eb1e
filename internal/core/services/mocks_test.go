package services

import (
	"context"
	"sync"

	"github.com/korpus-labs/korpus-cli/internal/core/domain"
	"github.com/korpus-labs/korpus-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// fakeStore implements driven.CorpusStore in memory with transaction
// staging: writes inside RunInTransaction only become visible when the
// callback returns nil.
type fakeStore struct {
	mu sync.Mutex

	titles       map[string]struct{}
	docs         []domain.Document
	texts        map[int64]string
	docSentences map[int64][]domain.Sentence
	sentTokens   map[int64][]domain.Token
	features     []domain.Feature

	occurrences []domain.Occurrence
	hits        []domain.SearchHit
	lastQuery   driven.TokenQuery
	searchCalls int

	existsErr      error
	searchErr      error
	insertTokenErr error
	txErr          error

	nextDoc, nextSent, nextTok int64
}

var _ driven.CorpusStore = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		titles:       make(map[string]struct{}),
		texts:        make(map[int64]string),
		docSentences: make(map[int64][]domain.Sentence),
		sentTokens:   make(map[int64][]domain.Token),
	}
}

// fakeTx stages writes for one transaction.
type fakeTx struct {
	s        *fakeStore
	docs     []domain.Document
	texts    map[int64]string
	sents    map[int64][]domain.Sentence
	tokens   map[int64][]domain.Token
	features []domain.Feature
}

var _ driven.CorpusTx = (*fakeTx)(nil)

func (s *fakeStore) RunInTransaction(_ context.Context, fn func(tx driven.CorpusTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.txErr != nil {
		return s.txErr
	}
	tx := &fakeTx{
		s:      s,
		texts:  make(map[int64]string),
		sents:  make(map[int64][]domain.Sentence),
		tokens: make(map[int64][]domain.Token),
	}
	if err := fn(tx); err != nil {
		return err
	}
	tx.apply()
	return nil
}

func (t *fakeTx) apply() {
	s := t.s
	for _, doc := range t.docs {
		s.titles[doc.Title] = struct{}{}
		s.docs = append(s.docs, doc)
		s.texts[doc.ID] = t.texts[doc.ID]
		s.docSentences[doc.ID] = append(s.docSentences[doc.ID], t.sents[doc.ID]...)
	}
	for sentID, toks := range t.tokens {
		s.sentTokens[sentID] = append(s.sentTokens[sentID], toks...)
	}
	s.features = append(s.features, t.features...)
}

func (t *fakeTx) DocumentExists(title string) (bool, error) {
	if t.s.existsErr != nil {
		return false, t.s.existsErr
	}
	if _, ok := t.s.titles[title]; ok {
		return true, nil
	}
	for _, doc := range t.docs {
		if doc.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func (t *fakeTx) InsertDocument(doc *domain.Document) (int64, error) {
	t.s.nextDoc++
	d := *doc
	d.ID = t.s.nextDoc
	t.docs = append(t.docs, d)
	t.texts[d.ID] = doc.Text
	return d.ID, nil
}

func (t *fakeTx) InsertSentence(documentID int64, text string) (int64, error) {
	t.s.nextSent++
	t.sents[documentID] = append(t.sents[documentID], domain.Sentence{
		ID:         t.s.nextSent,
		DocumentID: documentID,
		Text:       text,
	})
	return t.s.nextSent, nil
}

func (t *fakeTx) InsertToken(sentenceID int64, tok domain.AnnotatedToken) (int64, error) {
	if t.s.insertTokenErr != nil {
		return 0, t.s.insertTokenErr
	}
	t.s.nextTok++
	t.tokens[sentenceID] = append(t.tokens[sentenceID], domain.Token{
		ID:         t.s.nextTok,
		SentenceID: sentenceID,
		Text:       tok.Text,
		Lemma:      tok.Lemma,
		POS:        tok.POS,
		Start:      tok.Start,
		End:        tok.End,
	})
	return t.s.nextTok, nil
}

func (t *fakeTx) InsertFeature(tokenID int64, name, value string) error {
	t.features = append(t.features, domain.Feature{TokenID: tokenID, Name: name, Value: value})
	return nil
}

func (s *fakeStore) DocumentExists(_ context.Context, title string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.existsErr != nil {
		return false, s.existsErr
	}
	_, ok := s.titles[title]
	return ok, nil
}

func (s *fakeStore) GetDocument(_ context.Context, id int64) (*domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range s.docs {
		if doc.ID == id {
			d := doc
			d.Text = ""
			return &d, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *fakeStore) DocumentText(_ context.Context, id int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.texts[id]
	if !ok {
		return "", domain.ErrNotFound
	}
	return text, nil
}

func (s *fakeStore) ListDocuments(_ context.Context) ([]domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs := make([]domain.Document, len(s.docs))
	copy(docs, s.docs)
	return docs, nil
}

func (s *fakeStore) DeleteDocument(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, doc := range s.docs {
		if doc.ID == id {
			delete(s.titles, doc.Title)
			delete(s.texts, id)
			s.docs = append(s.docs[:i], s.docs[i+1:]...)
			for _, sent := range s.docSentences[id] {
				delete(s.sentTokens, sent.ID)
			}
			delete(s.docSentences, id)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *fakeStore) SearchTokens(_ context.Context, q driven.TokenQuery) ([]domain.SearchHit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchCalls++
	s.lastQuery = q
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return s.hits, nil
}

func (s *fakeStore) FindOccurrences(_ context.Context, _ string) ([]domain.Occurrence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.occurrences, nil
}

func (s *fakeStore) SentenceTokens(_ context.Context, sentenceID int64) ([]domain.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sentTokens[sentenceID], nil
}

func (s *fakeStore) DocumentSentences(_ context.Context, documentID int64) ([]domain.Sentence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docSentences[documentID], nil
}

func (s *fakeStore) ProcessingStats(_ context.Context) ([]domain.ProcessingStat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var stats []domain.ProcessingStat
	for _, doc := range s.docs {
		if doc.ProcessingSeconds != nil && doc.PageCount != nil {
			stats = append(stats, domain.ProcessingStat{
				DocumentID:        doc.ID,
				Title:             doc.Title,
				ProcessingSeconds: *doc.ProcessingSeconds,
				PageCount:         *doc.PageCount,
			})
		}
	}
	return stats, nil
}

// tokenCount reports how many committed tokens the store holds.
func (s *fakeStore) tokenCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, toks := range s.sentTokens {
		n += len(toks)
	}
	return n
}

// mockExtractor implements driven.TextExtractor for testing.
type mockExtractor struct {
	text       string
	pages      int
	extractErr error
}

func (m *mockExtractor) SupportedExtensions() []string {
	return []string{".txt"}
}

func (m *mockExtractor) Extract(_ context.Context, _ string) (*driven.Extraction, error) {
	if m.extractErr != nil {
		return nil, m.extractErr
	}
	return &driven.Extraction{Text: m.text, PageCount: m.pages}, nil
}

// mockAnnotator implements driven.Annotator for testing. When gate is
// non-nil, Annotate blocks until the gate closes, letting tests hold a
// job in flight.
type mockAnnotator struct {
	annotation *domain.Annotation
	annotErr   error
	gate       chan struct{}
}

func (m *mockAnnotator) Annotate(_ context.Context, _ string) (*domain.Annotation, error) {
	if m.gate != nil {
		<-m.gate
	}
	if m.annotErr != nil {
		return nil, m.annotErr
	}
	return m.annotation, nil
}
