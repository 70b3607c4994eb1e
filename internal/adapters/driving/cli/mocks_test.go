package cli

import (
	"context"
	"sync"

	"github.com/korpus-labs/korpus-cli/internal/core/domain"
	"github.com/korpus-labs/korpus-cli/internal/core/ports/driven"
	"github.com/korpus-labs/korpus-cli/internal/core/ports/driving"
)

// fakeIngestService accepts every job and immediately reports success
// on its event channel.
type fakeIngestService struct {
	mu     sync.Mutex
	events chan domain.IngestEvent
	added  []domain.IngestRequest
	addErr error
	fail   bool
}

func newFakeIngestService() *fakeIngestService {
	return &fakeIngestService{events: make(chan domain.IngestEvent, 16)}
}

func (f *fakeIngestService) AddDocument(_ context.Context, req domain.IngestRequest) (string, error) {
	if f.addErr != nil {
		return "", f.addErr
	}
	f.mu.Lock()
	f.added = append(f.added, req)
	f.mu.Unlock()
	ev := domain.IngestEvent{JobID: "job-1", Kind: domain.IngestSucceeded, Title: req.Title}
	if f.fail {
		ev.Kind = domain.IngestFailed
		ev.Message = "annotation failed"
	}
	f.events <- ev
	return ev.JobID, nil
}

func (f *fakeIngestService) Events() <-chan domain.IngestEvent { return f.events }
func (f *fakeIngestService) OnChange(func())                   {}
func (f *fakeIngestService) Wait()                             {}

type fakeSearchService struct {
	hits      []domain.SearchHit
	lines     []string
	lastQuery domain.SearchQuery
	lastLeft  int
	lastRight int
	err       error
}

func (f *fakeSearchService) Search(_ context.Context, q domain.SearchQuery) ([]domain.SearchHit, error) {
	f.lastQuery = q
	return f.hits, f.err
}

func (f *fakeSearchService) Concordance(_ context.Context, _ string, left, right int) ([]string, error) {
	f.lastLeft, f.lastRight = left, right
	return f.lines, f.err
}

type fakeCorpusService struct {
	docs      []domain.Document
	text      string
	stats     []domain.ProcessingStat
	deletedID int64
	err       error
}

func (f *fakeCorpusService) List(context.Context) ([]domain.Document, error) {
	return f.docs, f.err
}

func (f *fakeCorpusService) Get(_ context.Context, id int64) (*domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.docs {
		if f.docs[i].ID == id {
			return &f.docs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCorpusService) Text(context.Context, int64) (string, error) {
	return f.text, f.err
}

func (f *fakeCorpusService) Delete(_ context.Context, id int64) error {
	f.deletedID = id
	return f.err
}

func (f *fakeCorpusService) ProcessingStats(context.Context) ([]domain.ProcessingStat, error) {
	return f.stats, f.err
}

type fakeArchiveService struct {
	exportedID   int64
	exportedPath string
	summary      driving.ImportSummary
	err          error
}

func (f *fakeArchiveService) ExportDocument(_ context.Context, id int64, path string) error {
	f.exportedID, f.exportedPath = id, path
	return f.err
}

func (f *fakeArchiveService) ExportCorpus(_ context.Context, path string) error {
	f.exportedPath = path
	return f.err
}

func (f *fakeArchiveService) ImportCorpus(context.Context, string) (*driving.ImportSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &f.summary, nil
}

type fakeConfigStore struct {
	values map[string]any
}

func (f *fakeConfigStore) Get(key string) (any, bool) {
	v, ok := f.values[key]
	return v, ok
}

func (f *fakeConfigStore) GetString(key string) string {
	s, _ := f.values[key].(string)
	return s
}

func (f *fakeConfigStore) GetInt(key string) int {
	n, _ := f.values[key].(int)
	return n
}

func (f *fakeConfigStore) Set(key string, value any) error {
	if f.values == nil {
		f.values = make(map[string]any)
	}
	f.values[key] = value
	return nil
}

type fakeExtractor struct{}

func (fakeExtractor) SupportedExtensions() []string { return []string{".docx", ".pdf", ".txt"} }

func (fakeExtractor) Extract(context.Context, string) (*driven.Extraction, error) {
	return &driven.Extraction{Text: "текст"}, nil
}

// setupTestServices wires fakes into the package-level service vars and
// returns a cleanup that restores the previous wiring.
func setupTestServices() func() {
	oldIngest := ingestService
	oldSearch := searchService
	oldCorpus := corpusService
	oldArchive := archiveService
	oldConfig := configStore
	oldExtract := extractor

	ingestService = newFakeIngestService()
	searchService = &fakeSearchService{}
	corpusService = &fakeCorpusService{}
	archiveService = &fakeArchiveService{}
	configStore = &fakeConfigStore{}
	extractor = fakeExtractor{}

	return func() {
		ingestService = oldIngest
		searchService = oldSearch
		corpusService = oldCorpus
		archiveService = oldArchive
		configStore = oldConfig
		extractor = oldExtract
	}
}
