package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/korpus-labs/korpus-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/korpus-labs/korpus-cli/internal/core/domain"
	"github.com/korpus-labs/korpus-cli/internal/core/ports/driven"
)

// Ensure Store implements the port.
var _ driven.CorpusStore = (*Store)(nil)

// Store is the SQLite-backed annotation store. It owns the single
// shared connection and the process-wide lock; every unit of work
// (a read or a whole transaction) runs under the lock, giving the
// coarse single-writer discipline the ingest pipeline relies on.
type Store struct {
	mu   sync.Mutex
	db   *sql.DB
	path string
}

// NewStore creates a SQLite store at the specified data directory.
// The schema is created on first open. If dataDir is empty, defaults
// to ~/.korpus/data/corpus.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".korpus", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "corpus.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{db: db, path: dbPath}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Transactions ====================

// corpusTx implements driven.CorpusTx over one *sql.Tx.
type corpusTx struct {
	tx *sql.Tx
}

var _ driven.CorpusTx = (*corpusTx)(nil)

// RunInTransaction executes fn under the store lock, committing all
// writes atomically or rolling back on error.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx driven.CorpusTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %w", domain.ErrPersistence, err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := fn(&corpusTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing transaction: %w", domain.ErrPersistence, err)
	}
	return nil
}

// DocumentExists reports whether a document with the title exists.
func (t *corpusTx) DocumentExists(title string) (bool, error) {
	var count int
	err := t.tx.QueryRow(
		"SELECT COUNT(*) FROM documents WHERE title = ?", title).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking title: %w", err)
	}
	return count > 0, nil
}

// InsertDocument inserts the document row and returns its generated id.
func (t *corpusTx) InsertDocument(doc *domain.Document) (int64, error) {
	res, err := t.tx.Exec(`
		INSERT INTO documents (title, author, date, genre, text, processing_time, page_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, doc.Title, doc.Author, doc.Date, doc.Genre, doc.Text,
		nullFloat(doc.ProcessingSeconds), nullInt(doc.PageCount))
	if err != nil {
		return 0, fmt.Errorf("inserting document: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("document id: %w", err)
	}
	return id, nil
}

// InsertSentence inserts one sentence row and returns its generated id.
func (t *corpusTx) InsertSentence(documentID int64, text string) (int64, error) {
	res, err := t.tx.Exec(
		"INSERT INTO sentences (doc_id, sentence_text) VALUES (?, ?)", documentID, text)
	if err != nil {
		return 0, fmt.Errorf("inserting sentence: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("sentence id: %w", err)
	}
	return id, nil
}

// InsertToken inserts one token row and returns its generated id.
// The lowercase shadow columns are folded in Go so matching works for
// Cyrillic.
func (t *corpusTx) InsertToken(sentenceID int64, tok domain.AnnotatedToken) (int64, error) {
	res, err := t.tx.Exec(`
		INSERT INTO tokens (sentence_id, token, token_lower, lemma, lemma_lower, pos, start_offset, end_offset)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, sentenceID, tok.Text, strings.ToLower(tok.Text),
		tok.Lemma, strings.ToLower(tok.Lemma), tok.POS, tok.Start, tok.End)
	if err != nil {
		return 0, fmt.Errorf("inserting token: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("token id: %w", err)
	}
	return id, nil
}

// InsertFeature inserts one grammar feature row.
func (t *corpusTx) InsertFeature(tokenID int64, name, value string) error {
	_, err := t.tx.Exec(
		"INSERT INTO grammar_features (token_id, feature, value) VALUES (?, ?, ?)",
		tokenID, name, value)
	if err != nil {
		return fmt.Errorf("inserting feature: %w", err)
	}
	return nil
}

// ==================== Reads ====================

// DocumentExists reports whether a document with the title exists.
func (s *Store) DocumentExists(ctx context.Context, title string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM documents WHERE title = ?", title).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking title: %w", err)
	}
	return count > 0, nil
}

// GetDocument retrieves document metadata without the raw text.
func (s *Store) GetDocument(ctx context.Context, id int64) (*domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, author, date, genre, processing_time, page_count
		FROM documents WHERE id = ?
	`, id)
	return scanDocument(row)
}

// DocumentText retrieves the full raw text of a document.
func (s *Store) DocumentText(ctx context.Context, id int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var text sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT text FROM documents WHERE id = ?", id).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading document text: %w", err)
	}
	return text.String, nil
}

// ListDocuments returns metadata for all documents ordered by id.
func (s *Store) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, author, date, genre, processing_time, page_count
		FROM documents ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocumentRows(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

// DeleteDocument removes a document; sentences, tokens and features
// go with it via ON DELETE CASCADE.
func (s *Store) DeleteDocument(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SearchTokens runs a composed token query, ordered by document title,
// sentence id and token start offset, bounded by the query limit.
func (s *Store) SearchTokens(ctx context.Context, q driven.TokenQuery) ([]domain.SearchHit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query, args := buildTokenQuery(q)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching tokens: %w", err)
	}
	defer rows.Close()

	var hits []domain.SearchHit //nolint:prealloc // size unknown from query
	for rows.Next() {
		var h domain.SearchHit
		if err := rows.Scan(&h.Token, &h.Lemma, &h.POS, &h.SentenceText, &h.DocumentTitle); err != nil {
			return nil, fmt.Errorf("scanning hit: %w", err)
		}
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating hits: %w", err)
	}
	return hits, nil
}

// FindOccurrences locates every token whose surface form equals the
// form, case-insensitively, in search result order.
func (s *Store) FindOccurrences(ctx context.Context, surface string) ([]domain.Occurrence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.sentence_id, t.start_offset
		FROM tokens t
		JOIN sentences s ON t.sentence_id = s.id
		JOIN documents d ON s.doc_id = d.id
		WHERE t.token_lower = ?
		ORDER BY d.title, s.id, t.start_offset
	`, strings.ToLower(surface))
	if err != nil {
		return nil, fmt.Errorf("finding occurrences: %w", err)
	}
	defer rows.Close()

	var occs []domain.Occurrence //nolint:prealloc // size unknown from query
	for rows.Next() {
		var o domain.Occurrence
		if err := rows.Scan(&o.TokenID, &o.SentenceID, &o.Start); err != nil {
			return nil, fmt.Errorf("scanning occurrence: %w", err)
		}
		occs = append(occs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating occurrences: %w", err)
	}
	return occs, nil
}

// SentenceTokens returns all tokens of a sentence ordered by start
// offset ascending. The ordering is load-bearing for concordance
// reconstruction.
func (s *Store) SentenceTokens(ctx context.Context, sentenceID int64) ([]domain.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sentence_id, token, lemma, pos, start_offset, end_offset
		FROM tokens WHERE sentence_id = ?
		ORDER BY start_offset
	`, sentenceID)
	if err != nil {
		return nil, fmt.Errorf("querying sentence tokens: %w", err)
	}
	defer rows.Close()

	var toks []domain.Token //nolint:prealloc // size unknown from query
	for rows.Next() {
		var t domain.Token
		if err := rows.Scan(&t.ID, &t.SentenceID, &t.Text, &t.Lemma, &t.POS, &t.Start, &t.End); err != nil {
			return nil, fmt.Errorf("scanning token: %w", err)
		}
		toks = append(toks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tokens: %w", err)
	}
	return toks, nil
}

// DocumentSentences returns all sentences of a document in insertion
// order.
func (s *Store) DocumentSentences(ctx context.Context, documentID int64) ([]domain.Sentence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, doc_id, sentence_text
		FROM sentences WHERE doc_id = ?
		ORDER BY id
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying sentences: %w", err)
	}
	defer rows.Close()

	var sents []domain.Sentence //nolint:prealloc // size unknown from query
	for rows.Next() {
		var sent domain.Sentence
		if err := rows.Scan(&sent.ID, &sent.DocumentID, &sent.Text); err != nil {
			return nil, fmt.Errorf("scanning sentence: %w", err)
		}
		sents = append(sents, sent)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sentences: %w", err)
	}
	return sents, nil
}

// ProcessingStats returns the report rows for documents where both
// the processing duration and page count were recorded.
func (s *Store) ProcessingStats(ctx context.Context) ([]domain.ProcessingStat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, processing_time, page_count
		FROM documents
		WHERE processing_time IS NOT NULL AND page_count IS NOT NULL
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying stats: %w", err)
	}
	defer rows.Close()

	var stats []domain.ProcessingStat //nolint:prealloc // size unknown from query
	for rows.Next() {
		var st domain.ProcessingStat
		if err := rows.Scan(&st.DocumentID, &st.Title, &st.ProcessingSeconds, &st.PageCount); err != nil {
			return nil, fmt.Errorf("scanning stat: %w", err)
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stats: %w", err)
	}
	return stats, nil
}

// ==================== Helpers ====================

func scanDocument(row *sql.Row) (*domain.Document, error) {
	var doc domain.Document
	var author, date, genre sql.NullString
	var seconds sql.NullFloat64
	var pages sql.NullInt64

	if err := row.Scan(&doc.ID, &doc.Title, &author, &date, &genre, &seconds, &pages); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	fillDocument(&doc, author, date, genre, seconds, pages)
	return &doc, nil
}

func scanDocumentRows(rows *sql.Rows) (*domain.Document, error) {
	var doc domain.Document
	var author, date, genre sql.NullString
	var seconds sql.NullFloat64
	var pages sql.NullInt64

	if err := rows.Scan(&doc.ID, &doc.Title, &author, &date, &genre, &seconds, &pages); err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	fillDocument(&doc, author, date, genre, seconds, pages)
	return &doc, nil
}

func fillDocument(doc *domain.Document,
	author, date, genre sql.NullString, seconds sql.NullFloat64, pages sql.NullInt64,
) {
	doc.Author = author.String
	doc.Date = date.String
	doc.Genre = genre.String
	if seconds.Valid {
		v := seconds.Float64
		doc.ProcessingSeconds = &v
	}
	if pages.Valid {
		v := int(pages.Int64)
		doc.PageCount = &v
	}
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
