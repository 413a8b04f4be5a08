// Package document persists document records. With a Postgres DSN the store
// runs on database/sql over the pgx driver; without one it degrades to an
// in-process map, which is what local development and tests use.
package document

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
)

var ErrNotFound = errors.New("document: record not found")

// Record is one uploaded document and the pointers to its derived blobs.
type Record struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	FileName      string    `json:"fileName"`
	FileType      string    `json:"fileType"`
	FileSize      int64     `json:"fileSize"`
	TextURL       string    `json:"textUrl"`
	StixBundleURL string    `json:"stixBundleUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

type Store struct {
	db *sql.DB

	schemaOnce sync.Once
	schemaErr  error

	mu   sync.RWMutex
	byID map[string]Record

	cache *lru.Cache[string, Record]
}

// NewMemory creates a map-backed store.
func NewMemory() *Store {
	return &Store{byID: make(map[string]Record)}
}

// NewPostgres opens a Postgres-backed store and verifies connectivity.
func NewPostgres(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	cache, err := lru.New[string, Record](1024)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, cache: cache}, nil
}

// NewFromDSN returns a Postgres store when dsn is set, otherwise memory.
func NewFromDSN(dsn string) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return NewMemory(), nil
	}
	return NewPostgres(dsn)
}

func (s *Store) ensureSchema() error {
	s.schemaOnce.Do(func() {
		// One statement per Exec: the pgx extended protocol rejects
		// multi-statement strings.
		stmts := []string{`
CREATE TABLE IF NOT EXISTS documents (
    id              TEXT PRIMARY KEY,
    user_id         TEXT NOT NULL,
    file_name       TEXT NOT NULL,
    file_type       TEXT NOT NULL,
    file_size       BIGINT NOT NULL DEFAULT 0,
    text_url        TEXT NOT NULL DEFAULT '',
    stix_bundle_url TEXT NOT NULL DEFAULT '',
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
			`CREATE INDEX IF NOT EXISTS documents_user_idx ON documents (user_id, created_at DESC)`,
		}
		for _, stmt := range stmts {
			if _, err := s.db.Exec(stmt); err != nil {
				s.schemaErr = err
				return
			}
		}
	})
	return s.schemaErr
}

func (s *Store) Put(ctx context.Context, rec Record) error {
	if rec.ID == "" {
		return errors.New("document: record id is required")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if s.db == nil {
		s.mu.Lock()
		s.byID[rec.ID] = rec
		s.mu.Unlock()
		return nil
	}
	if err := s.ensureSchema(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO documents (id, user_id, file_name, file_type, file_size, text_url, stix_bundle_url, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET
    file_name = EXCLUDED.file_name,
    file_type = EXCLUDED.file_type,
    file_size = EXCLUDED.file_size,
    text_url = EXCLUDED.text_url,
    stix_bundle_url = EXCLUDED.stix_bundle_url
`, rec.ID, rec.UserID, rec.FileName, rec.FileType, rec.FileSize, rec.TextURL, rec.StixBundleURL, rec.CreatedAt)
	if err == nil && s.cache != nil {
		s.cache.Add(rec.ID, rec)
	}
	return err
}

func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	if s.db == nil {
		s.mu.RLock()
		rec, ok := s.byID[id]
		s.mu.RUnlock()
		if !ok {
			return Record{}, ErrNotFound
		}
		return rec, nil
	}
	if s.cache != nil {
		if rec, ok := s.cache.Get(id); ok {
			return rec, nil
		}
	}
	if err := s.ensureSchema(); err != nil {
		return Record{}, err
	}
	row := s.db.QueryRowContext(ctx, `
SELECT id, user_id, file_name, file_type, file_size, text_url, stix_bundle_url, created_at
FROM documents WHERE id = $1
`, id)
	var rec Record
	err := row.Scan(&rec.ID, &rec.UserID, &rec.FileName, &rec.FileType, &rec.FileSize, &rec.TextURL, &rec.StixBundleURL, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	if s.cache != nil {
		s.cache.Add(rec.ID, rec)
	}
	return rec, nil
}

func (s *Store) ListByUser(ctx context.Context, userID string) ([]Record, error) {
	if s.db == nil {
		s.mu.RLock()
		out := make([]Record, 0)
		for _, rec := range s.byID {
			if rec.UserID == userID {
				out = append(out, rec)
			}
		}
		s.mu.RUnlock()
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
		return out, nil
	}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, user_id, file_name, file_type, file_size, text_url, stix_bundle_url, created_at
FROM documents WHERE user_id = $1 ORDER BY created_at DESC
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]Record, 0)
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.FileName, &rec.FileType, &rec.FileSize, &rec.TextURL, &rec.StixBundleURL, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.byID[id]; !ok {
			return ErrNotFound
		}
		delete(s.byID, id)
		return nil
	}
	if err := s.ensureSchema(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Remove(id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// AttachBundleURL records the persisted bundle's URL on the document.
func (s *Store) AttachBundleURL(ctx context.Context, id, bundleURL string) error {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		rec, ok := s.byID[id]
		if !ok {
			return ErrNotFound
		}
		rec.StixBundleURL = bundleURL
		s.byID[id] = rec
		return nil
	}
	if err := s.ensureSchema(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE documents SET stix_bundle_url = $2 WHERE id = $1`, id, bundleURL)
	if err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Remove(id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Close releases the database handle when one exists.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
