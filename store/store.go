// Package store persists finished audits in SQLite. Results are stored
// as JSON blobs keyed by id: the aggregate is immutable once created, so
// a document column beats a wide relational schema here.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/seo-audit/backend/analyzer"
)

// ErrNotFound is returned when no analysis exists for the given id.
var ErrNotFound = errors.New("analysis not found")

// Store is the durable audit store. Safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens (and bootstraps) the SQLite database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// SQLite serializes writers; a single connection avoids SQLITE_BUSY
	// under concurrent audits.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS analyses (
			id         TEXT PRIMARY KEY,
			url        TEXT NOT NULL,
			location   TEXT NOT NULL,
			created_at TEXT NOT NULL,
			payload    BLOB NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses (created_at DESC);
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrapping schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Save inserts or replaces the result by id.
func (s *Store) Save(ctx context.Context, result *analyzer.AnalysisResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding analysis %s: %w", result.ID, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO analyses (id, url, location, created_at, payload)
		VALUES (?, ?, ?, ?, ?)`,
		result.ID, result.URL, result.Location, result.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z"), payload)
	if err != nil {
		return fmt.Errorf("saving analysis %s: %w", result.ID, err)
	}
	return nil
}

// Get loads one result by id.
func (s *Store) Get(ctx context.Context, id string) (*analyzer.AnalysisResult, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM analyses WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading analysis %s: %w", id, err)
	}
	var result analyzer.AnalysisResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("decoding analysis %s: %w", id, err)
	}
	return &result, nil
}

// List returns all results in reverse-chronological order.
func (s *Store) List(ctx context.Context) ([]*analyzer.AnalysisResult, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM analyses ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}
	defer rows.Close()

	results := []*analyzer.AnalysisResult{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning analysis row: %w", err)
		}
		var result analyzer.AnalysisResult
		if err := json.Unmarshal(payload, &result); err != nil {
			return nil, fmt.Errorf("decoding analysis row: %w", err)
		}
		results = append(results, &result)
	}
	return results, rows.Err()
}

// Count returns the number of stored analyses.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM analyses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting analyses: %w", err)
	}
	return n, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }
