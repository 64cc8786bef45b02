// file: internal/catalog/store.go
// version: 1.0.0
// guid: 7e9f1a3b-5c6d-4e7f-2a8b-0c2d4e6f8a0b

// Package catalog keeps a SQLite history of reconciliation runs so past
// results can be listed and re-inspected without re-scoring.
package catalog

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"

	"github.com/jdfalk/rom-organizer/internal/matcher"
)

// Run is the stored header of one reconciliation run.
type Run struct {
	ID             string
	CreatedAt      time.Time
	Backend        string
	Method         string
	Threshold      float64
	MatchedCount   int
	UnmatchedCount int
}

// Store persists runs and their per-name records in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the catalog database at path.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping catalog database: %w", err)
	}

	store := &Store{db: db}
	if err := store.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return store, nil
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		backend TEXT NOT NULL,
		method TEXT NOT NULL,
		threshold REAL NOT NULL,
		matched_count INTEGER NOT NULL,
		unmatched_count INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS records (
		run_id TEXT NOT NULL,
		name TEXT NOT NULL,
		matched_name TEXT,
		matched BOOLEAN NOT NULL,
		FOREIGN KEY (run_id) REFERENCES runs(id)
	);

	CREATE INDEX IF NOT EXISTS idx_records_run ON records(run_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun stores a result with the options that produced it and returns the
// new run's ID.
func (s *Store) SaveRun(result *matcher.Result, opts matcher.Options) (string, error) {
	runID := ulid.Make().String()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (id, created_at, backend, method, threshold, matched_count, unmatched_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, time.Now().UTC(), string(opts.Backend), string(opts.Method),
		opts.Threshold, len(result.Matches), len(result.Unmatched),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO records (run_id, name, matched_name, matched)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare record insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range result.Matches {
		if _, err := stmt.Exec(runID, m.Name, m.MatchedName, true); err != nil {
			return "", fmt.Errorf("failed to insert record: %w", err)
		}
	}
	for _, name := range result.Unmatched {
		if _, err := stmt.Exec(runID, name, "", false); err != nil {
			return "", fmt.Errorf("failed to insert record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// ListRuns returns stored run headers, newest first.
func (s *Store) ListRuns() ([]Run, error) {
	rows, err := s.db.Query(`
		SELECT id, created_at, backend, method, threshold, matched_count, unmatched_count
		FROM runs ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.Backend, &r.Method,
			&r.Threshold, &r.MatchedCount, &r.UnmatchedCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// LoadRun reconstructs the result of a stored run. Record order within the
// matched and unmatched partitions follows insertion order.
func (s *Store) LoadRun(runID string) (*matcher.Result, error) {
	var exists int
	err := s.db.QueryRow(`SELECT COUNT(1) FROM runs WHERE id = ?`, runID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to look up run: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("run %s not found", runID)
	}

	rows, err := s.db.Query(`
		SELECT name, matched_name, matched
		FROM records WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	result := &matcher.Result{}
	for rows.Next() {
		var name, matchedName string
		var matched bool
		if err := rows.Scan(&name, &matchedName, &matched); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		if matched {
			result.Matches = append(result.Matches, matcher.Match{Name: name, MatchedName: matchedName})
		} else {
			result.Unmatched = append(result.Unmatched, name)
		}
	}
	return result, rows.Err()
}
