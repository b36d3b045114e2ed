// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps an optional SQLite log of download outcomes.
// It is an audit trail only; the skip-if-exists check in the download
// stage stays filename-based and never consults this log.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/joncrangle/iadownload/pkg/types"
)

// Outcome classifies what happened to one file during a run.
type Outcome string

const (
	OutcomeDownloaded Outcome = "downloaded"
	OutcomeSkipped    Outcome = "skipped"
	OutcomeFailed     Outcome = "failed"
)

// Entry is one recorded file outcome.
type Entry struct {
	ItemID     string
	FileName   string
	Bytes      int64
	Outcome    Outcome
	RecordedAt time.Time
}

// Store manages the history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the history database at cfg.Path, creating
// parent directories and the schema as needed.
func Open(cfg types.HistoryConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("history path not configured")
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS downloads (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			item_id TEXT NOT NULL,
			file_name TEXT NOT NULL,
			bytes INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			recorded_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_downloads_item_id ON downloads(item_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends one entry. A zero RecordedAt is stamped with now.
func (s *Store) Record(ctx context.Context, e Entry) error {
	at := e.RecordedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO downloads (item_id, file_name, bytes, outcome, recorded_at)
		 VALUES (?, ?, ?, ?, ?)`,
		e.ItemID, e.FileName, e.Bytes, string(e.Outcome), at.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording history entry: %w", err)
	}
	return nil
}

// Recent returns the newest entries, most recent first. A limit of 0
// uses the configured default.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT item_id, file_name, bytes, outcome, recorded_at
		 FROM downloads ORDER BY rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var outcome, recordedAt string
		if err := rows.Scan(&e.ItemID, &e.FileName, &e.Bytes, &outcome, &recordedAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.Outcome = Outcome(outcome)
		if t, parseErr := time.Parse(time.RFC3339, recordedAt); parseErr == nil {
			e.RecordedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
