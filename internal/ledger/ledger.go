// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger keeps a history of dataset conversions in a SQLite
// database so an operator can see which files were produced, when, and
// from how many records.
package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/chatset/pkg/types"
)

// defaultLimit caps List when the caller passes a non-positive limit.
const defaultLimit = 50

// Ledger manages the run history database.
type Ledger struct {
	db *sql.DB
}

// Open opens or creates the database at cfg.Path and creates the schema if
// it does not exist.
func Open(cfg types.LedgerConfig) (*Ledger, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("ledger path is empty")
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	l := &Ledger{db: db}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return l, nil
}

// Close releases the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			duration_ns INTEGER NOT NULL,
			input TEXT NOT NULL,
			output TEXT NOT NULL,
			records INTEGER NOT NULL,
			status TEXT NOT NULL,
			error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_input ON runs(input)`,
	}
	for _, stmt := range statements {
		if _, err := l.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts one run. It satisfies convert.Recorder.
func (l *Ledger) Record(ctx context.Context, run types.RunRecord) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO runs (started_at, duration_ns, input, output, records, status, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.UTC().Format(time.RFC3339Nano), int64(run.Duration),
		run.Input, run.Output, run.Records, string(run.Status), run.Error,
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first.
func (l *Ledger) List(ctx context.Context, limit int) ([]types.RunRecord, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := l.db.QueryContext(ctx,
		`SELECT id, started_at, duration_ns, input, output, records, status, COALESCE(error, '')
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []types.RunRecord
	for rows.Next() {
		var (
			r          types.RunRecord
			startedAt  string
			durationNS int64
			status     string
		)
		if err := rows.Scan(&r.ID, &startedAt, &durationNS, &r.Input, &r.Output, &r.Records, &status, &r.Error); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing started_at %q: %w", startedAt, err)
		}
		r.Duration = time.Duration(durationNS)
		r.Status = types.RunStatus(status)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ExportYAML writes runs to w as a YAML sequence.
func ExportYAML(w io.Writer, runs []types.RunRecord) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(runs); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// ExportJSON writes runs to w as an indented JSON array.
func ExportJSON(w io.Writer, runs []types.RunRecord) error {
	if runs == nil {
		runs = []types.RunRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(runs); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}
