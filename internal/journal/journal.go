// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journal keeps a local SQLite record of publish runs and every CMS
// record they created. Nothing is rolled back automatically; the journal is
// what an operator uses to find and clean up a partially populated CMS.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/cms-seeder/pkg/types"
)

// ErrRunNotFound is returned when a run id is not in the journal.
var ErrRunNotFound = errors.New("run not found")

const timeLayout = time.RFC3339Nano

// Journal manages the journal database.
type Journal struct {
	db *sql.DB
}

// Open opens or creates the journal database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}

	j := &Journal{db: db}
	if err := j.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating journal schema: %w", err)
	}
	return j, nil
}

// Close releases the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			seed_file TEXT,
			base_url TEXT,
			dry_run INTEGER NOT NULL DEFAULT 0,
			application_id INTEGER,
			pages_created INTEGER NOT NULL DEFAULT 0,
			blocks_created INTEGER NOT NULL DEFAULT 0,
			success INTEGER NOT NULL DEFAULT 0,
			error TEXT,
			started_at TEXT NOT NULL,
			finished_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS records (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			kind TEXT NOT NULL,
			label TEXT,
			remote_id INTEGER,
			parent_id INTEGER,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_run_id ON records(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := j.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// BeginRun registers a run before any record is created.
func (j *Journal) BeginRun(ctx context.Context, run types.RunSummary) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO runs (id, seed_file, base_url, dry_run, started_at) VALUES (?, ?, ?, ?, ?)`,
		run.RunID, run.SeedFile, run.BaseURL, run.DryRun, run.StartedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("registering run %s: %w", run.RunID, err)
	}
	return nil
}

// Record stores one created CMS record. It satisfies publish.Recorder.
func (j *Journal) Record(ctx context.Context, rec types.CreatedRecord) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO records (run_id, kind, label, remote_id, parent_id, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.RunID, string(rec.Kind), rec.Label, rec.RemoteID, rec.ParentID, rec.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("recording %s %q: %w", rec.Kind, rec.Label, err)
	}
	return nil
}

// FinishRun stores the outcome of a run registered with BeginRun.
func (j *Journal) FinishRun(ctx context.Context, run types.RunSummary) error {
	res, err := j.db.ExecContext(ctx,
		`UPDATE runs SET application_id = ?, pages_created = ?, blocks_created = ?,
			success = ?, error = ?, finished_at = ? WHERE id = ?`,
		run.ApplicationID, run.PagesCreated, run.BlocksCreated,
		run.Success, run.Error, run.FinishedAt.UTC().Format(timeLayout), run.RunID,
	)
	if err != nil {
		return fmt.Errorf("finishing run %s: %w", run.RunID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("finishing run %s: %w", run.RunID, ErrRunNotFound)
	}
	return nil
}
