// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cms-seeder/pkg/types"
)

const runColumns = `id, seed_file, base_url, dry_run, application_id, pages_created,
	blocks_created, success, error, started_at, finished_at`

// Runs returns all runs, most recent first.
func (j *Journal) Runs(ctx context.Context) ([]types.RunSummary, error) {
	rows, err := j.db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []types.RunSummary
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Run returns a single run with CreatedPages filled from its page records.
func (j *Journal) Run(ctx context.Context, runID string) (types.RunSummary, error) {
	row := j.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.RunSummary{}, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return types.RunSummary{}, err
	}

	records, err := j.Records(ctx, runID)
	if err != nil {
		return types.RunSummary{}, err
	}
	run.CreatedPages = make(map[string]int)
	for _, rec := range records {
		if rec.Kind == types.RecordPage {
			run.CreatedPages[rec.Label] = rec.RemoteID
		}
	}
	return run, nil
}

// Records returns the records created by a run in creation order.
func (j *Journal) Records(ctx context.Context, runID string) ([]types.CreatedRecord, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT run_id, kind, label, remote_id, parent_id, created_at FROM records WHERE run_id = ? ORDER BY rowid`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []types.CreatedRecord
	for rows.Next() {
		var (
			rec       types.CreatedRecord
			kind      string
			label     sql.NullString
			remoteID  sql.NullInt64
			parentID  sql.NullInt64
			createdAt string
		)
		if err := rows.Scan(&rec.RunID, &kind, &label, &remoteID, &parentID, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		rec.Kind = types.RecordKind(kind)
		rec.Label = label.String
		rec.RemoteID = int(remoteID.Int64)
		rec.ParentID = int(parentID.Int64)
		rec.CreatedAt = parseTime(createdAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ExportEntry is the YAML export of one run.
type ExportEntry struct {
	Run     types.RunSummary      `yaml:"run"`
	Records []types.CreatedRecord `yaml:"records"`
}

// ExportYAML writes a run and its records to w as YAML.
func (j *Journal) ExportYAML(ctx context.Context, runID string, w io.Writer) error {
	run, err := j.Run(ctx, runID)
	if err != nil {
		return err
	}
	records, err := j.Records(ctx, runID)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ExportEntry{Run: run, Records: records}); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (types.RunSummary, error) {
	var (
		run        types.RunSummary
		seedFile   sql.NullString
		baseURL    sql.NullString
		appID      sql.NullInt64
		errText    sql.NullString
		startedAt  string
		finishedAt sql.NullString
	)
	err := s.Scan(&run.RunID, &seedFile, &baseURL, &run.DryRun, &appID, &run.PagesCreated,
		&run.BlocksCreated, &run.Success, &errText, &startedAt, &finishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return run, err
	}
	if err != nil {
		return run, fmt.Errorf("scanning run: %w", err)
	}
	run.SeedFile = seedFile.String
	run.BaseURL = baseURL.String
	run.ApplicationID = int(appID.Int64)
	run.Error = errText.String
	run.StartedAt = parseTime(startedAt)
	if finishedAt.Valid {
		run.FinishedAt = parseTime(finishedAt.String)
	}
	return run, nil
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
