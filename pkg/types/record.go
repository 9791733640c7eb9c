// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RecordKind identifies which CMS resource a created record belongs to.
type RecordKind string

const (
	RecordApplication  RecordKind = "application"
	RecordPage         RecordKind = "page"
	RecordContentBlock RecordKind = "content_block"
)

// CreatedRecord describes one resource created in the CMS during a run.
type CreatedRecord struct {
	// RunID ties the record to a publish run.
	RunID string `json:"run_id" yaml:"run_id"`

	Kind RecordKind `json:"kind" yaml:"kind"`

	// Label is the application name, page title, or block type.
	Label string `json:"label" yaml:"label"`

	// RemoteID is the identifier returned by the CMS. Dry runs record the
	// placeholder identifier.
	RemoteID int `json:"remote_id" yaml:"remote_id"`

	// ParentID is the owning application or page id; 0 for applications.
	ParentID int `json:"parent_id,omitempty" yaml:"parent_id,omitempty"`

	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// RunSummary is the outcome of a publish run, written to the run report and
// the journal.
type RunSummary struct {
	RunID         string         `json:"run_id" yaml:"run_id"`
	SeedFile      string         `json:"seed_file,omitempty" yaml:"seed_file,omitempty"`
	BaseURL       string         `json:"base_url" yaml:"base_url"`
	DryRun        bool           `json:"dry_run" yaml:"dry_run"`
	ApplicationID int            `json:"application_id,omitempty" yaml:"application_id,omitempty"`
	CreatedPages  map[string]int `json:"created_pages" yaml:"created_pages"`
	PagesCreated  int            `json:"pages_created" yaml:"pages_created"`
	BlocksCreated int            `json:"blocks_created" yaml:"blocks_created"`
	Success       bool           `json:"success" yaml:"success"`
	Error         string         `json:"error,omitempty" yaml:"error,omitempty"`
	StartedAt     time.Time      `json:"started_at" yaml:"started_at"`
	FinishedAt    time.Time      `json:"finished_at" yaml:"finished_at"`
}
