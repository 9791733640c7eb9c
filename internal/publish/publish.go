// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package publish replays a parsed seed Document into the CMS: one
// application, then each page in document order, then each page's blocks.
// Creation is sequential and fail-fast; records created before a failure are
// left in place.
package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/cms-seeder/internal/logging"
	"github.com/pdiddy/cms-seeder/pkg/types"
)

// dryRunApplicationID is the placeholder id used for the application when
// no requests are sent.
const dryRunApplicationID = 1

// Recorder receives every record created during a run, for example the
// SQLite journal. Recorder failures are logged and never abort the run.
type Recorder interface {
	Record(ctx context.Context, rec types.CreatedRecord) error
}

// Options configures a Publisher. Zero values select defaults.
type Options struct {
	// Logger receives progress; defaults to a no-op logger.
	Logger logging.Logger

	// Creator sends creation requests; defaults to a RESTClient built from
	// the config. It is never called in dry-run mode.
	Creator Creator

	// Recorder is optional.
	Recorder Recorder

	// RunID identifies the run; defaults to a random UUID.
	RunID string

	// Now defaults to time.Now.
	Now func() time.Time
}

// State is the Publisher's view of what has been created so far.
type State struct {
	// ApplicationID is set once the application exists.
	ApplicationID *int

	// CreatedPages maps page title to id. Duplicate titles overwrite.
	CreatedPages map[string]int

	PagesCreated  int
	BlocksCreated int
}

// Publisher creates the application, pages, and content blocks of a
// Document. A Publisher is single-use and not safe for concurrent use.
type Publisher struct {
	cfg      types.PublishConfig
	log      logging.Logger
	creator  Creator
	recorder Recorder
	runID    string
	now      func() time.Time
	state    State
}

// New validates cfg and returns a Publisher.
func New(cfg types.PublishConfig, opts Options) (*Publisher, error) {
	cfg = WithDefaults(cfg)
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	p := &Publisher{
		cfg:      cfg,
		log:      logging.OrNoOp(opts.Logger),
		creator:  opts.Creator,
		recorder: opts.Recorder,
		runID:    opts.RunID,
		now:      opts.Now,
		state:    State{CreatedPages: make(map[string]int)},
	}
	if p.creator == nil && !cfg.DryRun {
		p.creator = NewRESTClient(cfg)
	}
	if p.runID == "" {
		p.runID = uuid.NewString()
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p, nil
}

// RunID returns the identifier of this run.
func (p *Publisher) RunID() string { return p.runID }

// State returns a snapshot of the publish state.
func (p *Publisher) State() State {
	s := p.state
	s.CreatedPages = make(map[string]int, len(p.state.CreatedPages))
	for k, v := range p.state.CreatedPages {
		s.CreatedPages[k] = v
	}
	return s
}

// Publish creates the application and then every page with its blocks. It
// stops at the first failure. The returned summary reflects whatever was
// created, including on failure.
func (p *Publisher) Publish(ctx context.Context, doc *types.Document) (types.RunSummary, error) {
	summary := types.RunSummary{
		RunID:     p.runID,
		BaseURL:   p.cfg.BaseURL,
		DryRun:    p.cfg.DryRun,
		StartedAt: p.now(),
	}

	err := p.CreateApplication(ctx, doc)
	if err == nil {
		err = p.CreatePages(ctx, doc.Pages)
	}

	state := p.State()
	if state.ApplicationID != nil {
		summary.ApplicationID = *state.ApplicationID
	}
	summary.CreatedPages = state.CreatedPages
	summary.PagesCreated = state.PagesCreated
	summary.BlocksCreated = state.BlocksCreated
	summary.FinishedAt = p.now()
	summary.Success = err == nil
	if err != nil {
		summary.Error = err.Error()
		return summary, err
	}

	p.log.Info("Population Complete")
	p.log.Success(fmt.Sprintf("Successfully populated %d pages", len(doc.Pages)))
	return summary, nil
}

// CreateApplication creates the application record from the document
// metadata, global styles, and settings.
func (p *Publisher) CreateApplication(ctx context.Context, doc *types.Document) error {
	p.log.Info("Creating Application")

	data := applicationPayload(doc)

	var id int
	if p.cfg.DryRun {
		preview, err := json.MarshalIndent(envelope{Data: data}, "", "  ")
		if err != nil {
			return wrapCreateError(err, codeApplicationFailed, "application payload could not be encoded")
		}
		p.log.Info("DRY RUN: Would create application with:\n" + string(preview))
		id = dryRunApplicationID
	} else {
		created, err := p.creator.Create(ctx, p.cfg.Endpoints.Applications, envelope{Data: data})
		if err != nil {
			p.logFailure("Failed to create application", err)
			return wrapCreateError(err, codeApplicationFailed, "application creation failed")
		}
		id = created
		p.log.Success(fmt.Sprintf("Created application (ID: %d)", id))
	}

	p.state.ApplicationID = &id
	p.record(ctx, types.RecordApplication, data.Name, id, 0)
	return nil
}

// CreatePages creates each page and its blocks in order. The first failing
// page or block aborts the remaining pages.
func (p *Publisher) CreatePages(ctx context.Context, pages []types.Page) error {
	p.log.Info("Creating Pages")

	if p.state.ApplicationID == nil {
		return wrapCreateError(errors.New("application has not been created"), codePageFailed, "pages require an application")
	}

	for _, page := range pages {
		if err := p.createPage(ctx, page); err != nil {
			return err
		}
	}
	return nil
}

func (p *Publisher) createPage(ctx context.Context, page types.Page) error {
	title := pageTitle(page)
	p.log.Info("Creating page: " + title)

	data := pagePayload(page, *p.state.ApplicationID)

	var id int
	if p.cfg.DryRun {
		p.log.Info("DRY RUN: Would create page: " + title)
		id = p.state.PagesCreated + 1
	} else {
		created, err := p.creator.Create(ctx, p.cfg.Endpoints.Pages, envelope{Data: data})
		if err != nil {
			p.logFailure("Failed to create page "+title, err)
			return wrapCreateError(err, codePageFailed, fmt.Sprintf("page %q creation failed", title))
		}
		id = created
	}

	p.state.CreatedPages[title] = id
	p.state.PagesCreated++
	p.log.Success(fmt.Sprintf("Created page: %s (ID: %d)", title, id))
	p.record(ctx, types.RecordPage, title, id, *p.state.ApplicationID)

	for _, block := range page.Blocks {
		if err := p.createBlock(ctx, id, block); err != nil {
			return wrapCreateError(err, codePageFailed, fmt.Sprintf("page %q creation failed", title))
		}
	}
	return nil
}

func (p *Publisher) createBlock(ctx context.Context, pageID int, block types.Block) error {
	kind := blockType(block)

	data, err := blockPayload(block, pageID)
	if err != nil {
		p.log.Error(fmt.Sprintf("Invalid %s block: %v", kind, err))
		return wrapCreateError(err, codeBlockFailed, fmt.Sprintf("%s block is invalid", kind))
	}

	if p.cfg.DryRun {
		p.log.Info(fmt.Sprintf("  DRY RUN: Would create %s block (order: %d)", kind, data.Order))
		p.state.BlocksCreated++
		p.record(ctx, types.RecordContentBlock, kind, 0, pageID)
		return nil
	}

	id, err := p.creator.Create(ctx, p.cfg.Endpoints.ContentBlocks, envelope{Data: data})
	if err != nil {
		p.logFailure(fmt.Sprintf("Failed to create %s block", kind), err)
		return wrapCreateError(err, codeBlockFailed, fmt.Sprintf("%s block creation failed", kind))
	}

	p.state.BlocksCreated++
	p.log.Success(fmt.Sprintf("  Created %s block (ID: %d)", kind, id))
	p.record(ctx, types.RecordContentBlock, kind, id, pageID)
	return nil
}

// logFailure logs the status and body of a rejected request, or the
// transport error.
func (p *Publisher) logFailure(prefix string, err error) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		p.log.Error(fmt.Sprintf("%s: %d", prefix, statusErr.StatusCode))
		if statusErr.Body != "" {
			p.log.Error(statusErr.Body)
		}
		return
	}
	p.log.Error(fmt.Sprintf("%s: request failed: %v", prefix, err))
}

func (p *Publisher) record(ctx context.Context, kind types.RecordKind, label string, id, parent int) {
	if p.recorder == nil {
		return
	}
	rec := types.CreatedRecord{
		RunID:     p.runID,
		Kind:      kind,
		Label:     label,
		RemoteID:  id,
		ParentID:  parent,
		CreatedAt: p.now(),
	}
	if err := p.recorder.Record(ctx, rec); err != nil {
		p.log.Warn(fmt.Sprintf("Could not journal %s %q: %v", kind, label, err))
	}
}
