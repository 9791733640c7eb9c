// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cms-seeder/internal/logging"
	"github.com/pdiddy/cms-seeder/pkg/types"
)

// --- fake CMS ---

type cmsCall struct {
	Path string
	Auth string
	Data map[string]any
}

// fakeCMS assigns sequential ids per endpoint. fail maps "path#n" (1-based
// call number on that path) to a status code to return instead.
type fakeCMS struct {
	mu    sync.Mutex
	calls []cmsCall
	next  map[string]int
	fail  map[string]int
	ts    *httptest.Server
}

func newFakeCMS(t *testing.T) *fakeCMS {
	t.Helper()
	f := &fakeCMS{next: map[string]int{}, fail: map[string]int{}}
	f.ts = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.ts.Close)
	return f
}

func (f *fakeCMS) handle(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Data map[string]any `json:"data"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	f.mu.Lock()
	f.calls = append(f.calls, cmsCall{Path: r.URL.Path, Auth: r.Header.Get("Authorization"), Data: body.Data})
	f.next[r.URL.Path]++
	n := f.next[r.URL.Path]
	status, failing := f.fail[fmt.Sprintf("%s#%d", r.URL.Path, n)]
	f.mu.Unlock()

	if failing {
		w.WriteHeader(status)
		fmt.Fprint(w, `{"error":{"message":"boom"}}`)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	// Ids are offset per endpoint so parent references are distinguishable.
	base := map[string]int{"/api/applications": 100, "/api/pages": 200, "/api/content-blocks": 300}[r.URL.Path]
	fmt.Fprintf(w, `{"data":{"id":%d,"attributes":{}}}`, base+n)
}

func (f *fakeCMS) paths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.Path
	}
	return out
}

func (f *fakeCMS) callsTo(path string) []cmsCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []cmsCall
	for _, c := range f.calls {
		if c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

// --- helpers ---

func testConfig(baseURL string) types.PublishConfig {
	return types.PublishConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 5 * time.Second},
		BaseURL:    baseURL,
		Token:      "test-token",
	}
}

func testDocument(pages, blocks int) *types.Document {
	doc := &types.Document{
		Metadata:     map[string]string{"client_name": "Acme", "domain": "acme.example.com"},
		GlobalStyles: types.EmptyObject(),
		Settings:     types.EmptyObject(),
	}
	for i := 1; i <= pages; i++ {
		page := types.Page{
			Name:     fmt.Sprintf("Page %d", i),
			Metadata: map[string]string{"title": fmt.Sprintf("Page %d", i), "slug": fmt.Sprintf("page-%d", i)},
		}
		for j := 1; j <= blocks; j++ {
			page.Blocks = append(page.Blocks, types.Block{
				Name: fmt.Sprintf("Block %d", j),
				// order deliberately runs opposite to document order
				Metadata: map[string]string{"block_type": "text", "order": fmt.Sprintf("%d", blocks-j)},
				Content:  types.EmptyObject(),
				Styling:  types.EmptyObject(),
			})
		}
		doc.Pages = append(doc.Pages, page)
	}
	return doc
}

func newTestPublisher(t *testing.T, cfg types.PublishConfig, opts Options) *Publisher {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = logging.NewRecorder()
	}
	p, err := New(cfg, opts)
	require.NoError(t, err)
	return p
}

// panicCreator fails the test when a request would be sent.
type panicCreator struct{ t *testing.T }

func (c panicCreator) Create(context.Context, string, any) (int, error) {
	c.t.Fatal("unexpected network call")
	return 0, nil
}

type memoryRecorder struct {
	records []types.CreatedRecord
	err     error
}

func (m *memoryRecorder) Record(_ context.Context, rec types.CreatedRecord) error {
	m.records = append(m.records, rec)
	return m.err
}

// --- ordering and parent references ---

func TestPublishCreatesRecordsInDocumentOrder(t *testing.T) {
	cms := newFakeCMS(t)
	p := newTestPublisher(t, testConfig(cms.ts.URL), Options{})

	summary, err := p.Publish(context.Background(), testDocument(2, 2))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/api/applications",
		"/api/pages", "/api/content-blocks", "/api/content-blocks",
		"/api/pages", "/api/content-blocks", "/api/content-blocks",
	}, cms.paths())

	for _, c := range cms.callsTo("/api/pages") {
		assert.Equal(t, float64(101), c.Data["application"])
		assert.Equal(t, "Bearer test-token", c.Auth)
	}

	blocks := cms.callsTo("/api/content-blocks")
	require.Len(t, blocks, 4)
	assert.Equal(t, []any{float64(201), float64(201), float64(202), float64(202)},
		[]any{blocks[0].Data["page"], blocks[1].Data["page"], blocks[2].Data["page"], blocks[3].Data["page"]})
	// Display order is sent as given, independent of document order.
	assert.Equal(t, float64(1), blocks[0].Data["order"])
	assert.Equal(t, float64(0), blocks[1].Data["order"])

	assert.True(t, summary.Success)
	assert.Equal(t, 101, summary.ApplicationID)
	assert.Equal(t, map[string]int{"Page 1": 201, "Page 2": 202}, summary.CreatedPages)
	assert.Equal(t, 2, summary.PagesCreated)
	assert.Equal(t, 4, summary.BlocksCreated)
	assert.Equal(t, p.RunID(), summary.RunID)
}

func TestPublishCallCountsMatchDocument(t *testing.T) {
	for _, tc := range []struct{ pages, blocks int }{{0, 0}, {1, 0}, {3, 1}, {4, 3}} {
		t.Run(fmt.Sprintf("%dx%d", tc.pages, tc.blocks), func(t *testing.T) {
			cms := newFakeCMS(t)
			p := newTestPublisher(t, testConfig(cms.ts.URL), Options{})

			_, err := p.Publish(context.Background(), testDocument(tc.pages, tc.blocks))
			require.NoError(t, err)

			assert.Len(t, cms.callsTo("/api/applications"), 1)
			assert.Len(t, cms.callsTo("/api/pages"), tc.pages)
			assert.Len(t, cms.callsTo("/api/content-blocks"), tc.pages*tc.blocks)
		})
	}
}

// --- failures ---

func TestApplicationFailureSkipsPages(t *testing.T) {
	cms := newFakeCMS(t)
	cms.fail["/api/applications#1"] = http.StatusInternalServerError
	rec := logging.NewRecorder()
	p := newTestPublisher(t, testConfig(cms.ts.URL), Options{Logger: rec})

	summary, err := p.Publish(context.Background(), testDocument(2, 1))
	require.Error(t, err)

	assert.Equal(t, []string{"/api/applications"}, cms.paths())
	assert.False(t, summary.Success)
	assert.NotEmpty(t, summary.Error)
	assert.Nil(t, p.State().ApplicationID)
	assert.True(t, goerrors.IsCategory(err, goerrors.CategoryCommand))
	assert.True(t, rec.Contains(logging.LevelError, "Failed to create application: 500"))
	assert.True(t, rec.Contains(logging.LevelError, "boom"))
	assert.False(t, rec.Contains(logging.LevelInfo, "Creating Pages"))
}

func TestPageFailureStopsRemainingPages(t *testing.T) {
	cms := newFakeCMS(t)
	cms.fail["/api/pages#2"] = http.StatusBadRequest
	p := newTestPublisher(t, testConfig(cms.ts.URL), Options{})

	summary, err := p.Publish(context.Background(), testDocument(3, 1))
	require.Error(t, err)

	assert.Equal(t, []string{
		"/api/applications",
		"/api/pages", "/api/content-blocks",
		"/api/pages",
	}, cms.paths())
	assert.Equal(t, map[string]int{"Page 1": 201}, summary.CreatedPages)
	assert.Equal(t, 1, summary.BlocksCreated)
}

func TestBlockFailureAbortsRun(t *testing.T) {
	cms := newFakeCMS(t)
	cms.fail["/api/content-blocks#2"] = http.StatusUnprocessableEntity
	p := newTestPublisher(t, testConfig(cms.ts.URL), Options{})

	summary, err := p.Publish(context.Background(), testDocument(2, 3))
	require.Error(t, err)

	assert.Equal(t, []string{
		"/api/applications",
		"/api/pages", "/api/content-blocks", "/api/content-blocks",
	}, cms.paths())
	assert.False(t, summary.Success)
	assert.Equal(t, 1, summary.PagesCreated)
	assert.Equal(t, 1, summary.BlocksCreated)
}

func TestInvalidBlockOrderAbortsRun(t *testing.T) {
	cms := newFakeCMS(t)
	doc := testDocument(1, 2)
	doc.Pages[0].Blocks[0].Metadata["order"] = "first"
	p := newTestPublisher(t, testConfig(cms.ts.URL), Options{})

	_, err := p.Publish(context.Background(), doc)
	require.Error(t, err)
	assert.Equal(t, []string{"/api/applications", "/api/pages"}, cms.paths())
}

func TestMissingIDIsFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"data":{}}`)
	}))
	defer ts.Close()

	p := newTestPublisher(t, testConfig(ts.URL), Options{})
	err := p.CreateApplication(context.Background(), testDocument(0, 0))
	require.Error(t, err)
	assert.Nil(t, p.State().ApplicationID)
}

func TestTransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := ts.URL
	ts.Close()

	rec := logging.NewRecorder()
	p := newTestPublisher(t, testConfig(url), Options{Logger: rec})

	_, err := p.Publish(context.Background(), testDocument(1, 0))
	require.Error(t, err)
	assert.True(t, rec.Contains(logging.LevelError, "request failed"))
}

func TestCreatePagesRequiresApplication(t *testing.T) {
	p := newTestPublisher(t, testConfig("https://cms.example.com"), Options{Creator: panicCreator{t}})

	err := p.CreatePages(context.Background(), testDocument(1, 0).Pages)
	assert.Error(t, err)
}

// --- dry run ---

func TestDryRunMakesNoCallsAndNumbersPages(t *testing.T) {
	cfg := types.PublishConfig{DryRun: true}
	rec := logging.NewRecorder()
	p := newTestPublisher(t, cfg, Options{Creator: panicCreator{t}, Logger: rec})

	summary, err := p.Publish(context.Background(), testDocument(3, 2))
	require.NoError(t, err)

	assert.True(t, summary.DryRun)
	assert.Equal(t, 1, summary.ApplicationID)
	assert.Equal(t, map[string]int{"Page 1": 1, "Page 2": 2, "Page 3": 3}, summary.CreatedPages)
	assert.Equal(t, 6, summary.BlocksCreated)
	assert.True(t, rec.Contains(logging.LevelInfo, "DRY RUN: Would create application with:"))
	assert.True(t, rec.Contains(logging.LevelInfo, `"name": "Acme"`))
}

func TestDryRunDuplicateTitlesStillCount(t *testing.T) {
	doc := testDocument(3, 0)
	for i := range doc.Pages {
		doc.Pages[i].Metadata["title"] = "Same"
	}
	p := newTestPublisher(t, types.PublishConfig{DryRun: true}, Options{})

	summary, err := p.Publish(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"Same": 3}, summary.CreatedPages)
	assert.Equal(t, 3, summary.PagesCreated)
}

// --- recorder ---

func TestRecorderReceivesCreatedRecords(t *testing.T) {
	cms := newFakeCMS(t)
	mem := &memoryRecorder{}
	fixed := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	p := newTestPublisher(t, testConfig(cms.ts.URL), Options{
		Recorder: mem,
		RunID:    "run-1",
		Now:      func() time.Time { return fixed },
	})

	_, err := p.Publish(context.Background(), testDocument(1, 1))
	require.NoError(t, err)

	assert.Equal(t, []types.CreatedRecord{
		{RunID: "run-1", Kind: types.RecordApplication, Label: "Acme", RemoteID: 101, CreatedAt: fixed},
		{RunID: "run-1", Kind: types.RecordPage, Label: "Page 1", RemoteID: 201, ParentID: 101, CreatedAt: fixed},
		{RunID: "run-1", Kind: types.RecordContentBlock, Label: "text", RemoteID: 301, ParentID: 201, CreatedAt: fixed},
	}, mem.records)
}

func TestRecorderErrorsDoNotAbort(t *testing.T) {
	mem := &memoryRecorder{err: fmt.Errorf("disk full")}
	rec := logging.NewRecorder()
	p := newTestPublisher(t, types.PublishConfig{DryRun: true}, Options{Recorder: mem, Logger: rec})

	_, err := p.Publish(context.Background(), testDocument(1, 1))
	require.NoError(t, err)
	assert.Equal(t, 3, rec.Count(logging.LevelWarn))
}

// --- configuration ---

func TestNewValidatesConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     types.PublishConfig
		wantErr bool
	}{
		{"complete", testConfig("https://cms.example.com"), false},
		{"dry run needs nothing", types.PublishConfig{DryRun: true}, false},
		{"missing url", types.PublishConfig{Token: "t"}, true},
		{"relative url", types.PublishConfig{BaseURL: "cms.example.com", Token: "t"}, true},
		{"missing token", types.PublishConfig{BaseURL: "https://cms.example.com"}, true},
		{"negative retries", func() types.PublishConfig {
			c := testConfig("https://cms.example.com")
			c.Retries = -1
			return c
		}(), true},
		{"too many retries", func() types.PublishConfig {
			c := testConfig("https://cms.example.com")
			c.Retries = 50
			return c
		}(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg, Options{})
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, goerrors.IsCategory(err, goerrors.CategoryValidation))
		})
	}
}

func TestWithDefaults(t *testing.T) {
	cfg := WithDefaults(types.PublishConfig{})
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultUserAgent, cfg.UserAgent)
	assert.Equal(t, types.DefaultEndpoints(), cfg.Endpoints)

	custom := WithDefaults(types.PublishConfig{Endpoints: types.Endpoints{Pages: "/v2/pages"}})
	assert.Equal(t, "/v2/pages", custom.Endpoints.Pages)
	assert.Equal(t, "/api/applications", custom.Endpoints.Applications)
}

func TestCustomEndpoints(t *testing.T) {
	var paths []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		fmt.Fprint(w, `{"data":{"id":7}}`)
	}))
	defer ts.Close()

	cfg := testConfig(ts.URL)
	cfg.Endpoints = types.Endpoints{Applications: "/v2/apps", Pages: "/v2/pages", ContentBlocks: "/v2/blocks"}
	p := newTestPublisher(t, cfg, Options{})

	_, err := p.Publish(context.Background(), testDocument(1, 1))
	require.NoError(t, err)
	assert.Equal(t, []string{"/v2/apps", "/v2/pages", "/v2/blocks"}, paths)
}
