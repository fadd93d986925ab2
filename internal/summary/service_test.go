package summary_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens/repolens/internal/summary"
)

// Compile-time interface compliance checks.
var (
	_ summary.RepoHost    = (*stubHost)(nil)
	_ summary.Summarizer  = (*stubSummarizer)(nil)
	_ summary.ResultCache = (*memCache)(nil)
)

// ─── stubHost ─────────────────────────────────────────────────────────────────

type stubHost struct {
	mu sync.Mutex

	branch    string
	branchErr error
	entries   []summary.TreeEntry
	treeErr   error
	files     map[string]string // path -> content; missing path fails the fetch

	treeCalls int
	rawCalls  []string
}

func (h *stubHost) DefaultBranch(_ context.Context, _ summary.RepoReference) (string, error) {
	if h.branchErr != nil {
		return "", h.branchErr
	}
	if h.branch == "" {
		return "main", nil
	}
	return h.branch, nil
}

func (h *stubHost) Tree(_ context.Context, _ summary.RepoReference, _ string) ([]summary.TreeEntry, error) {
	h.mu.Lock()
	h.treeCalls++
	h.mu.Unlock()
	if h.treeErr != nil {
		return nil, h.treeErr
	}
	return h.entries, nil
}

func (h *stubHost) RawFile(_ context.Context, _ summary.RepoReference, _ string, path string) (string, error) {
	h.mu.Lock()
	h.rawCalls = append(h.rawCalls, path)
	h.mu.Unlock()
	content, ok := h.files[path]
	if !ok {
		return "", fmt.Errorf("GET %s returned 404", path)
	}
	return content, nil
}

// ─── stubSummarizer ───────────────────────────────────────────────────────────

type stubSummarizer struct {
	result     *summary.SummaryResult
	err        error
	lastBundle summary.ContextBundle
	calls      int
}

func (s *stubSummarizer) Summarize(_ context.Context, _ string, bundle summary.ContextBundle) (*summary.SummaryResult, error) {
	s.calls++
	s.lastBundle = bundle
	if s.err != nil {
		return nil, s.err
	}
	if s.result != nil {
		return s.result, nil
	}
	return &summary.SummaryResult{Summary: "a project", Technologies: []string{"Go"}, Structure: "flat"}, nil
}

// ─── memCache ─────────────────────────────────────────────────────────────────

type memCache struct {
	data   map[string]summary.SummaryResult
	getErr error
	setErr error
}

func (c *memCache) Get(_ context.Context, ref summary.RepoReference) (*summary.SummaryResult, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	if r, ok := c.data[ref.String()]; ok {
		return &r, nil
	}
	return nil, nil
}

func (c *memCache) Set(_ context.Context, ref summary.RepoReference, result summary.SummaryResult) error {
	if c.setErr != nil {
		return c.setErr
	}
	if c.data == nil {
		c.data = map[string]summary.SummaryResult{}
	}
	c.data[ref.String()] = result
	return nil
}

// ─── helpers ──────────────────────────────────────────────────────────────────

func blob(path string) summary.TreeEntry { return summary.TreeEntry{Path: path, Kind: summary.EntryBlob} }
func dir(path string) summary.TreeEntry  { return summary.TreeEntry{Path: path, Kind: summary.EntryTree} }

func newService(host *stubHost, sum *stubSummarizer, cache summary.ResultCache) *summary.Service {
	return summary.NewService(host, sum, cache, summary.DefaultRules(), slog.New(slog.DiscardHandler))
}

// ─── tests ────────────────────────────────────────────────────────────────────

func TestSummarize_FullPipeline(t *testing.T) {
	host := &stubHost{
		branch: "trunk",
		entries: []summary.TreeEntry{
			dir("src"),
			blob("README.md"),
			blob("node_modules/x.js"),
			blob("package-lock.json"),
			blob("src/main.py"),
			blob("logo.png"),
		},
		files: map[string]string{
			"README.md":   "# demo",
			"src/main.py": "print('hi')",
		},
	}
	sum := &stubSummarizer{}

	result, err := newService(host, sum, nil).Summarize(context.Background(), "https://github.com/acme/demo")
	require.NoError(t, err)
	assert.Equal(t, "a project", result.Summary)

	// Filtered tree listing: noise paths and the directory entry are gone.
	assert.Equal(t, "README.md\nsrc/main.py", sum.lastBundle.TreeListing)

	// Both prioritized files were fetched and assembled.
	assert.ElementsMatch(t, []string{"README.md", "src/main.py"}, host.rawCalls)
	assert.Contains(t, sum.lastBundle.ContentBlob, "--- FILE: README.md ---\n# demo")
	assert.Contains(t, sum.lastBundle.ContentBlob, "--- FILE: src/main.py ---\nprint('hi')")
}

func TestSummarize_InvalidURL(t *testing.T) {
	host := &stubHost{}
	_, err := newService(host, &stubSummarizer{}, nil).Summarize(context.Background(), "https://example.com/not/github")

	var invalidRef summary.InvalidReferenceError
	require.ErrorAs(t, err, &invalidRef)
	assert.Zero(t, host.treeCalls, "no remote call for a malformed reference")
}

func TestSummarize_MetadataFailureAbortsBeforeTree(t *testing.T) {
	host := &stubHost{branchErr: errors.New("403 forbidden")}

	_, err := newService(host, &stubSummarizer{}, nil).Summarize(context.Background(), "https://github.com/acme/demo")

	var remote summary.RemoteAccessError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, "acme/demo", remote.Ref.String())
	assert.Zero(t, host.treeCalls)
	assert.Empty(t, host.rawCalls)
}

func TestSummarize_TreeFailure(t *testing.T) {
	host := &stubHost{treeErr: errors.New("truncated")}

	_, err := newService(host, &stubSummarizer{}, nil).Summarize(context.Background(), "https://github.com/acme/demo")

	var remote summary.RemoteAccessError
	require.ErrorAs(t, err, &remote)
	assert.Empty(t, host.rawCalls)
}

func TestSummarize_PartialFetchFailureTolerated(t *testing.T) {
	host := &stubHost{
		entries: []summary.TreeEntry{
			blob("README.md"),
			blob("src/app.py"),
			blob("src/api.py"),
		},
		// src/app.py is missing: its fetch fails.
		files: map[string]string{
			"README.md":  "# demo",
			"src/api.py": "routes = []",
		},
	}
	sum := &stubSummarizer{}

	result, err := newService(host, sum, nil).Summarize(context.Background(), "https://github.com/acme/demo")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Contains(t, sum.lastBundle.ContentBlob, "README.md")
	assert.Contains(t, sum.lastBundle.ContentBlob, "src/api.py")
	assert.NotContains(t, sum.lastBundle.ContentBlob, "--- FILE: src/app.py ---")
}

func TestSummarize_SummarizerFailureWrapped(t *testing.T) {
	host := &stubHost{
		entries: []summary.TreeEntry{blob("README.md")},
		files:   map[string]string{"README.md": "# demo"},
	}
	sum := &stubSummarizer{err: errors.New("empty response")}

	_, err := newService(host, sum, nil).Summarize(context.Background(), "https://github.com/acme/demo")

	var sErr summary.SummarizationError
	require.ErrorAs(t, err, &sErr)
}

func TestSummarize_CacheHitSkipsPipeline(t *testing.T) {
	cached := summary.SummaryResult{Summary: "cached", Technologies: []string{"Go"}, Structure: "flat"}
	cache := &memCache{data: map[string]summary.SummaryResult{"acme/demo": cached}}
	host := &stubHost{}
	sum := &stubSummarizer{}

	result, err := newService(host, sum, cache).Summarize(context.Background(), "https://github.com/acme/demo")
	require.NoError(t, err)

	assert.Equal(t, "cached", result.Summary)
	assert.Zero(t, host.treeCalls)
	assert.Zero(t, sum.calls)
}

func TestSummarize_CacheMissStoresResult(t *testing.T) {
	cache := &memCache{}
	host := &stubHost{
		entries: []summary.TreeEntry{blob("README.md")},
		files:   map[string]string{"README.md": "# demo"},
	}

	_, err := newService(host, &stubSummarizer{}, cache).Summarize(context.Background(), "https://github.com/acme/demo")
	require.NoError(t, err)

	assert.Contains(t, cache.data, "acme/demo")
}

func TestSummarize_CacheErrorsAbsorbed(t *testing.T) {
	cache := &memCache{getErr: errors.New("redis down"), setErr: errors.New("redis down")}
	host := &stubHost{
		entries: []summary.TreeEntry{blob("README.md")},
		files:   map[string]string{"README.md": "# demo"},
	}

	result, err := newService(host, &stubSummarizer{}, cache).Summarize(context.Background(), "https://github.com/acme/demo")
	require.NoError(t, err)
	assert.Equal(t, "a project", result.Summary)
}

func TestSummarize_FetchCountBoundedByMaxFiles(t *testing.T) {
	entries := make([]summary.TreeEntry, 0, 40)
	files := make(map[string]string, 40)
	for i := range 40 {
		p := fmt.Sprintf("pkg/file%02d.go", i)
		entries = append(entries, blob(p))
		files[p] = "package pkg"
	}
	host := &stubHost{entries: entries, files: files}

	_, err := newService(host, &stubSummarizer{}, nil).Summarize(context.Background(), "https://github.com/acme/demo")
	require.NoError(t, err)

	assert.Len(t, host.rawCalls, summary.DefaultRules().MaxFiles)
}
