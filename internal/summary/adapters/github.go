// Package adapters connects the summary domain to the outside world: the
// GitHub API, the OpenAI API, and the HTTP surface.
package adapters

import (
	"context"
	"fmt"
	"io"
	"net/http"

	gogithub "github.com/google/go-github/v75/github"

	"github.com/repolens/repolens/internal/summary"
)

const defaultRawBaseURL = "https://raw.githubusercontent.com"

// Compile-time check: *GitHubHost implements summary.RepoHost.
var _ summary.RepoHost = (*GitHubHost)(nil)

// GitHubHost implements summary.RepoHost against the GitHub REST API.
// Metadata and tree listings go through go-github; raw file contents come
// from the raw content CDN, which serves plain text without base64 or the
// contents-API size ceiling.
type GitHubHost struct {
	gh         *gogithub.Client
	rawBaseURL string
	httpClient *http.Client
}

// NewGitHubHost creates a GitHubHost from an authenticated *github.Client.
// rawBaseURL overrides the raw content host; pass "" for the real CDN.
func NewGitHubHost(gh *gogithub.Client, rawBaseURL string) *GitHubHost {
	if rawBaseURL == "" {
		rawBaseURL = defaultRawBaseURL
	}
	return &GitHubHost{
		gh:         gh,
		rawBaseURL: rawBaseURL,
		httpClient: &http.Client{},
	}
}

// DefaultBranch resolves the repository's default branch, falling back to
// "main" when the metadata response omits it.
func (h *GitHubHost) DefaultBranch(ctx context.Context, ref summary.RepoReference) (string, error) {
	repo, _, err := h.gh.Repositories.Get(ctx, ref.Owner, ref.Name)
	if err != nil {
		return "", fmt.Errorf("get repository metadata: %w", err)
	}
	if branch := repo.GetDefaultBranch(); branch != "" {
		return branch, nil
	}
	return "main", nil
}

// Tree fetches the full recursive listing for a branch in a single call.
func (h *GitHubHost) Tree(ctx context.Context, ref summary.RepoReference, branch string) ([]summary.TreeEntry, error) {
	tree, _, err := h.gh.Git.GetTree(ctx, ref.Owner, ref.Name, branch, true)
	if err != nil {
		return nil, fmt.Errorf("get tree for branch %q: %w", branch, err)
	}
	if tree.GetTruncated() {
		return nil, fmt.Errorf("tree listing for branch %q is truncated: repository too large", branch)
	}
	if tree.Entries == nil {
		return nil, fmt.Errorf("tree response for branch %q has no entries", branch)
	}

	entries := make([]summary.TreeEntry, 0, len(tree.Entries))
	for _, e := range tree.Entries {
		entries = append(entries, summary.TreeEntry{
			Path: e.GetPath(),
			Kind: summary.EntryKind(e.GetType()),
		})
	}
	return entries, nil
}

// RawFile downloads one file's raw text from the raw content host.
func (h *GitHubHost) RawFile(ctx context.Context, ref summary.RepoReference, branch, path string) (string, error) {
	url := fmt.Sprintf("%s/%s/%s/%s/%s", h.rawBaseURL, ref.Owner, ref.Name, branch, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("GET %s: %w", url, err)
	}
	defer func() { //nolint:errcheck // response body close errors are non-actionable after reading
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GET %s returned %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body for %s: %w", path, err)
	}
	return string(body), nil
}
