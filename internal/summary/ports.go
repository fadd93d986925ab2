package summary

import "context"

// RepoHost abstracts the repository hosting service. The adapters layer
// provides a GitHub implementation; tests use inline stubs.
type RepoHost interface {
	// DefaultBranch resolves the branch the host treats as canonical.
	DefaultBranch(ctx context.Context, ref RepoReference) (string, error)
	// Tree returns the full recursive listing for a branch. It fails when
	// the host reports the listing as truncated.
	Tree(ctx context.Context, ref RepoReference, branch string) ([]TreeEntry, error)
	// RawFile returns the raw text of one file. A non-success response is
	// an error; the caller decides whether to absorb it.
	RawFile(ctx context.Context, ref RepoReference, branch, path string) (string, error)
}

// Summarizer turns an assembled context bundle into a structured summary.
type Summarizer interface {
	Summarize(ctx context.Context, repoName string, bundle ContextBundle) (*SummaryResult, error)
}

// ResultCache optionally persists finished summaries keyed by repository.
// Get returns (nil, nil) on a miss.
type ResultCache interface {
	Get(ctx context.Context, ref RepoReference) (*SummaryResult, error)
	Set(ctx context.Context, ref RepoReference, result SummaryResult) error
}
