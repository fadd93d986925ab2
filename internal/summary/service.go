package summary

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Service is the application-level orchestrator for repository summaries.
// It depends only on port interfaces — no framework or transport imports.
type Service struct {
	host       RepoHost
	summarizer Summarizer
	cache      ResultCache // nil disables caching
	rules      Rules
	filter     *PathFilter
	log        *slog.Logger
}

// NewService creates a Service. cache may be nil.
func NewService(host RepoHost, summarizer Summarizer, cache ResultCache, rules Rules, log *slog.Logger) *Service {
	return &Service{
		host:       host,
		summarizer: summarizer,
		cache:      cache,
		rules:      rules,
		filter:     NewPathFilter(rules.Exclude),
		log:        log,
	}
}

// Summarize runs the full pipeline for one repository URL: parse, resolve
// the default branch, fetch and filter the tree, prioritize a bounded file
// subset, download contents concurrently, assemble the context, and call
// the summarizer. Cache hits skip everything after the parse.
func (s *Service) Summarize(ctx context.Context, rawURL string) (*SummaryResult, error) {
	ref, err := ParseReference(rawURL)
	if err != nil {
		return nil, err
	}
	log := s.log.With("repo", ref.String())

	if cached := s.cacheGet(ctx, ref); cached != nil {
		log.Info("summary served from cache")
		return cached, nil
	}

	branch, err := s.host.DefaultBranch(ctx, ref)
	if err != nil {
		return nil, RemoteAccessError{Ref: ref, Op: "resolve default branch", Err: err}
	}
	log.Info("resolved default branch", "branch", branch)

	entries, err := s.host.Tree(ctx, ref, branch)
	if err != nil {
		return nil, RemoteAccessError{Ref: ref, Op: "fetch repository tree", Err: err}
	}

	paths := blobPaths(entries)
	clean := s.filter.Apply(paths)
	log.Info("filtered tree listing", "rawPaths", len(paths), "kept", len(clean))

	prioritized := PrioritizePaths(clean, s.rules)
	log.Info("prioritized files", "selected", len(prioritized), "maxFiles", s.rules.MaxFiles)

	files := s.fetchContents(ctx, ref, branch, prioritized)

	bundle := BuildContext(BuildTreeListing(clean), files, s.rules.MaxContextChars)
	log.Info("assembled context", "chars", len(bundle.ContentBlob))

	result, err := s.summarizer.Summarize(ctx, ref.Name, bundle)
	if err != nil {
		return nil, SummarizationError{Err: err}
	}

	s.cacheSet(ctx, ref, *result)
	return result, nil
}

// fetchContents downloads the prioritized files with a bounded fan-out.
// Each goroutine owns exactly one output slot, so no locking is needed.
// A failed fetch leaves its slot empty rather than failing the batch: one
// unreachable file must not abort the summary.
func (s *Service) fetchContents(ctx context.Context, ref RepoReference, branch string, paths []string) []FetchedFile {
	files := make([]FetchedFile, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.rules.FetchConcurrency)
	for i, path := range paths {
		g.Go(func() error {
			content, err := s.host.RawFile(ctx, ref, branch, path)
			if err != nil {
				s.log.Debug("file fetch failed, continuing without it", "repo", ref.String(), "path", path, "error", err)
				content = ""
			}
			files[i] = FetchedFile{Path: path, Content: content}
			return nil
		})
	}
	g.Wait() //nolint:errcheck // goroutines always return nil; failures are absorbed per file

	return files
}

func (s *Service) cacheGet(ctx context.Context, ref RepoReference) *SummaryResult {
	if s.cache == nil {
		return nil
	}
	result, err := s.cache.Get(ctx, ref)
	if err != nil {
		s.log.Warn("cache read failed", "repo", ref.String(), "error", err)
		return nil
	}
	return result
}

func (s *Service) cacheSet(ctx context.Context, ref RepoReference, result SummaryResult) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, ref, result); err != nil {
		s.log.Warn("cache write failed", "repo", ref.String(), "error", err)
	}
}

// blobPaths extracts the file paths from a tree listing, skipping directory
// entries.
func blobPaths(entries []TreeEntry) []string {
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Kind == EntryBlob {
			paths = append(paths, e.Path)
		}
	}
	return paths
}
