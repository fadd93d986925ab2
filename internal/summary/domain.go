// Package summary implements the repository summarization pipeline: parse a
// repository URL, fetch and filter the file tree, pick a bounded set of
// high-signal files, download their contents concurrently, and hand the
// assembled context to a summarizer.
package summary

// RepoReference identifies a repository by its owner and name.
type RepoReference struct {
	Owner string
	Name  string
}

// String returns the canonical "owner/name" form used in logs and cache keys.
func (r RepoReference) String() string {
	return r.Owner + "/" + r.Name
}

// TreeEntry is one entry of a recursive repository tree listing.
type TreeEntry struct {
	Path string
	Kind EntryKind
}

// EntryKind distinguishes files from directories in a tree listing.
type EntryKind string

// Tree entry kinds as reported by the repository host.
const (
	EntryBlob EntryKind = "blob"
	EntryTree EntryKind = "tree"
)

// FetchedFile pairs a prioritized path with its downloaded content.
// Content is empty when the fetch failed; the pipeline treats that as a
// silently degraded file, never as an error.
type FetchedFile struct {
	Path    string
	Content string
}

// ContextBundle is the assembled input for the summarizer: a flat sorted
// tree listing and a size-bounded concatenation of file contents.
type ContextBundle struct {
	TreeListing string
	ContentBlob string
}

// SummaryResult is the structured output of a summarization run.
type SummaryResult struct {
	Summary      string   `json:"summary"`
	Technologies []string `json:"technologies"`
	Structure    string   `json:"structure"`
}
