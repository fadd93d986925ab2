package summary

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// TruncationMarker is appended in-band when the content blob is cut to
// respect the summarizer's input-size limit.
const TruncationMarker = "\n...[CONTENT TRUNCATED]..."

// BuildTreeListing renders a flat, lexicographically sorted, newline-joined
// listing of the given paths. A sorted flat list carries the same structural
// signal as a drawn tree and is simpler for the summarizer to consume.
func BuildTreeListing(paths []string) string {
	sorted := slices.Clone(paths)
	sort.Strings(sorted)
	return strings.Join(sorted, "\n")
}

// BuildContext concatenates the fetched files into a single delimited blob,
// bounded by maxChars. Files whose content is blank after trimming are
// skipped — they are the fetches that failed or returned nothing useful.
func BuildContext(treeListing string, files []FetchedFile, maxChars int) ContextBundle {
	var blob strings.Builder
	for _, f := range files {
		if strings.TrimSpace(f.Content) == "" {
			continue
		}
		fmt.Fprintf(&blob, "\n\n--- FILE: %s ---\n%s\n", f.Path, f.Content)
	}

	content := blob.String()
	if len(content) > maxChars {
		content = content[:maxChars] + TruncationMarker
	}

	return ContextBundle{TreeListing: treeListing, ContentBlob: content}
}
