package summary

import (
	ignore "github.com/sabhiram/go-gitignore"
)

// PathFilter drops noise paths using gitignore-style exclusion patterns.
type PathFilter struct {
	matcher *ignore.GitIgnore
}

// NewPathFilter compiles the given exclusion patterns. Pattern semantics
// match .gitignore: "*" and "**" globs, and trailing-"/" rules that anchor
// whole directories.
func NewPathFilter(patterns []string) *PathFilter {
	return &PathFilter{matcher: ignore.CompileIgnoreLines(patterns...)}
}

// Apply returns the paths that match no exclusion pattern, preserving the
// input order. It never mutates its input.
func (f *PathFilter) Apply(paths []string) []string {
	kept := make([]string, 0, len(paths))
	for _, p := range paths {
		if !f.matcher.MatchesPath(p) {
			kept = append(kept, p)
		}
	}
	return kept
}
