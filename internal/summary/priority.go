package summary

import (
	"slices"
	"sort"
	"strings"
)

// PrioritizePaths selects at most rules.MaxFiles unique paths from the
// filtered set, ordered by summarization signal. Selection runs in three
// tiers over a lexicographically sorted copy of the input, so the output is
// deterministic regardless of the order the host returned the listing in:
//
//  1. documentation and dependency manifests (rules.KeyFiles, plus any name
//     containing "readme"),
//  2. entrypoint files (rules.EntrypointNames) no deeper than
//     rules.MaxEntrypointDepth segments,
//  3. any file with a recognized source extension, until the budget is full.
func PrioritizePaths(paths []string, rules Rules) []string {
	sorted := slices.Clone(paths)
	sort.Strings(sorted)

	selected := make([]string, 0, rules.MaxFiles)
	seen := make(map[string]struct{}, rules.MaxFiles)
	take := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		selected = append(selected, p)
	}

	// Tier 1: manifests and docs.
	for _, p := range sorted {
		name := baseName(p)
		if slices.Contains(rules.KeyFiles, name) || strings.Contains(strings.ToLower(name), "readme") {
			take(p)
		}
	}

	// Tier 2: shallow entrypoints.
	for _, p := range sorted {
		depth := strings.Count(p, "/") + 1
		if depth <= rules.MaxEntrypointDepth && slices.Contains(rules.EntrypointNames, baseName(p)) {
			take(p)
		}
	}

	// Tier 3: general source files up to the budget.
	for _, p := range sorted {
		if len(selected) >= rules.MaxFiles {
			break
		}
		for _, ext := range rules.SourceExtensions {
			if strings.HasSuffix(p, ext) {
				take(p)
				break
			}
		}
	}

	// Tiers 1+2 alone may overshoot the budget; the cut applies to the
	// merged selection, so earlier tier-1 matches win over later ones.
	if len(selected) > rules.MaxFiles {
		selected = selected[:rules.MaxFiles]
	}
	return selected
}

func baseName(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}
