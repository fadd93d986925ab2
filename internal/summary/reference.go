package summary

import "strings"

const hostMarker = "github.com"

// ParseReference extracts the owner and repository name from a GitHub URL.
// It accepts web URLs with or without a trailing slash and clone URLs ending
// in ".git". The owner and name are the two path segments immediately after
// the github.com host segment.
func ParseReference(rawURL string) (RepoReference, error) {
	trimmed := strings.TrimSuffix(rawURL, "/")
	parts := strings.Split(trimmed, "/")

	host := -1
	for i, p := range parts {
		if strings.Contains(p, hostMarker) {
			host = i
			break
		}
	}
	if host < 0 || len(parts) < host+3 {
		return RepoReference{}, InvalidReferenceError{URL: rawURL}
	}

	owner := parts[host+1]
	name := strings.TrimSuffix(parts[host+2], ".git")
	if owner == "" || name == "" {
		return RepoReference{}, InvalidReferenceError{URL: rawURL}
	}

	return RepoReference{Owner: owner, Name: name}, nil
}
