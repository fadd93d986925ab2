package summary

import "fmt"

// InvalidReferenceError is returned when the input string cannot be parsed
// into an owner/name repository reference.
type InvalidReferenceError struct {
	URL string
}

// Error implements the error interface.
func (e InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid repository URL %q", e.URL)
}

// RemoteAccessError is returned when a metadata or tree request to the
// repository host fails. Content fetch failures are absorbed by the
// pipeline and never wrapped in this type.
type RemoteAccessError struct {
	Ref RepoReference
	Op  string
	Err error
}

// Error implements the error interface.
func (e RemoteAccessError) Error() string {
	return fmt.Sprintf("%s for %s: %v", e.Op, e.Ref, e.Err)
}

// Unwrap returns the underlying host error.
func (e RemoteAccessError) Unwrap() error {
	return e.Err
}

// SummarizationError is returned when the summarizer produces an empty or
// malformed result.
type SummarizationError struct {
	Err error
}

// Error implements the error interface.
func (e SummarizationError) Error() string {
	return fmt.Sprintf("generate summary: %v", e.Err)
}

// Unwrap returns the underlying summarizer error.
func (e SummarizationError) Unwrap() error {
	return e.Err
}
