package catalog

import "errors"

var (
	// ErrMalformedRepoName indicates a repoName without the "<prefix>." separator.
	ErrMalformedRepoName = errors.New("malformed repository name")

	// ErrMissingField indicates a required top-level catalog field is absent.
	ErrMissingField = errors.New("missing catalog field")

	// ErrInvalidIndex indicates the catalog document is not valid JSON of the expected shape.
	ErrInvalidIndex = errors.New("invalid catalog document")
)
