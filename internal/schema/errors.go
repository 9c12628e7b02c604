package schema

import "errors"

var (
	// ErrEmptyDocument indicates a model document without a top-level key.
	ErrEmptyDocument = errors.New("empty model document")

	// ErrUnexpectedShape indicates a model document that does not have the
	// expected structure.
	ErrUnexpectedShape = errors.New("unexpected model document shape")
)
