package project

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedDocument indicates the data is not a valid project document.
	ErrMalformedDocument = errors.New("malformed project document")

	// ErrUnsupportedVersion indicates a document version this build cannot read.
	ErrUnsupportedVersion = errors.New("unsupported document version")
)

// VersionError reports the version found in a rejected document.
type VersionError struct {
	Version int
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("unsupported document version %d (want %d)", e.Version, Version)
}

func (e *VersionError) Unwrap() error {
	return ErrUnsupportedVersion
}

// FieldError reports a missing or invalid field in a document, named by
// its JSON path.
type FieldError struct {
	Path string
	Err  error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("document field %q: %v", e.Path, e.Err)
}

func (e *FieldError) Unwrap() error {
	return ErrMalformedDocument
}
