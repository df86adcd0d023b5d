package timeline

import "errors"

// Errors returned by timeline operations.
var (
	// ErrKindMismatch indicates a clip move between tracks of different
	// kinds.
	ErrKindMismatch = errors.New("track kind mismatch")

	// ErrInvalidSplit indicates a split position outside the clip's
	// open interval.
	ErrInvalidSplit = errors.New("split position outside clip")

	// ErrNotAdjacent indicates a merge of clips that are not exactly
	// adjacent.
	ErrNotAdjacent = errors.New("clips are not adjacent")

	// ErrAssetMismatch indicates a merge of clips referencing different
	// assets.
	ErrAssetMismatch = errors.New("clips reference different assets")
)
