package track

import (
	"errors"
	"fmt"
	"time"
)

// Errors returned by track and clip operations.
var (
	// ErrTrackNotFound indicates the track id is not in the list.
	ErrTrackNotFound = errors.New("track not found")

	// ErrClipNotFound indicates the clip id is not on the track.
	ErrClipNotFound = errors.New("clip not found")

	// ErrDuplicateClip indicates a clip with the same id already exists.
	ErrDuplicateClip = errors.New("duplicate clip id")

	// ErrDuplicateTrack indicates a track with the same id already exists.
	ErrDuplicateTrack = errors.New("duplicate track id")

	// ErrClipOverlap indicates a clip would overlap an existing clip.
	ErrClipOverlap = errors.New("clip overlap")

	// ErrInvalidClip indicates clip fields violate an invariant.
	ErrInvalidClip = errors.New("invalid clip")
)

// OverlapError reports the position at which an insert or move collided
// with an existing clip.
type OverlapError struct {
	Position time.Duration
}

// Error implements the error interface.
func (e *OverlapError) Error() string {
	return fmt.Sprintf("clip overlap at %s", e.Position)
}

// Unwrap returns ErrClipOverlap so callers can match with errors.Is.
func (e *OverlapError) Unwrap() error {
	return ErrClipOverlap
}
