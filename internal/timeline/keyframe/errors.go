package keyframe

import (
	"errors"
	"fmt"
	"time"
)

// Errors returned by keyframe operations.
var (
	// ErrInvalidTime indicates a negative keyframe time.
	ErrInvalidTime = errors.New("invalid keyframe time")

	// ErrDuplicateKeyframe indicates a keyframe already exists at the time.
	ErrDuplicateKeyframe = errors.New("duplicate keyframe")

	// ErrPropertyNotFound indicates no keyframes exist for the property.
	ErrPropertyNotFound = errors.New("property not found")

	// ErrKeyframeNotFound indicates no keyframe exists at the exact time.
	ErrKeyframeNotFound = errors.New("keyframe not found")

	// ErrNoKeyframes indicates the property track is empty.
	ErrNoKeyframes = errors.New("no keyframes")
)

// DuplicateError reports the time at which a keyframe already exists.
type DuplicateError struct {
	Time time.Duration
}

// Error implements the error interface.
func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate keyframe at %s", e.Time)
}

// Unwrap returns ErrDuplicateKeyframe so callers can match with errors.Is.
func (e *DuplicateError) Unwrap() error {
	return ErrDuplicateKeyframe
}
