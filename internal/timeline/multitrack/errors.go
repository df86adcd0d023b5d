package multitrack

import (
	"errors"
	"fmt"

	"github.com/dshills/montage/internal/timeline/track"
)

// Errors returned by relationship operations.
var (
	// ErrTrackNotFound indicates a relationship endpoint does not exist.
	ErrTrackNotFound = errors.New("track not found")

	// ErrSelfRelationship indicates source and target are the same track.
	ErrSelfRelationship = errors.New("track cannot depend on itself")

	// ErrRelationshipNotFound indicates no edge exists between the tracks.
	ErrRelationshipNotFound = errors.New("relationship not found")

	// ErrCircularDependency indicates the edge would close a cycle.
	ErrCircularDependency = errors.New("circular dependency")

	// ErrConflictingRelationship indicates an edge already exists between
	// the tracks.
	ErrConflictingRelationship = errors.New("conflicting relationship")

	// ErrInvalidTrackState indicates a track cannot accept the requested
	// edit in its current state.
	ErrInvalidTrackState = errors.New("invalid track state")
)

// CycleError reports the edge that was rejected because it would close
// a cycle.
type CycleError struct {
	Source track.TrackID
	Target track.TrackID
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return fmt.Sprintf("circular dependency: %s -> %s", e.Source, e.Target)
}

// Unwrap returns ErrCircularDependency so callers can match with
// errors.Is.
func (e *CycleError) Unwrap() error {
	return ErrCircularDependency
}

// ConflictError reports an edge that already exists between two tracks.
type ConflictError struct {
	Source   track.TrackID
	Target   track.TrackID
	Existing Relationship
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicting relationship: %s -> %s already %s", e.Source, e.Target, e.Existing)
}

// Unwrap returns ErrConflictingRelationship so callers can match with
// errors.Is.
func (e *ConflictError) Unwrap() error {
	return ErrConflictingRelationship
}

// InvalidStateError reports a track that rejected an edit.
type InvalidStateError struct {
	ID     track.TrackID
	Reason string
}

// Error implements the error interface.
func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid track state: %s: %s", e.ID, e.Reason)
}

// Unwrap returns ErrInvalidTrackState so callers can match with
// errors.Is.
func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidTrackState
}
