// Package project persists timelines as versioned JSON documents.
//
// A document carries a format version, the track list with clips and
// keyframes, and the relationship edges between tracks. Durations are
// stored as integer nanoseconds. Loading rebuilds the timeline with an
// empty undo history.
package project
