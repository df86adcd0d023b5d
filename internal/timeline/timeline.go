package timeline

import (
	"time"

	"github.com/dshills/montage/internal/timeline/history"
	"github.com/dshills/montage/internal/timeline/keyframe"
	"github.com/dshills/montage/internal/timeline/multitrack"
	"github.com/dshills/montage/internal/timeline/track"
)

// Re-export commonly used types for convenience.
type (
	// TrackID identifies a track.
	TrackID = track.TrackID

	// ClipID identifies a clip.
	ClipID = track.ClipID

	// AssetID identifies a media asset.
	AssetID = track.AssetID

	// Clip is a placed slice of an asset.
	Clip = track.Clip

	// Track is an ordered, non-overlapping clip sequence.
	Track = track.Track

	// Kind categorizes track media.
	Kind = track.Kind

	// Relationship types a dependency edge between tracks.
	Relationship = multitrack.Relationship

	// Easing selects a keyframe interpolation law.
	Easing = keyframe.Easing

	// Command is a reversible timeline edit.
	Command = history.Command
)

// Timeline is the addressable document: the track list, the dependency
// graph between tracks, and the edit history.
type Timeline struct {
	tracks  *track.List
	graph   *multitrack.Manager
	history *history.History

	maxUndoEntries int
}

// New creates an empty timeline.
func New(opts ...Option) *Timeline {
	tl := &Timeline{
		tracks:         track.NewList(),
		graph:          multitrack.NewManager(),
		maxUndoEntries: history.DefaultMaxEntries,
	}
	for _, opt := range opts {
		opt(tl)
	}
	tl.history = history.New(tl.maxUndoEntries)
	return tl
}

// Apply executes a command against the document and records it on
// success. This is the single mutation entry point; every convenience
// method goes through it.
func (tl *Timeline) Apply(cmd Command) error {
	return tl.history.Execute(cmd, tl.tracks, tl.graph)
}

// Transaction runs fn with a history transaction open so every command
// applied inside becomes one undo unit. If fn fails the pending group
// is discarded; commands already applied stay applied.
func (tl *Timeline) Transaction(description string, fn func() error) error {
	return tl.history.Transaction(description, fn)
}

// Undo reverses the most recent history entry.
func (tl *Timeline) Undo() error {
	return tl.history.Undo(tl.tracks, tl.graph)
}

// Redo re-applies the most recently undone entry.
func (tl *Timeline) Redo() error {
	return tl.history.Redo(tl.tracks, tl.graph)
}

// CanUndo reports whether an undo entry is available.
func (tl *Timeline) CanUndo() bool { return tl.history.CanUndo() }

// CanRedo reports whether a redo entry is available.
func (tl *Timeline) CanRedo() bool { return tl.history.CanRedo() }

// Tracks returns the tracks in order.
func (tl *Timeline) Tracks() []*Track {
	return tl.tracks.Tracks()
}

// Track returns the track with the given id.
func (tl *Timeline) Track(id TrackID) (*Track, error) {
	return tl.tracks.Track(id)
}

// TrackList exposes the underlying list for collaborators that manage
// their own history.
func (tl *Timeline) TrackList() *track.List { return tl.tracks }

// Graph exposes the dependency graph for enumeration.
func (tl *Timeline) Graph() *multitrack.Manager { return tl.graph }

// History exposes the edit history.
func (tl *Timeline) History() *history.History { return tl.history }

// Duration returns the end of the last clip across all tracks.
func (tl *Timeline) Duration() time.Duration {
	var max time.Duration
	for _, t := range tl.tracks.Tracks() {
		if end := t.End(); end > max {
			max = end
		}
	}
	return max
}

// AddTrack creates a track of the given kind and records the edit.
func (tl *Timeline) AddTrack(kind Kind, name string) (*Track, error) {
	cmd := history.NewAddTrackCommand(kind, name)
	if err := tl.Apply(cmd); err != nil {
		return nil, err
	}
	return cmd.Track(), nil
}

// RemoveTrack removes a track, dropping its relationships first. Undo
// restores the track, its clips, and its relationship edges.
func (tl *Timeline) RemoveTrack(id TrackID) error {
	return tl.Apply(history.NewRemoveTrackCommand(id))
}

// SetTrackName renames a track.
func (tl *Timeline) SetTrackName(id TrackID, name string) error {
	return tl.Apply(history.NewSetTrackNameCommand(id, name))
}

// SetTrackMuted sets a track's muted flag.
func (tl *Timeline) SetTrackMuted(id TrackID, muted bool) error {
	return tl.Apply(history.NewSetTrackMutedCommand(id, muted))
}

// SetTrackLocked sets a track's locked flag.
func (tl *Timeline) SetTrackLocked(id TrackID, locked bool) error {
	return tl.Apply(history.NewSetTrackLockedCommand(id, locked))
}

// AddClip adds a clip to a track.
func (tl *Timeline) AddClip(trackID TrackID, clip *Clip) error {
	return tl.Apply(history.NewAddClipCommand(trackID, clip))
}

// RemoveClip removes a clip from a track.
func (tl *Timeline) RemoveClip(trackID TrackID, clipID ClipID) error {
	return tl.Apply(history.NewRemoveClipCommand(trackID, clipID))
}

// SetClipDuration changes a clip's duration.
func (tl *Timeline) SetClipDuration(trackID TrackID, clipID ClipID, d time.Duration) error {
	return tl.Apply(history.NewSetClipDurationCommand(trackID, clipID, d))
}

// SetClipPosition moves a clip along its own track.
func (tl *Timeline) SetClipPosition(trackID TrackID, clipID ClipID, p time.Duration) error {
	return tl.Apply(history.NewSetClipPositionCommand(trackID, clipID, p))
}

// AddRelationship adds a typed dependency edge between two tracks,
// rejecting edges that would close a cycle.
func (tl *Timeline) AddRelationship(source, target TrackID, rel Relationship) error {
	return tl.Apply(history.NewAddRelationshipCommand(source, target, rel))
}

// RemoveRelationship removes the edge between two tracks.
func (tl *Timeline) RemoveRelationship(source, target TrackID) error {
	return tl.Apply(history.NewRemoveRelationshipCommand(source, target))
}

// UpdateRelationship changes the kind of an existing edge.
func (tl *Timeline) UpdateRelationship(source, target TrackID, rel Relationship) error {
	return tl.Apply(history.NewUpdateRelationshipCommand(source, target, rel))
}

// AddKeyframe adds a keyframe to a track property.
func (tl *Timeline) AddKeyframe(trackID TrackID, property string, at time.Duration, value float64, easing Easing) error {
	return tl.Apply(history.NewAddKeyframeCommand(trackID, property, at, value, easing))
}

// RemoveKeyframe removes a track property keyframe.
func (tl *Timeline) RemoveKeyframe(trackID TrackID, property string, at time.Duration) error {
	return tl.Apply(history.NewRemoveKeyframeCommand(trackID, property, at))
}

// UpdateKeyframe changes a keyframe's value and easing.
func (tl *Timeline) UpdateKeyframe(trackID TrackID, property string, at time.Duration, value float64, easing Easing) error {
	return tl.Apply(history.NewUpdateKeyframeCommand(trackID, property, at, value, easing))
}

// KeyframeValueAt evaluates a track property at the given time.
func (tl *Timeline) KeyframeValueAt(trackID TrackID, property string, at time.Duration) (float64, error) {
	t, err := tl.tracks.Track(trackID)
	if err != nil {
		return 0, err
	}
	return t.Keyframes().ValueAt(property, at)
}

// EditTrack applies fn to one track and propagates the derived effects
// to its dependents per relationship kind. The edit itself bypasses the
// history; callers that need undo should use commands instead.
func (tl *Timeline) EditTrack(id TrackID, fn multitrack.EditFunc) error {
	return tl.graph.ApplyEdit(id, fn, tl.tracks)
}
