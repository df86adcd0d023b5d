package multitrack

import (
	"fmt"
	"time"

	"github.com/dshills/montage/internal/timeline/track"
)

// EditFunc mutates a single track during ApplyEdit.
type EditFunc func(*track.Track) error

// trackState is the snapshot taken around an edit so propagation can
// derive what changed.
type trackState struct {
	end    time.Duration
	muted  bool
	locked bool
}

func snapshot(t *track.Track) trackState {
	return trackState{end: t.End(), muted: t.Muted, locked: t.Locked}
}

// ApplyEdit applies fn to the track and then re-derives the state of
// every transitive dependent according to its relationship kind. A
// locked track rejects the edit. A track already affected in this pass
// is not visited again, so propagation terminates even if the static
// acyclicity invariant were ever violated.
func (m *Manager) ApplyEdit(id track.TrackID, fn EditFunc, tracks *track.List) error {
	edited, err := tracks.Track(id)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrTrackNotFound, id)
	}
	if edited.Locked {
		return &InvalidStateError{ID: id, Reason: "track is locked"}
	}
	before := snapshot(edited)
	if err := fn(edited); err != nil {
		return err
	}
	affected := map[track.TrackID]bool{id: true}
	m.propagate(id, before, snapshot(edited), tracks, affected)
	return nil
}

// propagate walks the dependents of source, applies the derived effect
// for each relationship kind, then recurses into each dependent.
func (m *Manager) propagate(source track.TrackID, before, after trackState, tracks *track.List, affected map[track.TrackID]bool) {
	src, err := tracks.Track(source)
	if err != nil {
		// Source removed by the edit itself; nothing to derive from it.
		return
	}
	for _, depID := range m.DependentsOf(source) {
		if affected[depID] {
			continue
		}
		dep, err := tracks.Track(depID)
		if err != nil {
			continue
		}
		affected[depID] = true
		depBefore := snapshot(dep)
		switch m.forward[source][depID] {
		case Locked:
			synchronizeLocked(src, dep)
		case TimingDependent:
			updateTiming(before, after, dep)
		case VisibilityDependent:
			updateVisibility(src, dep)
		}
		m.propagate(depID, depBefore, snapshot(dep), tracks, affected)
	}
}

// synchronizeLocked mirrors the source's muted and locked flags onto
// the dependent.
func synchronizeLocked(src, dep *track.Track) {
	dep.Muted = src.Muted
	dep.Locked = src.Locked
}

// updateTiming shifts the dependent's clips by the change in the source
// track's end time. A shift that would push a clip before zero leaves
// the dependent untouched rather than clamping it.
func updateTiming(before, after trackState, dep *track.Track) {
	delta := after.end - before.end
	if delta == 0 {
		return
	}
	_ = dep.ShiftClips(delta)
}

// updateVisibility makes the dependent's muted flag follow the source's.
func updateVisibility(src, dep *track.Track) {
	dep.Muted = src.Muted
}
