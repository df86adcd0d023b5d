package history

import (
	"fmt"

	"github.com/dshills/montage/internal/timeline/multitrack"
	"github.com/dshills/montage/internal/timeline/track"
)

// AddTrackCommand adds a new track to the timeline. The track is
// created once, on the first Execute, so redo re-adds the same id.
type AddTrackCommand struct {
	Kind track.Kind
	Name string

	created *track.Track
}

// NewAddTrackCommand creates a command that adds a track.
func NewAddTrackCommand(kind track.Kind, name string) *AddTrackCommand {
	return &AddTrackCommand{Kind: kind, Name: name}
}

// Execute appends the track to the list.
func (c *AddTrackCommand) Execute(tracks *track.List, graph *multitrack.Manager) error {
	if c.created == nil {
		c.created = track.New(c.Kind, c.Name)
	}
	return tracks.Append(c.created)
}

// Undo removes the track again.
func (c *AddTrackCommand) Undo(tracks *track.List, graph *multitrack.Manager) error {
	if c.created == nil {
		return fmt.Errorf("add track was never executed")
	}
	_, _, err := tracks.Remove(c.created.ID)
	return err
}

// Description returns a human-readable description.
func (c *AddTrackCommand) Description() string { return "Add Track" }

// Track returns the track created by the command, once executed.
func (c *AddTrackCommand) Track() *track.Track { return c.created }

// RemoveTrackCommand removes a whole track, remembering the track, its
// index, and every relationship edge touching it.
type RemoveTrackCommand struct {
	TrackID track.TrackID

	removed *track.Track
	index   int
	edges   []multitrack.Edge
}

// NewRemoveTrackCommand creates a command that removes the track.
func NewRemoveTrackCommand(id track.TrackID) *RemoveTrackCommand {
	return &RemoveTrackCommand{TrackID: id}
}

// Execute purges the track's relationships and removes the track,
// capturing everything needed to restore both.
func (c *RemoveTrackCommand) Execute(tracks *track.List, graph *multitrack.Manager) error {
	if !tracks.Contains(c.TrackID) {
		return fmt.Errorf("%w: %s", track.ErrTrackNotFound, c.TrackID)
	}
	c.edges = graph.RemoveTrack(c.TrackID)
	removed, index, err := tracks.Remove(c.TrackID)
	if err != nil {
		graph.Restore(c.edges)
		return err
	}
	c.removed = removed
	c.index = index
	return nil
}

// Undo re-inserts the track at its original index and restores its
// relationship edges.
func (c *RemoveTrackCommand) Undo(tracks *track.List, graph *multitrack.Manager) error {
	if c.removed == nil {
		return fmt.Errorf("remove track %s was never executed", c.TrackID)
	}
	if err := tracks.InsertAt(c.index, c.removed); err != nil {
		return err
	}
	graph.Restore(c.edges)
	return nil
}

// Description returns a human-readable description.
func (c *RemoveTrackCommand) Description() string { return "Remove Track" }

// SetTrackNameCommand renames a track, remembering the previous name.
type SetTrackNameCommand struct {
	TrackID track.TrackID
	Name    string

	prev string
}

// NewSetTrackNameCommand creates a command that renames the track.
func NewSetTrackNameCommand(id track.TrackID, name string) *SetTrackNameCommand {
	return &SetTrackNameCommand{TrackID: id, Name: name}
}

// Execute captures the previous name and applies the new one.
func (c *SetTrackNameCommand) Execute(tracks *track.List, graph *multitrack.Manager) error {
	t, err := tracks.Track(c.TrackID)
	if err != nil {
		return err
	}
	c.prev = t.Name
	t.Name = c.Name
	return nil
}

// Undo restores the previous name.
func (c *SetTrackNameCommand) Undo(tracks *track.List, graph *multitrack.Manager) error {
	t, err := tracks.Track(c.TrackID)
	if err != nil {
		return err
	}
	t.Name = c.prev
	return nil
}

// Description returns a human-readable description.
func (c *SetTrackNameCommand) Description() string { return "Rename Track" }

// SetTrackMutedCommand toggles a track's muted flag, remembering the
// previous value.
type SetTrackMutedCommand struct {
	TrackID track.TrackID
	Muted   bool

	prev bool
}

// NewSetTrackMutedCommand creates a command that sets the muted flag.
func NewSetTrackMutedCommand(id track.TrackID, muted bool) *SetTrackMutedCommand {
	return &SetTrackMutedCommand{TrackID: id, Muted: muted}
}

// Execute captures the previous flag and applies the new one.
func (c *SetTrackMutedCommand) Execute(tracks *track.List, graph *multitrack.Manager) error {
	t, err := tracks.Track(c.TrackID)
	if err != nil {
		return err
	}
	c.prev = t.Muted
	t.Muted = c.Muted
	return nil
}

// Undo restores the previous flag.
func (c *SetTrackMutedCommand) Undo(tracks *track.List, graph *multitrack.Manager) error {
	t, err := tracks.Track(c.TrackID)
	if err != nil {
		return err
	}
	t.Muted = c.prev
	return nil
}

// Description returns a human-readable description.
func (c *SetTrackMutedCommand) Description() string {
	if c.Muted {
		return "Mute Track"
	}
	return "Unmute Track"
}

// SetTrackLockedCommand toggles a track's locked flag, remembering the
// previous value.
type SetTrackLockedCommand struct {
	TrackID track.TrackID
	Locked  bool

	prev bool
}

// NewSetTrackLockedCommand creates a command that sets the locked flag.
func NewSetTrackLockedCommand(id track.TrackID, locked bool) *SetTrackLockedCommand {
	return &SetTrackLockedCommand{TrackID: id, Locked: locked}
}

// Execute captures the previous flag and applies the new one.
func (c *SetTrackLockedCommand) Execute(tracks *track.List, graph *multitrack.Manager) error {
	t, err := tracks.Track(c.TrackID)
	if err != nil {
		return err
	}
	c.prev = t.Locked
	t.Locked = c.Locked
	return nil
}

// Undo restores the previous flag.
func (c *SetTrackLockedCommand) Undo(tracks *track.List, graph *multitrack.Manager) error {
	t, err := tracks.Track(c.TrackID)
	if err != nil {
		return err
	}
	t.Locked = c.prev
	return nil
}

// Description returns a human-readable description.
func (c *SetTrackLockedCommand) Description() string {
	if c.Locked {
		return "Lock Track"
	}
	return "Unlock Track"
}
