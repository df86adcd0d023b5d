package history

import (
	"fmt"
	"time"

	"github.com/dshills/montage/internal/timeline/multitrack"
	"github.com/dshills/montage/internal/timeline/track"
)

// Command represents a reversible timeline edit.
type Command interface {
	// Execute performs the edit and returns an error if it fails.
	Execute(tracks *track.List, graph *multitrack.Manager) error

	// Undo reverses the edit and returns an error if it fails.
	Undo(tracks *track.List, graph *multitrack.Manager) error

	// Description returns a human-readable description of the edit.
	Description() string
}

// AddClipCommand adds a clip to a track.
type AddClipCommand struct {
	TrackID track.TrackID
	Clip    *track.Clip
}

// NewAddClipCommand creates a command that adds clip to the track.
func NewAddClipCommand(trackID track.TrackID, clip *track.Clip) *AddClipCommand {
	return &AddClipCommand{TrackID: trackID, Clip: clip}
}

// Execute adds the clip, enforcing the overlap invariant.
func (c *AddClipCommand) Execute(tracks *track.List, graph *multitrack.Manager) error {
	t, err := tracks.Track(c.TrackID)
	if err != nil {
		return err
	}
	return t.AddClip(c.Clip)
}

// Undo removes the clip again.
func (c *AddClipCommand) Undo(tracks *track.List, graph *multitrack.Manager) error {
	t, err := tracks.Track(c.TrackID)
	if err != nil {
		return err
	}
	_, _, err = t.RemoveClip(c.Clip.ID)
	return err
}

// Description returns a human-readable description.
func (c *AddClipCommand) Description() string { return "Add Clip" }

// RemoveClipCommand removes a clip from a track, remembering the clip
// and its index for exact re-insertion.
type RemoveClipCommand struct {
	TrackID track.TrackID
	ClipID  track.ClipID

	removed *track.Clip
	index   int
}

// NewRemoveClipCommand creates a command that removes the clip.
func NewRemoveClipCommand(trackID track.TrackID, clipID track.ClipID) *RemoveClipCommand {
	return &RemoveClipCommand{TrackID: trackID, ClipID: clipID}
}

// Execute removes the clip, capturing it and its original index.
func (c *RemoveClipCommand) Execute(tracks *track.List, graph *multitrack.Manager) error {
	t, err := tracks.Track(c.TrackID)
	if err != nil {
		return err
	}
	clip, index, err := t.RemoveClip(c.ClipID)
	if err != nil {
		return err
	}
	c.removed = clip
	c.index = index
	return nil
}

// Undo re-inserts the removed clip at its original index.
func (c *RemoveClipCommand) Undo(tracks *track.List, graph *multitrack.Manager) error {
	if c.removed == nil {
		return fmt.Errorf("remove clip %s was never executed", c.ClipID)
	}
	t, err := tracks.Track(c.TrackID)
	if err != nil {
		return err
	}
	return t.InsertClipAt(c.index, c.removed)
}

// Description returns a human-readable description.
func (c *RemoveClipCommand) Description() string { return "Remove Clip" }

// MoveClipCommand moves a clip to another track (or repositions it on
// the same track), remembering the original track, position, and index.
type MoveClipCommand struct {
	SourceTrack track.TrackID
	TargetTrack track.TrackID
	ClipID      track.ClipID
	// NewPosition, when non-nil, repositions the clip during the move.
	NewPosition *time.Duration

	origPosition time.Duration
	origIndex    int
	moved        *track.Clip
}

// NewMoveClipCommand creates a command that moves the clip between
// tracks, optionally repositioning it.
func NewMoveClipCommand(source, target track.TrackID, clipID track.ClipID, newPosition *time.Duration) *MoveClipCommand {
	return &MoveClipCommand{
		SourceTrack: source,
		TargetTrack: target,
		ClipID:      clipID,
		NewPosition: newPosition,
	}
}

// Execute moves the clip. Both tracks must carry the same kind. On an
// overlap conflict in the target the clip is restored to the source
// track before the error is returned.
func (c *MoveClipCommand) Execute(tracks *track.List, graph *multitrack.Manager) error {
	src, err := tracks.Track(c.SourceTrack)
	if err != nil {
		return err
	}
	dst, err := tracks.Track(c.TargetTrack)
	if err != nil {
		return err
	}
	if src.Kind != dst.Kind {
		return fmt.Errorf("cannot move clip between %s and %s tracks", src.Kind, dst.Kind)
	}
	clip, index, err := src.RemoveClip(c.ClipID)
	if err != nil {
		return err
	}
	c.moved = clip
	c.origPosition = clip.Position
	c.origIndex = index
	if c.NewPosition != nil {
		clip.Position = *c.NewPosition
	}
	if err := dst.AddClip(clip); err != nil {
		// Put the clip back where it was before reporting the conflict.
		clip.Position = c.origPosition
		if restoreErr := src.InsertClipAt(c.origIndex, clip); restoreErr != nil {
			return fmt.Errorf("move clip failed and restore failed: %v: %w", restoreErr, err)
		}
		return err
	}
	return nil
}

// Undo moves the clip back to its original track and position.
func (c *MoveClipCommand) Undo(tracks *track.List, graph *multitrack.Manager) error {
	if c.moved == nil {
		return fmt.Errorf("move clip %s was never executed", c.ClipID)
	}
	src, err := tracks.Track(c.SourceTrack)
	if err != nil {
		return err
	}
	dst, err := tracks.Track(c.TargetTrack)
	if err != nil {
		return err
	}
	clip, _, err := dst.RemoveClip(c.ClipID)
	if err != nil {
		return err
	}
	clip.Position = c.origPosition
	return src.InsertClipAt(c.origIndex, clip)
}

// Description returns a human-readable description.
func (c *MoveClipCommand) Description() string { return "Move Clip" }

// SetClipDurationCommand changes a clip's duration, remembering the
// previous value.
type SetClipDurationCommand struct {
	TrackID  track.TrackID
	ClipID   track.ClipID
	Duration time.Duration

	prev time.Duration
}

// NewSetClipDurationCommand creates a command that sets the clip's
// duration.
func NewSetClipDurationCommand(trackID track.TrackID, clipID track.ClipID, duration time.Duration) *SetClipDurationCommand {
	return &SetClipDurationCommand{TrackID: trackID, ClipID: clipID, Duration: duration}
}

// Execute captures the previous duration and applies the new one.
func (c *SetClipDurationCommand) Execute(tracks *track.List, graph *multitrack.Manager) error {
	t, err := tracks.Track(c.TrackID)
	if err != nil {
		return err
	}
	clip, err := t.Clip(c.ClipID)
	if err != nil {
		return err
	}
	prev := clip.Duration
	if err := t.SetClipDuration(c.ClipID, c.Duration); err != nil {
		return err
	}
	c.prev = prev
	return nil
}

// Undo restores the previous duration.
func (c *SetClipDurationCommand) Undo(tracks *track.List, graph *multitrack.Manager) error {
	t, err := tracks.Track(c.TrackID)
	if err != nil {
		return err
	}
	return t.SetClipDuration(c.ClipID, c.prev)
}

// Description returns a human-readable description.
func (c *SetClipDurationCommand) Description() string { return "Set Clip Duration" }

// SetClipPositionCommand moves a clip along its own track, remembering
// the previous position.
type SetClipPositionCommand struct {
	TrackID  track.TrackID
	ClipID   track.ClipID
	Position time.Duration

	prev time.Duration
}

// NewSetClipPositionCommand creates a command that sets the clip's
// position.
func NewSetClipPositionCommand(trackID track.TrackID, clipID track.ClipID, position time.Duration) *SetClipPositionCommand {
	return &SetClipPositionCommand{TrackID: trackID, ClipID: clipID, Position: position}
}

// Execute captures the previous position and applies the new one.
func (c *SetClipPositionCommand) Execute(tracks *track.List, graph *multitrack.Manager) error {
	t, err := tracks.Track(c.TrackID)
	if err != nil {
		return err
	}
	clip, err := t.Clip(c.ClipID)
	if err != nil {
		return err
	}
	prev := clip.Position
	if err := t.SetClipPosition(c.ClipID, c.Position); err != nil {
		return err
	}
	c.prev = prev
	return nil
}

// Undo restores the previous position.
func (c *SetClipPositionCommand) Undo(tracks *track.List, graph *multitrack.Manager) error {
	t, err := tracks.Track(c.TrackID)
	if err != nil {
		return err
	}
	return t.SetClipPosition(c.ClipID, c.prev)
}

// Description returns a human-readable description.
func (c *SetClipPositionCommand) Description() string { return "Set Clip Position" }

// CompoundCommand groups multiple commands as one undo unit.
type CompoundCommand struct {
	Name     string
	Commands []Command
}

// NewCompoundCommand creates a new compound command.
func NewCompoundCommand(name string, commands ...Command) *CompoundCommand {
	return &CompoundCommand{Name: name, Commands: commands}
}

// Execute runs all commands in order. If one fails, the commands
// already run are undone in reverse order before the error is returned.
func (c *CompoundCommand) Execute(tracks *track.List, graph *multitrack.Manager) error {
	for i, cmd := range c.Commands {
		if err := cmd.Execute(tracks, graph); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = c.Commands[j].Undo(tracks, graph)
			}
			return fmt.Errorf("compound command %q step %d: %w", c.Name, i, err)
		}
	}
	return nil
}

// Undo reverses all commands in reverse order.
func (c *CompoundCommand) Undo(tracks *track.List, graph *multitrack.Manager) error {
	for i := len(c.Commands) - 1; i >= 0; i-- {
		if err := c.Commands[i].Undo(tracks, graph); err != nil {
			return fmt.Errorf("undo compound command %q step %d: %w", c.Name, i, err)
		}
	}
	return nil
}

// Description returns the compound command's name.
func (c *CompoundCommand) Description() string {
	if c.Name != "" {
		return c.Name
	}
	if len(c.Commands) == 1 {
		return c.Commands[0].Description()
	}
	return fmt.Sprintf("%d operations", len(c.Commands))
}

// Add appends a command to the group.
func (c *CompoundCommand) Add(cmd Command) {
	c.Commands = append(c.Commands, cmd)
}

// IsEmpty reports whether the group has no commands.
func (c *CompoundCommand) IsEmpty() bool {
	return len(c.Commands) == 0
}
