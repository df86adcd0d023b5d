package history

import (
	"time"

	"github.com/dshills/montage/internal/timeline/keyframe"
	"github.com/dshills/montage/internal/timeline/multitrack"
	"github.com/dshills/montage/internal/timeline/track"
)

// AddKeyframeCommand adds a keyframe to a track property.
type AddKeyframeCommand struct {
	TrackID  track.TrackID
	Property string
	Time     time.Duration
	Value    float64
	Easing   keyframe.Easing
}

// NewAddKeyframeCommand creates a command that adds the keyframe.
func NewAddKeyframeCommand(id track.TrackID, property string, at time.Duration, value float64, easing keyframe.Easing) *AddKeyframeCommand {
	return &AddKeyframeCommand{TrackID: id, Property: property, Time: at, Value: value, Easing: easing}
}

// Execute adds the keyframe, lazily creating the property track.
func (c *AddKeyframeCommand) Execute(tracks *track.List, graph *multitrack.Manager) error {
	t, err := tracks.Track(c.TrackID)
	if err != nil {
		return err
	}
	return t.Keyframes().AddKeyframe(c.Property, c.Time, c.Value, c.Easing)
}

// Undo removes the keyframe again.
func (c *AddKeyframeCommand) Undo(tracks *track.List, graph *multitrack.Manager) error {
	t, err := tracks.Track(c.TrackID)
	if err != nil {
		return err
	}
	_, err = t.Keyframes().RemoveKeyframe(c.Property, c.Time)
	return err
}

// Description returns a human-readable description.
func (c *AddKeyframeCommand) Description() string { return "Add Keyframe" }

// RemoveKeyframeCommand removes a keyframe, remembering the point.
type RemoveKeyframeCommand struct {
	TrackID  track.TrackID
	Property string
	Time     time.Duration

	prev keyframe.Point
}

// NewRemoveKeyframeCommand creates a command that removes the keyframe.
func NewRemoveKeyframeCommand(id track.TrackID, property string, at time.Duration) *RemoveKeyframeCommand {
	return &RemoveKeyframeCommand{TrackID: id, Property: property, Time: at}
}

// Execute removes the keyframe, capturing its value and easing.
func (c *RemoveKeyframeCommand) Execute(tracks *track.List, graph *multitrack.Manager) error {
	t, err := tracks.Track(c.TrackID)
	if err != nil {
		return err
	}
	prev, err := t.Keyframes().RemoveKeyframe(c.Property, c.Time)
	if err != nil {
		return err
	}
	c.prev = prev
	return nil
}

// Undo re-adds the removed keyframe.
func (c *RemoveKeyframeCommand) Undo(tracks *track.List, graph *multitrack.Manager) error {
	t, err := tracks.Track(c.TrackID)
	if err != nil {
		return err
	}
	return t.Keyframes().AddKeyframe(c.Property, c.prev.Time, c.prev.Value, c.prev.Easing)
}

// Description returns a human-readable description.
func (c *RemoveKeyframeCommand) Description() string { return "Remove Keyframe" }

// UpdateKeyframeCommand changes a keyframe's value and easing,
// remembering the previous point.
type UpdateKeyframeCommand struct {
	TrackID  track.TrackID
	Property string
	Time     time.Duration
	Value    float64
	Easing   keyframe.Easing

	prev keyframe.Point
}

// NewUpdateKeyframeCommand creates a command that updates the keyframe.
func NewUpdateKeyframeCommand(id track.TrackID, property string, at time.Duration, value float64, easing keyframe.Easing) *UpdateKeyframeCommand {
	return &UpdateKeyframeCommand{TrackID: id, Property: property, Time: at, Value: value, Easing: easing}
}

// Execute applies the new value and easing, capturing the previous.
func (c *UpdateKeyframeCommand) Execute(tracks *track.List, graph *multitrack.Manager) error {
	t, err := tracks.Track(c.TrackID)
	if err != nil {
		return err
	}
	prev, err := t.Keyframes().UpdateKeyframe(c.Property, c.Time, c.Value, c.Easing)
	if err != nil {
		return err
	}
	c.prev = prev
	return nil
}

// Undo restores the previous value and easing.
func (c *UpdateKeyframeCommand) Undo(tracks *track.List, graph *multitrack.Manager) error {
	t, err := tracks.Track(c.TrackID)
	if err != nil {
		return err
	}
	_, err = t.Keyframes().UpdateKeyframe(c.Property, c.Time, c.prev.Value, c.prev.Easing)
	return err
}

// Description returns a human-readable description.
func (c *UpdateKeyframeCommand) Description() string { return "Update Keyframe" }
