package track

import (
	"fmt"
	"sort"
	"time"

	"github.com/dshills/montage/internal/timeline/keyframe"
)

// Kind categorizes the media a track carries.
type Kind int

const (
	// Video tracks carry picture clips.
	Video Kind = iota
	// Audio tracks carry sound clips.
	Audio
	// Subtitle tracks carry text clips.
	Subtitle
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case Video:
		return "video"
	case Audio:
		return "audio"
	case Subtitle:
		return "subtitle"
	default:
		return "unknown"
	}
}

// ParseKind parses the string form produced by String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "video":
		return Video, nil
	case "audio":
		return Audio, nil
	case "subtitle":
		return Subtitle, nil
	default:
		return 0, fmt.Errorf("unknown track kind %q", s)
	}
}

// Track is an ordered, non-overlapping sequence of clips of one kind.
// Clips are kept sorted by position after every mutation.
type Track struct {
	ID     TrackID
	Kind   Kind
	Name   string
	Muted  bool
	Locked bool

	clips     []*Clip
	keyframes *keyframe.Animation
}

// New creates an empty track with a fresh id.
func New(kind Kind, name string) *Track {
	return &Track{
		ID:   NewTrackID(),
		Kind: kind,
		Name: name,
	}
}

// AddClip inserts a clip, rejecting duplicate ids and interval overlap.
func (t *Track) AddClip(clip *Clip) error {
	if err := clip.Validate(); err != nil {
		return err
	}
	if _, ok := t.clipIndex(clip.ID); ok {
		return fmt.Errorf("%w: %s", ErrDuplicateClip, clip.ID)
	}
	for _, existing := range t.clips {
		if existing.OverlapsWith(clip) {
			return &OverlapError{Position: clip.Position}
		}
	}
	t.clips = append(t.clips, clip)
	t.sortClips()
	return nil
}

// InsertClipAt inserts a clip at a specific index without an overlap
// check, for exact restoration during undo. The index is clamped to the
// valid range and clips are re-sorted, so a stale index cannot corrupt
// ordering.
func (t *Track) InsertClipAt(index int, clip *Clip) error {
	if _, ok := t.clipIndex(clip.ID); ok {
		return fmt.Errorf("%w: %s", ErrDuplicateClip, clip.ID)
	}
	if index < 0 {
		index = 0
	}
	if index > len(t.clips) {
		index = len(t.clips)
	}
	t.clips = append(t.clips, nil)
	copy(t.clips[index+1:], t.clips[index:])
	t.clips[index] = clip
	t.sortClips()
	return nil
}

// RemoveClip removes a clip by id, returning the clip and the index it
// occupied so callers can restore it exactly.
func (t *Track) RemoveClip(id ClipID) (*Clip, int, error) {
	i, ok := t.clipIndex(id)
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s", ErrClipNotFound, id)
	}
	clip := t.clips[i]
	t.clips = append(t.clips[:i], t.clips[i+1:]...)
	return clip, i, nil
}

// Clip returns the clip with the given id.
func (t *Track) Clip(id ClipID) (*Clip, error) {
	i, ok := t.clipIndex(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrClipNotFound, id)
	}
	return t.clips[i], nil
}

// ClipIndex returns the position of the clip in the sorted sequence.
func (t *Track) ClipIndex(id ClipID) (int, bool) {
	return t.clipIndex(id)
}

// ClipAt returns the clip whose interval contains the given time, if any.
func (t *Track) ClipAt(at time.Duration) (*Clip, bool) {
	for _, c := range t.clips {
		if c.Contains(at) {
			return c, true
		}
	}
	return nil, false
}

// Clips returns the clips in position order. The slice is a copy; the
// clips themselves are shared.
func (t *Track) Clips() []*Clip {
	out := make([]*Clip, len(t.clips))
	copy(out, t.clips)
	return out
}

// ClipCount returns the number of clips on the track.
func (t *Track) ClipCount() int {
	return len(t.clips)
}

// End returns the exclusive end of the last clip, or zero for an empty
// track.
func (t *Track) End() time.Duration {
	var end time.Duration
	for _, c := range t.clips {
		if c.End() > end {
			end = c.End()
		}
	}
	return end
}

// SetClipPosition moves a clip to a new position, rejecting overlap
// with any other clip on the track. Clips are re-sorted on success.
func (t *Track) SetClipPosition(id ClipID, position time.Duration) error {
	i, ok := t.clipIndex(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrClipNotFound, id)
	}
	if position < 0 {
		return fmt.Errorf("%w: position %s must not be negative", ErrInvalidClip, position)
	}
	clip := t.clips[i]
	candidate := *clip
	candidate.Position = position
	for _, other := range t.clips {
		if other.ID != id && other.OverlapsWith(&candidate) {
			return &OverlapError{Position: position}
		}
	}
	clip.Position = position
	t.sortClips()
	return nil
}

// SetClipDuration changes a clip's duration, rejecting non-positive
// values and overlap with the following clips.
func (t *Track) SetClipDuration(id ClipID, duration time.Duration) error {
	i, ok := t.clipIndex(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrClipNotFound, id)
	}
	if duration <= 0 {
		return fmt.Errorf("%w: duration %s must be positive", ErrInvalidClip, duration)
	}
	clip := t.clips[i]
	candidate := *clip
	candidate.Duration = duration
	for _, other := range t.clips {
		if other.ID != id && other.OverlapsWith(&candidate) {
			return &OverlapError{Position: clip.Position}
		}
	}
	clip.Duration = duration
	return nil
}

// ShiftClips moves every clip by delta. Returns an error without
// modifying anything if any clip would end up at a negative position.
func (t *Track) ShiftClips(delta time.Duration) error {
	for _, c := range t.clips {
		if c.Position+delta < 0 {
			return fmt.Errorf("%w: shift by %s moves clip %s before zero", ErrInvalidClip, delta, c.ID)
		}
	}
	for _, c := range t.clips {
		c.Position += delta
	}
	return nil
}

// Keyframes returns the track's animation state, allocating it on first
// use.
func (t *Track) Keyframes() *keyframe.Animation {
	if t.keyframes == nil {
		t.keyframes = keyframe.NewAnimation(0)
	}
	return t.keyframes
}

// HasKeyframes reports whether any animation state has been created.
func (t *Track) HasKeyframes() bool {
	return t.keyframes != nil && len(t.keyframes.Properties()) > 0
}

// Clone returns a deep copy of the track, including clips and keyframes.
func (t *Track) Clone() *Track {
	clone := &Track{
		ID:     t.ID,
		Kind:   t.Kind,
		Name:   t.Name,
		Muted:  t.Muted,
		Locked: t.Locked,
	}
	clone.clips = make([]*Clip, len(t.clips))
	for i, c := range t.clips {
		clone.clips[i] = c.Clone()
	}
	if t.keyframes != nil {
		clone.keyframes = t.keyframes.Clone()
	}
	return clone
}

func (t *Track) clipIndex(id ClipID) (int, bool) {
	for i, c := range t.clips {
		if c.ID == id {
			return i, true
		}
	}
	return 0, false
}

func (t *Track) sortClips() {
	sort.SliceStable(t.clips, func(i, j int) bool {
		return t.clips[i].Position < t.clips[j].Position
	})
}
