package timeline

import (
	"fmt"
	"time"

	"github.com/dshills/montage/internal/timeline/history"
	"github.com/dshills/montage/internal/timeline/track"
)

// SplitClip cuts a clip in two at the given timeline position. The
// position must fall strictly inside the clip. The original clip keeps
// its id and shrinks to the first half; the second half becomes a new
// clip whose source range starts at the proportional split point. The
// whole operation is one undo unit.
func (tl *Timeline) SplitClip(trackID TrackID, clipID ClipID, at time.Duration) (ClipID, error) {
	t, err := tl.tracks.Track(trackID)
	if err != nil {
		return ClipID{}, err
	}
	clip, err := t.Clip(clipID)
	if err != nil {
		return ClipID{}, err
	}
	if at <= clip.Position || at >= clip.End() {
		return ClipID{}, fmt.Errorf("%w: %s not in (%s, %s)", ErrInvalidSplit, at, clip.Position, clip.End())
	}

	firstDuration := at - clip.Position
	secondDuration := clip.Duration - firstDuration
	// Split the source range proportionally to the timeline split.
	sourceSplit := clip.SourceStart + time.Duration(
		float64(clip.SourceDuration())*float64(firstDuration)/float64(clip.Duration))

	first := clip.Clone()
	first.Duration = firstDuration
	first.SourceEnd = sourceSplit

	second := clip.Clone()
	second.ID = track.NewClipID()
	second.Position = at
	second.Duration = secondDuration
	second.SourceStart = sourceSplit

	err = tl.Apply(history.NewCompoundCommand("Split Clip",
		history.NewRemoveClipCommand(trackID, clipID),
		history.NewAddClipCommand(trackID, first),
		history.NewAddClipCommand(trackID, second),
	))
	if err != nil {
		return ClipID{}, err
	}
	return second.ID, nil
}

// MergeClips joins two clips into one. The clips must reference the
// same asset and be exactly adjacent (the first ends where the second
// begins). The merged clip keeps the first clip's id and spans both
// source ranges. The whole operation is one undo unit.
func (tl *Timeline) MergeClips(trackID TrackID, firstID, secondID ClipID) error {
	t, err := tl.tracks.Track(trackID)
	if err != nil {
		return err
	}
	first, err := t.Clip(firstID)
	if err != nil {
		return err
	}
	second, err := t.Clip(secondID)
	if err != nil {
		return err
	}
	if first.Asset != second.Asset {
		return fmt.Errorf("%w: %s vs %s", ErrAssetMismatch, first.Asset, second.Asset)
	}
	if first.End() != second.Position {
		return fmt.Errorf("%w: first ends at %s, second starts at %s", ErrNotAdjacent, first.End(), second.Position)
	}

	merged := first.Clone()
	merged.Duration = first.Duration + second.Duration
	merged.SourceEnd = second.SourceEnd

	return tl.Apply(history.NewCompoundCommand("Merge Clips",
		history.NewRemoveClipCommand(trackID, secondID),
		history.NewRemoveClipCommand(trackID, firstID),
		history.NewAddClipCommand(trackID, merged),
	))
}

// MoveClipToTrack moves a clip onto another track of the same kind,
// optionally repositioning it. On an overlap conflict in the target the
// clip stays on the source track and the overlap error is returned.
func (tl *Timeline) MoveClipToTrack(sourceID, targetID TrackID, clipID ClipID, newPosition *time.Duration) error {
	src, err := tl.tracks.Track(sourceID)
	if err != nil {
		return err
	}
	dst, err := tl.tracks.Track(targetID)
	if err != nil {
		return err
	}
	if src.Kind != dst.Kind {
		return fmt.Errorf("%w: %s vs %s", ErrKindMismatch, src.Kind, dst.Kind)
	}
	return tl.Apply(history.NewMoveClipCommand(sourceID, targetID, clipID, newPosition))
}
