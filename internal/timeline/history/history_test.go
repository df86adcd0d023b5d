package history

import (
	"errors"
	"testing"
	"time"

	"github.com/dshills/montage/internal/timeline/keyframe"
	"github.com/dshills/montage/internal/timeline/multitrack"
	"github.com/dshills/montage/internal/timeline/track"
)

// Helper to create a document with one video track.
func newTestDoc(t *testing.T) (*track.List, *multitrack.Manager, *track.Track) {
	t.Helper()
	l := track.NewList()
	tr := track.New(track.Video, "V1")
	if err := l.Append(tr); err != nil {
		t.Fatal(err)
	}
	return l, multitrack.NewManager(), tr
}

func newTestClip(t *testing.T, pos, dur time.Duration) *track.Clip {
	t.Helper()
	c, err := track.NewClip(track.NewAssetID(), pos, dur, 0, dur)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestAddClipCommandRoundTrip(t *testing.T) {
	l, g, tr := newTestDoc(t)
	clip := newTestClip(t, 0, time.Second)
	cmd := NewAddClipCommand(tr.ID, clip)

	if err := cmd.Execute(l, g); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if tr.ClipCount() != 1 {
		t.Fatal("clip not added")
	}
	if err := cmd.Undo(l, g); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if tr.ClipCount() != 0 {
		t.Error("undo did not remove clip")
	}
}

func TestRemoveClipCommandRestoresIndex(t *testing.T) {
	l, g, tr := newTestDoc(t)
	a := newTestClip(t, 0, time.Second)
	b := newTestClip(t, 2*time.Second, time.Second)
	c := newTestClip(t, 4*time.Second, time.Second)
	for _, clip := range []*track.Clip{a, b, c} {
		if err := tr.AddClip(clip); err != nil {
			t.Fatal(err)
		}
	}

	cmd := NewRemoveClipCommand(tr.ID, b.ID)
	if err := cmd.Execute(l, g); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if err := cmd.Undo(l, g); err != nil {
		t.Fatalf("Undo: %v", err)
	}

	clips := tr.Clips()
	if len(clips) != 3 || clips[1].ID != b.ID {
		t.Error("undo did not restore clip at original index")
	}
}

func TestMoveClipCommandCrossTrack(t *testing.T) {
	l, g, src := newTestDoc(t)
	dst := track.New(track.Video, "V2")
	if err := l.Append(dst); err != nil {
		t.Fatal(err)
	}
	clip := newTestClip(t, 0, time.Second)
	if err := src.AddClip(clip); err != nil {
		t.Fatal(err)
	}

	pos := 5 * time.Second
	cmd := NewMoveClipCommand(src.ID, dst.ID, clip.ID, &pos)
	if err := cmd.Execute(l, g); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if src.ClipCount() != 0 || dst.ClipCount() != 1 {
		t.Fatal("clip not moved")
	}
	moved, err := dst.Clip(clip.ID)
	if err != nil {
		t.Fatal(err)
	}
	if moved.Position != pos {
		t.Errorf("moved position = %s, want %s", moved.Position, pos)
	}

	if err := cmd.Undo(l, g); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	restored, err := src.Clip(clip.ID)
	if err != nil {
		t.Fatal("undo did not return clip to source track")
	}
	if restored.Position != 0 {
		t.Errorf("restored position = %s, want 0", restored.Position)
	}
}

func TestMoveClipCommandConflictRestoresSource(t *testing.T) {
	l, g, src := newTestDoc(t)
	dst := track.New(track.Video, "V2")
	if err := l.Append(dst); err != nil {
		t.Fatal(err)
	}
	clip := newTestClip(t, 0, 2*time.Second)
	if err := src.AddClip(clip); err != nil {
		t.Fatal(err)
	}
	blocker := newTestClip(t, 0, 10*time.Second)
	if err := dst.AddClip(blocker); err != nil {
		t.Fatal(err)
	}

	cmd := NewMoveClipCommand(src.ID, dst.ID, clip.ID, nil)
	err := cmd.Execute(l, g)
	if !errors.Is(err, track.ErrClipOverlap) {
		t.Fatalf("expected ErrClipOverlap, got %v", err)
	}
	if src.ClipCount() != 1 {
		t.Error("conflicting move did not restore source track")
	}
	restored, _ := src.Clip(clip.ID)
	if restored == nil || restored.Position != 0 {
		t.Error("conflicting move changed the clip position")
	}
}

func TestMoveClipCommandKindMismatch(t *testing.T) {
	l, g, src := newTestDoc(t)
	dst := track.New(track.Audio, "A1")
	if err := l.Append(dst); err != nil {
		t.Fatal(err)
	}
	clip := newTestClip(t, 0, time.Second)
	if err := src.AddClip(clip); err != nil {
		t.Fatal(err)
	}

	if err := NewMoveClipCommand(src.ID, dst.ID, clip.ID, nil).Execute(l, g); err == nil {
		t.Error("expected error moving clip between kinds")
	}
}

func TestSetClipCommandsRestorePrevious(t *testing.T) {
	l, g, tr := newTestDoc(t)
	clip := newTestClip(t, 0, 10*time.Second)
	if err := tr.AddClip(clip); err != nil {
		t.Fatal(err)
	}

	dur := NewSetClipDurationCommand(tr.ID, clip.ID, 8*time.Second)
	if err := dur.Execute(l, g); err != nil {
		t.Fatal(err)
	}
	if clip.Duration != 8*time.Second {
		t.Error("duration not applied")
	}
	if err := dur.Undo(l, g); err != nil {
		t.Fatal(err)
	}
	if clip.Duration != 10*time.Second {
		t.Error("undo did not restore duration")
	}

	pos := NewSetClipPositionCommand(tr.ID, clip.ID, 5*time.Second)
	if err := pos.Execute(l, g); err != nil {
		t.Fatal(err)
	}
	if err := pos.Undo(l, g); err != nil {
		t.Fatal(err)
	}
	if clip.Position != 0 {
		t.Error("undo did not restore position")
	}
}

func TestAddTrackCommandRedoKeepsID(t *testing.T) {
	l, g, _ := newTestDoc(t)
	cmd := NewAddTrackCommand(track.Audio, "A1")
	if err := cmd.Execute(l, g); err != nil {
		t.Fatal(err)
	}
	id := cmd.Track().ID
	if err := cmd.Undo(l, g); err != nil {
		t.Fatal(err)
	}
	if l.Contains(id) {
		t.Fatal("undo did not remove track")
	}
	if err := cmd.Execute(l, g); err != nil {
		t.Fatal(err)
	}
	if cmd.Track().ID != id {
		t.Error("redo created a track with a different id")
	}
}

func TestRemoveTrackCommandRestoresEdgesAndClips(t *testing.T) {
	l, g, tr := newTestDoc(t)
	other := track.New(track.Video, "V2")
	if err := l.Append(other); err != nil {
		t.Fatal(err)
	}
	clip := newTestClip(t, 0, time.Second)
	if err := tr.AddClip(clip); err != nil {
		t.Fatal(err)
	}
	if err := g.AddRelationship(tr.ID, other.ID, multitrack.Locked, l); err != nil {
		t.Fatal(err)
	}
	if err := g.AddRelationship(other.ID, tr.ID, multitrack.Independent, l); err == nil {
		t.Fatal("sanity: reverse edge should be a cycle")
	}

	cmd := NewRemoveTrackCommand(tr.ID)
	if err := cmd.Execute(l, g); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if g.EdgeCount() != 0 {
		t.Error("remove track left dangling edges")
	}
	if l.Contains(tr.ID) {
		t.Error("track not removed")
	}

	if err := cmd.Undo(l, g); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	restored, err := l.Track(tr.ID)
	if err != nil {
		t.Fatal("undo did not restore track")
	}
	if restored.ClipCount() != 1 {
		t.Error("restored track lost its clips")
	}
	if i, _ := l.IndexOf(tr.ID); i != 0 {
		t.Errorf("restored track at index %d, want 0", i)
	}
	if rel, ok := g.RelationshipBetween(tr.ID, other.ID); !ok || rel != multitrack.Locked {
		t.Error("undo did not restore relationship edges")
	}
}

func TestTrackFlagCommands(t *testing.T) {
	l, g, tr := newTestDoc(t)

	name := NewSetTrackNameCommand(tr.ID, "Main")
	if err := name.Execute(l, g); err != nil {
		t.Fatal(err)
	}
	if tr.Name != "Main" {
		t.Error("name not applied")
	}
	if err := name.Undo(l, g); err != nil {
		t.Fatal(err)
	}
	if tr.Name != "V1" {
		t.Error("undo did not restore name")
	}

	muted := NewSetTrackMutedCommand(tr.ID, true)
	if err := muted.Execute(l, g); err != nil {
		t.Fatal(err)
	}
	if err := muted.Undo(l, g); err != nil {
		t.Fatal(err)
	}
	if tr.Muted {
		t.Error("undo did not restore muted flag")
	}

	locked := NewSetTrackLockedCommand(tr.ID, true)
	if err := locked.Execute(l, g); err != nil {
		t.Fatal(err)
	}
	if err := locked.Undo(l, g); err != nil {
		t.Fatal(err)
	}
	if tr.Locked {
		t.Error("undo did not restore locked flag")
	}
}

func TestRelationshipCommands(t *testing.T) {
	l, g, tr := newTestDoc(t)
	other := track.New(track.Video, "V2")
	if err := l.Append(other); err != nil {
		t.Fatal(err)
	}

	add := NewAddRelationshipCommand(tr.ID, other.ID, multitrack.TimingDependent)
	if err := add.Execute(l, g); err != nil {
		t.Fatal(err)
	}
	if err := add.Undo(l, g); err != nil {
		t.Fatal(err)
	}
	if g.EdgeCount() != 0 {
		t.Error("undo did not remove edge")
	}

	if err := add.Execute(l, g); err != nil {
		t.Fatal(err)
	}
	update := NewUpdateRelationshipCommand(tr.ID, other.ID, multitrack.Locked)
	if err := update.Execute(l, g); err != nil {
		t.Fatal(err)
	}
	if err := update.Undo(l, g); err != nil {
		t.Fatal(err)
	}
	if rel, _ := g.RelationshipBetween(tr.ID, other.ID); rel != multitrack.TimingDependent {
		t.Errorf("undo did not restore kind, got %v", rel)
	}

	remove := NewRemoveRelationshipCommand(tr.ID, other.ID)
	if err := remove.Execute(l, g); err != nil {
		t.Fatal(err)
	}
	if err := remove.Undo(l, g); err != nil {
		t.Fatal(err)
	}
	if rel, ok := g.RelationshipBetween(tr.ID, other.ID); !ok || rel != multitrack.TimingDependent {
		t.Error("undo did not re-add edge with original kind")
	}
}

func TestKeyframeCommands(t *testing.T) {
	l, g, tr := newTestDoc(t)

	add := NewAddKeyframeCommand(tr.ID, "opacity", time.Second, 0.5, keyframe.Linear)
	if err := add.Execute(l, g); err != nil {
		t.Fatal(err)
	}
	update := NewUpdateKeyframeCommand(tr.ID, "opacity", time.Second, 0.9, keyframe.EaseIn)
	if err := update.Execute(l, g); err != nil {
		t.Fatal(err)
	}
	if err := update.Undo(l, g); err != nil {
		t.Fatal(err)
	}
	v, err := tr.Keyframes().ValueAt("opacity", time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0.5 {
		t.Errorf("undo did not restore keyframe value, got %v", v)
	}

	remove := NewRemoveKeyframeCommand(tr.ID, "opacity", time.Second)
	if err := remove.Execute(l, g); err != nil {
		t.Fatal(err)
	}
	if err := remove.Undo(l, g); err != nil {
		t.Fatal(err)
	}
	v, err = tr.Keyframes().ValueAt("opacity", time.Second)
	if err != nil || v != 0.5 {
		t.Errorf("undo did not re-add keyframe, got %v, %v", v, err)
	}

	if err := add.Undo(l, g); err != nil {
		t.Fatal(err)
	}
	if tr.HasKeyframes() {
		t.Error("undo of original add left keyframes behind")
	}
}

func TestCompoundCommandRollsBackOnFailure(t *testing.T) {
	l, g, tr := newTestDoc(t)
	a := newTestClip(t, 0, time.Second)
	// b overlaps a, so the second step must fail.
	b := newTestClip(t, 0, time.Second)

	cmd := NewCompoundCommand("Add Two",
		NewAddClipCommand(tr.ID, a),
		NewAddClipCommand(tr.ID, b),
	)
	if err := cmd.Execute(l, g); err == nil {
		t.Fatal("expected failure")
	}
	if tr.ClipCount() != 0 {
		t.Error("failed compound left partial state")
	}
}

func TestHistoryUndoRedo(t *testing.T) {
	l, g, tr := newTestDoc(t)
	h := New(0)
	clip := newTestClip(t, 0, time.Second)

	if err := h.Execute(NewAddClipCommand(tr.ID, clip), l, g); err != nil {
		t.Fatal(err)
	}
	if !h.CanUndo() || h.CanRedo() {
		t.Fatal("unexpected stack state after execute")
	}

	if err := h.Undo(l, g); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if tr.ClipCount() != 0 {
		t.Error("undo did not revert")
	}
	if !h.CanRedo() {
		t.Fatal("redo unavailable after undo")
	}

	if err := h.Redo(l, g); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if tr.ClipCount() != 1 {
		t.Error("redo did not reapply")
	}

	if err := h.Undo(l, g); err != nil {
		t.Fatal(err)
	}
	if err := h.Undo(l, g); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("expected ErrNothingToUndo, got %v", err)
	}
}

func TestHistoryRedoClearedByNewEdit(t *testing.T) {
	l, g, tr := newTestDoc(t)
	h := New(0)

	if err := h.Execute(NewAddClipCommand(tr.ID, newTestClip(t, 0, time.Second)), l, g); err != nil {
		t.Fatal(err)
	}
	if err := h.Undo(l, g); err != nil {
		t.Fatal(err)
	}
	if !h.CanRedo() {
		t.Fatal("redo should be available")
	}
	if err := h.Execute(NewAddClipCommand(tr.ID, newTestClip(t, 5*time.Second, time.Second)), l, g); err != nil {
		t.Fatal(err)
	}
	if h.CanRedo() {
		t.Error("new edit must clear redo stack")
	}
}

func TestHistoryEviction(t *testing.T) {
	l, g, tr := newTestDoc(t)
	h := New(2)

	for i := 0; i < 3; i++ {
		clip := newTestClip(t, time.Duration(i)*2*time.Second, time.Second)
		if err := h.Execute(NewAddClipCommand(tr.ID, clip), l, g); err != nil {
			t.Fatal(err)
		}
	}
	if h.UndoCount() != 2 {
		t.Errorf("UndoCount = %d, want 2 after FIFO eviction", h.UndoCount())
	}
}

func TestHistoryUndoFailureRestoresStack(t *testing.T) {
	l, g, tr := newTestDoc(t)
	h := New(0)
	clip := newTestClip(t, 0, time.Second)
	if err := h.Execute(NewAddClipCommand(tr.ID, clip), l, g); err != nil {
		t.Fatal(err)
	}

	// Remove the clip behind the history's back so the undo fails.
	if _, _, err := tr.RemoveClip(clip.ID); err != nil {
		t.Fatal(err)
	}

	err := h.Undo(l, g)
	var applyErr *ApplyError
	if !errors.As(err, &applyErr) {
		t.Fatalf("expected *ApplyError, got %v", err)
	}
	if applyErr.Op != "undo" {
		t.Errorf("Op = %q, want undo", applyErr.Op)
	}
	if h.UndoCount() != 1 {
		t.Error("failed undo must restore the popped entry")
	}
	if h.RedoCount() != 0 {
		t.Error("failed undo must not grow the redo stack")
	}

	// Putting the clip back makes the same entry retryable.
	if err := tr.AddClip(clip); err != nil {
		t.Fatal(err)
	}
	if err := h.Undo(l, g); err != nil {
		t.Fatalf("retry after repair failed: %v", err)
	}
}

func TestTransactionAtomicUndoRedo(t *testing.T) {
	l, g, tr := newTestDoc(t)
	h := New(0)
	clip := newTestClip(t, 0, 10*time.Second)
	if err := tr.AddClip(clip); err != nil {
		t.Fatal(err)
	}

	if err := h.BeginTransaction("Trim"); err != nil {
		t.Fatal(err)
	}
	if err := h.Execute(NewSetClipPositionCommand(tr.ID, clip.ID, 5*time.Second), l, g); err != nil {
		t.Fatal(err)
	}
	if err := h.Execute(NewSetClipDurationCommand(tr.ID, clip.ID, 8*time.Second), l, g); err != nil {
		t.Fatal(err)
	}
	if err := h.CommitTransaction(); err != nil {
		t.Fatal(err)
	}
	if h.UndoCount() != 1 {
		t.Fatalf("UndoCount = %d, want 1 for committed group", h.UndoCount())
	}

	if err := h.Undo(l, g); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if clip.Position != 0 || clip.Duration != 10*time.Second {
		t.Errorf("group undo incomplete: position=%s duration=%s", clip.Position, clip.Duration)
	}
	if h.RedoCount() != 1 {
		t.Error("group not moved to redo stack")
	}

	if err := h.Redo(l, g); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if clip.Position != 5*time.Second || clip.Duration != 8*time.Second {
		t.Errorf("group redo incomplete: position=%s duration=%s", clip.Position, clip.Duration)
	}
}

func TestTransactionErrors(t *testing.T) {
	h := New(0)
	if err := h.CommitTransaction(); !errors.Is(err, ErrNoTransaction) {
		t.Errorf("expected ErrNoTransaction, got %v", err)
	}
	if err := h.RollbackTransaction(); !errors.Is(err, ErrNoTransaction) {
		t.Errorf("expected ErrNoTransaction, got %v", err)
	}
	if err := h.BeginTransaction("a"); err != nil {
		t.Fatal(err)
	}
	if err := h.BeginTransaction("b"); !errors.Is(err, ErrTransactionInProgress) {
		t.Errorf("expected ErrTransactionInProgress, got %v", err)
	}
	if err := h.RollbackTransaction(); err != nil {
		t.Fatal(err)
	}
	if h.InTransaction() {
		t.Error("rollback left transaction open")
	}
}

func TestEmptyTransactionDropped(t *testing.T) {
	h := New(0)
	if err := h.BeginTransaction("empty"); err != nil {
		t.Fatal(err)
	}
	if err := h.CommitTransaction(); err != nil {
		t.Fatal(err)
	}
	if h.UndoCount() != 0 {
		t.Error("empty transaction must not be recorded")
	}
}

func TestBeginTransactionClearsRedo(t *testing.T) {
	l, g, tr := newTestDoc(t)
	h := New(0)
	if err := h.Execute(NewAddClipCommand(tr.ID, newTestClip(t, 0, time.Second)), l, g); err != nil {
		t.Fatal(err)
	}
	if err := h.Undo(l, g); err != nil {
		t.Fatal(err)
	}
	if err := h.BeginTransaction("t"); err != nil {
		t.Fatal(err)
	}
	if h.CanRedo() {
		t.Error("beginning a transaction must clear the redo stack")
	}
}

func TestTransactionHelperRollsBackOnError(t *testing.T) {
	l, g, tr := newTestDoc(t)
	h := New(0)
	wantErr := errors.New("boom")

	err := h.Transaction("failing", func() error {
		if err := h.Execute(NewAddClipCommand(tr.ID, newTestClip(t, 0, time.Second)), l, g); err != nil {
			return err
		}
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if h.InTransaction() {
		t.Error("transaction left open")
	}
	if h.UndoCount() != 0 {
		t.Error("failed transaction must not record a group")
	}
	// Applied state stays applied; the caller reconciles.
	if tr.ClipCount() != 1 {
		t.Error("rollback should not revert applied commands")
	}
}

func TestPeekAndInfo(t *testing.T) {
	l, g, tr := newTestDoc(t)
	h := New(0)
	if _, ok := h.PeekUndo(); ok {
		t.Error("PeekUndo on empty history")
	}
	if err := h.Execute(NewAddClipCommand(tr.ID, newTestClip(t, 0, time.Second)), l, g); err != nil {
		t.Fatal(err)
	}

	info, ok := h.PeekUndo()
	if !ok || info.Description != "Add Clip" {
		t.Errorf("PeekUndo = %+v, %v", info, ok)
	}
	if info.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
	if list := h.UndoInfo(); len(list) != 1 {
		t.Errorf("UndoInfo length = %d, want 1", len(list))
	}
}

func TestExecuteGrouped(t *testing.T) {
	l, g, tr := newTestDoc(t)
	h := New(0)

	err := h.ExecuteGrouped("Add Pair", l, g,
		NewAddClipCommand(tr.ID, newTestClip(t, 0, time.Second)),
		NewAddClipCommand(tr.ID, newTestClip(t, 2*time.Second, time.Second)),
	)
	if err != nil {
		t.Fatal(err)
	}
	if h.UndoCount() != 1 {
		t.Errorf("UndoCount = %d, want 1", h.UndoCount())
	}
	if err := h.Undo(l, g); err != nil {
		t.Fatal(err)
	}
	if tr.ClipCount() != 0 {
		t.Error("group undo incomplete")
	}
}
