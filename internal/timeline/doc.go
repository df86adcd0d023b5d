// Package timeline is the editing core's facade. A Timeline owns the
// track list, the track dependency graph, and the edit history, and
// exposes one mutation entry point that applies a command and records
// it for undo:
//
//	tl := timeline.New()
//	vid, _ := tl.AddTrack(track.Video, "V1")
//	clip, _ := track.NewClip(asset, 10*time.Second, 5*time.Second, 0, 5*time.Second)
//	_ = tl.AddClip(vid.ID, clip)
//	_ = tl.Undo()
//
// Higher-level clip algebra (split, merge, cross-track move) is built
// from the primitive commands and recorded as a single transaction, so
// one undo reverts the whole operation.
//
// The Timeline is single-owner and synchronous: one caller mutates it
// at a time, and no operation blocks on I/O.
package timeline
