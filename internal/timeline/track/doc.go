// Package track provides the primitive data model for the timeline:
// opaque identifiers, clips, tracks, and the ordered track list.
//
// # Clips
//
// A Clip is a bounded reference to a slice of an asset placed on the
// timeline. Its position and duration are timeline-relative; its source
// range addresses the underlying asset:
//
//	clip, err := track.NewClip(assetID, 10*time.Second, 5*time.Second, 0, 5*time.Second)
//
// # Tracks
//
// A Track holds clips of one kind (video, audio, subtitle) sorted by
// position. No two clips on a track may overlap; AddClip enforces this
// with a half-open interval check and re-sorts after every mutation.
//
// # Identifiers
//
// TrackID, ClipID, and AssetID are distinct newtypes over UUIDs so a
// clip id can never be compared against a track id by accident.
package track
