package track

import "fmt"

// List is the ordered collection of tracks making up a timeline
// document. An id-to-index map is kept consistent on every mutation so
// lookups by id are O(1).
type List struct {
	tracks []*Track
	index  map[TrackID]int
}

// NewList creates an empty track list.
func NewList() *List {
	return &List{index: make(map[TrackID]int)}
}

// Append adds a track at the end of the list.
func (l *List) Append(t *Track) error {
	if _, ok := l.index[t.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTrack, t.ID)
	}
	l.index[t.ID] = len(l.tracks)
	l.tracks = append(l.tracks, t)
	return nil
}

// InsertAt inserts a track at a specific index, for exact restoration
// during undo. The index is clamped to the valid range.
func (l *List) InsertAt(index int, t *Track) error {
	if _, ok := l.index[t.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTrack, t.ID)
	}
	if index < 0 {
		index = 0
	}
	if index > len(l.tracks) {
		index = len(l.tracks)
	}
	l.tracks = append(l.tracks, nil)
	copy(l.tracks[index+1:], l.tracks[index:])
	l.tracks[index] = t
	l.reindex(index)
	return nil
}

// Remove removes a track by id, returning the track and the index it
// occupied.
func (l *List) Remove(id TrackID) (*Track, int, error) {
	i, ok := l.index[id]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s", ErrTrackNotFound, id)
	}
	t := l.tracks[i]
	l.tracks = append(l.tracks[:i], l.tracks[i+1:]...)
	delete(l.index, id)
	l.reindex(i)
	return t, i, nil
}

// Track returns the track with the given id.
func (l *List) Track(id TrackID) (*Track, error) {
	i, ok := l.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTrackNotFound, id)
	}
	return l.tracks[i], nil
}

// Contains reports whether the id is in the list.
func (l *List) Contains(id TrackID) bool {
	_, ok := l.index[id]
	return ok
}

// IndexOf returns the position of the track in the list.
func (l *List) IndexOf(id TrackID) (int, bool) {
	i, ok := l.index[id]
	return i, ok
}

// Tracks returns the tracks in order. The slice is a copy; the tracks
// themselves are shared.
func (l *List) Tracks() []*Track {
	out := make([]*Track, len(l.tracks))
	copy(out, l.tracks)
	return out
}

// Len returns the number of tracks.
func (l *List) Len() int {
	return len(l.tracks)
}

// reindex rebuilds index entries from position i onward.
func (l *List) reindex(i int) {
	for ; i < len(l.tracks); i++ {
		l.index[l.tracks[i].ID] = i
	}
}
