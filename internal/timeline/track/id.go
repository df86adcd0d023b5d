package track

import "github.com/google/uuid"

// TrackID uniquely identifies a track. The zero value is invalid.
type TrackID struct {
	id uuid.UUID
}

// NewTrackID returns a fresh random track id.
func NewTrackID() TrackID {
	return TrackID{id: uuid.New()}
}

// ParseTrackID parses the string form produced by String.
func ParseTrackID(s string) (TrackID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return TrackID{}, err
	}
	return TrackID{id: id}, nil
}

// String returns the canonical UUID string form.
func (t TrackID) String() string { return t.id.String() }

// IsZero reports whether the id is the invalid zero value.
func (t TrackID) IsZero() bool { return t.id == uuid.Nil }

// ClipID uniquely identifies a clip. The zero value is invalid.
type ClipID struct {
	id uuid.UUID
}

// NewClipID returns a fresh random clip id.
func NewClipID() ClipID {
	return ClipID{id: uuid.New()}
}

// ParseClipID parses the string form produced by String.
func ParseClipID(s string) (ClipID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ClipID{}, err
	}
	return ClipID{id: id}, nil
}

// String returns the canonical UUID string form.
func (c ClipID) String() string { return c.id.String() }

// IsZero reports whether the id is the invalid zero value.
func (c ClipID) IsZero() bool { return c.id == uuid.Nil }

// AssetID identifies a media asset. Resolving it to file paths or
// metadata belongs to the asset subsystem; the timeline only carries it.
type AssetID struct {
	id uuid.UUID
}

// NewAssetID returns a fresh random asset id.
func NewAssetID() AssetID {
	return AssetID{id: uuid.New()}
}

// ParseAssetID parses the string form produced by String.
func ParseAssetID(s string) (AssetID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return AssetID{}, err
	}
	return AssetID{id: id}, nil
}

// String returns the canonical UUID string form.
func (a AssetID) String() string { return a.id.String() }

// IsZero reports whether the id is the invalid zero value.
func (a AssetID) IsZero() bool { return a.id == uuid.Nil }
