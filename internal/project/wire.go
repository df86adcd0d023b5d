package project

import (
	"errors"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/montage/internal/timeline"
	"github.com/dshills/montage/internal/timeline/keyframe"
	"github.com/dshills/montage/internal/timeline/multitrack"
	"github.com/dshills/montage/internal/timeline/track"
)

// Version is the document format version this build reads and writes.
const Version = 1

type wireClip struct {
	ID          string `json:"id"`
	Asset       string `json:"asset"`
	Position    int64  `json:"position"`
	Duration    int64  `json:"duration"`
	SourceStart int64  `json:"source_start"`
	SourceEnd   int64  `json:"source_end"`
}

type wirePoint struct {
	Time   int64   `json:"time"`
	Value  float64 `json:"value"`
	Easing string  `json:"easing"`
}

type wireProperty struct {
	Name   string      `json:"name"`
	Points []wirePoint `json:"points"`
}

type wireTrack struct {
	ID        string         `json:"id"`
	Kind      string         `json:"kind"`
	Name      string         `json:"name"`
	Muted     bool           `json:"muted"`
	Locked    bool           `json:"locked"`
	Clips     []wireClip     `json:"clips"`
	Keyframes []wireProperty `json:"keyframes,omitempty"`
}

type wireRelationship struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Kind   string `json:"kind"`
}

// Encode serializes a timeline into a versioned JSON document.
func Encode(tl *timeline.Timeline) ([]byte, error) {
	tracks := make([]wireTrack, 0, len(tl.Tracks()))
	for _, tr := range tl.Tracks() {
		tracks = append(tracks, encodeTrack(tr))
	}

	edges := tl.Graph().All()
	rels := make([]wireRelationship, 0, len(edges))
	for _, e := range edges {
		rels = append(rels, wireRelationship{
			Source: e.Source.String(),
			Target: e.Target.String(),
			Kind:   e.Relationship.String(),
		})
	}

	doc := []byte(`{}`)
	var err error
	if doc, err = sjson.SetBytes(doc, "version", Version); err != nil {
		return nil, err
	}
	if doc, err = sjson.SetBytes(doc, "tracks", tracks); err != nil {
		return nil, err
	}
	if doc, err = sjson.SetBytes(doc, "relationships", rels); err != nil {
		return nil, err
	}
	return doc, nil
}

func encodeTrack(tr *track.Track) wireTrack {
	wt := wireTrack{
		ID:     tr.ID.String(),
		Kind:   tr.Kind.String(),
		Name:   tr.Name,
		Muted:  tr.Muted,
		Locked: tr.Locked,
		Clips:  make([]wireClip, 0, tr.ClipCount()),
	}
	for _, c := range tr.Clips() {
		wt.Clips = append(wt.Clips, wireClip{
			ID:          c.ID.String(),
			Asset:       c.Asset.String(),
			Position:    int64(c.Position),
			Duration:    int64(c.Duration),
			SourceStart: int64(c.SourceStart),
			SourceEnd:   int64(c.SourceEnd),
		})
	}
	if tr.HasKeyframes() {
		anim := tr.Keyframes()
		for _, prop := range anim.Properties() {
			pt, ok := anim.Track(prop)
			if !ok {
				continue
			}
			wp := wireProperty{Name: prop}
			for _, p := range pt.Points() {
				wp.Points = append(wp.Points, wirePoint{
					Time:   int64(p.Time),
					Value:  p.Value,
					Easing: p.Easing.String(),
				})
			}
			wt.Keyframes = append(wt.Keyframes, wp)
		}
	}
	return wt
}

// Decode rebuilds a timeline from a document produced by Encode.
// The returned timeline has an empty undo history.
func Decode(data []byte, opts ...timeline.Option) (*timeline.Timeline, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrMalformedDocument
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, ErrMalformedDocument
	}

	ver := root.Get("version")
	if !ver.Exists() {
		return nil, &FieldError{Path: "version", Err: errors.New("missing")}
	}
	if v := int(ver.Int()); v != Version {
		return nil, &VersionError{Version: v}
	}

	tl := timeline.New(opts...)
	for i, wt := range root.Get("tracks").Array() {
		tr, err := decodeTrack(wt)
		if err != nil {
			return nil, &FieldError{Path: wirePath("tracks", i), Err: err}
		}
		if err := tl.TrackList().Append(tr); err != nil {
			return nil, &FieldError{Path: wirePath("tracks", i), Err: err}
		}
	}
	for i, wr := range root.Get("relationships").Array() {
		if err := decodeRelationship(wr, tl); err != nil {
			return nil, &FieldError{Path: wirePath("relationships", i), Err: err}
		}
	}
	return tl, nil
}

func decodeTrack(wt gjson.Result) (*track.Track, error) {
	id, err := track.ParseTrackID(wt.Get("id").String())
	if err != nil {
		return nil, err
	}
	kind, err := track.ParseKind(wt.Get("kind").String())
	if err != nil {
		return nil, err
	}

	tr := track.New(kind, wt.Get("name").String())
	tr.ID = id
	tr.Muted = wt.Get("muted").Bool()
	tr.Locked = wt.Get("locked").Bool()

	for _, wc := range wt.Get("clips").Array() {
		clip, err := decodeClip(wc)
		if err != nil {
			return nil, err
		}
		if err := tr.AddClip(clip); err != nil {
			return nil, err
		}
	}

	for _, wp := range wt.Get("keyframes").Array() {
		prop := wp.Get("name").String()
		for _, pt := range wp.Get("points").Array() {
			easing, err := keyframe.ParseEasing(pt.Get("easing").String())
			if err != nil {
				return nil, err
			}
			at := time.Duration(pt.Get("time").Int())
			if err := tr.Keyframes().AddKeyframe(prop, at, pt.Get("value").Float(), easing); err != nil {
				return nil, err
			}
		}
	}
	return tr, nil
}

func decodeClip(wc gjson.Result) (*track.Clip, error) {
	asset, err := track.ParseAssetID(wc.Get("asset").String())
	if err != nil {
		return nil, err
	}
	clip, err := track.NewClip(asset,
		time.Duration(wc.Get("position").Int()),
		time.Duration(wc.Get("duration").Int()),
		time.Duration(wc.Get("source_start").Int()),
		time.Duration(wc.Get("source_end").Int()))
	if err != nil {
		return nil, err
	}
	id, err := track.ParseClipID(wc.Get("id").String())
	if err != nil {
		return nil, err
	}
	clip.ID = id
	return clip, nil
}

func decodeRelationship(wr gjson.Result, tl *timeline.Timeline) error {
	source, err := track.ParseTrackID(wr.Get("source").String())
	if err != nil {
		return err
	}
	target, err := track.ParseTrackID(wr.Get("target").String())
	if err != nil {
		return err
	}
	rel, err := multitrack.ParseRelationship(wr.Get("kind").String())
	if err != nil {
		return err
	}
	// Validated insertion keeps a hand-edited document from smuggling in
	// a cycle or a dangling track id.
	return tl.Graph().AddRelationship(source, target, rel, tl.TrackList())
}

func wirePath(field string, index int) string {
	return field + "." + strconv.Itoa(index)
}
