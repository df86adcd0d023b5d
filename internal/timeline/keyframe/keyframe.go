package keyframe

import (
	"fmt"
	"sort"
	"time"
)

// Point is a single keyframe: a value at a time, plus the easing law
// used to reach the next keyframe.
type Point struct {
	Time   time.Duration
	Value  float64
	Easing Easing
}

// PropertyTrack holds the keyframes for one animated property, sorted
// by time with unique times.
type PropertyTrack struct {
	Property string
	points   []Point
}

// NewPropertyTrack creates an empty track for a property.
func NewPropertyTrack(property string) *PropertyTrack {
	return &PropertyTrack{Property: property}
}

// Points returns the keyframes in time order. The slice is a copy.
func (pt *PropertyTrack) Points() []Point {
	out := make([]Point, len(pt.points))
	copy(out, pt.points)
	return out
}

// Len returns the number of keyframes.
func (pt *PropertyTrack) Len() int {
	return len(pt.points)
}

// insert adds a keyframe, rejecting a duplicate time.
func (pt *PropertyTrack) insert(p Point) error {
	for _, existing := range pt.points {
		if existing.Time == p.Time {
			return &DuplicateError{Time: p.Time}
		}
	}
	pt.points = append(pt.points, p)
	sort.Slice(pt.points, func(i, j int) bool {
		return pt.points[i].Time < pt.points[j].Time
	})
	return nil
}

// remove deletes the keyframe at the exact time, returning it.
func (pt *PropertyTrack) remove(at time.Duration) (Point, error) {
	for i, p := range pt.points {
		if p.Time == at {
			pt.points = append(pt.points[:i], pt.points[i+1:]...)
			return p, nil
		}
	}
	return Point{}, fmt.Errorf("%w: %s at %s", ErrKeyframeNotFound, pt.Property, at)
}

// update replaces the value and easing of the keyframe at the exact
// time, returning the previous point.
func (pt *PropertyTrack) update(at time.Duration, value float64, easing Easing) (Point, error) {
	for i, p := range pt.points {
		if p.Time == at {
			prev := p
			pt.points[i].Value = value
			pt.points[i].Easing = easing
			return prev, nil
		}
	}
	return Point{}, fmt.Errorf("%w: %s at %s", ErrKeyframeNotFound, pt.Property, at)
}

// valueAt evaluates the property at the given time. Times before the
// first keyframe clamp to its value, times after the last clamp to its
// value; between two keyframes the leading keyframe's easing is applied
// to the normalized offset.
func (pt *PropertyTrack) valueAt(at time.Duration) (float64, error) {
	if len(pt.points) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrNoKeyframes, pt.Property)
	}
	first := pt.points[0]
	if at <= first.Time {
		return first.Value, nil
	}
	last := pt.points[len(pt.points)-1]
	if at >= last.Time {
		return last.Value, nil
	}
	for i := 0; i < len(pt.points)-1; i++ {
		cur, next := pt.points[i], pt.points[i+1]
		if at >= cur.Time && at < next.Time {
			span := next.Time - cur.Time
			t := float64(at-cur.Time) / float64(span)
			return cur.Easing.Interpolate(t, cur.Value, next.Value), nil
		}
	}
	return last.Value, nil
}

// Animation is the optional per-track animation state: one
// PropertyTrack per animated property name.
type Animation struct {
	tracks   map[string]*PropertyTrack
	Duration time.Duration
}

// NewAnimation creates an empty animation with an advisory duration.
func NewAnimation(duration time.Duration) *Animation {
	return &Animation{
		tracks:   make(map[string]*PropertyTrack),
		Duration: duration,
	}
}

// AddKeyframe adds a keyframe for a property, lazily creating the
// property track on first use.
func (a *Animation) AddKeyframe(property string, at time.Duration, value float64, easing Easing) error {
	if at < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTime, at)
	}
	pt, ok := a.tracks[property]
	if !ok {
		pt = NewPropertyTrack(property)
		a.tracks[property] = pt
	}
	return pt.insert(Point{Time: at, Value: value, Easing: easing})
}

// RemoveKeyframe deletes the property's keyframe at the exact time,
// returning the removed point.
func (a *Animation) RemoveKeyframe(property string, at time.Duration) (Point, error) {
	pt, ok := a.tracks[property]
	if !ok {
		return Point{}, fmt.Errorf("%w: %s", ErrPropertyNotFound, property)
	}
	p, err := pt.remove(at)
	if err != nil {
		return Point{}, err
	}
	if pt.Len() == 0 {
		delete(a.tracks, property)
	}
	return p, nil
}

// UpdateKeyframe replaces the value and easing at the exact time,
// returning the previous point.
func (a *Animation) UpdateKeyframe(property string, at time.Duration, value float64, easing Easing) (Point, error) {
	pt, ok := a.tracks[property]
	if !ok {
		return Point{}, fmt.Errorf("%w: %s", ErrPropertyNotFound, property)
	}
	return pt.update(at, value, easing)
}

// ValueAt evaluates a property at the given time.
func (a *Animation) ValueAt(property string, at time.Duration) (float64, error) {
	pt, ok := a.tracks[property]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrPropertyNotFound, property)
	}
	return pt.valueAt(at)
}

// Track returns the property track, if one exists.
func (a *Animation) Track(property string) (*PropertyTrack, bool) {
	pt, ok := a.tracks[property]
	return pt, ok
}

// Properties returns the animated property names in sorted order.
func (a *Animation) Properties() []string {
	out := make([]string, 0, len(a.tracks))
	for name := range a.tracks {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Clone returns a deep copy of the animation.
func (a *Animation) Clone() *Animation {
	clone := NewAnimation(a.Duration)
	for name, pt := range a.tracks {
		cp := NewPropertyTrack(name)
		cp.points = make([]Point, len(pt.points))
		copy(cp.points, pt.points)
		clone.tracks[name] = cp
	}
	return clone
}
