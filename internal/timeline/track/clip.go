package track

import (
	"fmt"
	"time"
)

// Clip is a bounded reference to a slice of an asset placed on the
// timeline. Position and Duration are timeline-relative; SourceStart and
// SourceEnd address the asset's own time axis.
type Clip struct {
	ID          ClipID
	Asset       AssetID
	Position    time.Duration
	Duration    time.Duration
	SourceStart time.Duration
	SourceEnd   time.Duration
}

// NewClip creates a clip with a fresh id, validating the clip invariants:
// positive duration, non-negative position, and a non-empty source range.
func NewClip(asset AssetID, position, duration, sourceStart, sourceEnd time.Duration) (*Clip, error) {
	c := &Clip{
		ID:          NewClipID(),
		Asset:       asset,
		Position:    position,
		Duration:    duration,
		SourceStart: sourceStart,
		SourceEnd:   sourceEnd,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the clip invariants.
func (c *Clip) Validate() error {
	if c.Duration <= 0 {
		return fmt.Errorf("%w: duration %s must be positive", ErrInvalidClip, c.Duration)
	}
	if c.Position < 0 {
		return fmt.Errorf("%w: position %s must not be negative", ErrInvalidClip, c.Position)
	}
	if c.SourceStart < 0 {
		return fmt.Errorf("%w: source start %s must not be negative", ErrInvalidClip, c.SourceStart)
	}
	if c.SourceStart >= c.SourceEnd {
		return fmt.Errorf("%w: source range [%s, %s) is empty", ErrInvalidClip, c.SourceStart, c.SourceEnd)
	}
	return nil
}

// End returns the exclusive end position of the clip on the timeline.
func (c *Clip) End() time.Duration {
	return c.Position + c.Duration
}

// SourceDuration returns the length of the referenced asset slice.
func (c *Clip) SourceDuration() time.Duration {
	return c.SourceEnd - c.SourceStart
}

// OverlapsWith reports whether the half-open timeline intervals of the
// two clips intersect. This is the single overlap predicate shared by
// every path that checks for collisions.
func (c *Clip) OverlapsWith(other *Clip) bool {
	return c.Position < other.End() && other.Position < c.End()
}

// Contains reports whether t falls inside the clip's half-open interval.
func (c *Clip) Contains(t time.Duration) bool {
	return t >= c.Position && t < c.End()
}

// Clone returns a copy of the clip.
func (c *Clip) Clone() *Clip {
	clone := *c
	return &clone
}
