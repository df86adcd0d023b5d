package keyframe

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestEasingLaws(t *testing.T) {
	tests := []struct {
		name   string
		easing Easing
		t      float64
		want   float64
	}{
		{"linear mid", Linear, 0.5, 0.5},
		{"linear clamped low", Linear, -1, 0},
		{"linear clamped high", Linear, 2, 1},
		{"ease-in mid", EaseIn, 0.5, 0.25},
		{"ease-out mid", EaseOut, 0.5, 0.75},
		{"ease-in-out quarter", EaseInOut, 0.25, 0.125},
		{"ease-in-out mid", EaseInOut, 0.5, 0.5},
		{"ease-in-out three-quarter", EaseInOut, 0.75, 0.875},
		{"step before end", Step, 0.99, 0},
		{"step at end", Step, 1, 1},
		{"step at start", Step, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.easing.Apply(tt.t); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Apply(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestEasingInterpolate(t *testing.T) {
	got := Linear.Interpolate(0.25, 10, 20)
	if math.Abs(got-12.5) > 1e-9 {
		t.Errorf("Interpolate = %v, want 12.5", got)
	}
}

func TestEasingRoundTrip(t *testing.T) {
	for _, e := range []Easing{Linear, EaseIn, EaseOut, EaseInOut, Step} {
		parsed, err := ParseEasing(e.String())
		if err != nil {
			t.Fatalf("ParseEasing(%q): %v", e, err)
		}
		if parsed != e {
			t.Errorf("round trip %v != %v", parsed, e)
		}
	}
	if _, err := ParseEasing("bouncy"); err == nil {
		t.Error("expected error for unknown easing")
	}
}

func TestAddKeyframeLazyTrack(t *testing.T) {
	a := NewAnimation(10 * time.Second)
	if len(a.Properties()) != 0 {
		t.Fatal("new animation should have no properties")
	}
	if err := a.AddKeyframe("opacity", 0, 0.0, Linear); err != nil {
		t.Fatalf("AddKeyframe: %v", err)
	}
	if props := a.Properties(); len(props) != 1 || props[0] != "opacity" {
		t.Errorf("Properties = %v, want [opacity]", props)
	}
}

func TestAddKeyframeRejectsDuplicateTime(t *testing.T) {
	a := NewAnimation(0)
	if err := a.AddKeyframe("scale", time.Second, 1.0, Linear); err != nil {
		t.Fatal(err)
	}
	err := a.AddKeyframe("scale", time.Second, 2.0, EaseIn)
	if !errors.Is(err, ErrDuplicateKeyframe) {
		t.Fatalf("expected ErrDuplicateKeyframe, got %v", err)
	}
	var dup *DuplicateError
	if !errors.As(err, &dup) || dup.Time != time.Second {
		t.Errorf("expected *DuplicateError at 1s, got %v", err)
	}
}

func TestAddKeyframeRejectsNegativeTime(t *testing.T) {
	a := NewAnimation(0)
	if err := a.AddKeyframe("scale", -time.Second, 1.0, Linear); !errors.Is(err, ErrInvalidTime) {
		t.Errorf("expected ErrInvalidTime, got %v", err)
	}
}

func TestKeyframesStaySorted(t *testing.T) {
	a := NewAnimation(0)
	times := []time.Duration{3 * time.Second, time.Second, 2 * time.Second}
	for i, at := range times {
		if err := a.AddKeyframe("x", at, float64(i), Linear); err != nil {
			t.Fatal(err)
		}
	}
	pt, ok := a.Track("x")
	if !ok {
		t.Fatal("missing property track")
	}
	points := pt.Points()
	for i := 1; i < len(points); i++ {
		if points[i-1].Time >= points[i].Time {
			t.Errorf("points not sorted at %d", i)
		}
	}
}

func TestValueAtClamping(t *testing.T) {
	a := NewAnimation(0)
	if err := a.AddKeyframe("opacity", 2*time.Second, 0.2, Linear); err != nil {
		t.Fatal(err)
	}
	if err := a.AddKeyframe("opacity", 8*time.Second, 0.8, Linear); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		at   time.Duration
		want float64
	}{
		{"before first", 0, 0.2},
		{"at first", 2 * time.Second, 0.2},
		{"midway", 5 * time.Second, 0.5},
		{"at last", 8 * time.Second, 0.8},
		{"after last", 20 * time.Second, 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.ValueAt("opacity", tt.at)
			if err != nil {
				t.Fatalf("ValueAt: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ValueAt(%s) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestValueAtExactKeyframeNoDrift(t *testing.T) {
	a := NewAnimation(0)
	values := map[time.Duration]float64{
		0:               0.1,
		3 * time.Second: 0.7,
		9 * time.Second: 0.3,
	}
	for at, v := range values {
		if err := a.AddKeyframe("opacity", at, v, EaseInOut); err != nil {
			t.Fatal(err)
		}
	}
	for at, want := range values {
		got, err := a.ValueAt("opacity", at)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("ValueAt(%s) = %v, want exactly %v", at, got, want)
		}
	}
}

func TestValueAtEaseOutAboveLinear(t *testing.T) {
	a := NewAnimation(0)
	if err := a.AddKeyframe("opacity", 0, 0.0, EaseOut); err != nil {
		t.Fatal(err)
	}
	if err := a.AddKeyframe("opacity", 10*time.Second, 1.0, Linear); err != nil {
		t.Fatal(err)
	}
	got, err := a.ValueAt("opacity", 5*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if got < 0.5 || got >= 1.0 {
		t.Errorf("eased midpoint = %v, want in [0.5, 1.0)", got)
	}
}

func TestValueAtUnknownProperty(t *testing.T) {
	a := NewAnimation(0)
	if _, err := a.ValueAt("nope", 0); !errors.Is(err, ErrPropertyNotFound) {
		t.Errorf("expected ErrPropertyNotFound, got %v", err)
	}
}

func TestRemoveKeyframe(t *testing.T) {
	a := NewAnimation(0)
	if err := a.AddKeyframe("x", time.Second, 1.0, Linear); err != nil {
		t.Fatal(err)
	}

	p, err := a.RemoveKeyframe("x", time.Second)
	if err != nil {
		t.Fatalf("RemoveKeyframe: %v", err)
	}
	if p.Value != 1.0 {
		t.Errorf("removed value = %v, want 1.0", p.Value)
	}
	// Last keyframe removed drops the property entirely.
	if len(a.Properties()) != 0 {
		t.Error("empty property track not pruned")
	}
	if _, err := a.RemoveKeyframe("x", time.Second); !errors.Is(err, ErrPropertyNotFound) {
		t.Errorf("expected ErrPropertyNotFound, got %v", err)
	}
}

func TestRemoveKeyframeExactTimeOnly(t *testing.T) {
	a := NewAnimation(0)
	if err := a.AddKeyframe("x", time.Second, 1.0, Linear); err != nil {
		t.Fatal(err)
	}
	if err := a.AddKeyframe("x", 2*time.Second, 2.0, Linear); err != nil {
		t.Fatal(err)
	}
	if _, err := a.RemoveKeyframe("x", 1500*time.Millisecond); !errors.Is(err, ErrKeyframeNotFound) {
		t.Errorf("expected ErrKeyframeNotFound, got %v", err)
	}
}

func TestUpdateKeyframe(t *testing.T) {
	a := NewAnimation(0)
	if err := a.AddKeyframe("x", time.Second, 1.0, Linear); err != nil {
		t.Fatal(err)
	}

	prev, err := a.UpdateKeyframe("x", time.Second, 5.0, EaseIn)
	if err != nil {
		t.Fatalf("UpdateKeyframe: %v", err)
	}
	if prev.Value != 1.0 || prev.Easing != Linear {
		t.Errorf("previous point = %+v, want value 1.0 linear", prev)
	}

	got, err := a.ValueAt("x", time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if got != 5.0 {
		t.Errorf("ValueAt after update = %v, want 5.0", got)
	}

	if _, err := a.UpdateKeyframe("x", 3*time.Second, 0, Linear); !errors.Is(err, ErrKeyframeNotFound) {
		t.Errorf("expected ErrKeyframeNotFound, got %v", err)
	}
}

func TestAnimationClone(t *testing.T) {
	a := NewAnimation(5 * time.Second)
	if err := a.AddKeyframe("x", 0, 1.0, Linear); err != nil {
		t.Fatal(err)
	}

	clone := a.Clone()
	if _, err := clone.UpdateKeyframe("x", 0, 9.0, Step); err != nil {
		t.Fatal(err)
	}

	orig, err := a.ValueAt("x", 0)
	if err != nil {
		t.Fatal(err)
	}
	if orig != 1.0 {
		t.Error("clone shares keyframe storage with original")
	}
}
