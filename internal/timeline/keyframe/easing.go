package keyframe

import "fmt"

// Easing selects the interpolation law applied between two keyframes.
type Easing int

const (
	// Linear interpolates at constant speed.
	Linear Easing = iota
	// EaseIn starts slow and accelerates (quadratic).
	EaseIn
	// EaseOut starts fast and decelerates (quadratic).
	EaseOut
	// EaseInOut accelerates then decelerates (piecewise quadratic).
	EaseInOut
	// Step holds the leading value until the trailing keyframe is reached.
	Step
)

// String returns the lower-case name of the easing law.
func (e Easing) String() string {
	switch e {
	case Linear:
		return "linear"
	case EaseIn:
		return "ease-in"
	case EaseOut:
		return "ease-out"
	case EaseInOut:
		return "ease-in-out"
	case Step:
		return "step"
	default:
		return "unknown"
	}
}

// ParseEasing parses the string form produced by String.
func ParseEasing(s string) (Easing, error) {
	switch s {
	case "linear":
		return Linear, nil
	case "ease-in":
		return EaseIn, nil
	case "ease-out":
		return EaseOut, nil
	case "ease-in-out":
		return EaseInOut, nil
	case "step":
		return Step, nil
	default:
		return 0, fmt.Errorf("unknown easing %q", s)
	}
}

// Apply maps a normalized time t to an interpolation weight. t is
// clamped to [0, 1] before the law is applied.
func (e Easing) Apply(t float64) float64 {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	switch e {
	case EaseIn:
		return t * t
	case EaseOut:
		return t * (2 - t)
	case EaseInOut:
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	case Step:
		if t < 1 {
			return 0
		}
		return 1
	default:
		return t
	}
}

// Interpolate eases t and blends between from and to.
func (e Easing) Interpolate(t, from, to float64) float64 {
	w := e.Apply(t)
	return from + (to-from)*w
}
