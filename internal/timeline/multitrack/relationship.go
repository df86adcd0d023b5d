package multitrack

import "fmt"

// Relationship types the constraint an edge places on its dependent.
type Relationship int

const (
	// Independent records an edge with no derived effect.
	Independent Relationship = iota
	// Locked keeps the dependent's muted/locked flags mirroring the
	// source after every edit.
	Locked
	// TimingDependent shifts the dependent's clips by the change in the
	// source track's end time.
	TimingDependent
	// VisibilityDependent keeps the dependent's muted flag following the
	// source's.
	VisibilityDependent
)

// String returns the lower-case name of the relationship.
func (r Relationship) String() string {
	switch r {
	case Independent:
		return "independent"
	case Locked:
		return "locked"
	case TimingDependent:
		return "timing-dependent"
	case VisibilityDependent:
		return "visibility-dependent"
	default:
		return "unknown"
	}
}

// ParseRelationship parses the string form produced by String.
func ParseRelationship(s string) (Relationship, error) {
	switch s {
	case "independent":
		return Independent, nil
	case "locked":
		return Locked, nil
	case "timing-dependent":
		return TimingDependent, nil
	case "visibility-dependent":
		return VisibilityDependent, nil
	default:
		return 0, fmt.Errorf("unknown relationship %q", s)
	}
}
