package multitrack

import (
	"fmt"
	"sort"

	"github.com/dshills/montage/internal/timeline/track"
)

// Edge is one directed relationship, as enumerated for serialization.
type Edge struct {
	Source       track.TrackID
	Target       track.TrackID
	Relationship Relationship
}

// Manager owns the dependency graph between tracks: a forward map from
// source to its targets and a mirrored reverse map from target back to
// its sources. Both maps are mutated together; the forward map viewed
// as a directed graph stays acyclic.
type Manager struct {
	forward map[track.TrackID]map[track.TrackID]Relationship
	reverse map[track.TrackID]map[track.TrackID]Relationship
}

// NewManager creates an empty relationship graph.
func NewManager() *Manager {
	return &Manager{
		forward: make(map[track.TrackID]map[track.TrackID]Relationship),
		reverse: make(map[track.TrackID]map[track.TrackID]Relationship),
	}
}

// AddRelationship records that target depends on source. Both tracks
// must exist in the list, the edge must not already exist, and the edge
// must not close a cycle. On any rejection neither map is modified.
func (m *Manager) AddRelationship(source, target track.TrackID, rel Relationship, tracks *track.List) error {
	if source == target {
		return fmt.Errorf("%w: %s", ErrSelfRelationship, source)
	}
	if !tracks.Contains(source) {
		return fmt.Errorf("%w: %s", ErrTrackNotFound, source)
	}
	if !tracks.Contains(target) {
		return fmt.Errorf("%w: %s", ErrTrackNotFound, target)
	}
	if existing, ok := m.forward[source][target]; ok {
		return &ConflictError{Source: source, Target: target, Existing: existing}
	}
	if wouldCreateCycle(m.adjacency(), source, target) {
		return &CycleError{Source: source, Target: target}
	}
	m.setEdge(source, target, rel)
	return nil
}

// RemoveRelationship deletes the edge in both directions, returning the
// relationship it carried.
func (m *Manager) RemoveRelationship(source, target track.TrackID) (Relationship, error) {
	rel, ok := m.forward[source][target]
	if !ok {
		return 0, fmt.Errorf("%w: %s -> %s", ErrRelationshipNotFound, source, target)
	}
	delete(m.forward[source], target)
	if len(m.forward[source]) == 0 {
		delete(m.forward, source)
	}
	delete(m.reverse[target], source)
	if len(m.reverse[target]) == 0 {
		delete(m.reverse, target)
	}
	return rel, nil
}

// UpdateRelationship changes the kind of an existing edge, returning
// the previous kind.
func (m *Manager) UpdateRelationship(source, target track.TrackID, rel Relationship) (Relationship, error) {
	prev, ok := m.forward[source][target]
	if !ok {
		return 0, fmt.Errorf("%w: %s -> %s", ErrRelationshipNotFound, source, target)
	}
	m.forward[source][target] = rel
	m.reverse[target][source] = rel
	return prev, nil
}

// RelationshipBetween returns the edge from source to target, if any.
func (m *Manager) RelationshipBetween(source, target track.TrackID) (Relationship, bool) {
	rel, ok := m.forward[source][target]
	return rel, ok
}

// DependenciesOf returns the tracks the given track depends on.
func (m *Manager) DependenciesOf(id track.TrackID) []track.TrackID {
	return sortedKeys(m.reverse[id])
}

// DependentsOf returns the tracks that depend on the given track.
func (m *Manager) DependentsOf(id track.TrackID) []track.TrackID {
	return sortedKeys(m.forward[id])
}

// All enumerates every edge, ordered by source then target id, for
// serialization.
func (m *Manager) All() []Edge {
	var edges []Edge
	for _, source := range sortedKeys(m.forward) {
		for _, target := range sortedKeys(m.forward[source]) {
			edges = append(edges, Edge{
				Source:       source,
				Target:       target,
				Relationship: m.forward[source][target],
			})
		}
	}
	return edges
}

// EdgeCount returns the number of edges in the graph.
func (m *Manager) EdgeCount() int {
	n := 0
	for _, targets := range m.forward {
		n += len(targets)
	}
	return n
}

// RemoveTrack purges every edge touching the track from both maps.
// Returns the removed edges so callers can restore them on undo.
func (m *Manager) RemoveTrack(id track.TrackID) []Edge {
	var removed []Edge
	for _, target := range sortedKeys(m.forward[id]) {
		removed = append(removed, Edge{Source: id, Target: target, Relationship: m.forward[id][target]})
	}
	for _, source := range sortedKeys(m.reverse[id]) {
		removed = append(removed, Edge{Source: source, Target: id, Relationship: m.reverse[id][source]})
	}
	for _, e := range removed {
		m.RemoveRelationship(e.Source, e.Target) //nolint:errcheck // edges enumerated above exist
	}
	return removed
}

// Restore re-inserts previously removed edges without re-running
// validation, for undo of a track removal. The edges came out of an
// acyclic graph, so re-adding them cannot introduce a cycle.
func (m *Manager) Restore(edges []Edge) {
	for _, e := range edges {
		m.setEdge(e.Source, e.Target, e.Relationship)
	}
}

// setEdge writes both directions of an edge.
func (m *Manager) setEdge(source, target track.TrackID, rel Relationship) {
	if m.forward[source] == nil {
		m.forward[source] = make(map[track.TrackID]Relationship)
	}
	m.forward[source][target] = rel
	if m.reverse[target] == nil {
		m.reverse[target] = make(map[track.TrackID]Relationship)
	}
	m.reverse[target][source] = rel
}

// adjacency snapshots the forward map as an adjacency list for the
// cycle checker.
func (m *Manager) adjacency() map[track.TrackID][]track.TrackID {
	adj := make(map[track.TrackID][]track.TrackID, len(m.forward))
	for source, targets := range m.forward {
		for target := range targets {
			adj[source] = append(adj[source], target)
		}
	}
	return adj
}

func sortedKeys[V any](m map[track.TrackID]V) []track.TrackID {
	out := make([]track.TrackID, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}
