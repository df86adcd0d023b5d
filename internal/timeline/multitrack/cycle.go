package multitrack

import "github.com/dshills/montage/internal/timeline/track"

// wouldCreateCycle reports whether adding the edge source -> target
// would close a cycle in the adjacency map. It searches depth-first
// from target for a path back to source; the visited set bounds the
// walk to O(V+E). The function is pure so it can be tested against an
// adjacency map directly.
func wouldCreateCycle(adjacency map[track.TrackID][]track.TrackID, source, target track.TrackID) bool {
	if source == target {
		return true
	}
	visited := make(map[track.TrackID]bool)
	stack := []track.TrackID{target}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if current == source {
			return true
		}
		if visited[current] {
			continue
		}
		visited[current] = true
		for _, next := range adjacency[current] {
			if !visited[next] {
				stack = append(stack, next)
			}
		}
	}
	return false
}
