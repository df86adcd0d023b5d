// Package multitrack maintains the typed dependency graph between
// tracks and propagates edits along it.
//
// Edges are directed: AddRelationship(source, target, rel) records that
// target depends on source. The forward map is mirrored by a reverse
// map so dependents of a track can be walked without scanning. The
// graph is kept acyclic; AddRelationship rejects an edge that would
// close a cycle, leaving both maps untouched.
//
// ApplyEdit runs a caller-supplied mutation on one track and then
// re-derives the state of every (transitive) dependent according to the
// relationship kind, guarding against re-visiting a track within one
// propagation pass.
package multitrack
