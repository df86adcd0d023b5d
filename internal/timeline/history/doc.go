// Package history provides transactional undo/redo for timeline edits.
//
// Every reversible edit is a Command carrying exactly the data needed
// to apply and invert itself: removals capture the removed value and
// its original index, setters capture the previous value, relationship
// edits capture the previous kind. Commands execute against the track
// list and the relationship graph directly.
//
// # History stack
//
// The History type manages the undo and redo stacks:
//
//	h := history.New(1000)
//	h.Execute(cmd, tracks, graph) // apply and record
//	h.Undo(tracks, graph)
//	h.Redo(tracks, graph)
//
// Undo and redo pop the entry first, apply it, and only then push it to
// the opposite stack; a failed application restores the entry to its
// original stack so the history stays consistent and retryable.
//
// # Transactions
//
// A transaction groups commands into one history entry:
//
//	h.BeginTransaction("Split Clip")
//	// ... record commands ...
//	h.CommitTransaction()
//
// One undo then reverts the whole group. RollbackTransaction discards
// the pending group without reverting already-applied state; the caller
// reconciles that.
package history
