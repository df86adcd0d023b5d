package history

import (
	"github.com/dshills/montage/internal/timeline/multitrack"
	"github.com/dshills/montage/internal/timeline/track"
)

// Transaction executes fn with a transaction open. If fn returns an
// error the pending group is rolled back (already-applied commands stay
// applied); otherwise the group is committed as one undo unit.
func (h *History) Transaction(description string, fn func() error) error {
	if err := h.BeginTransaction(description); err != nil {
		return err
	}
	if err := fn(); err != nil {
		_ = h.RollbackTransaction()
		return err
	}
	return h.CommitTransaction()
}

// ExecuteGrouped executes multiple commands as a single undo unit. If a
// command fails, the ones already executed are undone and nothing is
// recorded.
func (h *History) ExecuteGrouped(description string, tracks *track.List, graph *multitrack.Manager, cmds ...Command) error {
	if len(cmds) == 0 {
		return nil
	}
	if len(cmds) == 1 {
		return h.Execute(cmds[0], tracks, graph)
	}
	group := NewCompoundCommand(description, cmds...)
	return h.Execute(group, tracks, graph)
}
