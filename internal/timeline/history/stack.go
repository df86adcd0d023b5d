package history

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dshills/montage/internal/timeline/multitrack"
	"github.com/dshills/montage/internal/timeline/track"
)

// Common errors for history operations.
var (
	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = errors.New("nothing to redo")

	// ErrTransactionInProgress indicates a transaction is already open.
	ErrTransactionInProgress = errors.New("transaction in progress")

	// ErrNoTransaction indicates no transaction is open.
	ErrNoTransaction = errors.New("no transaction in progress")
)

// ApplyError wraps a failure to apply a command during undo or redo.
type ApplyError struct {
	Op  string // "undo" or "redo"
	Err error
}

// Error implements the error interface.
func (e *ApplyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *ApplyError) Unwrap() error {
	return e.Err
}

// entry wraps a command with metadata.
type entry struct {
	command   Command
	timestamp time.Time
}

// EntryInfo provides read-only info about a recorded edit, for
// displaying undo/redo history to users.
type EntryInfo struct {
	Description string
	Timestamp   time.Time
}

// History manages undo/redo state for a timeline document.
type History struct {
	mu sync.Mutex

	undoStack []*entry
	redoStack []*entry

	// Open transaction, if any.
	transaction *CompoundCommand

	maxEntries int
}

// DefaultMaxEntries bounds the undo stack when no capacity is given.
const DefaultMaxEntries = 1000

// New creates a history with the given capacity. Non-positive values
// fall back to DefaultMaxEntries.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Execute runs a command and records it.
func (h *History) Execute(cmd Command, tracks *track.List, graph *multitrack.Manager) error {
	if err := cmd.Execute(tracks, graph); err != nil {
		return err
	}
	h.Push(cmd)
	return nil
}

// Push records an already-applied command. Inside a transaction the
// command joins the open group; otherwise it becomes its own entry and
// the redo stack is cleared.
func (h *History) Push(cmd Command) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.transaction != nil {
		h.transaction.Add(cmd)
		return
	}
	h.pushLocked(cmd)
}

// pushLocked records a command without acquiring the lock.
func (h *History) pushLocked(cmd Command) {
	h.undoStack = append(h.undoStack, &entry{command: cmd, timestamp: time.Now()})
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// BeginTransaction opens a transaction. Commands recorded until
// CommitTransaction form one undo unit. Opening a transaction clears
// the redo stack.
func (h *History) BeginTransaction(description string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.transaction != nil {
		return ErrTransactionInProgress
	}
	h.transaction = NewCompoundCommand(description)
	h.redoStack = nil
	return nil
}

// CommitTransaction closes the open transaction and records it as a
// single entry. An empty transaction is dropped.
func (h *History) CommitTransaction() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.transaction == nil {
		return ErrNoTransaction
	}
	group := h.transaction
	h.transaction = nil
	if group.IsEmpty() {
		return nil
	}
	h.pushLocked(group)
	return nil
}

// RollbackTransaction discards the open transaction without recording
// it. Commands already applied stay applied; the caller reconciles the
// document state.
func (h *History) RollbackTransaction() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.transaction == nil {
		return ErrNoTransaction
	}
	h.transaction = nil
	return nil
}

// InTransaction reports whether a transaction is open.
func (h *History) InTransaction() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.transaction != nil
}

// Undo reverses the most recent entry. The entry is popped first and
// restored on failure, so a failed undo leaves the stacks unchanged and
// retryable.
func (h *History) Undo(tracks *track.List, graph *multitrack.Manager) error {
	h.mu.Lock()
	if len(h.undoStack) == 0 {
		h.mu.Unlock()
		return ErrNothingToUndo
	}
	e := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.mu.Unlock()

	if err := e.command.Undo(tracks, graph); err != nil {
		h.mu.Lock()
		h.undoStack = append(h.undoStack, e)
		h.mu.Unlock()
		return &ApplyError{Op: "undo", Err: err}
	}

	h.mu.Lock()
	h.redoStack = append(h.redoStack, e)
	h.mu.Unlock()
	return nil
}

// Redo re-applies the most recently undone entry, with the same
// pop-then-restore discipline as Undo.
func (h *History) Redo(tracks *track.List, graph *multitrack.Manager) error {
	h.mu.Lock()
	if len(h.redoStack) == 0 {
		h.mu.Unlock()
		return ErrNothingToRedo
	}
	e := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.mu.Unlock()

	if err := e.command.Execute(tracks, graph); err != nil {
		h.mu.Lock()
		h.redoStack = append(h.redoStack, e)
		h.mu.Unlock()
		return &ApplyError{Op: "redo", Err: err}
	}

	h.mu.Lock()
	h.undoStack = append(h.undoStack, e)
	h.mu.Unlock()
	return nil
}

// CanUndo reports whether an undo entry is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo reports whether a redo entry is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo entries.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo entries.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// PeekUndo returns info about the next undo entry without removing it.
func (h *History) PeekUndo() (EntryInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return EntryInfo{}, false
	}
	e := h.undoStack[len(h.undoStack)-1]
	return EntryInfo{Description: e.command.Description(), Timestamp: e.timestamp}, true
}

// PeekRedo returns info about the next redo entry without removing it.
func (h *History) PeekRedo() (EntryInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return EntryInfo{}, false
	}
	e := h.redoStack[len(h.redoStack)-1]
	return EntryInfo{Description: e.command.Description(), Timestamp: e.timestamp}, true
}

// UndoInfo returns info about every undo entry, oldest first.
func (h *History) UndoInfo() []EntryInfo {
	h.mu.Lock()
	defer h.mu.Unlock()

	result := make([]EntryInfo, len(h.undoStack))
	for i, e := range h.undoStack {
		result[i] = EntryInfo{Description: e.command.Description(), Timestamp: e.timestamp}
	}
	return result
}

// Clear removes all undo/redo history and any open transaction.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
	h.transaction = nil
}

// MaxEntries returns the undo stack capacity.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}
