package curvedit

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// entry is one undoable unit: one or more commands executed together,
// plus the selection state on both sides of the edit so undo and redo
// restore it exactly.
//
// Entries carry a stable id so log lines keep identifying the same edit
// across undo/redo cycles, independent of the entry's shifting position
// in the stack.
type entry struct {
	id        uuid.UUID
	name      string
	commands  []Command
	selBefore map[string][]int
	selAfter  map[string][]int
}

// History records executed commands as atomic undo units.
//
// Commands are always executed against the live Store passed to Push,
// Undo, and Redo; History never holds Store data, only the commands and
// their selection snapshots. Like the Store, a History is owned by the
// goroutine that created it.
type History struct {
	owner   owner
	entries []*entry
	cursor  int // entries[:cursor] are undoable, entries[cursor:] redoable
	limit   int
}

// NewHistory creates an empty history owned by the calling goroutine.
func NewHistory(opts ...HistoryOption) *History {
	var o historyOptions
	for _, opt := range opts {
		opt(&o)
	}
	h := &History{limit: o.limit}
	h.owner.capture()
	return h
}

// Rebind transfers ownership of the history to the calling goroutine.
func (h *History) Rebind() {
	h.owner.capture()
}

// Len returns the number of retained entries, undone ones included.
func (h *History) Len() int { return len(h.entries) }

// CanUndo reports whether Undo would act.
func (h *History) CanUndo() bool { return h.cursor > 0 }

// CanRedo reports whether Redo would act.
func (h *History) CanRedo() bool { return h.cursor < len(h.entries) }

// UndoName returns the display name of the entry Undo would reverse,
// or "" when there is none. Intended for menu labels ("Undo move points").
func (h *History) UndoName() string {
	if h.cursor == 0 {
		return ""
	}
	return h.entries[h.cursor-1].name
}

// RedoName returns the display name of the entry Redo would re-apply,
// or "" when there is none.
func (h *History) RedoName() string {
	if h.cursor == len(h.entries) {
		return ""
	}
	return h.entries[h.cursor].name
}

// Push executes the given commands in order against the live store and
// records them as ONE history entry, so a multi-command edit ("delete 5
// selected points") reverses with a single undo.
//
// If any command fails its precondition, commands already executed are
// rolled back, nothing is pushed, and the failure is returned. A
// successful push truncates the redo tail: entries past the cursor are
// discarded.
//
// All store mutation runs inside one Batch scope, so observers see the
// whole edit as one deduplicated notification burst.
func (h *History) Push(s *Store, cmds ...Command) error {
	h.owner.check()
	if len(cmds) == 0 {
		return nil
	}

	e := &entry{
		id:        uuid.New(),
		name:      entryName(cmds),
		commands:  cmds,
		selBefore: snapshotSelections(s),
	}

	var execErr error
	s.Batch(func() {
		for i, cmd := range cmds {
			if err := cmd.Execute(s); err != nil {
				execErr = err
				// Roll back the commands that did run, newest first.
				for j := i - 1; j >= 0; j-- {
					if rbErr := cmds[j].Undo(s); rbErr != nil {
						Logger().Warn("rollback failed after aborted push",
							slog.String("command", cmds[j].Name()),
							slog.Any("error", rbErr))
					}
				}
				return
			}
		}
	})
	if execErr != nil {
		return execErr
	}
	e.selAfter = snapshotSelections(s)

	h.entries = append(h.entries[:h.cursor], e)
	h.cursor = len(h.entries)
	if h.limit > 0 && len(h.entries) > h.limit {
		h.entries = h.entries[1:]
		h.cursor--
	}

	Logger().Debug("pushed history entry",
		slog.String("id", e.id.String()),
		slog.String("name", e.name),
		slog.Int("commands", len(cmds)),
		slog.Int("depth", h.cursor))
	return nil
}

// Undo reverses the most recent entry against the live store and
// restores the selection state captured before that entry executed.
// Returns ErrNothingToUndo when the undo stack is empty.
//
// A command failure here means a prior invariant was violated: the
// entry was pushed, so its undo precondition was assumed to hold. The
// failure is logged, history is cleared (its integrity is gone), and a
// *HistoryIntegrityError is returned.
func (h *History) Undo(s *Store) error {
	h.owner.check()
	if h.cursor == 0 {
		return ErrNothingToUndo
	}
	e := h.entries[h.cursor-1]

	var undoErr error
	s.Batch(func() {
		for i := len(e.commands) - 1; i >= 0; i-- {
			if err := e.commands[i].Undo(s); err != nil {
				undoErr = err
				return
			}
		}
		restoreSelections(s, e.selBefore)
	})
	if undoErr != nil {
		return h.integrityLost("undo", e, undoErr)
	}

	h.cursor--
	return nil
}

// Redo re-applies the most recently undone entry against the live store
// and restores the selection state captured after its original
// execution. Returns ErrNothingToRedo when the redo stack is empty.
// Command failures are handled as in Undo.
func (h *History) Redo(s *Store) error {
	h.owner.check()
	if h.cursor == len(h.entries) {
		return ErrNothingToRedo
	}
	e := h.entries[h.cursor]

	var redoErr error
	s.Batch(func() {
		for _, cmd := range e.commands {
			if err := cmd.Redo(s); err != nil {
				redoErr = err
				return
			}
		}
		restoreSelections(s, e.selAfter)
	})
	if redoErr != nil {
		return h.integrityLost("redo", e, redoErr)
	}

	h.cursor++
	return nil
}

// integrityLost logs an undo/redo failure, clears the history, and
// wraps the cause.
func (h *History) integrityLost(op string, e *entry, cause error) error {
	ie := &HistoryIntegrityError{Op: op, Err: cause}
	Logger().Warn("history integrity lost",
		slog.String("op", op),
		slog.String("id", e.id.String()),
		slog.String("name", e.name),
		slog.Any("error", cause))
	h.entries = nil
	h.cursor = 0
	return ie
}

// entryName derives a display name from the entry's commands.
func entryName(cmds []Command) string {
	if len(cmds) == 1 {
		return cmds[0].Name()
	}
	return fmt.Sprintf("%s (+%d more)", cmds[0].Name(), len(cmds)-1)
}

// snapshotSelections copies every curve's selection as sorted indices.
func snapshotSelections(s *Store) map[string][]int {
	snap := make(map[string][]int)
	for _, name := range s.CurveNames() {
		if sel := s.Selection(name); sel.Len() > 0 {
			snap[name] = sel.Indices()
		}
	}
	return snap
}

// restoreSelections installs a selection snapshot. Curves without an
// entry in the snapshot get their selection cleared.
func restoreSelections(s *Store, snap map[string][]int) {
	for _, name := range s.CurveNames() {
		s.SetSelection(name, snap[name])
	}
}
