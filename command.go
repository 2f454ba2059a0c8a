package curvedit

// Command is one reversible edit. A command holds only the parameters
// that describe the edit ("delete the selected points of curve X") and
// reads everything else from the live Store passed to each call.
//
// Commands must never keep a reference to Store data captured at
// construction time. A command may be built long before it runs (menu
// wiring, deferred actions); binding it to a snapshot of the Store as it
// looked at construction silently operates on stale state. Whatever a
// command needs for Undo it captures during Execute, when the data is
// current by definition.
//
// Lifecycle: Created → Executed → (Undone ⇄ Redone) → Discarded. A
// command is discarded when a new push truncates the redo tail it lives
// on.
type Command interface {
	// Name identifies the command for history display and logging.
	Name() string

	// Execute applies the edit to the live store. A precondition
	// failure (missing curve, empty selection) returns
	// *InvalidOperationError and must leave the store untouched.
	Execute(s *Store) error

	// Undo reverses a previously executed command against the live
	// store.
	Undo(s *Store) error

	// Redo re-applies a previously undone command against the live
	// store.
	Redo(s *Store) error
}

// invalidOp builds the standard precondition-failure error.
func invalidOp(name, reason string) error {
	return &InvalidOperationError{Op: name, Reason: reason}
}
