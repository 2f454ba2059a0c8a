package curvedit

import (
	"errors"
	"fmt"
)

// ErrNothingToUndo is returned by History.Undo when the undo stack is empty.
var ErrNothingToUndo = errors.New("curvedit: nothing to undo")

// ErrNothingToRedo is returned by History.Redo when the redo stack is empty.
var ErrNothingToRedo = errors.New("curvedit: nothing to redo")

// DegenerateTransformError reports a view transform whose total scale is
// too close to zero to be invertible. It is surfaced to the caller rather
// than silently replaced with an identity scale.
type DegenerateTransformError struct {
	TotalScale float64
}

func (e *DegenerateTransformError) Error() string {
	return fmt.Sprintf("curvedit: degenerate transform: total scale %g below epsilon", e.TotalScale)
}

// InvalidOperationError reports a command whose precondition failed at
// execute time (for example, the target curve no longer exists). The
// command is not pushed to history when execution fails this way.
type InvalidOperationError struct {
	Op     string // command name
	Reason string
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("curvedit: %s: %s", e.Op, e.Reason)
}

// HistoryIntegrityError reports an undo or redo whose precondition no
// longer holds. It indicates a prior invariant violation: the command was
// already pushed, so the caller has assumed history integrity. The error
// wraps the underlying failure.
type HistoryIntegrityError struct {
	Op  string // "undo" or "redo"
	Err error
}

func (e *HistoryIntegrityError) Error() string {
	return fmt.Sprintf("curvedit: history integrity lost during %s: %v", e.Op, e.Err)
}

func (e *HistoryIntegrityError) Unwrap() error { return e.Err }

// ReentrancyError reports a Store or History mutation attempted from a
// goroutine other than the owner recorded at construction. This is a
// programming error, not a recoverable condition, so mutation entry
// points panic with it.
type ReentrancyError struct {
	Owner  uint64 // goroutine that owns the structure
	Caller uint64 // goroutine that attempted the mutation
}

func (e *ReentrancyError) Error() string {
	return fmt.Sprintf("curvedit: mutation from goroutine %d, owner is goroutine %d", e.Caller, e.Owner)
}
