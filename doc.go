// Package curvedit implements the state synchronization and
// coordinate-transform core of a curve/tracking-data editor.
//
// # Overview
//
// The package provides four cooperating pieces:
//
//   - Store: the single source of truth for curve data, per-curve
//     selections, the active curve, the current frame, and the view
//     parameters. All mutation goes through Store entry points; read
//     accessors return copies, never aliases of internal state.
//   - Transform engine: pure mapping between data space (the frame/x/y
//     coordinates curve points are authored in) and view space (pixels),
//     derived from ViewParams. An Engine adds an optional memo cache.
//   - Index: a spatial index over one curve's points in data space,
//     accelerating nearest-point and rectangle queries for hit testing.
//   - History: reversible commands executed against the live Store,
//     grouped into atomic undo entries.
//
// # Quick Start
//
//	store := curvedit.NewStore()
//	store.SetCurve("track1", []curvedit.Point{
//	    {Frame: 1, X: 0, Y: 0, Status: curvedit.StatusKeyframe},
//	    {Frame: 2, X: 10, Y: 10, Status: curvedit.StatusTracked},
//	})
//
//	hist := curvedit.NewHistory()
//	store.SetSelection("track1", []int{0, 1})
//	hist.Push(store, curvedit.DeleteSelected("track1"))
//	hist.Undo(store) // restores both points and the selection
//
// # Change Notifications
//
// Every successful mutation emits a Change identifying what moved
// (curve data, selection, active curve, frame, view parameters) and the
// affected key. Observers re-query the Store rather than receiving
// payloads inline. Store.Batch groups mutations so that one user-visible
// action produces one notification per touched (kind, key) pair.
//
// # Threading
//
// The Store and History belong to a single owner goroutine, recorded at
// construction. Mutation from any other goroutine is a programming error
// and panics with *ReentrancyError; background loaders must marshal
// results back to the owner before touching the Store.
//
// # Coordinate System
//
// View space uses standard screen coordinates: origin at top-left,
// X right, Y down. The total view scale is always FitScale*ZoomFactor,
// computed at transform time. The two factors are stored separately and
// never pre-multiplied.
package curvedit
