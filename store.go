package curvedit

import "sort"

// Store is the single source of truth for editor state: curve data,
// per-curve selections, the active curve, the current frame, and the
// view parameters.
//
// All mutation goes through Store entry points; read accessors return
// copies, never views of internal state, so a caller can never alias or
// silently discard an edit. Every successful mutation emits a Change,
// immediately or buffered by an open Batch scope.
//
// The Store has no internal locking. It is owned by the goroutine that
// created it and asserts that every mutation arrives there; see
// ReentrancyError.
type Store struct {
	owner owner
	notes notifier

	curves     map[string]Curve
	selections map[string]Selection
	active     string
	frame      int
	view       ViewParams
}

// NewStore creates an empty store owned by the calling goroutine.
func NewStore(opts ...StoreOption) *Store {
	var o storeOptions
	o.view = DefaultViewParams(0, 0)
	for _, opt := range opts {
		opt(&o)
	}

	s := &Store{
		curves:     make(map[string]Curve),
		selections: make(map[string]Selection),
		view:       o.view,
	}
	s.owner.capture()
	for _, fn := range o.observers {
		s.notes.observe(fn)
	}
	return s
}

// Rebind transfers ownership of the store to the calling goroutine.
// Intended for the handoff between a construction goroutine and the
// event loop that will drive all further mutation.
func (s *Store) Rebind() {
	s.owner.capture()
}

// Observe registers a change observer and returns a function that
// removes it. Observers are invoked synchronously on the owner
// goroutine.
func (s *Store) Observe(fn func(Change)) func() {
	s.owner.check()
	return s.notes.observe(fn)
}

// Batch runs fn with change notifications buffered. On exit the buffered
// changes are emitted deduplicated by (kind, key) pair, in the order
// each pair was first touched. Two selection updates on two different
// curves inside one batch are therefore two notifications; only repeat
// updates to the same curve collapse. Batch scopes nest.
func (s *Store) Batch(fn func()) {
	s.owner.check()
	s.notes.begin()
	defer s.notes.end()
	fn()
}

// Curve returns a copy of the named curve, or ok=false if it does not
// exist. A missing curve is an expected transient state during editing,
// not an error.
func (s *Store) Curve(name string) (Curve, bool) {
	c, ok := s.curves[name]
	return c, ok
}

// CurveNames returns the names of all curves in ascending order.
func (s *Store) CurveNames() []string {
	names := make([]string, 0, len(s.curves))
	for name := range s.curves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetCurve atomically replaces the named curve's data. The points must
// have strictly ascending frames; ErrUnorderedPoints is returned and
// nothing changes otherwise.
//
// Replacing a curve revalidates its selection: indices no longer backed
// by a point are dropped, and a selection change is emitted alongside
// the curve-data change when that happens.
func (s *Store) SetCurve(name string, points []Point) error {
	s.owner.check()

	c, err := NewCurve(name, points)
	if err != nil {
		return err
	}
	s.curves[name] = c

	selectionShrunk := false
	if sel, ok := s.selections[name]; ok {
		if restricted, dropped := sel.restrict(c.Len()); dropped {
			s.selections[name] = restricted
			selectionShrunk = true
		}
	}
	s.notes.emit(Change{Kind: ChangeCurveData, Key: name})
	if selectionShrunk {
		s.notes.emit(Change{Kind: ChangeSelection, Key: name})
	}
	return nil
}

// RemoveCurve deletes the named curve and its selection.
// Returns false if no such curve exists. Removing the active curve
// clears the active-curve pointer.
func (s *Store) RemoveCurve(name string) bool {
	s.owner.check()

	if _, ok := s.curves[name]; !ok {
		return false
	}
	hadSelection := s.selections[name].Len() > 0
	delete(s.curves, name)
	delete(s.selections, name)

	s.notes.emit(Change{Kind: ChangeCurveData, Key: name})
	if hadSelection {
		s.notes.emit(Change{Kind: ChangeSelection, Key: name})
	}
	if s.active == name {
		s.active = ""
		s.notes.emit(Change{Kind: ChangeActiveCurve})
	}
	return true
}

// Selection returns a copy of the named curve's selection. The result
// is never nil; an unknown curve has an empty selection.
func (s *Store) Selection(name string) Selection {
	return s.selections[name].clone()
}

// SetSelection replaces the named curve's selection. Out-of-range
// indices are silently dropped rather than rejected: selection is
// best-effort UI state and the caller may be racing a shrink it has not
// observed yet. Selecting on an unknown curve yields an empty selection.
func (s *Store) SetSelection(name string, indices []int) {
	s.owner.check()

	n := 0
	if c, ok := s.curves[name]; ok {
		n = c.Len()
	}
	sel := make(Selection, len(indices))
	for _, i := range indices {
		if i >= 0 && i < n {
			sel[i] = struct{}{}
		}
	}
	s.selections[name] = sel
	s.notes.emit(Change{Kind: ChangeSelection, Key: name})
}

// ActiveCurve returns the name of the active curve, or "" if none.
func (s *Store) ActiveCurve() string { return s.active }

// SetActiveCurve points the active-curve pointer at the named curve.
// Returns false without emitting when the curve does not exist; pass ""
// to clear the pointer.
func (s *Store) SetActiveCurve(name string) bool {
	s.owner.check()

	if name != "" {
		if _, ok := s.curves[name]; !ok {
			return false
		}
	}
	s.active = name
	s.notes.emit(Change{Kind: ChangeActiveCurve})
	return true
}

// Frame returns the current frame.
func (s *Store) Frame() int { return s.frame }

// SetFrame moves the current frame.
func (s *Store) SetFrame(frame int) {
	s.owner.check()
	s.frame = frame
	s.notes.emit(Change{Kind: ChangeFrame})
}

// ViewParams returns the current view parameters.
func (s *Store) ViewParams() ViewParams { return s.view }

// SetViewParams replaces the view parameters wholesale. There is no
// field-by-field patching entry point: a zoom, pan, or fit operation
// builds the complete new ViewParams value first and installs it in one
// call, so observers (and any transform memo keyed off the parameters)
// can never see a half-updated view state.
func (s *Store) SetViewParams(vp ViewParams) {
	s.owner.check()
	s.view = vp
	s.notes.emit(Change{Kind: ChangeView})
}
