package curvedit

import "sort"

// Selection is a set of point indices scoped to one curve. The Store
// guarantees every member is a valid index into the curve's point
// sequence; indices invalidated by a shrink are dropped, not clamped to
// a different point.
type Selection map[int]struct{}

// NewSelection builds a selection from the given indices.
// Duplicates collapse; no range check is performed here (the Store does
// that against the target curve).
func NewSelection(indices ...int) Selection {
	s := make(Selection, len(indices))
	for _, i := range indices {
		s[i] = struct{}{}
	}
	return s
}

// Has reports whether index i is selected.
func (s Selection) Has(i int) bool {
	_, ok := s[i]
	return ok
}

// Len returns the number of selected indices.
func (s Selection) Len() int { return len(s) }

// Indices returns the selected indices in ascending order.
func (s Selection) Indices() []int {
	out := make([]int, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Equal reports whether two selections contain the same indices.
func (s Selection) Equal(t Selection) bool {
	if len(s) != len(t) {
		return false
	}
	for i := range s {
		if _, ok := t[i]; !ok {
			return false
		}
	}
	return true
}

// clone returns an independent copy of the selection.
func (s Selection) clone() Selection {
	cp := make(Selection, len(s))
	for i := range s {
		cp[i] = struct{}{}
	}
	return cp
}

// restrict returns the selection with every index >= n removed, plus a
// flag reporting whether anything was dropped. Used by the Store when a
// curve shrinks.
func (s Selection) restrict(n int) (Selection, bool) {
	dropped := false
	cp := make(Selection, len(s))
	for i := range s {
		if i >= 0 && i < n {
			cp[i] = struct{}{}
		} else {
			dropped = true
		}
	}
	return cp, dropped
}
