package curvedit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSetCurveAndRead(t *testing.T) {
	store := NewStore()

	points := []Point{Pt(1, 0, 0), Pt(2, 10, 10), Pt(3, 20, 20)}
	require.NoError(t, store.SetCurve("track1", points))

	c, ok := store.Curve("track1")
	require.True(t, ok)
	assert.Equal(t, "track1", c.Name())
	assert.Equal(t, points, c.Points())

	_, ok = store.Curve("missing")
	assert.False(t, ok, "missing curve must report not-found, not error")
}

func TestStoreSetCurveRejectsUnorderedFrames(t *testing.T) {
	store := NewStore()

	err := store.SetCurve("bad", []Point{Pt(2, 0, 0), Pt(1, 1, 1)})
	require.ErrorIs(t, err, ErrUnorderedPoints)

	err = store.SetCurve("dup", []Point{Pt(1, 0, 0), Pt(1, 1, 1)})
	require.ErrorIs(t, err, ErrUnorderedPoints)

	_, ok := store.Curve("bad")
	assert.False(t, ok, "rejected curve must not be stored")
}

func TestStoreReadsReturnCopies(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.SetCurve("track1", []Point{Pt(1, 0, 0)}))
	store.SetSelection("track1", []int{0})

	// Mutating what a read accessor returned must not leak back in.
	c, _ := store.Curve("track1")
	pts := c.Points()
	pts[0].X = 999

	sel := store.Selection("track1")
	sel[5] = struct{}{}

	c2, _ := store.Curve("track1")
	p, _ := c2.Point(0)
	assert.Equal(t, 0.0, p.X, "curve data aliased through read accessor")
	assert.Equal(t, []int{0}, store.Selection("track1").Indices(), "selection aliased through read accessor")
}

func TestStoreSelectionDropsOutOfRange(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.SetCurve("track1", []Point{Pt(1, 0, 0), Pt(2, 1, 1)}))

	// Out-of-range indices are silently dropped, not an error.
	store.SetSelection("track1", []int{0, 1, 2, 7, -1})
	assert.Equal(t, []int{0, 1}, store.Selection("track1").Indices())

	// Selecting on an unknown curve yields an empty selection.
	store.SetSelection("ghost", []int{0})
	assert.Zero(t, store.Selection("ghost").Len())
}

func TestStoreSelectionRevalidatedOnShrink(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.SetCurve("track1", []Point{Pt(1, 0, 0), Pt(2, 1, 1), Pt(3, 2, 2)}))
	store.SetSelection("track1", []int{0, 2})

	var changes []Change
	remove := store.Observe(func(c Change) { changes = append(changes, c) })
	defer remove()

	// Shrinking to two points invalidates index 2; the store drops it
	// and announces the selection change alongside the data change.
	require.NoError(t, store.SetCurve("track1", []Point{Pt(1, 0, 0), Pt(2, 1, 1)}))

	assert.Equal(t, []int{0}, store.Selection("track1").Indices())
	assert.Equal(t, []Change{
		{Kind: ChangeCurveData, Key: "track1"},
		{Kind: ChangeSelection, Key: "track1"},
	}, changes)
}

func TestStoreBatchDeduplicatesByKindAndKey(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.SetCurve("A", []Point{Pt(1, 0, 0), Pt(2, 1, 1)}))
	require.NoError(t, store.SetCurve("B", []Point{Pt(1, 0, 0), Pt(2, 1, 1), Pt(3, 2, 2)}))

	var changes []Change
	remove := store.Observe(func(c Change) { changes = append(changes, c) })
	defer remove()

	store.Batch(func() {
		store.SetSelection("A", []int{1})
		store.SetSelection("B", []int{2})
	})

	// Dedup keys on the full (kind, key) pair: two curves means two
	// notifications. Collapsing to one would silently drop a curve.
	assert.Equal(t, []Change{
		{Kind: ChangeSelection, Key: "A"},
		{Kind: ChangeSelection, Key: "B"},
	}, changes)
}

func TestStoreBatchCollapsesSamePair(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.SetCurve("A", []Point{Pt(1, 0, 0), Pt(2, 1, 1)}))

	var changes []Change
	remove := store.Observe(func(c Change) { changes = append(changes, c) })
	defer remove()

	store.Batch(func() {
		store.SetSelection("A", []int{0})
		store.SetSelection("A", []int{1})
		store.SetSelection("A", []int{0, 1})
	})

	require.Len(t, changes, 1)
	assert.Equal(t, Change{Kind: ChangeSelection, Key: "A"}, changes[0])
	// Observers re-query; the store already holds the final state.
	assert.Equal(t, []int{0, 1}, store.Selection("A").Indices())
}

func TestStoreBatchOrderIsFirstTouched(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.SetCurve("A", []Point{Pt(1, 0, 0)}))
	require.NoError(t, store.SetCurve("B", []Point{Pt(1, 0, 0)}))

	var changes []Change
	remove := store.Observe(func(c Change) { changes = append(changes, c) })
	defer remove()

	store.Batch(func() {
		store.SetFrame(5)
		store.SetSelection("B", nil)
		store.SetSelection("A", nil)
		store.SetFrame(6) // same pair as the first mutation: no new slot
	})

	assert.Equal(t, []Change{
		{Kind: ChangeFrame},
		{Kind: ChangeSelection, Key: "B"},
		{Kind: ChangeSelection, Key: "A"},
	}, changes)
	assert.Equal(t, 6, store.Frame())
}

func TestStoreBatchNests(t *testing.T) {
	store := NewStore()

	var changes []Change
	remove := store.Observe(func(c Change) { changes = append(changes, c) })
	defer remove()

	store.Batch(func() {
		store.SetFrame(1)
		store.Batch(func() {
			store.SetFrame(2)
		})
		assert.Empty(t, changes, "inner batch exit must not flush the outer scope")
	})

	assert.Equal(t, []Change{{Kind: ChangeFrame}}, changes)
}

func TestStoreActiveCurve(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.SetCurve("track1", []Point{Pt(1, 0, 0)}))

	assert.False(t, store.SetActiveCurve("missing"))
	assert.Equal(t, "", store.ActiveCurve())

	assert.True(t, store.SetActiveCurve("track1"))
	assert.Equal(t, "track1", store.ActiveCurve())

	// Removing the active curve clears the pointer.
	assert.True(t, store.RemoveCurve("track1"))
	assert.Equal(t, "", store.ActiveCurve())
}

func TestStoreRemoveCurve(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.SetCurve("track1", []Point{Pt(1, 0, 0)}))
	store.SetSelection("track1", []int{0})

	var changes []Change
	remove := store.Observe(func(c Change) { changes = append(changes, c) })
	defer remove()

	assert.True(t, store.RemoveCurve("track1"))
	assert.False(t, store.RemoveCurve("track1"), "second removal reports not-found")
	assert.Zero(t, store.Selection("track1").Len())
	assert.Equal(t, []Change{
		{Kind: ChangeCurveData, Key: "track1"},
		{Kind: ChangeSelection, Key: "track1"},
	}, changes)
}

func TestStoreViewParamsReplacedWholesale(t *testing.T) {
	store := NewStore(WithViewParams(DefaultViewParams(800, 600)))

	var changes []Change
	remove := store.Observe(func(c Change) { changes = append(changes, c) })
	defer remove()

	vp := ViewParams{FitScale: 0.5, ZoomFactor: 2, PanX: 3, PanY: 4, DisplayW: 800, DisplayH: 600}
	store.SetViewParams(vp)

	assert.Equal(t, vp, store.ViewParams())
	assert.Equal(t, []Change{{Kind: ChangeView}}, changes)
}

func TestStoreMutationFromWrongGoroutinePanics(t *testing.T) {
	store := NewStore()

	recovered := make(chan any, 1)
	go func() {
		defer func() { recovered <- recover() }()
		store.SetFrame(1)
	}()

	r := <-recovered
	require.NotNil(t, r, "mutation off the owner goroutine must panic")
	re, ok := r.(*ReentrancyError)
	require.True(t, ok, "panic value is %T, want *ReentrancyError", r)
	assert.NotEqual(t, re.Owner, re.Caller)
}

func TestStoreRebind(t *testing.T) {
	done := make(chan *Store)
	go func() {
		done <- NewStore()
	}()
	store := <-done

	// The constructing goroutine is gone; take ownership here.
	store.Rebind()
	store.SetFrame(42)
	if got := store.Frame(); got != 42 {
		t.Errorf("Frame() = %d, want 42", got)
	}
}

func TestStoreObserverRemoval(t *testing.T) {
	store := NewStore()

	count := 0
	remove := store.Observe(func(Change) { count++ })
	store.SetFrame(1)
	remove()
	store.SetFrame(2)

	assert.Equal(t, 1, count)
}
