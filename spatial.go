package curvedit

import "sort"

// Index accelerates nearest-point and rectangle queries over one curve's
// points in data space. Because it indexes data coordinates, pan and
// zoom never invalidate it; only a data change does.
//
// The index pulls its points from a source function at rebuild time and
// rebuilds lazily: Invalidate only marks it dirty, and the next query
// pays the O(n log n) rebuild. Rebuilding eagerly on every single-point
// edit would cost O(n) per keystroke for queries that may never come.
//
// Index is a pure accelerator: every query returns exactly what a
// linear scan over the same points would.
type Index struct {
	source func() []Point
	dirty  bool

	// points sorted by X, with the original index of each entry.
	byX  []indexEntry
	size int
}

type indexEntry struct {
	x, y float64
	idx  int
}

// NewIndex creates an index over the points returned by source.
// A typical source reads the current curve from a Store:
//
//	idx := curvedit.NewIndex(func() []curvedit.Point {
//	    c, _ := store.Curve("track1")
//	    return c.Points()
//	})
//	remove := store.Observe(func(ch curvedit.Change) {
//	    if ch.Kind == curvedit.ChangeCurveData && ch.Key == "track1" {
//	        idx.Invalidate()
//	    }
//	})
func NewIndex(source func() []Point) *Index {
	return &Index{source: source, dirty: true}
}

// Invalidate marks the index stale. The next query rebuilds it from the
// source. Calling Invalidate repeatedly between queries is free.
func (ix *Index) Invalidate() {
	ix.dirty = true
}

// Len returns the number of indexed points, rebuilding if necessary.
func (ix *Index) Len() int {
	ix.rebuild()
	return ix.size
}

// Nearest returns the index of the closest point within maxDist of
// (x, y) in data-space distance. Ties break to the lowest point index.
// ok is false when no point lies within maxDist.
func (ix *Index) Nearest(x, y, maxDist float64) (int, bool) {
	ix.rebuild()
	if ix.size == 0 || maxDist < 0 {
		return 0, false
	}

	lo, hi := ix.xRange(x-maxDist, x+maxDist)
	best := -1
	bestSq := maxDist * maxDist
	for i := lo; i < hi; i++ {
		e := ix.byX[i]
		dx := e.x - x
		dy := e.y - y
		dSq := dx*dx + dy*dy
		if dSq > bestSq {
			continue
		}
		// Closed bound: a point exactly at maxDist qualifies.
		if dSq < bestSq || best == -1 || e.idx < best {
			bestSq = dSq
			best = e.idx
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

// InRect returns the indices of all points whose data coordinates fall
// within the closed rectangle, in ascending index order.
func (ix *Index) InRect(r Rect) []int {
	ix.rebuild()

	lo, hi := ix.xRange(r.X0, r.X1)
	var out []int
	for i := lo; i < hi; i++ {
		e := ix.byX[i]
		if e.y >= r.Y0 && e.y <= r.Y1 {
			out = append(out, e.idx)
		}
	}
	sort.Ints(out)
	return out
}

// rebuild refreshes the sorted entries from the source if dirty.
func (ix *Index) rebuild() {
	if !ix.dirty {
		return
	}
	points := ix.source()
	ix.size = len(points)
	ix.byX = ix.byX[:0]
	for i, p := range points {
		ix.byX = append(ix.byX, indexEntry{x: p.X, y: p.Y, idx: i})
	}
	sort.Slice(ix.byX, func(a, b int) bool {
		if ix.byX[a].x != ix.byX[b].x {
			return ix.byX[a].x < ix.byX[b].x
		}
		return ix.byX[a].idx < ix.byX[b].idx
	})
	ix.dirty = false
}

// xRange returns the half-open range of byX entries with x in the
// closed interval [x0, x1].
func (ix *Index) xRange(x0, x1 float64) (lo, hi int) {
	lo = sort.Search(len(ix.byX), func(i int) bool {
		return ix.byX[i].x >= x0
	})
	hi = sort.Search(len(ix.byX), func(i int) bool {
		return ix.byX[i].x > x1
	})
	return lo, hi
}
