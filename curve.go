package curvedit

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnorderedPoints reports curve data whose frames are not strictly
// ascending. Frames must be unique within a curve.
var ErrUnorderedPoints = errors.New("curvedit: curve points must have strictly ascending frames")

// Curve is a named, ordered sequence of points, ordered by frame with
// frames unique within the curve. A Curve value never aliases Store
// internals: read accessors hand out copies, and the only way to persist
// an edit is a Store bulk write.
type Curve struct {
	name   string
	points []Point
}

// NewCurve validates and builds a curve from the given points. The slice
// is copied. Returns ErrUnorderedPoints (wrapped with the offending
// frames) if frames are not strictly ascending.
func NewCurve(name string, points []Point) (Curve, error) {
	for i := 1; i < len(points); i++ {
		if points[i].Frame <= points[i-1].Frame {
			return Curve{}, fmt.Errorf("%w: frame %d after frame %d in %q",
				ErrUnorderedPoints, points[i].Frame, points[i-1].Frame, name)
		}
	}
	cp := make([]Point, len(points))
	copy(cp, points)
	return Curve{name: name, points: cp}, nil
}

// Name returns the curve's unique key.
func (c Curve) Name() string { return c.name }

// Len returns the number of points.
func (c Curve) Len() int { return len(c.points) }

// Point returns the point at index i, or false if i is out of range.
func (c Curve) Point(i int) (Point, bool) {
	if i < 0 || i >= len(c.points) {
		return Point{}, false
	}
	return c.points[i], true
}

// Points returns a copy of the point sequence. Mutating the returned
// slice has no effect on the curve.
func (c Curve) Points() []Point {
	cp := make([]Point, len(c.points))
	copy(cp, c.points)
	return cp
}

// PointAtFrame returns the point with the given frame number and its
// index, using binary search over the frame-ordered sequence.
func (c Curve) PointAtFrame(frame int) (Point, int, bool) {
	i := sort.Search(len(c.points), func(i int) bool {
		return c.points[i].Frame >= frame
	})
	if i < len(c.points) && c.points[i].Frame == frame {
		return c.points[i], i, true
	}
	return Point{}, -1, false
}

// FrameRange returns the first and last frame of the curve.
// ok is false for an empty curve.
func (c Curve) FrameRange() (first, last int, ok bool) {
	if len(c.points) == 0 {
		return 0, 0, false
	}
	return c.points[0].Frame, c.points[len(c.points)-1].Frame, true
}

// Bounds returns the data-space bounding rectangle of the curve's points.
// ok is false for an empty curve.
func (c Curve) Bounds() (Rect, bool) {
	if len(c.points) == 0 {
		return Rect{}, false
	}
	r := Rect{X0: c.points[0].X, Y0: c.points[0].Y, X1: c.points[0].X, Y1: c.points[0].Y}
	for _, p := range c.points[1:] {
		if p.X < r.X0 {
			r.X0 = p.X
		}
		if p.X > r.X1 {
			r.X1 = p.X
		}
		if p.Y < r.Y0 {
			r.Y0 = p.Y
		}
		if p.Y > r.Y1 {
			r.Y1 = p.Y
		}
	}
	return r, true
}
