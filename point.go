package curvedit

import "math"

// PointStatus describes how a tracked point was produced.
type PointStatus uint8

const (
	// StatusNormal is a plain data point with no special role.
	StatusNormal PointStatus = iota

	// StatusKeyframe is a user-placed anchor point.
	StatusKeyframe

	// StatusInterpolated is a point filled in between keyframes.
	StatusInterpolated

	// StatusTracked is a point produced by automatic tracking.
	StatusTracked

	// StatusEndFrame marks the last frame of a tracked range.
	StatusEndFrame
)

// String returns the status name for logging and test output.
func (s PointStatus) String() string {
	switch s {
	case StatusNormal:
		return "normal"
	case StatusKeyframe:
		return "keyframe"
	case StatusInterpolated:
		return "interpolated"
	case StatusTracked:
		return "tracked"
	case StatusEndFrame:
		return "endframe"
	default:
		return "unknown"
	}
}

// Point is one sample of a curve: a frame number, a data-space position,
// and the status of the sample. Point is an immutable value; editing a
// point means replacing it through a Store mutation.
type Point struct {
	Frame  int
	X, Y   float64
	Status PointStatus
}

// Pt is a convenience constructor for a normal-status point.
func Pt(frame int, x, y float64) Point {
	return Point{Frame: frame, X: x, Y: y, Status: StatusNormal}
}

// DistanceTo returns the data-space distance to another point.
func (p Point) DistanceTo(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// distSq returns the squared data-space distance to (x, y).
// Used by the spatial index to avoid a sqrt per candidate.
func (p Point) distSq(x, y float64) float64 {
	dx := p.X - x
	dy := p.Y - y
	return dx*dx + dy*dy
}

// Offset returns a copy of the point translated by (dx, dy).
// Frame and status are unchanged.
func (p Point) Offset(dx, dy float64) Point {
	p.X += dx
	p.Y += dy
	return p
}

// WithStatus returns a copy of the point with the given status.
func (p Point) WithStatus(s PointStatus) Point {
	p.Status = s
	return p
}
