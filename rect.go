package curvedit

// Rect is a closed axis-aligned rectangle in data space.
// Use NewRect to build one from arbitrary corners; a Rect built directly
// must satisfy X0 <= X1 and Y0 <= Y1.
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// NewRect returns the rectangle spanning the two corners, normalizing
// the coordinates so that (X0, Y0) is the minimum corner.
func NewRect(x0, y0, x1, y1 float64) Rect {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// Contains reports whether (x, y) lies within the closed rectangle.
// Points exactly on the boundary are inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X0 && x <= r.X1 && y >= r.Y0 && y <= r.Y1
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Empty reports whether the rectangle has zero area.
func (r Rect) Empty() bool {
	return r.X1 <= r.X0 || r.Y1 <= r.Y0
}

// Union returns the smallest rectangle containing both r and s.
func (r Rect) Union(s Rect) Rect {
	if s.X0 < r.X0 {
		r.X0 = s.X0
	}
	if s.Y0 < r.Y0 {
		r.Y0 = s.Y0
	}
	if s.X1 > r.X1 {
		r.X1 = s.X1
	}
	if s.Y1 > r.Y1 {
		r.Y1 = s.Y1
	}
	return r
}
