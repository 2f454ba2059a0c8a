package curvedit

import (
	"math"

	"github.com/curvedit/curvedit/cache"
)

// scaleEpsilon is the smallest total scale considered invertible.
// Anything closer to zero is a degenerate transform.
const scaleEpsilon = 1e-9

// Transform maps data-space coordinates to view-space coordinates:
//
//	vx = x*TotalScale + OffsetX
//	vy = y*TotalScale + OffsetY
//
// It is a derived value computed from ViewParams by ComputeTransform and
// is never mutated in place; a new view state means a new Transform.
type Transform struct {
	TotalScale float64
	OffsetX    float64
	OffsetY    float64
}

// ComputeTransform derives the view transform from the given view
// parameters. The total scale is FitScale*ZoomFactor; the offset keeps
// the zoom anchored at the display centre and then applies the pan.
//
// The fit scale maps the data extent onto the display, so at zoom z the
// content measures display*z and the centring term is display*(1-z)/2.
// All arithmetic stays in float64; display dimensions are never
// truncated to integers.
//
// Returns *DegenerateTransformError when |TotalScale| < 1e-9. The caller
// must handle it; there is no silent fallback to scale 1.
func ComputeTransform(vp ViewParams) (Transform, error) {
	scale := vp.FitScale * vp.ZoomFactor
	if math.Abs(scale) < scaleEpsilon {
		return Transform{}, &DegenerateTransformError{TotalScale: scale}
	}
	return Transform{
		TotalScale: scale,
		OffsetX:    vp.DisplayW*(1-vp.ZoomFactor)/2 + vp.PanX,
		OffsetY:    vp.DisplayH*(1-vp.ZoomFactor)/2 + vp.PanY,
	}, nil
}

// Apply maps a data-space coordinate to view space.
func (t Transform) Apply(x, y float64) (vx, vy float64) {
	return x*t.TotalScale + t.OffsetX, y*t.TotalScale + t.OffsetY
}

// Unapply maps a view-space coordinate back to data space. Apply and
// Unapply are exact inverses up to floating-point epsilon; a Transform
// produced by ComputeTransform always has an invertible scale.
func (t Transform) Unapply(vx, vy float64) (x, y float64) {
	return (vx - t.OffsetX) / t.TotalScale, (vy - t.OffsetY) / t.TotalScale
}

// ApplyPoint maps a curve point to view space.
func (t Transform) ApplyPoint(p Point) (vx, vy float64) {
	return t.Apply(p.X, p.Y)
}

// FitScaleFor returns the scale that fits dataBounds inside the given
// display size, preserving aspect ratio. Returns 1 when the bounds or
// the display are degenerate, as there is nothing meaningful to fit.
func FitScaleFor(dataBounds Rect, displayW, displayH float64) float64 {
	w := dataBounds.Width()
	h := dataBounds.Height()
	if w <= 0 || h <= 0 || displayW <= 0 || displayH <= 0 {
		return 1
	}
	sx := displayW / w
	sy := displayH / h
	return math.Min(sx, sy)
}

// Engine computes view transforms with a memo over recently seen view
// parameters. The memo key is a quantized hash of the full ViewParams
// value, so a key can only ever describe a completely installed set of
// parameters; there is no window where a cached transform pairs with
// half-updated state.
//
// The zero Engine is not usable; construct with NewEngine. The memo is
// private to the Engine and invalidated only through InvalidateMemo.
type Engine struct {
	memo *cache.Cache[uint64, Transform]
}

// DefaultMemoCapacity bounds the transform memo when no explicit
// capacity is configured. The memo only needs to cover the handful of
// view states alive during an interaction (current, fit, pre-zoom).
const DefaultMemoCapacity = 32

// NewEngine creates a transform engine.
func NewEngine(opts ...EngineOption) *Engine {
	o := engineOptions{memoCapacity: DefaultMemoCapacity}
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{
		memo: cache.New[uint64, Transform](o.memoCapacity),
	}
}

// Transform returns the view transform for the given parameters,
// consulting the memo first. Degenerate parameters are never cached.
func (e *Engine) Transform(vp ViewParams) (Transform, error) {
	key := vp.hash()
	if t, ok := e.memo.Get(key); ok {
		return t, nil
	}
	t, err := ComputeTransform(vp)
	if err != nil {
		return Transform{}, err
	}
	e.memo.Set(key, t)
	return t, nil
}

// InvalidateMemo drops all memoized transforms. Callers invalidate after
// installing a new ViewParams value, never while building one.
func (e *Engine) InvalidateMemo() {
	e.memo.Clear()
}

// MemoStats returns hit/miss statistics for the transform memo.
func (e *Engine) MemoStats() cache.Stats {
	return e.memo.Stats()
}
