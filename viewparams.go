package curvedit

import (
	"hash/fnv"
	"math"
)

// ViewParams describes how data space is presented: the fit scale, the
// user zoom, the pan offset, and the display size in floating-point
// pixels.
//
// FitScale and ZoomFactor are stored separately and must never be
// pre-multiplied into a combined scale. Consumers compute
// FitScale*ZoomFactor at transform time; persisting the product lets
// repeated fit/zoom operations compound into drift.
//
// A ViewParams value is replaced wholesale on every zoom, pan, or fit
// operation. Patching individual fields from multiple call sites is how
// half-updated view state ends up observable.
type ViewParams struct {
	FitScale   float64
	ZoomFactor float64
	PanX, PanY float64

	// Display size in float pixels. Kept floating-point through the
	// whole transform computation; truncating to integers before the
	// offset calculation accumulates sub-pixel drift.
	DisplayW, DisplayH float64
}

// DefaultViewParams returns identity view parameters for the given
// display size.
func DefaultViewParams(displayW, displayH float64) ViewParams {
	return ViewParams{
		FitScale:   1,
		ZoomFactor: 1,
		DisplayW:   displayW,
		DisplayH:   displayH,
	}
}

// TotalScale returns FitScale*ZoomFactor. The product is always computed
// on demand, never stored.
func (vp ViewParams) TotalScale() float64 {
	return vp.FitScale * vp.ZoomFactor
}

// quantum is the grid the memo hash quantizes float fields to. Two
// ViewParams closer than this in every field share a cache entry.
const quantum = 1e-6

// hash returns a quantized FNV-1a hash of the view parameters, used as
// the transform memo key. Quantizing keeps bitwise float noise from
// defeating the cache while staying far below visible precision.
func (vp ViewParams) hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, f := range [...]float64{
		vp.FitScale, vp.ZoomFactor, vp.PanX, vp.PanY, vp.DisplayW, vp.DisplayH,
	} {
		q := int64(math.Round(f / quantum))
		for i := 0; i < 8; i++ {
			buf[i] = byte(q >> (8 * i))
		}
		_, _ = h.Write(buf[:]) // fnv.Write never returns an error
	}
	return h.Sum64()
}
