// Package geom provides the millimeter-space rectangle primitives shared by
// the sizing, packing, and rendering stages of the composition core.
package geom

import "math"

// Tolerance is the comparison slack applied to every overlap and fit test
// in the core. Coordinates are float64 millimeters; without a tolerance,
// legitimate edge-touching placements (e.g. an item sized to fill a base
// exactly) would be rejected by floating-point noise.
const Tolerance = 1e-6

// Rect is an axis-aligned millimeter rectangle with its origin at the
// top-left corner, Y increasing downward (page space, not math space).
type Rect struct {
	X, Y, W, H float64
}

// Right returns the X coordinate of the rectangle's right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the Y coordinate of the rectangle's bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Area returns width times height.
func (r Rect) Area() float64 { return r.W * r.H }

// Inflate returns a copy of r expanded by d on every side. A negative d
// shrinks the rectangle. Used to apply half the inter-item margin before
// overlap testing, per the collision failsafe in spec §4.2.
func (r Rect) Inflate(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, W: r.W + 2*d, H: r.H + 2*d}
}

// Overlaps reports whether r and o share any interior area, within
// Tolerance. Edge-touching rectangles (separated by exactly zero) do not
// overlap.
func (r Rect) Overlaps(o Rect) bool {
	if r.Right() <= o.X+Tolerance || o.Right() <= r.X+Tolerance {
		return false
	}
	if r.Bottom() <= o.Y+Tolerance || o.Bottom() <= r.Y+Tolerance {
		return false
	}
	return true
}

// LessOrEqual reports a <= b within Tolerance, i.e. a is not greater than
// b by more than the floating-point slack the core tolerates.
func LessOrEqual(a, b float64) bool {
	return a <= b+Tolerance
}

// GreaterOrEqual reports a >= b within Tolerance.
func GreaterOrEqual(a, b float64) bool {
	return a >= b-Tolerance
}

// MMToPx converts a millimeter length to a pixel count at the given dots
// per inch, rounding to the nearest pixel.
func MMToPx(mm, dpi float64) int {
	return int(math.Round(mm / 25.4 * dpi))
}

// PxToMM converts a pixel length to millimeters at the given dots per inch.
func PxToMM(px float64, dpi float64) float64 {
	return px * 25.4 / dpi
}
