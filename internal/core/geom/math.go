package geom

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// ClampF64 constrains x to stay within the range [lo, hi].
func ClampF64(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}

// ClampInt constrains v to stay within the range [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MaxF64 returns the greater of two doubles.
func MaxF64(a, b float64) float64 {
	return math.Max(a, b)
}

// Fixed-point helpers, used by the summary-sheet text renderer which draws
// through golang.org/x/image/font at 1/64-pixel baseline precision.

// Unfix converts a fixed.Int26_6 value (1/64 fractional precision) to float64.
func Unfix(x fixed.Int26_6) float64 {
	const shift, mask = 6, 1<<6 - 1
	if x >= 0 {
		return float64(x>>shift) + float64(x&mask)/64
	}
	x = -x
	if x >= 0 {
		return -(float64(x>>shift) + float64(x&mask)/64)
	}
	return 0
}

// Fix converts a float64 value to fixed.Int26_6 (1/64 pixel precision).
func Fix(x float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(x * 64))
}
