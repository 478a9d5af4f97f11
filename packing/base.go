package packing

import (
	"github.com/printloom/dtfbase/internal/core/geom"
	"github.com/printloom/dtfbase/model"
)

// Placement is one concrete item on one base at an exact position and
// size (spec §3). Coordinates are inclusive of side margins: the
// placement rectangle itself is the artwork's footprint, not the margin.
type Placement struct {
	Item             model.ResolvedItem
	ItemID           string
	SKU              string
	PicklistPosition int
	X, Y             float64
	Width, Height    float64
	ScaleApplied     float64
	Rotated          bool
}

// Rect returns the placement's footprint as a geom.Rect, for overlap and
// boundary testing.
func (p Placement) Rect() geom.Rect {
	return geom.Rect{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}

// Base is one fixed-width, bounded-length print canvas (spec §3). Index
// is 1-based. ContentLengthMM is the max Y+height used so far (spec §3:
// "max height used so far"); the renderer adds the trailing side margin
// on top of it to size the rendered page (spec §4.4).
type Base struct {
	Index           int
	WidthMM         float64
	MaxLengthMM     float64
	ContentLengthMM float64
	Placements      []Placement
	skyline         *Skyline
	finalized       bool
}

// newBase creates an empty, open base with a freshly reset skyline.
func newBase(index int, widthMM, maxLengthMM, sideMarginMM float64) *Base {
	return &Base{
		Index:       index,
		WidthMM:     widthMM,
		MaxLengthMM: maxLengthMM,
		skyline:     NewSkyline(widthMM, sideMarginMM),
	}
}

// Finalized reports whether this base's placement set is immutable
// (spec §4.3: "once a base is finalized... its placement set is
// immutable").
func (b *Base) Finalized() bool { return b.finalized }

// Utilization returns the sum of placement areas divided by width x
// content length, per spec §4.6 and §8 invariant 6. The trailing side
// margin the renderer adds to the page is not part of that area.
// Returns 0 for an empty base to avoid dividing by zero.
func (b *Base) Utilization() float64 {
	if b.ContentLengthMM <= 0 || b.WidthMM <= 0 {
		return 0
	}
	var used float64
	for _, p := range b.Placements {
		used += p.Width * p.Height
	}
	return used / (b.WidthMM * b.ContentLengthMM)
}

// overlapsAny reports whether candidate (already inflated by half the
// inter-item margin by the caller) intersects any existing placement on
// this base, inflated the same way. This is the collision failsafe's
// check (spec §4.2).
func (b *Base) overlapsAny(candidate geom.Rect, interItemMarginMM float64) bool {
	half := interItemMarginMM / 2
	for _, p := range b.Placements {
		if candidate.Overlaps(p.Rect().Inflate(half)) {
			return true
		}
	}
	return false
}
