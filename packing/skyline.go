// Package packing implements spec §4.2 and §4.3: the skyline placement
// structure and the two packing strategies (sequence, optimize) built on
// top of it. The skyline shape (a list of contiguous segments, searched
// for the lowest-Y run wide enough for a candidate, committed by
// splitting/merging segments) is grounded on the classic skyline
// bin-packing algorithm, adapted here to float64 millimeters. Commit
// reserves both the vertical inter-item margin (raising the committed
// segment's Y) and the horizontal inter-item margin (widening the
// committed segment past the item's real width), so two items placed in
// the same row are disjoint by a full margin once both are inflated by
// half of it during the collision failsafe check — packing never needs
// the failsafe to fire in the normal case.
package packing

import "github.com/printloom/dtfbase/internal/core/geom"

// segment is one contiguous run of the skyline: from X to X+Width, the
// lowest Y at which a new item may place its left edge.
type segment struct {
	X, Width, Y float64
}

// Skyline is the append-only horizontal occupancy profile of one base,
// owned by exactly that base and discarded when the base is finalized.
type Skyline struct {
	usableWidthMM float64
	sideMarginMM  float64
	segments      []segment
}

// NewSkyline resets a skyline to a single segment spanning the usable
// width at the base of the page, per spec §4.2's Reset operation.
func NewSkyline(usableWidthMM, sideMarginMM float64) *Skyline {
	s := &Skyline{usableWidthMM: usableWidthMM, sideMarginMM: sideMarginMM}
	s.Reset()
	return s
}

// Reset reinitializes the skyline to a single flat segment, used when
// starting a new base.
func (s *Skyline) Reset() {
	s.segments = []segment{{
		X:     s.sideMarginMM,
		Width: s.usableWidthMM - 2*s.sideMarginMM,
		Y:     s.sideMarginMM,
	}}
}

// candidate is a feasible placement found by FindLowestPlacement.
type candidate struct {
	X, Y float64
	ok   bool
}

// FindLowestPlacement scans every X at which a contiguous run of segments
// totals at least w in width, computes the placement Y for each (the max
// Y_top across covered segments), and returns the one minimizing Y,
// breaking ties by smaller X. maxLengthMM bounds the Y+h+sideMargin the
// caller is willing to accept; candidates that would exceed it are
// skipped. Returns ok=false if no run fits.
func (s *Skyline) FindLowestPlacement(w, h, maxLengthMM float64) (x, y float64, ok bool) {
	var best candidate

	for startIdx := range s.segments {
		runX := s.segments[startIdx].X
		runWidth := 0.0
		runY := 0.0
		fits := false

		for i := startIdx; i < len(s.segments); i++ {
			runWidth += s.segments[i].Width
			runY = geom.MaxF64(runY, s.segments[i].Y)
			if geom.GreaterOrEqual(runWidth, w) {
				fits = true
				break
			}
		}
		if !fits {
			continue
		}
		if !geom.LessOrEqual(runY+h+s.sideMarginMM, maxLengthMM) {
			continue
		}

		cand := candidate{X: runX, Y: runY, ok: true}
		if !best.ok || cand.Y < best.Y-geom.Tolerance ||
			(cand.Y < best.Y+geom.Tolerance && cand.X < best.X-geom.Tolerance) {
			best = cand
		}
	}

	return best.X, best.Y, best.ok
}

// Commit inserts a new segment (x, w+interItemMarginMM, y+h+interItemMarginMM)
// into the skyline, splitting the segments underlying the committed span
// and replacing the interior, then merging adjacent segments with equal
// Y. y must be the value FindLowestPlacement returned for this (x, w) —
// Commit does not recompute it, so a caller must not commit against a
// skyline that has since changed underneath that (x, y) pair.
//
// The committed span is widened by interItemMarginMM (clamped to the
// skyline's right edge) so the next FindLowestPlacement call can never
// return an X less than a full horizontal margin away from this item's
// right edge: the margin is occupied, raised skyline, not free space.
// Combined with the committed Y already including the vertical margin,
// two same-row items are disjoint by construction once the collision
// failsafe inflates each by half the margin (spec §3 invariant c).
func (s *Skyline) Commit(x, w, y, h, interItemMarginMM float64) {
	newY := y + h + interItemMarginMM
	reservedW := w + interItemMarginMM
	if rightEdge := s.usableWidthMM - s.sideMarginMM; x+reservedW > rightEdge {
		reservedW = rightEdge - x
	}

	s.splitAt(x)
	s.splitAt(x + reservedW)

	out := s.segments[:0:0]
	for _, seg := range s.segments {
		if seg.X >= x-geom.Tolerance && seg.X+seg.Width <= x+reservedW+geom.Tolerance {
			continue // inside the committed span, dropped and replaced below
		}
		out = append(out, seg)
	}
	out = append(out, segment{X: x, Width: reservedW, Y: newY})

	// Re-sort by X (split/replace can leave the new segment out of order).
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].X < out[j-1].X; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	s.segments = out
	s.merge()
}

// splitAt cuts any segment straddling x into two segments at x, so later
// range replacement operates on exact boundaries.
func (s *Skyline) splitAt(x float64) {
	for i, seg := range s.segments {
		if seg.X < x-geom.Tolerance && seg.X+seg.Width > x+geom.Tolerance {
			left := segment{X: seg.X, Width: x - seg.X, Y: seg.Y}
			right := segment{X: x, Width: seg.X + seg.Width - x, Y: seg.Y}
			s.segments = append(s.segments[:i], append([]segment{left, right}, s.segments[i+1:]...)...)
			return
		}
	}
}

// merge collapses adjacent segments with equal Y (spec §3 skyline invariant b).
func (s *Skyline) merge() {
	for i := 0; i < len(s.segments)-1; i++ {
		if closeEnough(s.segments[i].Y, s.segments[i+1].Y) {
			s.segments[i].Width += s.segments[i+1].Width
			s.segments = append(s.segments[:i+1], s.segments[i+2:]...)
			i--
		}
	}
}

func closeEnough(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= geom.Tolerance
}
