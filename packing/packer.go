package packing

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/printloom/dtfbase/internal/core/geom"
	"github.com/printloom/dtfbase/model"
)

// Packer places SizedItems into a sequence of Bases, sharing one per-base
// inner loop between the sequence and optimize strategies (spec §4.3,
// §9). A Packer is stateful for exactly one job; construct a new one per
// job.
type Packer struct {
	Machine     model.Machine
	Margins     model.Margins
	Mode        model.Mode
	AllowRotate bool
	Log         *zap.Logger

	bases []*Base
}

// New builds a Packer for one job.
func New(machine model.Machine, margins model.Margins, mode model.Mode, allowRotate bool, log *zap.Logger) *Packer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Packer{Machine: machine, Margins: margins, Mode: mode, AllowRotate: allowRotate, Log: log}
}

// Pack runs the full packing pass over items, returning the ordered list
// of finalized bases or the first ITEM_EXCEEDS_BASE / INTERNAL_COLLISION
// failure. Spec §4.3: "the engine emits bases strictly in order; once a
// base is finalized... its placement set is immutable. Items are never
// backtracked across bases."
func (p *Packer) Pack(items []model.SizedItem) ([]*Base, error) {
	ordered := orderFor(p.Mode)(items)

	var current *Base
	for _, sized := range ordered {
		if current == nil {
			current = p.openBase()
		}

		outcome := p.placeOnBase(current, sized)
		if outcome.placed {
			continue
		}
		if outcome.collided {
			// Spec §4.2: a collision rolls the base over and retries the
			// item; it does not fail the job outright.
			p.Log.Warn("collision failsafe fired, rolling base over",
				zap.Int("base_index", current.Index), zap.String("item_id", sized.Item.ItemID))
		}

		// Doesn't fit (or collided) on the current base: finalize it and
		// retry exactly once on a fresh base (spec §4.3).
		p.finalize(current)
		current = p.openBase()

		outcome = p.placeOnBase(current, sized)
		if outcome.placed {
			continue
		}
		if outcome.collided {
			// A collision against a freshly reset, empty base can only
			// mean the skyline and placement list have diverged — the
			// failsafe could not recover by rollover (spec §7).
			return nil, model.NewItemError(model.ErrInternalCollision, sized.Item.ItemID,
				fmt.Sprintf("collision failsafe could not recover after base rollover; skyline=%v", current.skyline.segments), nil)
		}
		return nil, model.NewItemError(model.ErrItemExceedsBase, sized.Item.ItemID,
			fmt.Sprintf("item %.3fx%.3fmm does not fit on an empty base of size %.3fx%.3fmm",
				sized.FinalWidthMM, sized.FinalHeightMM, p.Machine.UsableWidthMM, p.Machine.MaxLengthMM), nil)
	}

	if current != nil && len(current.Placements) > 0 {
		p.finalize(current)
	}

	return p.bases, nil
}

func (p *Packer) openBase() *Base {
	idx := len(p.bases) + 1
	b := newBase(idx, p.Machine.UsableWidthMM, p.Machine.MaxLengthMM, p.Margins.SideMM)
	p.Log.Debug("base opened", zap.Int("base_index", idx))
	return b
}

func (p *Packer) finalize(b *Base) {
	b.finalized = true
	p.bases = append(p.bases, b)
	p.Log.Info("base finalized",
		zap.Int("base_index", b.Index),
		zap.Int("items", len(b.Placements)),
		zap.Float64("content_length_mm", b.ContentLengthMM),
		zap.Float64("utilization", b.Utilization()),
	)
}

// placeOutcome reports the result of one placement attempt.
type placeOutcome struct {
	placed   bool
	collided bool // true if the collision failsafe fired (spec §4.2)
}

// placeOnBase attempts to place one sized item on an open base using the
// skyline's lowest-placement rule, with the rotation hook (spec §9) and
// the collision failsafe (spec §4.2). outcome.placed is false either
// because no skyline run fits the item (including its rotated candidate,
// if enabled), or because the failsafe fired — the caller distinguishes
// the two via outcome.collided and decides how to respond.
func (p *Packer) placeOnBase(b *Base, sized model.SizedItem) placeOutcome {
	w, h := sized.FinalWidthMM, sized.FinalHeightMM
	rotated := false

	x, y, ok := b.skyline.FindLowestPlacement(w, h, p.Machine.MaxLengthMM)

	// Rotation is a no-op in optimize mode (spec §1 non-goals); only
	// sequence mode evaluates the swapped candidate.
	if p.AllowRotate && p.Mode == model.ModeSequence && w != h {
		rx, ry, rok := b.skyline.FindLowestPlacement(h, w, p.Machine.MaxLengthMM)
		if rok && (!ok || ry < y-geom.Tolerance) {
			x, y, ok = rx, ry, true
			w, h = h, w
			rotated = true
		}
	}

	if !ok {
		return placeOutcome{}
	}

	candidate := geom.Rect{X: x, Y: y, W: w, H: h}
	if b.overlapsAny(candidate.Inflate(p.Margins.InterItemMM/2), p.Margins.InterItemMM) {
		return placeOutcome{collided: true}
	}

	b.skyline.Commit(x, w, y, h, p.Margins.InterItemMM)
	b.Placements = append(b.Placements, Placement{
		Item:             sized.Item,
		ItemID:           sized.Item.ItemID,
		SKU:              sized.Item.SKU,
		PicklistPosition: sized.Item.PicklistPosition,
		X:                x,
		Y:                y,
		Width:            w,
		Height:           h,
		ScaleApplied:     sized.ScaleApplied,
		Rotated:          rotated,
	})

	contentLen := y + h
	if contentLen > b.ContentLengthMM {
		b.ContentLengthMM = contentLen
	}

	return placeOutcome{placed: true}
}
