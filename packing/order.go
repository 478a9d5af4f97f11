package packing

import (
	"sort"

	"github.com/printloom/dtfbase/model"
)

// orderFunc is the pre-ordering the packer applies before running its
// shared per-base loop. Spec §9: "sequence and optimize differ only in
// the pre-pass that orders items; the per-base loop is shared."
type orderFunc func(items []model.SizedItem) []model.SizedItem

// orderSequence processes items in ascending picklist_position (spec §4.3).
func orderSequence(items []model.SizedItem) []model.SizedItem {
	out := make([]model.SizedItem, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Item.PicklistPosition < out[j].Item.PicklistPosition
	})
	return out
}

// orderOptimize processes items by descending area, ties broken by
// descending height, then ascending picklist_position for stability
// (spec §4.3).
func orderOptimize(items []model.SizedItem) []model.SizedItem {
	out := make([]model.SizedItem, len(items))
	copy(out, items)
	area := func(s model.SizedItem) float64 { return s.FinalWidthMM * s.FinalHeightMM }
	sort.SliceStable(out, func(i, j int) bool {
		ai, aj := area(out[i]), area(out[j])
		if ai != aj {
			return ai > aj
		}
		if out[i].FinalHeightMM != out[j].FinalHeightMM {
			return out[i].FinalHeightMM > out[j].FinalHeightMM
		}
		return out[i].Item.PicklistPosition < out[j].Item.PicklistPosition
	})
	return out
}

func orderFor(mode model.Mode) orderFunc {
	if mode == model.ModeOptimize {
		return orderOptimize
	}
	return orderSequence
}
