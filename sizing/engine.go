// Package sizing implements spec §4.1: projecting each resolved item's raw
// artwork into target print dimensions under machine constraints.
package sizing

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/printloom/dtfbase/internal/containers"
	"github.com/printloom/dtfbase/model"
)

// Engine sizes ResolvedItems against one tenant's profile set and one
// machine. Stateless and safe for concurrent use across distinct jobs; a
// single job's items are sized sequentially (spec §5).
type Engine struct {
	Machine  model.Machine
	Profiles []model.SizingProfile
	Margins  model.Margins
	Log      *zap.Logger
}

// New builds a sizing Engine. A nil logger is replaced with a no-op one,
// matching the core's rule that it never logs to a global logger.
func New(machine model.Machine, profiles []model.SizingProfile, margins model.Margins, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{Machine: machine, Profiles: profiles, Margins: margins, Log: log}
}

// Size projects one ResolvedItem into a SizedItem, applying profile
// selection, raw projection, target scaling, and the width-fit fallback,
// in the order spec §4.1 describes. Returns a *model.JobError on any
// per-item validation failure; the caller (the pipeline driver) decides
// whether one bad item fails the whole job (it always does, per spec §4.1:
// "the job fails if any item is invalid").
func (e *Engine) Size(item model.ResolvedItem) (model.SizedItem, error) {
	profile, ok := selectProfile(item.SKU, e.Profiles)
	if !ok {
		return model.SizedItem{}, model.NewItemError(model.ErrNoProfile, item.ItemID,
			fmt.Sprintf("no sizing profile matches sku %q and no tenant default is set", item.SKU), nil)
	}

	if item.ArtworkDPI < e.Machine.MinDPI {
		return model.SizedItem{}, model.NewItemError(model.ErrLowDPI, item.ItemID,
			fmt.Sprintf("artwork dpi %.1f below machine minimum %.1f", item.ArtworkDPI, e.Machine.MinDPI), nil)
	}

	if item.ArtworkFormat != model.FormatPNG && item.ArtworkFormat != model.FormatJPEG {
		return model.SizedItem{}, model.NewItemError(model.ErrUnsupportedFormat, item.ItemID,
			fmt.Sprintf("format %q is not PNG or JPEG", item.ArtworkFormat), nil)
	}

	rawWidthMM := item.ArtworkWidthPx * 25.4 / item.ArtworkDPI
	rawHeightMM := item.ArtworkHeightPx * 25.4 / item.ArtworkDPI
	if rawWidthMM <= 0 || rawHeightMM <= 0 {
		return model.SizedItem{}, model.NewItemError(model.ErrUnsupportedFormat, item.ItemID,
			"artwork has zero or negative raw dimensions", nil)
	}
	originalAspect := rawWidthMM / rawHeightMM

	k := profile.TargetWidthMM / rawWidthMM
	finalWidthMM := profile.TargetWidthMM
	finalHeightMM := rawHeightMM * k

	warnings := &containers.Warnings{}
	scaleApplied := k

	usableMarginWidthMM := e.Machine.UsableMarginWidthMM(e.Margins)
	if finalWidthMM > usableMarginWidthMM {
		kPrime := usableMarginWidthMM / finalWidthMM
		finalWidthMM *= kPrime
		finalHeightMM *= kPrime
		scaleApplied = k * kPrime
		warnings.Add(fmt.Sprintf("SCALED_DOWN_TO_FIT_WIDTH: reduced by %.1f%% to fit usable width", (1-kPrime)*100))
	}

	if finalHeightMM+2*e.Margins.SideMM > e.Machine.MaxLengthMM {
		return model.SizedItem{}, model.NewItemError(model.ErrItemExceedsMaxLen, item.ItemID,
			fmt.Sprintf("sized height %.3fmm plus margins exceeds machine max length %.3fmm", finalHeightMM, e.Machine.MaxLengthMM), nil)
	}

	e.Log.Debug("item sized",
		zap.String("item_id", item.ItemID),
		zap.String("sku", item.SKU),
		zap.Float64("final_width_mm", finalWidthMM),
		zap.Float64("final_height_mm", finalHeightMM),
		zap.Float64("scale_applied", scaleApplied),
	)

	return model.SizedItem{
		Item:           item,
		FinalWidthMM:   finalWidthMM,
		FinalHeightMM:  finalHeightMM,
		ScaleApplied:   scaleApplied,
		Warnings:       warnings.List(),
		OriginalAspect: originalAspect,
	}, nil
}

// SizeAll sizes every item in order, returning one SizedItem per success
// and one *model.JobError per failure, each slice in input order. Neither
// slice is index-aligned with items: a failed item leaves no gap in sized,
// and a successful one leaves no nil in errs (spec §4.5).
func (e *Engine) SizeAll(items []model.ResolvedItem) ([]model.SizedItem, []error) {
	sized := make([]model.SizedItem, 0, len(items))
	var errs []error
	for _, item := range items {
		s, err := e.Size(item)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		sized = append(sized, s)
	}
	return sized, errs
}
