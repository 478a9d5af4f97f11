package render

import (
	"fmt"
	"image/png"

	"go.uber.org/zap"

	"github.com/printloom/dtfbase/internal/core/raster"
	"github.com/printloom/dtfbase/model"
	"github.com/printloom/dtfbase/packing"
)

// DefaultDPI is the render resolution used when a caller does not
// override it. Artwork is always resampled to the placement's exact mm
// dimensions at this DPI (spec §4.4).
const DefaultDPI = 300.0

// Artifact is one rendered base, ready to hand to a storage.ArtifactSink.
type Artifact struct {
	BaseIndex int
	PNGBytes  []byte
	Ext       string
}

// Renderer turns finalized packing.Bases into print-ready PNG artifacts.
// Stateless aside from its configuration; safe to reuse across bases and
// jobs.
type Renderer struct {
	DPI              float64
	CompressionLevel png.CompressionLevel
	Log              *zap.Logger
}

// New builds a Renderer at DefaultDPI with best-compression PNG output.
// A nil logger is replaced with a no-op one.
func New(log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{DPI: DefaultDPI, CompressionLevel: png.BestCompression, Log: log}
}

// RenderBase emits one artifact for a finalized base: a transparent page
// sized (base.WidthMM, base.ContentLengthMM + sideMarginMM) with every
// placement's artwork composited at its exact mm coordinates. No text, no
// cropmarks, no background beyond artwork pixels (spec §4.4).
func (r *Renderer) RenderBase(b *packing.Base, sideMarginMM float64) (Artifact, error) {
	if !b.Finalized() {
		return Artifact{}, model.NewJobError(model.ErrRenderFail,
			fmt.Sprintf("base %d is not finalized", b.Index), nil)
	}

	pageLengthMM := b.ContentLengthMM + sideMarginMM
	canvas := NewCanvas(b.WidthMM, pageLengthMM, r.DPI)

	for _, p := range b.Placements {
		img, _, err := raster.Decode(p.Item.ArtworkBytes)
		if err != nil {
			return Artifact{}, model.NewItemError(model.ErrRenderFail, p.ItemID,
				fmt.Sprintf("decode artwork for placement at (%.3f,%.3f): %v", p.X, p.Y, err), err)
		}
		canvas.Composite(img, p.X, p.Y, p.Width, p.Height)
	}

	data, err := canvas.EncodePNG(r.CompressionLevel)
	if err != nil {
		return Artifact{}, model.NewJobError(model.ErrRenderFail,
			fmt.Sprintf("encode base %d: %v", b.Index, err), err)
	}

	r.Log.Info("base rendered",
		zap.Int("base_index", b.Index),
		zap.Int("placements", len(b.Placements)),
		zap.Float64("page_length_mm", pageLengthMM),
		zap.Int("bytes", len(data)),
	)

	return Artifact{BaseIndex: b.Index, PNGBytes: data, Ext: "png"}, nil
}

// RenderAll renders every base in order, stopping at the first failure —
// per spec §6, partial success is never emitted: either every base for a
// job is present or none.
func (r *Renderer) RenderAll(bases []*packing.Base, sideMarginMM float64) ([]Artifact, error) {
	artifacts := make([]Artifact, 0, len(bases))
	for _, b := range bases {
		a, err := r.RenderBase(b, sideMarginMM)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, nil
}
