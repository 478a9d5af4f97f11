// Package manifest builds the structured, auditable record of every
// sizing and packing decision a job made, per spec §4.6 and the wire
// shape in spec §6.
package manifest

import (
	"github.com/printloom/dtfbase/model"
	"github.com/printloom/dtfbase/packing"
)

// Placement is one placement's manifest entry, mirroring spec §6's shape
// exactly.
type Placement struct {
	ItemID           string  `json:"item_id"`
	SKU              string  `json:"sku"`
	PicklistPosition int     `json:"picklist_position"`
	XMM              float64 `json:"x_mm"`
	YMM              float64 `json:"y_mm"`
	WidthMM          float64 `json:"width_mm"`
	HeightMM         float64 `json:"height_mm"`
	ScaleApplied     float64 `json:"scale_applied"`
	Rotated          bool    `json:"rotated"`
}

// BaseRecord is one base's manifest entry.
type BaseRecord struct {
	Index       int         `json:"index"`
	WidthMM     float64     `json:"width_mm"`
	LengthMM    float64     `json:"length_mm"`
	Utilization float64     `json:"utilization"`
	ItemsCount  int         `json:"items_count"`
	Placements  []Placement `json:"placements"`
}

// Sizing is the sizing-stage summary section.
type Sizing struct {
	TotalItems   int      `json:"total_items"`
	ValidItems   int      `json:"valid_items"`
	InvalidItems int      `json:"invalid_items"`
	ScaledItems  int      `json:"scaled_items"`
	Warnings     []string `json:"warnings"`
}

// Packing is the packing-stage summary section.
type Packing struct {
	Mode           model.Mode   `json:"mode"`
	TotalBases     int          `json:"total_bases"`
	TotalLengthMM  float64      `json:"total_length_mm"`
	AvgUtilization float64      `json:"avg_utilization"`
	Bases          []BaseRecord `json:"bases"`
}

// Outputs is the set of artifact locations written for the job.
type Outputs struct {
	Artifacts []string `json:"artifacts"`
}

// Manifest is the complete per-job audit document, matching spec §6's
// JSON shape field for field.
type Manifest struct {
	Mode                  model.Mode `json:"mode"`
	ProcessingTimeSeconds float64    `json:"processing_time_seconds"`
	Sizing                Sizing     `json:"sizing"`
	Packing               Packing    `json:"packing"`
	Outputs               Outputs    `json:"outputs"`
	Errors                []string   `json:"errors"`
}

// Builder accumulates the pieces of a Manifest across a job's stages.
// One Builder per job.
type Builder struct {
	mode    model.Mode
	sizing  Sizing
	bases   []*packing.Base
	outputs []string
	errors  []string
}

// NewBuilder starts a Builder for a job running in the given mode.
func NewBuilder(mode model.Mode) *Builder {
	return &Builder{mode: mode}
}

// SetSizing records the sizing-stage outcome: every item attempted, the
// ones that sized successfully (for per-item warnings and the
// scaled-item count), and the errors collected for the ones that did
// not. Warnings are expected to already be ordered by picklist_position
// per spec §5 — the caller (the sizing engine's SizeAll, called in
// picklist order) provides that ordering.
func (b *Builder) SetSizing(total int, sized []model.SizedItem, errs []error) {
	b.sizing = Sizing{
		TotalItems:   total,
		ValidItems:   len(sized),
		InvalidItems: len(errs),
	}
	for _, s := range sized {
		if len(s.Warnings) > 0 {
			b.sizing.ScaledItems++
		}
		b.sizing.Warnings = append(b.sizing.Warnings, s.Warnings...)
	}
	for _, e := range errs {
		b.errors = append(b.errors, e.Error())
	}
}

// SetBases records the packer's finalized base list.
func (b *Builder) SetBases(bases []*packing.Base) {
	b.bases = bases
}

// AddArtifact records one written artifact's storage URI.
func (b *Builder) AddArtifact(uri string) {
	b.outputs = append(b.outputs, uri)
}

// AddError records a job-level error (storage, render, timeout) not tied
// to a single sizing item.
func (b *Builder) AddError(err error) {
	if err != nil {
		b.errors = append(b.errors, err.Error())
	}
}

// Build renders the accumulated state into a Manifest. processingSeconds
// is the job's total wall-clock time, measured by the pipeline driver.
func (b *Builder) Build(processingSeconds float64) Manifest {
	baseRecords := make([]BaseRecord, 0, len(b.bases))
	var totalLength, utilizationSum float64

	for _, base := range b.bases {
		placements := make([]Placement, 0, len(base.Placements))
		for _, p := range base.Placements {
			placements = append(placements, Placement{
				ItemID:           p.ItemID,
				SKU:              p.SKU,
				PicklistPosition: p.PicklistPosition,
				XMM:              p.X,
				YMM:              p.Y,
				WidthMM:          p.Width,
				HeightMM:         p.Height,
				ScaleApplied:     p.ScaleApplied,
				Rotated:          p.Rotated,
			})
		}
		util := base.Utilization()
		baseRecords = append(baseRecords, BaseRecord{
			Index:       base.Index,
			WidthMM:     base.WidthMM,
			LengthMM:    base.ContentLengthMM,
			Utilization: util,
			ItemsCount:  len(base.Placements),
			Placements:  placements,
		})
		totalLength += base.ContentLengthMM
		utilizationSum += util
	}

	var avgUtilization float64
	if len(baseRecords) > 0 {
		avgUtilization = utilizationSum / float64(len(baseRecords))
	}

	return Manifest{
		Mode:                  b.mode,
		ProcessingTimeSeconds: processingSeconds,
		Sizing:                b.sizing,
		Packing: Packing{
			Mode:           b.mode,
			TotalBases:     len(baseRecords),
			TotalLengthMM:  totalLength,
			AvgUtilization: avgUtilization,
			Bases:          baseRecords,
		},
		Outputs: Outputs{Artifacts: b.outputs},
		Errors:  b.errors,
	}
}
