// Package model defines the data types shared across every stage of the
// composition core: the resolved picklist input, the machine and sizing
// catalog, and the error taxonomy. Nothing in this package depends on any
// other package in the module, so every stage (sizing, packing, render,
// manifest, pipeline) can import it without creating cycles.
package model

import "strings"

// ArtworkFormat is a raster format accepted by the core. Spec §4.1 rejects
// anything outside this set with UNSUPPORTED_FORMAT.
type ArtworkFormat string

const (
	FormatPNG     ArtworkFormat = "PNG"
	FormatJPEG    ArtworkFormat = "JPEG"
	FormatUnknown ArtworkFormat = ""
)

// Mode selects the packing strategy (spec §4.3).
type Mode string

const (
	ModeSequence Mode = "sequence"
	ModeOptimize Mode = "optimize"
)

// Margin constants, spec §6. Configurable per tenant but constant within a
// single job — callers pass a Margins value into the job rather than the
// core reading a global.
type Margins struct {
	SideMM      float64
	InterItemMM float64
}

// DefaultMargins returns the spec-mandated defaults (§6):
// SIDE_MARGIN_MM=20, INTER_ITEM_MARGIN_MM=10.
func DefaultMargins() Margins {
	return Margins{SideMM: 20, InterItemMM: 10}
}

// Machine is the immutable per-job print machine description (spec §3).
type Machine struct {
	UsableWidthMM float64 `yaml:"usable_width_mm"`
	MaxLengthMM   float64 `yaml:"max_length_mm"`
	MinDPI        float64 `yaml:"min_dpi"`
}

// UsableMarginWidthMM is the machine's usable width minus both side
// margins — the width-fit ceiling every SizedItem must respect (spec §4.1).
func (m Machine) UsableMarginWidthMM(margins Margins) float64 {
	return m.UsableWidthMM - 2*margins.SideMM
}

// SizingProfile maps a normalized SKU prefix to a target print width for
// one tenant (spec §3).
type SizingProfile struct {
	SKUPrefix     string  `yaml:"sku_prefix"`
	TargetWidthMM float64 `yaml:"target_width_mm"`
	IsDefault     bool    `yaml:"is_default"`
}

// ProfileSet is a tenant's full set of sizing profiles, at most one of
// which carries IsDefault=true.
type ProfileSet struct {
	TenantID string          `yaml:"tenant_id"`
	Profiles []SizingProfile `yaml:"profiles"`
}

// NormalizeSKU lowercases a SKU and strips '-', '_', and spaces, per the
// profile-selection rule in spec §4.1.
func NormalizeSKU(sku string) string {
	s := strings.ToLower(sku)
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	s = strings.ReplaceAll(s, " ", "")
	return s
}

// ResolvedItem is one picklist line, already resolved to a concrete
// artwork asset by the upstream SKU resolver (out of scope, spec §1). The
// core treats quantity as always 1 — expansion to N items happens
// upstream.
type ResolvedItem struct {
	ItemID           string
	SKU              string
	PicklistPosition int // 1-based, preserves PDF reading order
	ArtworkWidthPx   float64
	ArtworkHeightPx  float64
	ArtworkDPI       float64
	ArtworkFormat    ArtworkFormat
	ArtworkBytes     []byte // raw bytes behind ArtworkHandle, resolved by the storage collaborator
	ArtworkHandle    string // opaque handle passed through to the renderer
}

// SizedItem is derived from a ResolvedItem by the sizing engine (spec §3,
// §4.1). It is created once, consumed once by the packer, then discarded.
type SizedItem struct {
	Item          ResolvedItem
	FinalWidthMM  float64
	FinalHeightMM float64
	ScaleApplied  float64 // final width / raw mm width at the item's DPI; above 1 when the profile enlarges the artwork
	Warnings      []string
	OriginalAspect float64 // raw_width_mm / raw_height_mm, for the invariant in spec §8.3
}
