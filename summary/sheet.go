// Package summary builds the job summary sheet (SPEC_FULL.md
// SUPPLEMENTED FEATURES #1): one operator-facing PNG per job, listing job
// identity, machine parameters, per-base utilization, and the ordered
// warning list. This is not a print artifact — spec §4.4's "no text"
// mandate binds only the per-base page the renderer package emits.
package summary

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/printloom/dtfbase/internal/render"
	"github.com/printloom/dtfbase/manifest"
	"github.com/printloom/dtfbase/model"
)

const (
	pageWidthPx   = 900
	marginPx      = 32
	lineGapPx     = 6
	rowHeightPx   = 22
	titleSizePt   = 18
	bodySizePt    = 12
	headingSizePt = 14
)

var (
	colorBackground = color.White
	colorText       = color.Black
	colorMuted      = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	colorWarning    = color.RGBA{R: 170, G: 80, B: 0, A: 255}
)

// Data is everything the sheet needs to render, assembled by the caller
// once a job finishes (or fails). The pipeline driver does not build it.
type Data struct {
	JobID    string
	TenantID string
	Machine  model.Machine
	Mode     model.Mode
	Status   string
	Manifest manifest.Manifest
}

// Sheet renders job Data to a PNG using a single loaded TrueType font at
// three sizes (title, heading, body). One Sheet can render many jobs.
type Sheet struct {
	title   *render.Font
	heading *render.Font
	body    *render.Font
}

// NewSheet loads fontPath once and derives the title/heading/body faces
// from it. fontPath points to a TrueType font bundled with the worker
// image; the core does not ship one itself.
func NewSheet(fontPath string) (*Sheet, error) {
	title, err := render.LoadFont(fontPath, titleSizePt)
	if err != nil {
		return nil, fmt.Errorf("load summary sheet font: %w", err)
	}
	heading, err := render.LoadFont(fontPath, headingSizePt)
	if err != nil {
		return nil, fmt.Errorf("load summary sheet font: %w", err)
	}
	body, err := render.LoadFont(fontPath, bodySizePt)
	if err != nil {
		return nil, fmt.Errorf("load summary sheet font: %w", err)
	}
	return &Sheet{title: title, heading: heading, body: body}, nil
}

// Render lays out Data top to bottom and returns the page as PNG bytes.
func (s *Sheet) Render(d Data) ([]byte, error) {
	lines := s.layout(d)
	height := marginPx*2 + len(lines)*(rowHeightPx+lineGapPx)

	img := image.NewRGBA(image.Rect(0, 0, pageWidthPx, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorBackground), image.Point{}, draw.Src)

	y := marginPx
	for _, l := range lines {
		f := s.faceFor(l.style)
		baseline := f.BaselineForTopY(float64(y))
		f.DrawString(img, colorFor(l.style), l.text, marginPx, baseline)
		y += rowHeightPx + lineGapPx
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode summary sheet: %w", err)
	}
	return buf.Bytes(), nil
}

type lineStyle int

const (
	styleTitle lineStyle = iota
	styleHeading
	styleBody
	styleWarning
)

type sheetLine struct {
	text  string
	style lineStyle
}

func (s *Sheet) faceFor(style lineStyle) *render.Font {
	switch style {
	case styleTitle:
		return s.title
	case styleHeading:
		return s.heading
	default:
		return s.body
	}
}

func colorFor(style lineStyle) color.Color {
	switch style {
	case styleWarning:
		return colorWarning
	case styleHeading:
		return colorMuted
	default:
		return colorText
	}
}

// layout turns job Data into an ordered list of text lines, wrapping
// long warning text to the page's usable width.
func (s *Sheet) layout(d Data) []sheetLine {
	lines := []sheetLine{
		{text: fmt.Sprintf("Job %s — %s", d.JobID, d.Status), style: styleTitle},
		{text: fmt.Sprintf("tenant: %s   mode: %s", d.TenantID, d.Mode), style: styleBody},
		{text: fmt.Sprintf("machine: usable_width=%.0fmm max_length=%.0fmm min_dpi=%.0f",
			d.Machine.UsableWidthMM, d.Machine.MaxLengthMM, d.Machine.MinDPI), style: styleBody},
		{text: fmt.Sprintf("processing time: %.2fs", d.Manifest.ProcessingTimeSeconds), style: styleBody},
		{text: "", style: styleBody},
		{text: "Bases", style: styleHeading},
	}

	for _, b := range d.Manifest.Packing.Bases {
		lines = append(lines, sheetLine{
			text: fmt.Sprintf("  base %d: %d items, %.0f x %.0f mm, utilization %.1f%%",
				b.Index, b.ItemsCount, b.WidthMM, b.LengthMM, b.Utilization*100),
			style: styleBody,
		})
	}

	lines = append(lines, sheetLine{text: "", style: styleBody}, sheetLine{text: "Warnings", style: styleHeading})
	if len(d.Manifest.Sizing.Warnings) == 0 && len(d.Manifest.Errors) == 0 {
		lines = append(lines, sheetLine{text: "  none", style: styleBody})
	}
	usableWidthPx := float64(pageWidthPx - 2*marginPx - 16)
	for _, w := range d.Manifest.Sizing.Warnings {
		for _, wrapped := range render.WrapText(s.body, "  "+w, usableWidthPx) {
			lines = append(lines, sheetLine{text: wrapped, style: styleWarning})
		}
	}
	for _, e := range d.Manifest.Errors {
		for _, wrapped := range render.WrapText(s.body, "  "+e, usableWidthPx) {
			lines = append(lines, sheetLine{text: wrapped, style: styleWarning})
		}
	}

	return lines
}
