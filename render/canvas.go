// Package render emits one print artifact per finalized base, per spec
// §4.4: exact millimeter placement of artwork rasters, no text, no
// cropmarks, no background beyond explicit artwork pixels.
package render

import (
	"image"
	"image/draw"
	"image/png"

	"github.com/printloom/dtfbase/internal/core/geom"
	"github.com/printloom/dtfbase/internal/core/raster"
)

// Canvas is the page-space RGBA buffer a base renders onto, addressed in
// pixels at a fixed render DPI. Adapted from the teacher's Layer: a
// Canvas only composites pre-rasterized artwork at exact positions, it
// never draws shapes, strokes, or fills — the base artifact carries only
// artwork pixels.
type Canvas struct {
	dpi   float64
	image *image.RGBA
}

// NewCanvas allocates a blank, fully transparent canvas sized to hold a
// base of widthMM x lengthMM at the given render DPI.
func NewCanvas(widthMM, lengthMM, dpi float64) *Canvas {
	w := geom.MMToPx(widthMM, dpi)
	h := geom.MMToPx(lengthMM, dpi)
	return &Canvas{
		dpi:   dpi,
		image: image.NewRGBA(image.Rect(0, 0, w, h)),
	}
}

// DPI returns the canvas's render resolution.
func (c *Canvas) DPI() float64 { return c.dpi }

// Size returns the canvas's pixel dimensions.
func (c *Canvas) Size() *geom.Size { return geom.NewSizeFromImage(c.image) }

// Image returns the underlying RGBA buffer.
func (c *Canvas) Image() *image.RGBA { return c.image }

// Composite resamples src to exactly (widthMM, heightMM) at the canvas's
// DPI and draws it with its top-left corner at (xMM, yMM), preserving
// source transparency (draw.Over). This is the only drawing operation a
// Canvas exposes — there is deliberately no fill, stroke, or shape API,
// unlike the teacher's general-purpose Layer.
func (c *Canvas) Composite(src image.Image, xMM, yMM, widthMM, heightMM float64) {
	px := geom.MMToPx(xMM, c.dpi)
	py := geom.MMToPx(yMM, c.dpi)
	pw := geom.MMToPx(widthMM, c.dpi)
	ph := geom.MMToPx(heightMM, c.dpi)

	resized := raster.Resize(src, pw, ph)
	dstRect := resized.Bounds().Add(image.Pt(px, py))
	draw.Draw(c.image, dstRect, resized, resized.Bounds().Min, draw.Over)
}

// EncodePNG encodes the canvas as a PNG byte slice at the given
// compression level.
func (c *Canvas) EncodePNG(level png.CompressionLevel) ([]byte, error) {
	return raster.EncodePNG(c.image, level)
}
