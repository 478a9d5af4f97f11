package render_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/printloom/dtfbase/model"
	"github.com/printloom/dtfbase/packing"
	"github.com/printloom/dtfbase/render"
)

func solidPNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestRenderBaseProducesOneArtifactPerBase(t *testing.T) {
	machine := model.Machine{UsableWidthMM: 200, MaxLengthMM: 500, MinDPI: 150}
	margins := model.DefaultMargins()
	p := packing.New(machine, margins, model.ModeSequence, false, nil)

	artwork := solidPNG(t, 10, 10, color.RGBA{R: 255, A: 255})
	item := model.SizedItem{
		Item: model.ResolvedItem{
			ItemID:        "a",
			SKU:           "sku-a",
			ArtworkBytes:  artwork,
			ArtworkFormat: model.FormatPNG,
		},
		FinalWidthMM:  50,
		FinalHeightMM: 50,
		ScaleApplied:  1,
	}

	bases, err := p.Pack([]model.SizedItem{item})
	require.NoError(t, err)
	require.Len(t, bases, 1)

	r := render.New(nil)
	artifact, err := r.RenderBase(bases[0], margins.SideMM)
	require.NoError(t, err)
	require.Equal(t, 1, artifact.BaseIndex)
	require.Equal(t, "png", artifact.Ext)
	require.NotEmpty(t, artifact.PNGBytes)

	decoded, err := png.Decode(bytes.NewReader(artifact.PNGBytes))
	require.NoError(t, err)
	wantW := int(200 * render.DefaultDPI / 25.4)
	gotW := decoded.Bounds().Dx()
	require.InDelta(t, wantW, gotW, 1)
}

func TestRenderBaseRejectsUnfinalizedBase(t *testing.T) {
	r := render.New(nil)
	_, err := r.RenderBase(&packing.Base{}, 20)
	require.Error(t, err)
}

func TestRenderAllStopsOnFirstFailure(t *testing.T) {
	machine := model.Machine{UsableWidthMM: 200, MaxLengthMM: 500, MinDPI: 150}
	margins := model.DefaultMargins()
	p := packing.New(machine, margins, model.ModeSequence, false, nil)

	badItem := model.SizedItem{
		Item: model.ResolvedItem{
			ItemID:        "bad",
			SKU:           "sku-bad",
			ArtworkBytes:  []byte("not an image"),
			ArtworkFormat: model.FormatPNG,
		},
		FinalWidthMM:  50,
		FinalHeightMM: 50,
		ScaleApplied:  1,
	}
	bases, err := p.Pack([]model.SizedItem{badItem})
	require.NoError(t, err)

	r := render.New(nil)
	_, err = r.RenderAll(bases, margins.SideMM)
	require.Error(t, err)
}
