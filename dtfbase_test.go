package dtfbase_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	dtfbase "github.com/printloom/dtfbase"
)

func TestPublicAPIRunsAJobEndToEnd(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 300))
	for y := 0; y < 300; y++ {
		for x := 0; x < 200; x++ {
			img.Set(x, y, color.RGBA{B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	store := dtfbase.NewMemoryStore()
	store.PutArtwork("handle-1", buf.Bytes())

	driver := dtfbase.NewDriver(dtfbase.PipelineConfig{
		Machine:  dtfbase.Machine{UsableWidthMM: 600, MaxLengthMM: 2500, MinDPI: 150},
		Profiles: []dtfbase.SizingProfile{{SKUPrefix: "", TargetWidthMM: 100, IsDefault: true}},
		Margins:  dtfbase.DefaultMargins(),
		Mode:     dtfbase.ModeSequence,
		Source:   store,
		Sink:     store,
	})

	result := driver.Run(context.Background(), "tenant-a", "job-1", []dtfbase.ResolvedItem{
		{
			ItemID:          "item-1",
			SKU:             "any",
			PicklistPosition: 1,
			ArtworkWidthPx:  200,
			ArtworkHeightPx: 300,
			ArtworkDPI:      300,
			ArtworkFormat:   dtfbase.FormatPNG,
			ArtworkHandle:   "handle-1",
		},
	})

	require.Equal(t, "completed", result.Status)
	require.Len(t, result.Manifest.Outputs.Artifacts, 1)
}
