package pipeline_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/printloom/dtfbase/model"
	"github.com/printloom/dtfbase/pipeline"
	"github.com/printloom/dtfbase/storage"
)

func solidPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{G: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testConfig(store *storage.MemoryStore) pipeline.Config {
	return pipeline.Config{
		Machine:      model.Machine{UsableWidthMM: 600, MaxLengthMM: 2500, MinDPI: 150},
		Profiles:     []model.SizingProfile{{SKUPrefix: "", TargetWidthMM: 100, IsDefault: true}},
		Margins:      model.DefaultMargins(),
		Mode:         model.ModeSequence,
		SoftDeadline: 5 * time.Second,
		Source:       store,
		Sink:         store,
	}
}

func TestDriverRunCompletesHappyPath(t *testing.T) {
	store := storage.NewMemoryStore()
	store.PutArtwork("handle-1", solidPNG(t, 300, 450))

	d := pipeline.New(testConfig(store))
	items := []model.ResolvedItem{
		{
			ItemID:          "item-1",
			SKU:             "any",
			PicklistPosition: 1,
			ArtworkWidthPx:  300,
			ArtworkHeightPx: 450,
			ArtworkDPI:      300,
			ArtworkFormat:   model.FormatPNG,
			ArtworkHandle:   "handle-1",
		},
	}

	result := d.Run(context.Background(), "tenant-a", "job-1", items)
	require.Equal(t, "completed", result.Status)
	require.NoError(t, result.Err)
	require.Len(t, result.Manifest.Outputs.Artifacts, 1)
	require.Equal(t, 1, result.Manifest.Packing.TotalBases)

	data, ok := store.Artifact(result.Manifest.Outputs.Artifacts[0])
	require.True(t, ok)
	require.NotEmpty(t, data)
}

func TestDriverRunFailsJobOnSizingError(t *testing.T) {
	store := storage.NewMemoryStore()
	store.PutArtwork("handle-1", solidPNG(t, 300, 450))

	d := pipeline.New(testConfig(store))
	items := []model.ResolvedItem{
		{
			ItemID:          "item-1",
			SKU:             "any",
			PicklistPosition: 1,
			ArtworkWidthPx:  300,
			ArtworkHeightPx: 450,
			ArtworkDPI:      72, // below machine min_dpi of 150
			ArtworkFormat:   model.FormatPNG,
			ArtworkHandle:   "handle-1",
		},
	}

	result := d.Run(context.Background(), "tenant-a", "job-1", items)
	require.Equal(t, "failed", result.Status)
	require.Error(t, result.Err)
	require.Empty(t, result.Manifest.Outputs.Artifacts)
}

func TestDriverRunFailsOnMissingArtwork(t *testing.T) {
	store := storage.NewMemoryStore()

	d := pipeline.New(testConfig(store))
	items := []model.ResolvedItem{
		{
			ItemID:          "item-1",
			SKU:             "any",
			PicklistPosition: 1,
			ArtworkWidthPx:  300,
			ArtworkHeightPx: 450,
			ArtworkDPI:      300,
			ArtworkFormat:   model.FormatPNG,
			ArtworkHandle:   "missing-handle",
		},
	}

	result := d.Run(context.Background(), "tenant-a", "job-1", items)
	require.Equal(t, "failed", result.Status)
	require.Error(t, result.Err)
}

func TestDriverRunRespectsSoftDeadline(t *testing.T) {
	store := storage.NewMemoryStore()
	store.PutArtwork("handle-1", solidPNG(t, 300, 450))

	cfg := testConfig(store)
	cfg.SoftDeadline = time.Nanosecond
	d := pipeline.New(cfg)

	items := []model.ResolvedItem{
		{
			ItemID:          "item-1",
			SKU:             "any",
			PicklistPosition: 1,
			ArtworkWidthPx:  300,
			ArtworkHeightPx: 450,
			ArtworkDPI:      300,
			ArtworkFormat:   model.FormatPNG,
			ArtworkHandle:   "handle-1",
		},
	}

	result := d.Run(context.Background(), "tenant-a", "job-1", items)
	require.Equal(t, "failed", result.Status)
	var jobErr *model.JobError
	require.ErrorAs(t, result.Err, &jobErr)
	require.Equal(t, model.ErrTimeout, jobErr.Kind)
}
