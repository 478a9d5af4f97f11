package sniff_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/printloom/dtfbase/internal/core/sniff"
	"github.com/printloom/dtfbase/model"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestVerifyAcceptsMatchingPNG(t *testing.T) {
	require.NoError(t, sniff.Verify(pngBytes(t), model.FormatPNG))
}

func TestVerifyRejectsMismatchedDeclaration(t *testing.T) {
	err := sniff.Verify(pngBytes(t), model.FormatJPEG)
	require.Error(t, err)

	var jobErr *model.JobError
	require.True(t, errors.As(err, &jobErr))
	require.Equal(t, model.ErrUnsupportedFormat, jobErr.Kind)
}

func TestVerifyRejectsUnknownSignature(t *testing.T) {
	err := sniff.Verify([]byte("not an image at all"), model.FormatPNG)
	require.Error(t, err)
}
