package packing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSkylineFindLowestPlacementFlat(t *testing.T) {
	sky := NewSkyline(500, 20)

	x, y, ok := sky.FindLowestPlacement(100, 50, 2000)
	require.True(t, ok)
	require.InDelta(t, 20, x, 1e-9)
	require.InDelta(t, 20, y, 1e-9)
}

func TestSkylineFindLowestPlacementRejectsTooWide(t *testing.T) {
	sky := NewSkyline(500, 20)

	// usable width is 500-2*20 = 460
	_, _, ok := sky.FindLowestPlacement(461, 50, 2000)
	require.False(t, ok)
}

func TestSkylineFindLowestPlacementRejectsMaxLength(t *testing.T) {
	sky := NewSkyline(500, 20)

	_, _, ok := sky.FindLowestPlacement(100, 50, 65)
	require.False(t, ok, "placement top (20) + height (50) + side margin (20) = 90 exceeds maxLength 65")
}

func TestSkylineCommitRaisesSegmentAndPrefersLowerNeighbor(t *testing.T) {
	sky := NewSkyline(500, 20)

	x, y, ok := sky.FindLowestPlacement(100, 80, 2000)
	require.True(t, ok)
	sky.Commit(x, 100, y, 80, 10)

	// The committed segment should now be higher than the flat remainder,
	// so the next lowest placement skips over it.
	x2, y2, ok := sky.FindLowestPlacement(100, 30, 2000)
	require.True(t, ok)
	require.InDelta(t, 20, y2, 1e-9, "next placement should land on the untouched flat run")
	require.Greater(t, x2, 19.0)
}

func TestSkylineCommitMergesEqualYNeighbors(t *testing.T) {
	sky := NewSkyline(500, 20)

	x, y, ok := sky.FindLowestPlacement(460, 80, 2000)
	require.True(t, ok)
	sky.Commit(x, 460, y, 80, 10)

	require.Len(t, sky.segments, 1, "a single full-width commit should leave one merged segment")
	require.InDelta(t, 20+80+10, sky.segments[0].Y, 1e-9)
}

func TestSkylineCommitSplitsUnderlyingSegments(t *testing.T) {
	sky := NewSkyline(500, 20)

	// Commit a narrow item in the middle of the flat run, splitting it into
	// three segments: left remainder, the committed span, right remainder.
	sky.Commit(100, 50, 20, 30, 10)

	require.Len(t, sky.segments, 3)
	require.InDelta(t, 20, sky.segments[0].Y, 1e-9)
	require.InDelta(t, 20+30+10, sky.segments[1].Y, 1e-9)
	require.InDelta(t, 20, sky.segments[2].Y, 1e-9)
}

func TestSkylineResetReturnsToFlatProfile(t *testing.T) {
	sky := NewSkyline(500, 20)
	sky.Commit(100, 50, 20, 30, 10)
	require.Len(t, sky.segments, 3)

	sky.Reset()
	require.Len(t, sky.segments, 1)
	require.InDelta(t, 20, sky.segments[0].X, 1e-9)
	require.InDelta(t, 460, sky.segments[0].Width, 1e-9)
	require.InDelta(t, 20, sky.segments[0].Y, 1e-9)
}
