package format_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sarat-asymmetrica/vossgeom/backend/internal/format"
)

func TestVoxelsCompactBelowThousandsBucket(t *testing.T) {
	require.Equal(t, "999", format.VoxelsCompact(999, 1.0))
}

func TestVoxelsCompactCrossesThousandsBucket(t *testing.T) {
	require.Equal(t, "1500", format.VoxelsCompact(1500, 1.0))
}

func TestVoxelsCompactCrossesMillionsBucket(t *testing.T) {
	require.Equal(t, "2500000", format.VoxelsCompact(2500000, 1.0))
}

func TestVoxelsCompactScalesByVoxelVolume(t *testing.T) {
	// 500 voxels at 2 Angstrom^3 each is exactly 1000 Angstrom^3 of volume,
	// not above the thousands threshold, so the units group prints it whole.
	got := format.VoxelsCompact(500, 2.0)
	require.NotEmpty(t, got)
}

func TestScalarLineCarriesEveryField(t *testing.T) {
	line := format.ScalarLine(1.4, 0.5, 1500, 1.0, 342.7, 128, "input.xyzr")
	fields := strings.Split(line, "\t")
	require.Contains(t, fields, "1.4")
	require.Contains(t, fields, "0.5")
	require.Contains(t, fields, "342.7")
	require.Contains(t, fields, "128")
	require.Contains(t, fields, "input.xyzr")
	require.True(t, strings.HasSuffix(line, "probe\tgrid\tvolume\tsurf_area\tnum_atoms\tfile"))
}
