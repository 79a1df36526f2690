// Package format renders the compact voxel-count grouping and the
// tab-separated scalar result line each executable prints: a voxel count is
// expressed in Å³ and split into millions/thousands/units digit groups,
// each zero-padded once a higher group has already printed something, so
// the combined string reads as one number even though it was assembled
// piecewise.
package format

import (
	"fmt"
	"strings"
)

// VoxelsCompact renders vox (a voxel count) scaled by voxelVol (Å³ per
// voxel) as three digit buckets: a millions group, a thousands group, and a
// fractional units group, each bucket only appearing if the running volume
// exceeds its threshold, and zero-padded against the total volume once a
// higher bucket has already been emitted.
func VoxelsCompact(vox int, voxelVol float64) string {
	var sb strings.Builder
	vol := float64(vox) * voxelVol
	remaining := vox

	if float64(remaining)*voxelVol > 1e6 {
		cut := int((float64(remaining) / 1e6) * voxelVol)
		fmt.Fprintf(&sb, "%d", cut)
		remaining -= int(float64(cut) * 1e6 / voxelVol)
	}
	if float64(remaining)*voxelVol > 1e3 || vol > 1e6 {
		cut := int((float64(remaining) / 1e3) * voxelVol)
		switch {
		case cut >= 100 || vol < 1e5:
			fmt.Fprintf(&sb, "%d", cut)
		case cut >= 10:
			fmt.Fprintf(&sb, "0%d", cut)
		case cut >= 1:
			fmt.Fprintf(&sb, "00%d", cut)
		default:
			sb.WriteString("000")
		}
		remaining -= int(float64(cut) * 1e3 / voxelVol)
	}
	cut := float64(remaining) * voxelVol
	switch {
	case cut >= 100 || vol < 1e3:
		fmt.Fprintf(&sb, "%g", cut)
	case cut >= 10:
		fmt.Fprintf(&sb, "0%g", cut)
	case cut >= 1:
		fmt.Fprintf(&sb, "00%g", cut)
	default:
		sb.WriteString("000")
	}
	return sb.String()
}

// legend is the literal trailing column-identifier field appended to every
// result line.
const legend = "probe\tgrid\tvolume\tsurf_area\tnum_atoms\tfile"

// ScalarLine assembles the tab-separated result line written to stdout at
// the end of a pipeline run: probe, grid spacing, the compact voxel count,
// surface area, atom count, the input path, and the trailing column legend.
func ScalarLine(probe, spacing float64, voxels int, voxelVol, surfaceArea float64, numAtoms int, input string) string {
	return fmt.Sprintf("%v\t%v\t%s\t%v\t%d\t%s\t%s",
		probe, spacing, VoxelsCompact(voxels, voxelVol), surfaceArea, numAtoms, input, legend)
}
