// Package setalgebra implements the three element-wise boolean combinators
// grids are composed with: subtract, intersect, merge. All three
// require identical grid shape and are trivially parallel, though at
// whole-grid-pass granularity the loop overhead of dispatching to a worker
// pool rarely pays for itself versus a tight sequential scan, so these stay
// serial and let the caller pipeline them against the parallel kernels that
// dominate wall-clock time (rasterization, morphology).
package setalgebra

import (
	"fmt"

	"github.com/sarat-asymmetrica/vossgeom/backend/internal/griddomain"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/voxelgrid"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/vosserr"
)

func requireSameShape(a, b *voxelgrid.Grid) error {
	if !griddomain.SameShape(a.Domain, b.Domain) {
		return fmt.Errorf("%w: set algebra requires identical grid shape", vosserr.ErrInvalidInput)
	}
	return nil
}

// Subtract performs big &= ^small in place and returns the count of voxels
// that were set in both grids beforehand (the overlap that got cleared).
func Subtract(big, small *voxelgrid.Grid) (int, error) {
	if err := requireSameShape(big, small); err != nil {
		return 0, err
	}
	removed := 0
	for pt := 0; pt < big.Domain.NXYZ; pt++ {
		if big.Bits[pt] && small.Bits[pt] {
			big.Bits[pt] = false
			removed++
		}
	}
	return removed, nil
}

// Intersect performs g1 &= g2 in place and returns the remaining voxel count.
func Intersect(g1, g2 *voxelgrid.Grid) (int, error) {
	if err := requireSameShape(g1, g2); err != nil {
		return 0, err
	}
	remaining := 0
	for pt := 0; pt < g1.Domain.NXYZ; pt++ {
		if g1.Bits[pt] && g2.Bits[pt] {
			remaining++
		} else {
			g1.Bits[pt] = false
		}
	}
	return remaining, nil
}

// Merge performs g1 |= g2 in place and returns the count of voxels that were
// already set in g1 before the merge (the overlap).
func Merge(g1, g2 *voxelgrid.Grid) (int, error) {
	if err := requireSameShape(g1, g2); err != nil {
		return 0, err
	}
	overlap := 0
	for pt := 0; pt < g1.Domain.NXYZ; pt++ {
		if g1.Bits[pt] && g2.Bits[pt] {
			overlap++
		}
		if g2.Bits[pt] {
			g1.Bits[pt] = true
		}
	}
	return overlap, nil
}
