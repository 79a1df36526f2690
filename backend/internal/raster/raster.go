// Package raster paints and erases spheres onto a voxel grid: the kernel at
// the heart of every accessible and excluded volume build.
package raster

import (
	"math"

	"github.com/sarat-asymmetrica/vossgeom/backend/internal/atom"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/parallel"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/voxelgrid"
)

// FillSphere sets every voxel whose center lies within a sphere of radius r
// (in Å, boundary inclusive) around center onto g, and returns the count of
// voxels newly set. Voxels already filled don't count again, so the call is
// idempotent.
func FillSphere(g *voxelgrid.Grid, center [3]float64, r float64) int {
	d := g.Domain
	if r <= 0 {
		return 0
	}
	cutoff := (r / d.Spacing) * (r / d.Spacing)

	xk := (center[0] - d.Origin.X()) / d.Spacing
	yk := (center[1] - d.Origin.Y()) / d.Spacing
	zk := (center[2] - d.Origin.Z()) / d.Spacing

	imin := int((center[0]-d.Origin.X()-r)/d.Spacing - 1.0)
	jmin := int((center[1]-d.Origin.Y()-r)/d.Spacing - 1.0)
	kmin := int((center[2]-d.Origin.Z()-r)/d.Spacing - 1.0)
	imax := int((center[0]-d.Origin.X()+r)/d.Spacing + 1.0)
	jmax := int((center[1]-d.Origin.Y()+r)/d.Spacing + 1.0)
	kmax := int((center[2]-d.Origin.Z()+r)/d.Spacing + 1.0)

	filled := 0
	for di := imin; di <= imax; di++ {
		fi := float64(di)
		distI := (xk - fi) * (xk - fi)
		for dj := jmin; dj <= jmax; dj++ {
			fj := float64(dj)
			distIJ := distI + (yk-fj)*(yk-fj)
			if distIJ > cutoff {
				continue
			}
			for dk := kmin; dk <= kmax; dk++ {
				fk := float64(dk)
				distsq := distIJ + (zk-fk)*(zk-fk)
				if distsq <= cutoff {
					pt := d.Index(di, dj, dk)
					if !g.Get(pt) {
						g.Set(pt, true)
						filled++
					}
				}
			}
		}
	}
	return filled
}

// EraseSphere clears every voxel inside radius r around center, the mirror
// operation used by the cavity/channel subtraction steps.
func EraseSphere(g *voxelgrid.Grid, center [3]float64, r float64) int {
	d := g.Domain
	if r <= 0 {
		return 0
	}
	cutoff := (r / d.Spacing) * (r / d.Spacing)
	xk := (center[0] - d.Origin.X()) / d.Spacing
	yk := (center[1] - d.Origin.Y()) / d.Spacing
	zk := (center[2] - d.Origin.Z()) / d.Spacing
	imin := int((center[0]-d.Origin.X()-r)/d.Spacing - 1.0)
	jmin := int((center[1]-d.Origin.Y()-r)/d.Spacing - 1.0)
	kmin := int((center[2]-d.Origin.Z()-r)/d.Spacing - 1.0)
	imax := int((center[0]-d.Origin.X()+r)/d.Spacing + 1.0)
	jmax := int((center[1]-d.Origin.Y()+r)/d.Spacing + 1.0)
	kmax := int((center[2]-d.Origin.Z()+r)/d.Spacing + 1.0)

	erased := 0
	for di := imin; di <= imax; di++ {
		for dj := jmin; dj <= jmax; dj++ {
			for dk := kmin; dk <= kmax; dk++ {
				distsq := (xk-float64(di))*(xk-float64(di)) +
					(yk-float64(dj))*(yk-float64(dj)) +
					(zk-float64(dk))*(zk-float64(dk))
				if distsq <= cutoff {
					pt := d.Index(di, dj, dk)
					if g.Get(pt) {
						g.Set(pt, false)
						erased++
					}
				}
			}
		}
	}
	return erased
}

// ProgressFunc is called roughly 60 times over the course of FillFromList.
// Pass nil to disable.
type ProgressFunc func(done, total int)

// FillFromList rasterizes every atom in atoms at radius (atom.Radius+probe)
// onto g, returning the total filled voxel count. The outer loop is
// sequential: atoms write into a shared grid, and at typical atom counts the
// morphology kernels are where the real parallel win is, across outer planes.
func FillFromList(g *voxelgrid.Grid, atoms atom.List, probe float64, progress ProgressFunc) int {
	total := len(atoms)
	tick := int(math.Max(1, float64(total)/60.0))
	filled := 0
	for i, a := range atoms {
		filled += FillSphere(g, [3]float64{a.X(), a.Y(), a.Z()}, effectiveRadius(a, probe))
		if progress != nil && (i+1)%tick == 0 {
			progress(i+1, total)
		}
	}
	if progress != nil {
		progress(total, total)
	}
	return filled
}

// FillFromListParallel partitions atoms across the package's worker pool and
// rasterizes each atom's sphere independently. Safe because sphere writes
// are idempotent set-to-true operations: a race between two goroutines
// setting the same voxel resolves to the same value.
// Unlike FillFromList it returns no filled-voxel count and reports no
// progress; callers that need the count read Grid.Count afterward.
func FillFromListParallel(g *voxelgrid.Grid, atoms atom.List, probe float64) {
	parallel.OverPlanes(len(atoms), func(idx int) {
		a := atoms[idx]
		FillSphere(g, [3]float64{a.X(), a.Y(), a.Z()}, a.Radius+probe)
	})
}

// effectiveRadius computes atom.Radius + probe, guarding against a negative
// result by clamping to zero (an atom+probe combination should never yield a
// negative radius under valid input, but defends against a misused probe).
func effectiveRadius(a atom.Atom, probe float64) float64 {
	r := a.Radius + probe
	if r < 0 {
		return 0
	}
	return r
}
