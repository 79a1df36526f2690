// Package morph implements the accessible/excluded morphological duality:
// trun_exclude (erosion, carves the accessible set inward by a probe) and
// grow_exclude (dilation, expands it outward), both edge-driven: only
// voxels adjacent to the opposite state get a sphere stamped.
package morph

import (
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/parallel"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/voxelgrid"
)

// isFaceNeighborFilled reports whether any of the 6 face-adjacent voxels to
// (i,j,k) is filled in grid: ±1 along i, ±NX along j, ±NXY along k.
func isFaceNeighborFilled(g *voxelgrid.Grid, i, j, k int) bool {
	d := g.Domain
	pt := d.Index(i, j, k)
	if g.Get(pt - d.NXY) || g.Get(pt+d.NXY) {
		return true
	}
	if g.Get(pt - d.NX) || g.Get(pt+d.NX) {
		return true
	}
	if g.Get(pt-1) || g.Get(pt+1) {
		return true
	}
	return false
}

// TrunExclude performs the erosion-style transform: copy acc into exc, then
// for every voxel empty in acc that face-neighbors a filled voxel, clear a
// sphere of radius probe/spacing in exc. Net effect: carve away any
// accessible point within probe of an outside voxel, the classical
// solvent-excluded surface.
func TrunExclude(probe float64, acc, exc *voxelgrid.Grid) error {
	if err := voxelgrid.Copy(exc, acc); err != nil {
		return err
	}
	d := acc.Domain
	rVox := probe / d.Spacing

	parallel.OverPlanes(d.NZ-2, func(kk int) {
		k := kk + 1
		for j := 1; j < d.NY-1; j++ {
			for i := 1; i < d.NX-1; i++ {
				pt := d.Index(i, j, k)
				if acc.Get(pt) {
					continue
				}
				if isFaceNeighborFilled(acc, i, j, k) {
					emptySphereAt(exc, i, j, k, rVox)
				}
			}
		}
	})
	return nil
}

// GrowExclude performs the dilation-style transform: copy acc into exc, then
// for every filled voxel in acc that face-neighbors an empty voxel, stamp a
// filled sphere of radius probe/spacing into exc. Net effect: dilate the
// accessible set outward by probe. Callers must pass a freshly built acc;
// exc is overwritten by the initial copy.
func GrowExclude(probe float64, acc, exc *voxelgrid.Grid) error {
	if err := voxelgrid.Copy(exc, acc); err != nil {
		return err
	}
	d := acc.Domain
	rVox := probe / d.Spacing

	parallel.OverPlanes(d.NZ-2, func(kk int) {
		k := kk + 1
		for j := 1; j < d.NY-1; j++ {
			for i := 1; i < d.NX-1; i++ {
				pt := d.Index(i, j, k)
				if !acc.Get(pt) {
					continue
				}
				if isFaceNeighborEmpty(acc, i, j, k) {
					fillSphereAt(exc, i, j, k, rVox)
				}
			}
		}
	})
	return nil
}

func isFaceNeighborEmpty(g *voxelgrid.Grid, i, j, k int) bool {
	d := g.Domain
	pt := d.Index(i, j, k)
	if !g.Get(pt-d.NXY) || !g.Get(pt+d.NXY) {
		return true
	}
	if !g.Get(pt-d.NX) || !g.Get(pt+d.NX) {
		return true
	}
	if !g.Get(pt-1) || !g.Get(pt+1) {
		return true
	}
	return false
}

// emptySphereAt clears a sphere of radius rVox (in voxel units) centered at
// index-space (i,j,k) within exc, with overflow clamps so the stamp never
// indexes outside [0, NXYZ).
func emptySphereAt(exc *voxelgrid.Grid, i, j, k int, rVox float64) {
	stampSphere(exc, i, j, k, rVox, false)
}

// fillSphereAt stamps a filled sphere of radius rVox at (i,j,k) into exc.
func fillSphereAt(exc *voxelgrid.Grid, i, j, k int, rVox float64) {
	stampSphere(exc, i, j, k, rVox, true)
}

func stampSphere(g *voxelgrid.Grid, i, j, k int, rVox float64, setTo bool) {
	d := g.Domain
	r := int(rVox + 1)
	cutoff := rVox * rVox

	nri, nrj, nrk := clampLow(i, r), clampLow(j, r), clampLow(k, r)
	pri, prj, prk := clampHigh(i, r, d.NX), clampHigh(j, r, d.NY), clampHigh(k, r, d.NZ)

	for di := nri; di <= pri; di++ {
		for dj := nrj; dj <= prj; dj++ {
			for dk := nrk; dk <= prk; dk++ {
				distsq := float64(di*di + dj*dj + dk*dk)
				if distsq >= cutoff {
					continue
				}
				pt := d.Index(i+di, j+dj, k+dk)
				if g.Get(pt) == setTo {
					continue
				}
				g.Set(pt, setTo)
			}
		}
	}
}

func clampLow(coord, r int) int {
	if coord < r {
		return -coord
	}
	return -r
}

func clampHigh(coord, r, extent int) int {
	if coord+r >= extent {
		return extent - coord - 1
	}
	return r
}
