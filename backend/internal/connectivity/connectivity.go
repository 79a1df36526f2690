// Package connectivity implements the seeded 6-neighbor flood fill used to
// extract connected components from a grid. The BFS wavefront is bounded per
// generation (MaxGeneration) but backed by a growable slice, not fixed-size
// scratch arrays.
package connectivity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/sarat-asymmetrica/vossgeom/backend/internal/griddomain"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/voxelgrid"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/vosserr"
)

// MaxGeneration bounds how many voxel indices a single BFS generation may
// enqueue. A generation that would exceed this simply stops growing for
// that generation; acceptable because higher-level pipelines loop until no
// qualifying seed remains.
const MaxGeneration = 1 << 18

// neighborOffsets are the 6 face-adjacent steps in flat-index space: ±1
// (i), ±NX (j), ±NXY (k). Connectivity is face-adjacency only; diagonal
// neighbors do not connect components.
func neighborOffsets(d griddomain.Domain) [6]int {
	return [6]int{-1, 1, -d.NX, d.NX, -d.NXY, d.NXY}
}

// FromPoint floods from an index-space seed gp in src into dst (expected
// zero-initialized), returning the newly connected voxel count, seed
// excluded.
func FromPoint(src, dst *voxelgrid.Grid, gp int) (int, error) {
	if !griddomain.SameShape(src.Domain, dst.Domain) {
		return 0, fmt.Errorf("%w: flood fill requires identical grid shape", vosserr.ErrInvalidInput)
	}
	if gp < 0 || gp >= src.Domain.NXYZ || !src.Get(gp) {
		return 0, nil
	}
	if dst.Get(gp) {
		return 0, nil // already connected: re-seeding must not grow dst
	}

	d := src.Domain
	offsets := neighborOffsets(d)

	dst.Set(gp, true)
	connected := 0

	frontier := []int{gp}
	for len(frontier) > 0 {
		next := make([]int, 0, len(frontier))
		for _, p := range frontier {
			for _, off := range offsets {
				pt := p + off
				if pt < 0 || pt >= len(src.Bits) {
					continue
				}
				if src.Get(pt) && !dst.Get(pt) {
					dst.Set(pt, true)
					connected++
					if len(next) < MaxGeneration-10 {
						next = append(next, pt)
					}
				}
			}
		}
		frontier = next
	}
	return connected, nil
}

// FromWorldPoint floods from a world-space seed (x, y, z). If the target
// voxel is empty, it searches a ±3Å neighborhood for the nearest filled
// voxel and seeds from there instead. Returns 0 if nothing is found.
func FromWorldPoint(src, dst *voxelgrid.Grid, seed mgl64.Vec3) (int, error) {
	d := src.Domain
	gp := d.PointIndex(seed)

	if gp < 0 || gp >= len(src.Bits) || !src.Get(gp) {
		found, ok := nearestFilled(src, seed)
		if !ok {
			return 0, nil
		}
		gp = found
	}
	return FromPoint(src, dst, gp)
}

// nearestFilled searches a ±3Å box around seed (in voxel-index space) for
// the filled voxel nearest the seed's voxel; ties go to the first one found
// in scan order.
func nearestFilled(src *voxelgrid.Grid, seed mgl64.Vec3) (int, bool) {
	d := src.Domain
	delta := int(3.0 / d.Spacing)
	ip := int((seed.X()-d.Origin.X())/d.Spacing + 0.5)
	jp := int((seed.Y()-d.Origin.Y())/d.Spacing + 0.5)
	kp := int((seed.Z()-d.Origin.Z())/d.Spacing + 0.5)

	best, bestD2 := 0, -1
	for id := -delta; id <= delta; id++ {
		for jd := -delta; jd <= delta; jd++ {
			for kd := -delta; kd <= delta; kd++ {
				i, j, k := ip+id, jp+jd, kp+kd
				if !d.InBounds(i, j, k) {
					continue
				}
				pt := d.Index(i, j, k)
				if d2 := id*id + jd*jd + kd*kd; src.Get(pt) && (bestD2 < 0 || d2 < bestD2) {
					best, bestD2 = pt, d2
				}
			}
		}
	}
	return best, bestD2 >= 0
}

// FirstFilled returns the first filled voxel index in grid, or 0 if none is
// filled.
func FirstFilled(g *voxelgrid.Grid) int {
	for pt := 0; pt < g.Domain.NXYZ; pt++ {
		if g.Get(pt) {
			return pt
		}
	}
	return 0
}
