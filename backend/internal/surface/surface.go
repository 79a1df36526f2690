// Package surface implements the 6-neighbor voxel taxonomy that approximates
// continuous surface area from a discrete grid.
package surface

import "github.com/sarat-asymmetrica/vossgeom/backend/internal/voxelgrid"

// weights are the per-class calibration factors that convert voxel-face
// patch counts to continuous surface area. Index 0 (no empty neighbors)
// contributes nothing; index 10 is an unused placeholder.
var weights = [11]float64{0, 0.894, 1.3409, 1.5879, 4.0, 2.6667, 3.3333, 1.79, 2.68, 4.08, 0}

// Histogram holds the count of filled voxels in each class: index 0 counts
// fully interior voxels (zero area weight) and indices 1..9 the nine surface
// classes.
type Histogram [10]int

// Classify returns the surface class (0..9) of the filled voxel at pt, by
// counting its empty 6-face neighbors and dispatching on opposite-pair
// patterns. Class 0 means the voxel is fully interior (no empty neighbors
// at all) and does not contribute to surface area.
func Classify(g *voxelgrid.Grid, pt int) int {
	d := g.Domain
	emptyNeg1, emptyPos1 := !g.Get(pt-1), !g.Get(pt+1)
	emptyNegX, emptyPosX := !g.Get(pt-d.NX), !g.Get(pt+d.NX)
	emptyNegXY, emptyPosXY := !g.Get(pt-d.NXY), !g.Get(pt+d.NXY)

	nb := 0
	for _, empty := range []bool{emptyNeg1, emptyPos1, emptyNegX, emptyPosX, emptyNegXY, emptyPosXY} {
		if empty {
			nb++
		}
	}

	switch nb {
	case 0, 1:
		return nb
	case 2:
		if emptyNeg1 && emptyPos1 {
			return 7
		}
		if emptyNegX && emptyPosX {
			return 7
		}
		if emptyNegXY && emptyPosXY {
			return 7
		}
		return 2
	case 3:
		if emptyNeg1 && emptyPos1 {
			return 4
		}
		if emptyNegX && emptyPosX {
			return 4
		}
		if emptyNegXY && emptyPosXY {
			return 4
		}
		return 3
	case 4:
		if !emptyNeg1 && !emptyPos1 {
			return 8
		}
		if !emptyNegX && !emptyPosX {
			return 8
		}
		if !emptyNegXY && !emptyPosXY {
			return 8
		}
		return 5
	case 5:
		return 6
	case 6:
		return 9
	}
	return 0
}

// ClassifyGrid builds the full surface-class histogram over every filled
// voxel in g.
func ClassifyGrid(g *voxelgrid.Grid) Histogram {
	var hist Histogram
	d := g.Domain
	for k := 0; k < d.NXYZ; k += d.NXY {
		for j := 0; j < d.NXY; j += d.NX {
			for i := 0; i < d.NX; i++ {
				pt := i + j + k
				if !g.Get(pt) {
					continue
				}
				hist[Classify(g, pt)]++
			}
		}
	}
	return hist
}

// Area computes the total surface area in Å² from a histogram and the
// grid's voxel spacing: spacing^2 * sum(weights[i] * count[i]).
func (h Histogram) Area(spacing float64) float64 {
	var sum float64
	for i := 1; i <= 9; i++ {
		sum += weights[i] * float64(h[i])
	}
	return sum * spacing * spacing
}

// Total returns the sum of all class counts, which equals the grid's total
// filled-voxel count (every filled voxel lands in exactly one class).
func (h Histogram) Total() int {
	n := 0
	for i := 0; i <= 9; i++ {
		n += h[i]
	}
	return n
}

// CountEdgePoints returns the number of filled voxels with a non-zero
// surface class (class != 0).
func CountEdgePoints(g *voxelgrid.Grid) int {
	hist := ClassifyGrid(g)
	edges := 0
	for i := 1; i <= 9; i++ {
		edges += hist[i]
	}
	return edges
}
