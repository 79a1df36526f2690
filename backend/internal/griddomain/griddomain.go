// Package griddomain computes the axis-aligned voxel domain shared by every
// kernel downstream: origin, spacing, extent, and the derived index bounds.
//
// MATHEMATICIAN: the domain is computed once per pipeline run and then
// treated as read-only for the lifetime of every grid built against it.
package griddomain

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/sarat-asymmetrica/vossgeom/backend/internal/atom"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/vosserr"
)

// MaxBins is the hard ceiling on num_bins (2^31 - 1), the largest value of
// the historical signed 32-bit index space. Exceeding it fails GridTooLarge.
const MaxBins = 1<<31 - 1

// MaxVDW is the smallest van-der-Waals allowance used to inflate the domain
// box; New uses the larger of it and the list's largest atom radius.
const MaxVDW = 2.0

// Domain is the process-wide (per pipeline run) grid geometry, an explicit
// value threaded through every kernel call rather than package state.
type Domain struct {
	Origin  mgl64.Vec3 // (xmin, ymin, zmin), Å
	Spacing float64    // Å per voxel edge

	NX, NY, NZ int // extent, each a multiple of 4
	NXY        int // NX * NY
	NXYZ       int // NX * NY * NZ
	NumBins    int // NXYZ + NXY + NX + 1 (halo tail)
}

// VoxelVolume returns spacing^3.
func (d Domain) VoxelVolume() float64 { return d.Spacing * d.Spacing * d.Spacing }

// snapDown4/snapUp4 round x outward to the next multiple of 4*spacing, one
// step past the exact quotient so the box never sits flush against an atom.
func snapDown4(x, spacing float64) float64 {
	return math.Floor(x/(4*spacing)-1) * 4 * spacing
}

func snapUp4(x, spacing float64) float64 {
	return math.Floor(x/(4*spacing)+1) * 4 * spacing
}

// roundUp4 rounds a voxel count up to the next multiple of 4.
func roundUp4(n float64) int {
	return int(n/4.0+1) * 4
}

// RoundUp4 is the exported form of roundUp4, reused by the MRC writer's
// tight crop, which re-derives a cropped extent with the same formula.
func RoundUp4(n float64) int {
	return roundUp4(n)
}

// New builds a Domain that encloses every atom in the list, inflated by
// maxProbe plus the larger of MaxVDW and the list's largest radius, snapped
// outward to 4*spacing.
// atoms must already be validated (atom.List.Validate) by the caller.
func New(atoms atom.List, spacing, maxProbe float64) (Domain, error) {
	if spacing <= 0 {
		return Domain{}, fmt.Errorf("%w: spacing must be positive, got %v", vosserr.ErrInvalidInput, spacing)
	}
	if maxProbe < 0 {
		return Domain{}, fmt.Errorf("%w: probe must be non-negative, got %v", vosserr.ErrInvalidInput, maxProbe)
	}

	minX, minY, minZ := math.Inf(1), math.Inf(1), math.Inf(1)
	maxX, maxY, maxZ := math.Inf(-1), math.Inf(-1), math.Inf(-1)
	for _, a := range atoms {
		x, y, z := a.X(), a.Y(), a.Z()
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
		minZ, maxZ = math.Min(minZ, z), math.Max(maxZ, z)
	}

	fact := math.Max(MaxVDW, atoms.MaxRadiusIn()) + maxProbe + 2*spacing
	minX, minY, minZ = snapDown4(minX-fact, spacing), snapDown4(minY-fact, spacing), snapDown4(minZ-fact, spacing)
	maxX, maxY, maxZ = snapUp4(maxX+fact, spacing), snapUp4(maxY+fact, spacing), snapUp4(maxZ+fact, spacing)

	nx := roundUp4((maxX - minX) / spacing)
	ny := roundUp4((maxY - minY) / spacing)
	nz := roundUp4((maxZ - minZ) / spacing)

	nxy := nx * ny
	nxyz := nxy * nz
	numBins := nxyz + nxy + nx + 1
	if numBins > MaxBins || numBins < 0 {
		ideal := IdealSpacing(minX, maxX, minY, maxY, minZ, maxZ, MaxBins/2)
		return Domain{}, fmt.Errorf("%w: num_bins %d exceeds %d; try spacing >= %.3f", vosserr.ErrGridTooLarge, numBins, MaxBins, ideal)
	}

	return Domain{
		Origin:  mgl64.Vec3{minX, minY, minZ},
		Spacing: spacing,
		NX:      nx, NY: ny, NZ: nz,
		NXY: nxy, NXYZ: nxyz, NumBins: numBins,
	}, nil
}

// IdealSpacing steps in 0.001 Å increments from a cube-root estimate and
// returns the finest spacing on that 0.001 Å lattice whose nx*ny*nz stays
// within voxelBudget, given a bounding box.
func IdealSpacing(xmin, xmax, ymin, ymax, zmin, zmax float64, voxelBudget int) float64 {
	const increment = 0.001
	dxSpan, dySpan, dzSpan := xmax-xmin, ymax-ymin, zmax-zmin
	volume := dxSpan * dySpan * dzSpan
	if volume <= 0 || voxelBudget <= 0 {
		return increment
	}
	ideal := math.Cbrt(volume / float64(voxelBudget))
	ideal = math.Floor(ideal/increment) * increment

	minGrid, maxGrid := -1.0, 1.0
	for maxGrid-minGrid > 2*increment {
		dx := roundUp4(dxSpan / ideal)
		dy := roundUp4(dySpan / ideal)
		dz := roundUp4(dzSpan / ideal)
		voxels := dx * dy * dz
		if voxels > voxelBudget {
			minGrid = ideal
			ideal += increment
		} else {
			maxGrid = ideal
			ideal -= increment
		}
	}
	return maxGrid
}

// Index returns the flat voxel index for (i, j, k). Callers are expected to
// keep i, j, k within [0, NX), [0, NY), [0, NZ) respectively; the halo tail
// beyond NXYZ absorbs neighbor probes that step outside this range by one.
func (d Domain) Index(i, j, k int) int {
	return i + j*d.NX + k*d.NXY
}

// IJK decomposes a flat index back into grid coordinates.
func (d Domain) IJK(pt int) (i, j, k int) {
	k = pt / d.NXY
	rem := pt % d.NXY
	j = rem / d.NX
	i = rem % d.NX
	return
}

// World converts a voxel index to its center in world (Å) coordinates.
func (d Domain) World(pt int) mgl64.Vec3 {
	i, j, k := d.IJK(pt)
	return mgl64.Vec3{
		d.Origin.X() + float64(i)*d.Spacing,
		d.Origin.Y() + float64(j)*d.Spacing,
		d.Origin.Z() + float64(k)*d.Spacing,
	}
}

// PointIndex converts a world-space coordinate to its nearest voxel index,
// without bounds checking; callers that need the ±3Å fallback search live
// in the connectivity package.
func (d Domain) PointIndex(p mgl64.Vec3) int {
	i := int((p.X()-d.Origin.X())/d.Spacing + 0.5)
	j := int((p.Y()-d.Origin.Y())/d.Spacing + 0.5)
	k := int((p.Z()-d.Origin.Z())/d.Spacing + 0.5)
	return d.Index(i, j, k)
}

// InBounds reports whether (i, j, k) lies within the addressable extent
// (not counting the halo tail).
func (d Domain) InBounds(i, j, k int) bool {
	return i >= 0 && i < d.NX && j >= 0 && j < d.NY && k >= 0 && k < d.NZ
}

// SameShape reports whether two domains share (origin, extent, spacing),
// the precondition every set-algebra kernel requires.
func SameShape(a, b Domain) bool {
	return a.Origin == b.Origin && a.Spacing == b.Spacing &&
		a.NX == b.NX && a.NY == b.NY && a.NZ == b.NZ
}
