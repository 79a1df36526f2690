// Package voxelgrid provides the owning buffer abstraction for the dense
// boolean voxel array: a []bool of length Domain.NumBins, zero-initialized,
// with zero/copy/invert/count operations.
package voxelgrid

import (
	"fmt"

	"github.com/sarat-asymmetrica/vossgeom/backend/internal/griddomain"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/vosserr"
)

// Grid is a dense characteristic function over a Domain's voxel indices.
// The halo tail (index >= Domain.NXYZ) is always zero; kernels that probe a
// neighbor one step past the addressable extent read into this tail instead
// of needing a bounds check.
type Grid struct {
	Domain griddomain.Domain
	Bits   []bool
}

// New allocates a zeroed grid over the given domain.
func New(d griddomain.Domain) *Grid {
	return &Grid{Domain: d, Bits: make([]bool, d.NumBins)}
}

// Zero clears every voxel, including the halo tail.
func (g *Grid) Zero() {
	for i := range g.Bits {
		g.Bits[i] = false
	}
}

// Copy overwrites dst's voxels with src's. Both must share domain shape.
func Copy(dst, src *Grid) error {
	if !griddomain.SameShape(dst.Domain, src.Domain) {
		return fmt.Errorf("%w: copy requires identical grid shape", vosserr.ErrInvalidInput)
	}
	copy(dst.Bits, src.Bits)
	return nil
}

// Invert flips every voxel within the addressable extent (not the halo
// tail, which must remain zero per the Grid invariant).
func (g *Grid) Invert() {
	for pt := 0; pt < g.Domain.NXYZ; pt++ {
		g.Bits[pt] = !g.Bits[pt]
	}
}

// Count returns the number of filled voxels within the addressable extent.
func (g *Grid) Count() int {
	n := 0
	for pt := 0; pt < g.Domain.NXYZ; pt++ {
		if g.Bits[pt] {
			n++
		}
	}
	return n
}

// Get reads a voxel by flat index. Indices at or beyond NumBins are treated
// as always-empty (defensive against off-by-one neighbor probes beyond even
// the halo).
func (g *Grid) Get(pt int) bool {
	if pt < 0 || pt >= len(g.Bits) {
		return false
	}
	return g.Bits[pt]
}

// Set writes a voxel by flat index. Writes beyond NumBins are silently
// dropped (same defensive posture as Get).
func (g *Grid) Set(pt int, v bool) {
	if pt < 0 || pt >= len(g.Bits) {
		return
	}
	g.Bits[pt] = v
}
