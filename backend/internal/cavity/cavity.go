// Package cavity implements enclosed-cavity detection: the bounding-box
// complement of a grid, minus whatever in that complement connects to the
// exterior, leaves only fully enclosed cavities.
package cavity

import (
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/connectivity"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/setalgebra"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/voxelgrid"
)

// MinMax is the extrema of a grid's filled voxels: IMin/IMax are i indices,
// while JMin/JMax hold flat row offsets (j*NX) and KMin/KMax flat plane
// offsets (k*NXY).
type MinMax struct {
	IMin, JMin, KMin int
	IMax, JMax, KMax int
}

// DetermineMinMax scans grid for the bounding extrema of its filled voxels,
// in the mixed i / flat-offset form MinMax describes.
func DetermineMinMax(g *voxelgrid.Grid) MinMax {
	d := g.Domain
	mm := MinMax{IMin: d.NX, JMin: d.NXY, KMin: d.NXYZ}
	for k := 0; k < d.NXYZ; k += d.NXY {
		for j := 0; j < d.NXY; j += d.NX {
			for i := 0; i < d.NX; i++ {
				if !g.Get(i + j + k) {
					continue
				}
				if i < mm.IMin {
					mm.IMin = i
				}
				if j < mm.JMin {
					mm.JMin = j
				}
				if k < mm.KMin {
					mm.KMin = k
				}
				if i > mm.IMax {
					mm.IMax = i
				}
				if j > mm.JMax {
					mm.JMax = j
				}
				if k > mm.KMax {
					mm.KMax = k
				}
			}
		}
	}
	return mm
}

// BoundingBox allocates a new grid of grid's shape, fills it with the
// axis-aligned box enclosing grid's filled voxels, and returns it together
// with the box's volume in voxels.
func BoundingBox(g *voxelgrid.Grid) (*voxelgrid.Grid, int) {
	bbox := voxelgrid.New(g.Domain)
	mm := DetermineMinMax(g)
	d := g.Domain

	vol := 0
	for k := mm.KMin; k <= mm.KMax; k += d.NXY {
		for j := mm.JMin; j <= mm.JMax; j += d.NX {
			for i := mm.IMin; i <= mm.IMax; i++ {
				bbox.Set(i+j+k, true)
				vol++
			}
		}
	}
	return bbox, vol
}

// FillCavities computes the enclosed cavities of grid and merges them back
// in, returning the cavity voxel count. Idempotent: a second call finds no
// further cavities because grid already includes them.
func FillCavities(g *voxelgrid.Grid) (int, error) {
	bbox, _ := BoundingBox(g)

	cav := bbox
	if _, err := setalgebra.Subtract(cav, g); err != nil {
		return 0, err
	}

	chanGrid := voxelgrid.New(g.Domain)
	firstPt := connectivity.FirstFilled(cav)
	if _, err := connectivity.FromPoint(cav, chanGrid, firstPt); err != nil {
		return 0, err
	}
	lastPt := lastFilled(cav)
	if _, err := connectivity.FromPoint(cav, chanGrid, lastPt); err != nil {
		return 0, err
	}

	if _, err := setalgebra.Subtract(cav, chanGrid); err != nil {
		return 0, err
	}
	cavVoxels := cav.Count()

	if _, err := setalgebra.Merge(g, cav); err != nil {
		return 0, err
	}
	return cavVoxels, nil
}

func lastFilled(g *voxelgrid.Grid) int {
	for pt := g.Domain.NXYZ - 1; pt > 0; pt-- {
		if g.Get(pt) {
			return pt
		}
	}
	return 0
}

// DualMethodResult reports the cross-checked cavity counts computed both via
// the accessible-grid method and the excluded-grid method, plus their ratio,
// a diagnostic, since the two can diverge when a trim probe nearly closes
// a channel mouth.
type DualMethodResult struct {
	AccessibleCavityVoxels int
	ExcludedCavityVoxels   int
	Ratio                  float64
}

// FillCavitiesBothMethods runs FillCavities independently against an
// accessible-built grid and an excluded-built grid sharing the same domain,
// and reports both cavity counts plus their ratio.
func FillCavitiesBothMethods(accGrid, excGrid *voxelgrid.Grid) (DualMethodResult, error) {
	accVox, err := FillCavities(accGrid)
	if err != nil {
		return DualMethodResult{}, err
	}
	excVox, err := FillCavities(excGrid)
	if err != nil {
		return DualMethodResult{}, err
	}
	ratio := 0.0
	if excVox != 0 {
		ratio = float64(accVox) / float64(excVox)
	}
	return DualMethodResult{
		AccessibleCavityVoxels: accVox,
		ExcludedCavityVoxels:   excVox,
		Ratio:                  ratio,
	}, nil
}
