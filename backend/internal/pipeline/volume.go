package pipeline

import (
	"context"
	"fmt"

	"github.com/sarat-asymmetrica/vossgeom/backend/internal/mrc"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/morph"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/raster"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/surface"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/voxelgrid"
)

// VolumeConfig is the minimal pipeline configuration: one atom list, one
// probe, one output set. The simplest pipeline in this package and the one
// new pipeline authors should read first.
type VolumeConfig struct {
	Probe  float64 // 0 ⇒ plain VDW accessible volume, >0 ⇒ excluded volume
	MRCOut string  // optional; empty skips the write
}

// VolumeResult reports the scalar outputs of a single-probe run.
type VolumeResult struct {
	Voxels      int
	VoxelVolume float64
	SurfaceArea float64
	NumAtoms    int
	Grid        *voxelgrid.Grid
}

// RunVolume executes the single-probe volume/surface pipeline. Probe==0
// rasterizes the plain van-der-Waals accessible volume; Probe>0 builds the
// accessible volume at atom radius + probe and erodes it back by probe to
// produce the excluded (solvent-excluded) volume.
func (c *Context) RunVolume(ctx context.Context, cfg VolumeConfig) (*VolumeResult, error) {
	acc := voxelgrid.New(c.Domain)
	raster.FillFromList(acc, c.Atoms, cfg.Probe, nil)
	if err := checkCancel(ctx); err != nil {
		return nil, err
	}

	result := acc
	if cfg.Probe > 0 {
		exc := voxelgrid.New(c.Domain)
		if err := morph.TrunExclude(cfg.Probe, acc, exc); err != nil {
			return nil, err
		}
		result = exc
	}
	if err := checkCancel(ctx); err != nil {
		return nil, err
	}

	hist := surface.ClassifyGrid(result)
	res := &VolumeResult{
		Voxels:      result.Count(),
		VoxelVolume: c.Domain.VoxelVolume(),
		SurfaceArea: hist.Area(c.Domain.Spacing),
		NumAtoms:    len(c.Atoms),
		Grid:        result,
	}

	if cfg.MRCOut != "" {
		if err := mrc.WriteFile(cfg.MRCOut, result); err != nil {
			return nil, fmt.Errorf("volume pipeline: %w", err)
		}
	}
	c.Log.Printf("volume: probe=%.2f voxels=%d surface_area=%.2f", cfg.Probe, res.Voxels, res.SurfaceArea)
	return res, nil
}
