package pipeline

import (
	"context"
	"fmt"

	"github.com/sarat-asymmetrica/vossgeom/backend/internal/cavity"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/mrc"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/morph"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/raster"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/voxelgrid"
)

// CavityConfig parameterizes the dual-method cavity cross-check: a shell
// probe, a trim probe applied to the excluded side, and optional MRC
// outputs for each method's filled grid.
type CavityConfig struct {
	ShellProbe float64
	TrimProbe  float64
	MRCOutAcc  string
	MRCOutExc  string
}

// CavityResult wraps cavity.DualMethodResult with the filled grids it was
// computed from, for callers that want to write them out or inspect them
// further.
type CavityResult struct {
	cavity.DualMethodResult
	AccGrid *voxelgrid.Grid
	ExcGrid *voxelgrid.Grid
}

// RunCavity rasterizes this Context's atoms into an accessible grid at
// ShellProbe and an excluded grid eroded by TrimProbe, then runs
// FillCavitiesBothMethods against the pair so the two independent cavity
// counts can be cross-checked.
func (c *Context) RunCavity(ctx context.Context, cfg CavityConfig) (*CavityResult, error) {
	acc := voxelgrid.New(c.Domain)
	raster.FillFromList(acc, c.Atoms, cfg.ShellProbe, nil)

	exc := voxelgrid.New(c.Domain)
	if err := morph.TrunExclude(cfg.TrimProbe, acc, exc); err != nil {
		return nil, err
	}
	if err := checkCancel(ctx); err != nil {
		return nil, err
	}

	dual, err := cavity.FillCavitiesBothMethods(acc, exc)
	if err != nil {
		return nil, err
	}

	if cfg.MRCOutAcc != "" {
		if err := mrc.WriteFile(cfg.MRCOutAcc, acc); err != nil {
			return nil, fmt.Errorf("cavity pipeline: %w", err)
		}
	}
	if cfg.MRCOutExc != "" {
		if err := mrc.WriteFile(cfg.MRCOutExc, exc); err != nil {
			return nil, fmt.Errorf("cavity pipeline: %w", err)
		}
	}

	c.Log.Printf("cavity: accessible=%d excluded=%d ratio=%.4f", dual.AccessibleCavityVoxels, dual.ExcludedCavityVoxels, dual.Ratio)
	return &CavityResult{DualMethodResult: dual, AccGrid: acc, ExcGrid: exc}, nil
}
