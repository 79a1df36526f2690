package pipeline

import (
	"context"
	"fmt"
	"sort"

	"github.com/sarat-asymmetrica/vossgeom/backend/internal/connectivity"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/morph"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/mrc"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/raster"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/setalgebra"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/voxelgrid"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/vosserr"
)

// ChannelConfig parameterizes channel extraction: a big probe that
// defines the overall excluded shell, a small probe whose accessible volume
// is carved out of the shell to leave solvent-reachable channel space, a
// trim probe that shrinks the shell before the surviving channels are
// dilated back out and intersected with it, and a minimum-size policy that
// decides which connected components survive.
type ChannelConfig struct {
	BigProbe, SmallProbe, TrimProbe float64

	MinVolumeAng3 float64 // voxel-count floor expressed in Å³
	MinPercent    float64 // floor as a fraction (or percent, auto-scaled) of the big-probe volume
	NumChannels   int     // if > 0, keep the NumChannels largest components, plus any tied with the last

	MRCOutPrefix string // if set, each surviving channel writes "<prefix>-N.mrc"
}

// ChannelComponent is one connected component of channel-accessible space,
// dilated back out by SmallProbe and intersected with the trimmed shell.
type ChannelComponent struct {
	Voxels int
	Grid   *voxelgrid.Grid
}

// ChannelResult reports every surviving channel component plus the
// resolved MINSIZE threshold actually applied.
type ChannelResult struct {
	MinSize    int
	Components []ChannelComponent
}

// minSizeFloor is the floor applied to the size/percent-derived threshold.
const minSizeFloor = 20

// numChannelsFloor is the smaller floor applied specifically to the
// num-channels discovery pass: when the threshold derived from the N-th
// largest component falls under it, the run aborts rather than returning
// components that small.
const numChannelsFloor = 10

// resolveMinSize implements the minimum-size cascade: an explicit
// MinVolumeAng3 sets an initial voxel threshold, but a nonzero MinPercent
// (including the 1% default substituted whenever MinPercent is exactly
// zero) always recomputes the threshold from bigVoxels afterward, so
// MinVolumeAng3 only sticks when the caller also supplies a negative
// MinPercent to suppress the default (the one escape hatch this cascade
// leaves open).
func resolveMinSize(cfg ChannelConfig, bigVoxels int, voxelVol float64) int {
	minSize := 0
	if cfg.MinVolumeAng3 > 0 {
		minSize = int(cfg.MinVolumeAng3 / voxelVol)
	}

	minPerc := cfg.MinPercent
	if minPerc == 0 {
		minPerc = 0.01
	}
	if minPerc > 0 {
		for minPerc > 1 {
			minPerc /= 100
		}
		minSize = int(float64(bigVoxels) * minPerc)
	}

	if minSize < minSizeFloor {
		minSize = minSizeFloor
	}
	return minSize
}

// discoverComponentSizes floods src (a scratch copy; the caller's grid is
// untouched) into successive components, returning each one's voxel count
// without building or retaining the component grids, used only to size
// the vollist for the num-channels policy.
func discoverComponentSizes(src *voxelgrid.Grid) ([]int, error) {
	work := voxelgrid.New(src.Domain)
	if err := voxelgrid.Copy(work, src); err != nil {
		return nil, err
	}
	var sizes []int
	for work.Count() > 0 {
		seed := connectivity.FirstFilled(work)
		comp := voxelgrid.New(src.Domain)
		n, err := connectivity.FromPoint(work, comp, seed)
		if err != nil {
			return nil, err
		}
		if _, err := setalgebra.Subtract(work, comp); err != nil {
			return nil, err
		}
		sizes = append(sizes, n+1)
	}
	return sizes, nil
}

// RunChannel executes the channel extraction pipeline: big = the
// excluded shell at BigProbe; trim = that shell eroded by TrimProbe; sm =
// the accessible volume at SmallProbe; solv_acc = trim minus sm is the
// solvent-reachable channel space. Components are flood-filled out one at
// a time, filtered by the resolved MINSIZE, then each survivor is dilated
// by SmallProbe and intersected back with trim to produce its final
// excluded-volume shape.
func (c *Context) RunChannel(ctx context.Context, cfg ChannelConfig) (*ChannelResult, error) {
	bigAcc := voxelgrid.New(c.Domain)
	raster.FillFromList(bigAcc, c.Atoms, cfg.BigProbe, nil)
	bigExc := voxelgrid.New(c.Domain)
	if err := morph.TrunExclude(cfg.BigProbe, bigAcc, bigExc); err != nil {
		return nil, err
	}

	trim := voxelgrid.New(c.Domain)
	if err := morph.TrunExclude(cfg.TrimProbe, bigExc, trim); err != nil {
		return nil, err
	}
	if err := checkCancel(ctx); err != nil {
		return nil, err
	}

	sm := voxelgrid.New(c.Domain)
	raster.FillFromList(sm, c.Atoms, cfg.SmallProbe, nil)

	solvAcc := voxelgrid.New(c.Domain)
	if err := voxelgrid.Copy(solvAcc, trim); err != nil {
		return nil, err
	}
	if _, err := setalgebra.Subtract(solvAcc, sm); err != nil {
		return nil, err
	}
	if err := checkCancel(ctx); err != nil {
		return nil, err
	}

	minSize := resolveMinSize(cfg, bigExc.Count(), c.Domain.VoxelVolume())

	if cfg.NumChannels > 0 {
		sizes, err := discoverComponentSizes(solvAcc)
		if err != nil {
			return nil, err
		}
		sort.Sort(sort.Reverse(sort.IntSlice(sizes)))
		if len(sizes) < cfg.NumChannels {
			return nil, fmt.Errorf("%w: found only %d channel components, need %d", vosserr.ErrInvalidInput, len(sizes), cfg.NumChannels)
		}
		minSize = sizes[cfg.NumChannels-1] - 1
		if minSize < numChannelsFloor {
			return nil, fmt.Errorf("%w: no channels found above the num-channels floor", vosserr.ErrInvalidInput)
		}
	}

	components, err := c.extractFinalComponents(ctx, solvAcc, trim, minSize, cfg)
	if err != nil {
		return nil, err
	}

	c.Log.Printf("channel: min_size=%d components=%d", minSize, len(components))
	return &ChannelResult{MinSize: minSize, Components: components}, nil
}

func (c *Context) extractFinalComponents(ctx context.Context, solvAcc, trim *voxelgrid.Grid, minSize int, cfg ChannelConfig) ([]ChannelComponent, error) {
	work := voxelgrid.New(c.Domain)
	if err := voxelgrid.Copy(work, solvAcc); err != nil {
		return nil, err
	}

	var components []ChannelComponent
	idx := 0
	for work.Count() > 0 {
		if err := checkCancel(ctx); err != nil {
			return nil, err
		}
		seed := connectivity.FirstFilled(work)
		compAcc := voxelgrid.New(c.Domain)
		n, err := connectivity.FromPoint(work, compAcc, seed)
		if err != nil {
			return nil, err
		}
		if _, err := setalgebra.Subtract(work, compAcc); err != nil {
			return nil, err
		}
		if n+1 <= minSize {
			continue
		}

		compExc := voxelgrid.New(c.Domain)
		if err := morph.GrowExclude(cfg.SmallProbe, compAcc, compExc); err != nil {
			return nil, err
		}
		if _, err := setalgebra.Intersect(compExc, trim); err != nil {
			return nil, err
		}
		if compExc.Count() == 0 {
			continue
		}

		idx++
		if cfg.MRCOutPrefix != "" {
			path := fmt.Sprintf("%s-%d.mrc", cfg.MRCOutPrefix, idx)
			if err := mrc.WriteFile(path, compExc); err != nil {
				return nil, err
			}
		}
		components = append(components, ChannelComponent{Voxels: compExc.Count(), Grid: compExc})
	}
	return components, nil
}
