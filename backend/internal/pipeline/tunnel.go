package pipeline

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/sarat-asymmetrica/vossgeom/backend/internal/cavity"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/connectivity"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/morph"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/mrc"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/raster"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/setalgebra"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/surface"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/voxelgrid"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/vosserr"
)

// Plausibility caps: a tunnel run whose intermediate volumes exceed
// these bounds picked up extra solvent space rather than the tunnel itself,
// and aborts rather than reporting a bogus result.
const (
	maxAccessibleTunnelVolume = 2_000_000.0 // Å³
	maxExcludedTunnelVolume   = 1_800_000.0 // Å³
)

// DefaultTunnelAnchors are the twelve world-space seed points used to
// flood-fill the large ribosomal subunit's exit tunnel this pipeline was
// calibrated against. Callers targeting a different structure should supply
// their own anchors via TunnelConfig.Anchors instead.
func DefaultTunnelAnchors() []mgl64.Vec3 {
	return []mgl64.Vec3{
		{74.8, 130.0, 83.6}, // highest tunnel point
		{68.3, 132.2, 85.6}, // largest area
		{53.6, 144.8, 69.6}, // below main
		{49.9, 151.8, 67.3}, // 2nd largest and low
		{38.4, 160.4, 63.6}, // low blob point
		{35.6, 163.6, 61.6}, // lowest point
		{53.6, 141.3, 66.4},
		{71.5, 120.4, 97.3},
		{71.5, 125.0, 98.1},
		{70.3, 131.2, 81.9},
		{55.7, 140.2, 73.8},
		{44.6, 153.2, 68.7},
	}
}

// TunnelConfig parameterizes ribosome exit tunnel extraction.
type TunnelConfig struct {
	ShellProbe  float64 // big probe defining the overall shell
	TunnelProbe float64 // small probe used to define and grow the tunnel
	TrimProbe   float64 // applied to the shell before intersecting the grown tunnel back in

	Anchors []mgl64.Vec3 // nil ⇒ DefaultTunnelAnchors()

	MRCOut string
}

// TunnelResult reports the extracted tunnel's excluded-volume metrics plus
// the surrounding channel volume it was carved from.
type TunnelResult struct {
	TunnelVoxels      int
	TunnelSurfaceArea float64
	AccessibleVoxels  int
	ChannelVoxels     int
	Grid              *voxelgrid.Grid
}

// RunTunnel executes the ribosome exit tunnel pipeline. It builds a
// cavity-filled shell at ShellProbe, trims it by TrimProbe, subtracts the
// accessible volume at TunnelProbe to get channel-accessible space, flood
// fills the anchor seeds into that space to isolate the tunnel, then dilates
// the result back out by TunnelProbe and intersects with the trimmed shell.
// Either plausibility cap tripping aborts with ErrPlausibilityExceeded.
func (c *Context) RunTunnel(ctx context.Context, cfg TunnelConfig) (*TunnelResult, error) {
	anchors := cfg.Anchors
	if anchors == nil {
		anchors = DefaultTunnelAnchors()
	}

	shellAcc := voxelgrid.New(c.Domain)
	raster.FillFromList(shellAcc, c.Atoms, cfg.ShellProbe, nil)
	if _, err := cavity.FillCavities(shellAcc); err != nil {
		return nil, err
	}

	shellExc := voxelgrid.New(c.Domain)
	if err := morph.TrunExclude(cfg.ShellProbe, shellAcc, shellExc); err != nil {
		return nil, err
	}

	if cfg.TrimProbe > 0 {
		trimmed := voxelgrid.New(c.Domain)
		if err := morph.TrunExclude(cfg.TrimProbe, shellExc, trimmed); err != nil {
			return nil, err
		}
		shellExc = trimmed
	}
	if err := checkCancel(ctx); err != nil {
		return nil, err
	}

	access := voxelgrid.New(c.Domain)
	raster.FillFromList(access, c.Atoms, cfg.TunnelProbe, nil)

	chanAcc := voxelgrid.New(c.Domain)
	if err := voxelgrid.Copy(chanAcc, shellExc); err != nil {
		return nil, err
	}
	if _, err := setalgebra.Subtract(chanAcc, access); err != nil {
		return nil, err
	}
	if _, err := setalgebra.Intersect(chanAcc, shellExc); err != nil {
		return nil, err
	}
	channelVoxels := chanAcc.Count()
	if err := checkCancel(ctx); err != nil {
		return nil, err
	}

	tunnAcc := voxelgrid.New(c.Domain)
	for _, seed := range anchors {
		if _, err := connectivity.FromWorldPoint(chanAcc, tunnAcc, seed); err != nil {
			return nil, err
		}
	}
	tunnAccVoxels := tunnAcc.Count()

	if float64(tunnAccVoxels)*c.Domain.VoxelVolume() > maxAccessibleTunnelVolume {
		return nil, fmt.Errorf("%w: accessible tunnel volume %d voxels exceeds plausibility bound", vosserr.ErrPlausibilityExceeded, tunnAccVoxels)
	}

	tunnExc := voxelgrid.New(c.Domain)
	if err := morph.GrowExclude(cfg.TunnelProbe, tunnAcc, tunnExc); err != nil {
		return nil, err
	}
	if _, err := setalgebra.Intersect(tunnExc, shellExc); err != nil {
		return nil, err
	}
	tunnExcVoxels := tunnExc.Count()

	if float64(tunnExcVoxels)*c.Domain.VoxelVolume() > maxExcludedTunnelVolume {
		return nil, fmt.Errorf("%w: excluded tunnel volume %d voxels exceeds plausibility bound", vosserr.ErrPlausibilityExceeded, tunnExcVoxels)
	}

	hist := surface.ClassifyGrid(tunnExc)
	area := hist.Area(c.Domain.Spacing)

	if cfg.MRCOut != "" {
		if err := mrc.WriteFile(cfg.MRCOut, tunnExc); err != nil {
			return nil, fmt.Errorf("tunnel pipeline: %w", err)
		}
	}

	c.Log.Printf("tunnel: voxels=%d surface_area=%.2f channel_voxels=%d", tunnExcVoxels, area, channelVoxels)
	return &TunnelResult{
		TunnelVoxels:      tunnExcVoxels,
		TunnelSurfaceArea: area,
		AccessibleVoxels:  tunnAccVoxels,
		ChannelVoxels:     channelVoxels,
		Grid:              tunnExc,
	}, nil
}
