package pipeline

import (
	"context"

	"github.com/sarat-asymmetrica/vossgeom/backend/internal/morph"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/raster"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/setalgebra"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/voxelgrid"
)

// FSVConfig parameterizes the fractional-solvent-volume sweep: one shell
// built at BigProbe (trimmed inward by TrimProbe), then the solvent volume
// remaining inside that shell is measured at every probe radius from 0 up to
// (but not including) BigProbe in ProbeStep increments.
type FSVConfig struct {
	BigProbe  float64
	ProbeStep float64
	TrimProbe float64
}

// FSVSample is one row of the sweep: the probe radius, the (untrimmed)
// shell voxel count it is measured against, the solvent voxel count that
// survives inside the trimmed shell at that probe, and their ratio.
type FSVSample struct {
	Probe         float64
	ShellVoxels   int
	SolventVoxels int
	FSV           float64
}

// RunFSV executes the fractional-solvent-volume sweep. The shell is the
// excluded volume at BigProbe; the trimmed shell erodes it inward by
// TrimProbe when TrimProbe > 0. At each probe step the accessible volume at
// that probe is subtracted from the trimmed shell, the remainder is grown
// back out by the probe and intersected with the trimmed shell, and the
// surviving voxel count is reported as a fraction of the untrimmed shell
// volume.
func (c *Context) RunFSV(ctx context.Context, cfg FSVConfig) ([]FSVSample, error) {
	shellAcc := voxelgrid.New(c.Domain)
	raster.FillFromList(shellAcc, c.Atoms, cfg.BigProbe, nil)
	shell := voxelgrid.New(c.Domain)
	if err := morph.TrunExclude(cfg.BigProbe, shellAcc, shell); err != nil {
		return nil, err
	}
	shellVoxels := shell.Count()

	smShell := voxelgrid.New(c.Domain)
	if cfg.TrimProbe > 0 {
		if err := morph.TrunExclude(cfg.TrimProbe, shell, smShell); err != nil {
			return nil, err
		}
	} else {
		if err := voxelgrid.Copy(smShell, shell); err != nil {
			return nil, err
		}
	}

	var samples []FSVSample
	for probe := 0.0; probe < cfg.BigProbe; probe += cfg.ProbeStep {
		if err := checkCancel(ctx); err != nil {
			return nil, err
		}

		solventAcc := voxelgrid.New(c.Domain)
		if err := voxelgrid.Copy(solventAcc, smShell); err != nil {
			return nil, err
		}
		probeAcc := voxelgrid.New(c.Domain)
		raster.FillFromList(probeAcc, c.Atoms, probe, nil)
		if _, err := setalgebra.Subtract(solventAcc, probeAcc); err != nil {
			return nil, err
		}

		solventExc := voxelgrid.New(c.Domain)
		if err := morph.GrowExclude(probe, solventAcc, solventExc); err != nil {
			return nil, err
		}
		if _, err := setalgebra.Intersect(solventExc, smShell); err != nil {
			return nil, err
		}

		solventVoxels := solventExc.Count()
		fsv := 0.0
		if shellVoxels != 0 {
			fsv = float64(solventVoxels) / float64(shellVoxels)
		}
		samples = append(samples, FSVSample{
			Probe:         probe,
			ShellVoxels:   shellVoxels,
			SolventVoxels: solventVoxels,
			FSV:           fsv,
		})
		c.Log.Printf("fsv: probe=%.2f solvent_voxels=%d fsv=%.4f", probe, solventVoxels, fsv)
	}
	return samples, nil
}
