package pipeline_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sarat-asymmetrica/vossgeom/backend/internal/pipeline"
)

func TestRunFSVSweepsProbeRangeAgainstAConstantShell(t *testing.T) {
	atoms := threeAtoms()
	ctx, err := pipeline.NewContext(atoms, 0.5, 6.0, nil)
	require.NoError(t, err)

	samples, err := ctx.RunFSV(context.Background(), pipeline.FSVConfig{
		BigProbe: 6.0, ProbeStep: 2.0, TrimProbe: 0.5,
	})
	require.NoError(t, err)
	require.Len(t, samples, 3) // probes 0, 2, 4

	for i, s := range samples {
		require.Equal(t, samples[0].ShellVoxels, s.ShellVoxels, "shell volume is computed once, sample %d", i)
		require.GreaterOrEqual(t, s.FSV, 0.0)
		require.LessOrEqual(t, s.SolventVoxels, s.ShellVoxels)
	}

	// A bigger probe fits less solvent: the probe-0 sample bounds the rest.
	last := samples[len(samples)-1]
	require.LessOrEqual(t, last.SolventVoxels, samples[0].SolventVoxels)
}

func TestRunFSVRespectsCanceledContext(t *testing.T) {
	atoms := threeAtoms()
	ctx, err := pipeline.NewContext(atoms, 0.5, 6.0, nil)
	require.NoError(t, err)

	cctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ctx.RunFSV(cctx, pipeline.FSVConfig{BigProbe: 6.0, ProbeStep: 2.0})
	require.ErrorIs(t, err, context.Canceled)
}
