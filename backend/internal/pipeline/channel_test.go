package pipeline_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sarat-asymmetrica/vossgeom/backend/internal/pipeline"
)

// TestChannelMinSizeCascadeMinPercentOverridesExplicitVolume exercises the
// documented MINSIZE quirk directly: with MinPercent left at zero the
// substituted 1% default recomputes the threshold from the big-probe volume
// and overrides even a large explicit MinVolumeAng3, and an explicit positive
// MinPercent wins over MinVolumeAng3 the same way.
func TestChannelMinSizeCascadeMinPercentOverridesExplicitVolume(t *testing.T) {
	atoms := threeAtoms()
	ctx, err := pipeline.NewContext(atoms, 0.5, 6.0, nil)
	require.NoError(t, err)

	bigVol, err := ctx.RunVolume(context.Background(), pipeline.VolumeConfig{Probe: 6.0})
	require.NoError(t, err)
	bigVoxels := bigVol.Voxels

	defaultRes, err := ctx.RunChannel(context.Background(), pipeline.ChannelConfig{
		BigProbe: 6.0, SmallProbe: 1.4, TrimProbe: 0.5,
		MinVolumeAng3: 10000, // a large explicit floor the 1% default should still override
	})
	require.NoError(t, err)
	wantDefault := int(float64(bigVoxels) * 0.01)
	if wantDefault < 20 {
		wantDefault = 20
	}
	require.Equal(t, wantDefault, defaultRes.MinSize)

	bigPercentRes, err := ctx.RunChannel(context.Background(), pipeline.ChannelConfig{
		BigProbe: 6.0, SmallProbe: 1.4, TrimProbe: 0.5,
		MinVolumeAng3: 1,
		MinPercent:    50,
	})
	require.NoError(t, err)
	wantBigPercent := int(float64(bigVoxels) * 0.5)
	if wantBigPercent < 20 {
		wantBigPercent = 20
	}
	require.Equal(t, wantBigPercent, bigPercentRes.MinSize)
	require.Greater(t, bigPercentRes.MinSize, defaultRes.MinSize)
}

func TestChannelRunSucceedsOnASimpleCluster(t *testing.T) {
	atoms := threeAtoms()
	ctx, err := pipeline.NewContext(atoms, 0.5, 6.0, nil)
	require.NoError(t, err)

	res, err := ctx.RunChannel(context.Background(), pipeline.ChannelConfig{BigProbe: 6.0, SmallProbe: 1.4, TrimProbe: 0.5})
	require.NoError(t, err)
	require.GreaterOrEqual(t, res.MinSize, 20)
	for _, comp := range res.Components {
		require.Greater(t, comp.Voxels, 0)
		require.NotNil(t, comp.Grid)
	}
}

func TestChannelNumChannelsAbortsWhenFewerComponentsExist(t *testing.T) {
	atoms := threeAtoms()
	ctx, err := pipeline.NewContext(atoms, 0.5, 6.0, nil)
	require.NoError(t, err)

	_, err = ctx.RunChannel(context.Background(), pipeline.ChannelConfig{
		BigProbe: 6.0, SmallProbe: 1.4, TrimProbe: 0.5,
		NumChannels: 1000,
	})
	require.Error(t, err)
}
