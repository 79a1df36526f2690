package pipeline_test

import (
	"context"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"

	"github.com/sarat-asymmetrica/vossgeom/backend/internal/pipeline"
)

func TestDefaultTunnelAnchorsHasTwelveSeeds(t *testing.T) {
	anchors := pipeline.DefaultTunnelAnchors()
	require.Len(t, anchors, 12)
	require.Equal(t, mgl64.Vec3{74.8, 130.0, 83.6}, anchors[0])
}

func TestRunTunnelWithAnchorsInsideTheClusterSucceeds(t *testing.T) {
	atoms := threeAtoms()
	ctx, err := pipeline.NewContext(atoms, 0.5, 6.0, nil)
	require.NoError(t, err)

	anchors := []mgl64.Vec3{{0, 0, 0}, {5, 0, 0}, {0, 5, 0}}
	res, err := ctx.RunTunnel(context.Background(), pipeline.TunnelConfig{
		ShellProbe:  6.0,
		TunnelProbe: 1.4,
		TrimProbe:   0,
		Anchors:     anchors,
	})
	require.NoError(t, err)
	require.GreaterOrEqual(t, res.TunnelVoxels, 0)
	require.GreaterOrEqual(t, res.ChannelVoxels, 0)
	require.GreaterOrEqual(t, res.AccessibleVoxels, 0)
	require.NotNil(t, res.Grid)
}
