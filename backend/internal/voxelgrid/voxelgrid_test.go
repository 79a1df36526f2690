package voxelgrid_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"

	"github.com/sarat-asymmetrica/vossgeom/backend/internal/atom"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/griddomain"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/voxelgrid"
)

func testDomain(t *testing.T) griddomain.Domain {
	atoms := atom.NewList([]atom.Atom{
		{Center: mgl64.Vec3{0, 0, 0}, Radius: 1.5},
		{Center: mgl64.Vec3{4, 0, 0}, Radius: 1.5},
		{Center: mgl64.Vec3{0, 4, 0}, Radius: 1.5},
	})
	d, err := griddomain.New(atoms, 0.5, 1.4)
	require.NoError(t, err)
	return d
}

func TestNewIsZeroed(t *testing.T) {
	g := voxelgrid.New(testDomain(t))
	require.Equal(t, 0, g.Count())
}

func TestSetGetAndCount(t *testing.T) {
	g := voxelgrid.New(testDomain(t))
	g.Set(10, true)
	g.Set(20, true)
	require.True(t, g.Get(10))
	require.False(t, g.Get(11))
	require.Equal(t, 2, g.Count())
}

func TestOutOfRangeIsSafe(t *testing.T) {
	g := voxelgrid.New(testDomain(t))
	require.False(t, g.Get(-1))
	require.False(t, g.Get(len(g.Bits)+100))
	g.Set(-1, true)
	g.Set(len(g.Bits)+100, true)
	require.Equal(t, 0, g.Count())
}

func TestCopyRequiresSameShape(t *testing.T) {
	src := voxelgrid.New(testDomain(t))
	src.Set(5, true)
	dst := voxelgrid.New(testDomain(t))
	require.NoError(t, voxelgrid.Copy(dst, src))
	require.Equal(t, src.Count(), dst.Count())
	require.True(t, dst.Get(5))
}

func TestInvertIsComplement(t *testing.T) {
	g := voxelgrid.New(testDomain(t))
	g.Set(0, true)
	g.Set(1, true)
	before := g.Count()
	g.Invert()
	require.Equal(t, g.Domain.NXYZ-before, g.Count())
	g.Invert()
	require.Equal(t, before, g.Count())
}

func TestZeroClearsHaloToo(t *testing.T) {
	g := voxelgrid.New(testDomain(t))
	g.Bits[len(g.Bits)-1] = true
	g.Zero()
	for _, v := range g.Bits {
		require.False(t, v)
	}
}
