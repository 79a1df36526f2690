package raster_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"

	"github.com/sarat-asymmetrica/vossgeom/backend/internal/atom"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/griddomain"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/raster"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/voxelgrid"
)

// TestSingleAtomVDWVoxelCount: a single atom of radius 2 voxelized at 1 Å
// spacing with no probe fills exactly the 33 integer points of the closed
// radius-2 ball.
func TestSingleAtomVDWVoxelCount(t *testing.T) {
	atoms := atom.NewList([]atom.Atom{{Center: mgl64.Vec3{0, 0, 0}, Radius: 2.0}})
	d, err := griddomain.New(atoms, 1.0, 0)
	require.NoError(t, err)

	g := voxelgrid.New(d)
	filled := raster.FillSphere(g, [3]float64{0, 0, 0}, 2.0)
	require.Equal(t, 33, filled)
	require.Equal(t, 33, g.Count())
}

// TestTwoOverlappingAtomsVoxelCount: two r=2 balls 3 Å apart combine to 64
// voxels (33+33 minus the 2-voxel intersection), not simple addition.
func TestTwoOverlappingAtomsVoxelCount(t *testing.T) {
	atoms := atom.NewList([]atom.Atom{
		{Center: mgl64.Vec3{0, 0, 0}, Radius: 2.0},
		{Center: mgl64.Vec3{3, 0, 0}, Radius: 2.0},
	})
	d, err := griddomain.New(atoms, 1.0, 0)
	require.NoError(t, err)

	g := voxelgrid.New(d)
	raster.FillFromList(g, atoms, 0, nil)
	require.Equal(t, 64, g.Count())
}

func TestFillSphereIsIdempotent(t *testing.T) {
	atoms := atom.NewList([]atom.Atom{{Center: mgl64.Vec3{0, 0, 0}, Radius: 2.0}})
	d, err := griddomain.New(atoms, 1.0, 0)
	require.NoError(t, err)

	g := voxelgrid.New(d)
	first := raster.FillSphere(g, [3]float64{0, 0, 0}, 2.0)
	second := raster.FillSphere(g, [3]float64{0, 0, 0}, 2.0)
	require.Equal(t, 33, first)
	require.Equal(t, 0, second)
}

func TestEraseSphereUndoesFillSphere(t *testing.T) {
	atoms := atom.NewList([]atom.Atom{{Center: mgl64.Vec3{0, 0, 0}, Radius: 2.0}})
	d, err := griddomain.New(atoms, 1.0, 0)
	require.NoError(t, err)

	g := voxelgrid.New(d)
	raster.FillSphere(g, [3]float64{0, 0, 0}, 2.0)
	erased := raster.EraseSphere(g, [3]float64{0, 0, 0}, 2.0)
	require.Equal(t, 33, erased)
	require.Equal(t, 0, g.Count())
}

func TestFillFromListReportsProgress(t *testing.T) {
	atoms := atom.NewList([]atom.Atom{
		{Center: mgl64.Vec3{0, 0, 0}, Radius: 1.5},
		{Center: mgl64.Vec3{5, 0, 0}, Radius: 1.5},
		{Center: mgl64.Vec3{0, 5, 0}, Radius: 1.5},
	})
	d, err := griddomain.New(atoms, 0.5, 1.4)
	require.NoError(t, err)

	g := voxelgrid.New(d)
	var lastDone, lastTotal int
	raster.FillFromList(g, atoms, 0, func(done, total int) {
		lastDone, lastTotal = done, total
	})
	require.Equal(t, len(atoms), lastDone)
	require.Equal(t, len(atoms), lastTotal)
	require.Greater(t, g.Count(), 0)
}
