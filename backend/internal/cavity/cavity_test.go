package cavity_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"

	"github.com/sarat-asymmetrica/vossgeom/backend/internal/atom"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/cavity"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/griddomain"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/raster"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/voxelgrid"
)

// sphericalShell builds a solid ball of radius outer, hollowed out by an
// inner ball of radius inner, centered in a domain with enough margin that
// the ball never touches the domain boundary, giving the bounding-box
// complement genuine exterior slack at its corners (a perfect box shape
// would fill its own bounding box exactly and defeat the "first/last
// filled voxel is always exterior" assumption FillCavities relies on).
func sphericalShell(t *testing.T, outer, inner float64) (*voxelgrid.Grid, int) {
	atoms := atom.NewList([]atom.Atom{
		{Center: mgl64.Vec3{0, 0, 0}, Radius: outer},
		{Center: mgl64.Vec3{20, 0, 0}, Radius: 1.5},
		{Center: mgl64.Vec3{0, 20, 0}, Radius: 1.5},
	})
	d, err := griddomain.New(atoms, 1.0, 0)
	require.NoError(t, err)

	g := voxelgrid.New(d)
	raster.FillSphere(g, [3]float64{0, 0, 0}, outer)

	innerCount := voxelgrid.New(d)
	expected := raster.FillSphere(innerCount, [3]float64{0, 0, 0}, inner)

	raster.EraseSphere(g, [3]float64{0, 0, 0}, inner)
	return g, expected
}

func TestFillCavitiesFillsTheEnclosedInterior(t *testing.T) {
	g, expected := sphericalShell(t, 6.0, 2.0)
	before := g.Count()

	filled, err := cavity.FillCavities(g)
	require.NoError(t, err)
	require.Equal(t, expected, filled)
	require.Equal(t, before+expected, g.Count())
}

func TestFillCavitiesIsIdempotent(t *testing.T) {
	g, _ := sphericalShell(t, 6.0, 2.0)
	_, err := cavity.FillCavities(g)
	require.NoError(t, err)
	before := g.Count()

	again, err := cavity.FillCavities(g)
	require.NoError(t, err)
	require.Equal(t, 0, again)
	require.Equal(t, before, g.Count())
}

func TestDetermineMinMaxMatchesShellExtent(t *testing.T) {
	g, _ := sphericalShell(t, 6.0, 2.0)
	mm := cavity.DetermineMinMax(g)
	require.Less(t, mm.IMax-mm.IMin, 14) // a radius-6 ball spans at most 13 voxels
	require.Greater(t, mm.IMax-mm.IMin, 0)
}

func TestFillCavitiesBothMethodsAgreeOnAMatchingShellPair(t *testing.T) {
	acc, _ := sphericalShell(t, 6.0, 2.0)
	exc, _ := sphericalShell(t, 6.0, 2.0)

	result, err := cavity.FillCavitiesBothMethods(acc, exc)
	require.NoError(t, err)
	require.Equal(t, result.AccessibleCavityVoxels, result.ExcludedCavityVoxels)
	require.InDelta(t, 1.0, result.Ratio, 1e-9)
}
