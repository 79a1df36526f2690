package connectivity_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"

	"github.com/sarat-asymmetrica/vossgeom/backend/internal/atom"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/connectivity"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/griddomain"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/raster"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/voxelgrid"
)

func filledSphereGrid(t *testing.T, r float64) (*voxelgrid.Grid, griddomain.Domain) {
	atoms := atom.NewList([]atom.Atom{{Center: mgl64.Vec3{0, 0, 0}, Radius: r}})
	d, err := griddomain.New(atoms, 0.5, 0)
	require.NoError(t, err)
	g := voxelgrid.New(d)
	raster.FillSphere(g, [3]float64{0, 0, 0}, r)
	return g, d
}

func TestFromPointFloodsWholeSphere(t *testing.T) {
	src, d := filledSphereGrid(t, 3.0)
	dst := voxelgrid.New(d)

	seed := d.PointIndex(mgl64.Vec3{0, 0, 0})
	connected, err := connectivity.FromPoint(src, dst, seed)
	require.NoError(t, err)
	require.Equal(t, src.Count(), connected+1)
	require.Equal(t, src.Count(), dst.Count())
}

func TestFromPointIsMonotoneAndReseedIsNoop(t *testing.T) {
	src, d := filledSphereGrid(t, 3.0)
	dst := voxelgrid.New(d)

	seed := d.PointIndex(mgl64.Vec3{0, 0, 0})
	connected, err := connectivity.FromPoint(src, dst, seed)
	require.NoError(t, err)
	require.LessOrEqual(t, connected, src.Count())

	again, err := connectivity.FromPoint(src, dst, seed)
	require.NoError(t, err)
	require.Equal(t, 0, again)
}

func TestFromPointOnEmptyVoxelReturnsZero(t *testing.T) {
	src, d := filledSphereGrid(t, 3.0)
	dst := voxelgrid.New(d)

	farEmpty := d.Index(0, 0, 0) // corner of the domain, outside the sphere
	connected, err := connectivity.FromPoint(src, dst, farEmpty)
	require.NoError(t, err)
	require.Equal(t, 0, connected)
	require.Equal(t, 0, dst.Count())
}

func TestFromWorldPointFallsBackToNearestFilled(t *testing.T) {
	src, d := filledSphereGrid(t, 3.0)
	dst := voxelgrid.New(d)

	// One Angstrom outside the ball's surface: the seed's own voxel is empty,
	// but filled voxels lie within the 3A fallback search.
	nearSeed := mgl64.Vec3{4.0, 0, 0}
	require.False(t, src.Get(d.PointIndex(nearSeed)))
	connected, err := connectivity.FromWorldPoint(src, dst, nearSeed)
	require.NoError(t, err)
	require.Greater(t, connected, 0)
}

func TestFirstFilledReturnsAFilledVoxel(t *testing.T) {
	src, _ := filledSphereGrid(t, 3.0)
	pt := connectivity.FirstFilled(src)
	require.True(t, src.Get(pt))
}
