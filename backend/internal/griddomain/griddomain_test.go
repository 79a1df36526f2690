package griddomain_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"

	"github.com/sarat-asymmetrica/vossgeom/backend/internal/atom"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/griddomain"
)

func threeAtoms() atom.List {
	return atom.NewList([]atom.Atom{
		{Center: mgl64.Vec3{0, 0, 0}, Radius: 1.5},
		{Center: mgl64.Vec3{5, 0, 0}, Radius: 1.5},
		{Center: mgl64.Vec3{0, 5, 0}, Radius: 1.5},
	})
}

func TestNewExtentIsMultipleOfFour(t *testing.T) {
	d, err := griddomain.New(threeAtoms(), 0.5, 1.4)
	require.NoError(t, err)
	require.Zero(t, d.NX%4)
	require.Zero(t, d.NY%4)
	require.Zero(t, d.NZ%4)
	require.Equal(t, d.NX*d.NY, d.NXY)
	require.Equal(t, d.NXY*d.NZ, d.NXYZ)
	require.Equal(t, d.NXYZ+d.NXY+d.NX+1, d.NumBins)
}

func TestNewRejectsNonPositiveSpacing(t *testing.T) {
	_, err := griddomain.New(threeAtoms(), 0, 1.4)
	require.Error(t, err)
}

func TestNewRejectsNegativeProbe(t *testing.T) {
	_, err := griddomain.New(threeAtoms(), 0.5, -1.0)
	require.Error(t, err)
}

func TestIndexRoundTrip(t *testing.T) {
	d, err := griddomain.New(threeAtoms(), 0.5, 1.4)
	require.NoError(t, err)

	i, j, k := 3, 4, 2
	pt := d.Index(i, j, k)
	gi, gj, gk := d.IJK(pt)
	require.Equal(t, i, gi)
	require.Equal(t, j, gj)
	require.Equal(t, k, gk)
}

func TestSameShape(t *testing.T) {
	d1, err := griddomain.New(threeAtoms(), 0.5, 1.4)
	require.NoError(t, err)
	d2, err := griddomain.New(threeAtoms(), 0.5, 1.4)
	require.NoError(t, err)
	require.True(t, griddomain.SameShape(d1, d2))

	d3, err := griddomain.New(threeAtoms(), 0.6, 1.4)
	require.NoError(t, err)
	require.False(t, griddomain.SameShape(d1, d3))
}

func TestRoundUp4(t *testing.T) {
	require.Zero(t, griddomain.RoundUp4(0)%4)
	require.GreaterOrEqual(t, griddomain.RoundUp4(7), 7)
}
