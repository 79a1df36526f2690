package atom_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"

	"github.com/sarat-asymmetrica/vossgeom/backend/internal/atom"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/vosserr"
)

func TestNewListDropsOutOfRangeRadii(t *testing.T) {
	raw := []atom.Atom{
		{Center: mgl64.Vec3{0, 0, 0}, Radius: 1.5},
		{Center: mgl64.Vec3{1, 0, 0}, Radius: 0},     // at MinRadius, not strictly greater
		{Center: mgl64.Vec3{2, 0, 0}, Radius: -1},    // negative
		{Center: mgl64.Vec3{3, 0, 0}, Radius: 100},   // at MaxRadius, not strictly less
		{Center: mgl64.Vec3{4, 0, 0}, Radius: 101},   // over MaxRadius
		{Center: mgl64.Vec3{5, 0, 0}, Radius: 2.2},
	}
	list := atom.NewList(raw)
	require.Len(t, list, 2)
	require.Equal(t, 1.5, list[0].Radius)
	require.Equal(t, 2.2, list[1].Radius)
}

func TestValidateRequiresMinimumAtomCount(t *testing.T) {
	short := atom.NewList([]atom.Atom{
		{Center: mgl64.Vec3{0, 0, 0}, Radius: 1.5},
		{Center: mgl64.Vec3{1, 0, 0}, Radius: 1.5},
	})
	err := short.Validate()
	require.Error(t, err)
	require.True(t, errors.Is(err, vosserr.ErrInvalidInput))

	enough := atom.NewList([]atom.Atom{
		{Center: mgl64.Vec3{0, 0, 0}, Radius: 1.5},
		{Center: mgl64.Vec3{1, 0, 0}, Radius: 1.5},
		{Center: mgl64.Vec3{2, 0, 0}, Radius: 1.5},
	})
	require.NoError(t, enough.Validate())
}

func TestMaxRadiusInReturnsLargest(t *testing.T) {
	list := atom.NewList([]atom.Atom{
		{Center: mgl64.Vec3{0, 0, 0}, Radius: 1.2},
		{Center: mgl64.Vec3{1, 0, 0}, Radius: 3.7},
		{Center: mgl64.Vec3{2, 0, 0}, Radius: 2.0},
	})
	require.Equal(t, 3.7, list.MaxRadiusIn())
}

func TestParseXYZRSkipsBlankAndCommentLines(t *testing.T) {
	src := strings.NewReader("# header\n\n0 0 0 1.5\n1 2 3 2.0\n  \n# trailing comment\n")
	list, err := atom.ParseXYZR(src)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, mgl64.Vec3{0, 0, 0}, list[0].Center)
	require.Equal(t, 1.5, list[0].Radius)
	require.Equal(t, mgl64.Vec3{1, 2, 3}, list[1].Center)
}

func TestParseXYZRRejectsShortLines(t *testing.T) {
	src := strings.NewReader("0 0 0\n")
	_, err := atom.ParseXYZR(src)
	require.Error(t, err)
	require.True(t, errors.Is(err, vosserr.ErrInvalidInput))
}

func TestParseXYZRRejectsNonNumericField(t *testing.T) {
	src := strings.NewReader("0 0 0 abc\n")
	_, err := atom.ParseXYZR(src)
	require.Error(t, err)
	require.True(t, errors.Is(err, vosserr.ErrInvalidInput))
}
