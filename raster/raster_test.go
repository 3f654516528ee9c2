package raster

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/vpath"
)

func flatten(t *testing.T, p *vpath.Path) []vpath.Polyline {
	t.Helper()
	s, err := vpath.NewSubdivider(vpath.WithApproximationScale(4))
	require.NoError(t, err)
	pls, _ := s.FlattenSubpaths(p)
	return pls
}

func TestMaskRectangle(t *testing.T) {
	pls := flatten(t, vpath.BuildPath().Rect(2, 3, 10, 5).Build())

	m := Mask(pls, 20, 20)
	assert.InDelta(t, 50, Coverage(m), 0.01)
	assert.Equal(t, uint8(0xff), m.AlphaAt(5, 5).A)
	assert.Equal(t, uint8(0), m.AlphaAt(1, 1).A)
	assert.Equal(t, uint8(0), m.AlphaAt(12, 5).A)
}

func TestMaskCircleArea(t *testing.T) {
	pls := flatten(t, vpath.BuildPath().Circle(32, 32, 20).Build())

	m := Mask(pls, 64, 64)
	want := math.Pi * 20 * 20
	assert.InEpsilon(t, want, Coverage(m), 0.01)
}

func TestMaskOpenPolylineIsClosed(t *testing.T) {
	open := []vpath.Polyline{{Points: []vpath.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}}}
	assert.InDelta(t, 100, Coverage(Mask(open, 10, 10)), 0.01)
}

func TestMaskNonZeroWinding(t *testing.T) {
	// Two overlapping squares with the same orientation.
	p := vpath.BuildPath().Rect(0, 0, 10, 10).Rect(5, 0, 10, 10).Build()
	m := Mask(flatten(t, p), 20, 10)
	assert.InDelta(t, 150, Coverage(m), 0.01)
	assert.Equal(t, uint8(0xff), m.AlphaAt(7, 5).A)
}

func TestMaskEmptySize(t *testing.T) {
	m := Mask(nil, 0, 10)
	assert.Empty(t, m.Pix)
}

func TestFit(t *testing.T) {
	pls := flatten(t, vpath.BuildPath().Rect(-10.5, 100, 4, 4).Build())

	m, offset, err := Fit(pls, 2)
	require.NoError(t, err)
	assert.Equal(t, vpath.Pt(13, -98), offset)
	assert.Equal(t, 9, m.Bounds().Dx())
	assert.Equal(t, 8, m.Bounds().Dy())
	assert.InDelta(t, 16, Coverage(m), 0.01)
}

func TestFitEmpty(t *testing.T) {
	_, _, err := Fit(nil, 1)
	assert.ErrorIs(t, err, ErrEmptyBounds)

	_, _, err = Fit([]vpath.Polyline{{Points: []vpath.Point{{X: math.NaN(), Y: 0}}}}, 1)
	assert.ErrorIs(t, err, ErrEmptyBounds)
}
