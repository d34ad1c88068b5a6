package scattermap

import (
	"image/color"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/palette"
)

func nrgba(t *testing.T, cm palette.ColorMap, v float64) color.NRGBA {
	t.Helper()
	c, err := cm.At(v)
	require.NoError(t, err, "At(%v)", v)
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

func TestLookupColorMap(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"RdBu", "rdbu", " PuOr ", "Spectral", "Blues", "SmoothBlueRed", "kindlmann", "BlackBody_r", "RdBu_R"} {
		cm, err := LookupColorMap(name)
		require.NoError(t, err, name)
		require.NotNil(t, cm, name)
	}
}

func TestLookupColorMap_Unknown(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "_r", "viridis-ish", "RdBu_x"} {
		_, err := LookupColorMap(name)
		assert.Error(t, err, name)
	}
}

func TestLookupColorMap_FreshInstance(t *testing.T) {
	t.Parallel()

	a, err := LookupColorMap("RdBu")
	require.NoError(t, err)
	b, err := LookupColorMap("RdBu")
	require.NoError(t, err)

	a.SetMax(10)
	assert.Equal(t, 1.0, b.Max())
}

func TestLookupColorMap_Reversed(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"Blues", "RdBu", "SmoothBlueRed", "BlackBody"} {
		fwd, err := LookupColorMap(name)
		require.NoError(t, err)
		rev, err := LookupColorMap(name + "_r")
		require.NoError(t, err)
		for _, cm := range []palette.ColorMap{fwd, rev} {
			cm.SetMax(1)
			cm.SetMin(0)
		}

		assert.Equal(t, nrgba(t, fwd, 0), nrgba(t, rev, 1), name)
		assert.Equal(t, nrgba(t, fwd, 1), nrgba(t, rev, 0), name)
		assert.NotEqual(t, nrgba(t, fwd, 0), nrgba(t, rev, 0), name)
	}
}

func TestGradientMap(t *testing.T) {
	t.Parallel()

	g := newGradientMap([]color.Color{
		color.NRGBA{R: 0, A: 255},
		color.NRGBA{R: 100, A: 255},
		color.NRGBA{R: 200, A: 255},
	})
	g.SetMax(4)
	g.SetMin(0)

	assert.Equal(t, uint8(0), nrgba(t, g, 0).R)
	assert.Equal(t, uint8(50), nrgba(t, g, 1).R)
	assert.Equal(t, uint8(100), nrgba(t, g, 2).R)
	assert.Equal(t, uint8(200), nrgba(t, g, 4).R)

	_, err := g.At(-1)
	assert.ErrorIs(t, err, palette.ErrUnderflow)
	_, err = g.At(5)
	assert.ErrorIs(t, err, palette.ErrOverflow)

	g.SetAlpha(0.5)
	assert.Equal(t, uint8(128), nrgba(t, g, 2).A)
	assert.Panics(t, func() { g.SetAlpha(2) })
}

func TestColorMapNames(t *testing.T) {
	t.Parallel()

	names := ColorMapNames()
	assert.True(t, sort.StringsAreSorted(names))
	assert.Contains(t, names, "RdBu")
	assert.Contains(t, names, "Blues")
	assert.Contains(t, names, "SmoothBlueRed")
	for _, name := range names {
		_, err := LookupColorMap(name)
		assert.NoError(t, err, name)
	}
}

func TestSampledPalette(t *testing.T) {
	t.Parallel()

	cm, err := LookupColorMap("Greys")
	require.NoError(t, err)
	cm.SetMax(10)
	cm.SetMin(-10)

	colors := sampledPalette(cm, 5).Colors()
	require.Len(t, colors, 5)
	assert.Equal(t, nrgba(t, cm, -10), color.NRGBAModel.Convert(colors[0]))
	assert.Equal(t, nrgba(t, cm, 10), color.NRGBAModel.Convert(colors[4]))
	assert.Len(t, sampledPalette(cm, 1).Colors(), 1)
}
