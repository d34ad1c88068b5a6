package scattermap

import (
	"fmt"
	"image/color"
	"math"
	"slices"
	"sort"
	"strings"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/palette/moreland"
)

// reverseSuffix selects the reversed version of a named colour map.
const reverseSuffix = "_r"

var morelandMaps = map[string]func() palette.ColorMap{
	"SmoothBlueRed":      func() palette.ColorMap { return moreland.SmoothBlueRed() },
	"SmoothBlueTan":      func() palette.ColorMap { return moreland.SmoothBlueTan() },
	"SmoothGreenPurple":  func() palette.ColorMap { return moreland.SmoothGreenPurple() },
	"SmoothGreenRed":     func() palette.ColorMap { return moreland.SmoothGreenRed() },
	"SmoothPurpleOrange": func() palette.ColorMap { return moreland.SmoothPurpleOrange() },
	"BlackBody":          moreland.BlackBody,
	"ExtendedBlackBody":  moreland.ExtendedBlackBody,
	"Kindlmann":          moreland.Kindlmann,
	"ExtendedKindlmann":  moreland.ExtendedKindlmann,
}

// ColorMapNames returns every name accepted by LookupColorMap, without the
// reversal suffix.
func ColorMapNames() []string {
	var names []string
	for name := range brewer.DivergingPalettes {
		names = append(names, name)
	}
	for name := range brewer.SequentialPalettes {
		names = append(names, name)
	}
	for name := range brewer.QualitativePalettes {
		names = append(names, name)
	}
	for name := range morelandMaps {
		names = append(names, name)
	}
	sort.Strings(names)
	return slices.Compact(names)
}

// LookupColorMap returns a fresh colour map for name. ColorBrewer names
// (RdBu, PuOr, Blues, ...) are interpolated continuously across their
// largest palette; Moreland names (SmoothBlueRed, Kindlmann, ...) are used
// as is. Matching ignores case and a trailing "_r" reverses the map.
func LookupColorMap(name string) (palette.ColorMap, error) {
	base := strings.TrimSpace(name)
	reversed := false
	if len(base) > len(reverseSuffix) && strings.EqualFold(base[len(base)-len(reverseSuffix):], reverseSuffix) {
		base = base[:len(base)-len(reverseSuffix)]
		reversed = true
	}

	cm, err := lookupBase(base)
	if err != nil {
		return nil, err
	}
	if reversed {
		return &reversedMap{ColorMap: cm}, nil
	}
	return cm, nil
}

func lookupBase(name string) (palette.ColorMap, error) {
	for key, fn := range morelandMaps {
		if strings.EqualFold(key, name) {
			return fn(), nil
		}
	}

	var colors []color.Color
	for key, p := range brewer.DivergingPalettes {
		if strings.EqualFold(key, name) {
			colors = p[largest(p)].Colors()
		}
	}
	for key, p := range brewer.SequentialPalettes {
		if strings.EqualFold(key, name) {
			colors = p[largest(p)].Colors()
		}
	}
	for key, p := range brewer.QualitativePalettes {
		if strings.EqualFold(key, name) {
			colors = p[largest(p)].Colors()
		}
	}
	if len(colors) == 0 {
		return nil, fmt.Errorf("unknown colour map %q", name)
	}
	return newGradientMap(colors), nil
}

func largest[P any](m map[int]P) int {
	n := 0
	for k := range m {
		n = max(n, k)
	}
	return n
}

// gradientMap linearly interpolates between evenly spaced control colours.
type gradientMap struct {
	colors   []color.NRGBA
	min, max float64
	alpha    float64
}

func newGradientMap(controls []color.Color) *gradientMap {
	g := &gradientMap{min: 0, max: 1, alpha: 1}
	for _, c := range controls {
		g.colors = append(g.colors, color.NRGBAModel.Convert(c).(color.NRGBA))
	}
	return g
}

func (g *gradientMap) At(v float64) (color.Color, error) {
	switch {
	case math.IsNaN(v):
		return nil, palette.ErrNaN
	case v < g.min:
		return nil, palette.ErrUnderflow
	case v > g.max:
		return nil, palette.ErrOverflow
	}
	if g.max == g.min {
		return g.blend(g.colors[0], g.colors[0], 0), nil
	}
	pos := (v - g.min) / (g.max - g.min) * float64(len(g.colors)-1)
	i := int(math.Floor(pos))
	if i >= len(g.colors)-1 {
		i = len(g.colors) - 2
	}
	return g.blend(g.colors[i], g.colors[i+1], pos-float64(i)), nil
}

func (g *gradientMap) blend(a, b color.NRGBA, t float64) color.Color {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.NRGBA{
		R: mix(a.R, b.R),
		G: mix(a.G, b.G),
		B: mix(a.B, b.B),
		A: uint8(math.Round(255 * g.alpha)),
	}
}

func (g *gradientMap) Max() float64     { return g.max }
func (g *gradientMap) SetMax(v float64) { g.max = v }
func (g *gradientMap) Min() float64     { return g.min }
func (g *gradientMap) SetMin(v float64) { g.min = v }
func (g *gradientMap) Alpha() float64   { return g.alpha }

func (g *gradientMap) SetAlpha(a float64) {
	if a < 0 || a > 1 {
		panic("scattermap: alpha out of range")
	}
	g.alpha = a
}

func (g *gradientMap) Palette(n int) palette.Palette {
	return sampledPalette(g, n)
}

// reversedMap flips a colour map end to end.
type reversedMap struct {
	palette.ColorMap
}

func (r *reversedMap) At(v float64) (color.Color, error) {
	if math.IsNaN(v) {
		return nil, palette.ErrNaN
	}
	u := r.Min() + r.Max() - v
	return r.ColorMap.At(math.Min(math.Max(u, r.Min()), r.Max()))
}

func (r *reversedMap) Palette(n int) palette.Palette {
	return sampledPalette(r, n)
}

// sampledPalette takes n evenly spaced colours from cm across its range.
func sampledPalette(cm palette.ColorMap, n int) palette.Palette {
	colors := make([]color.Color, n)
	for i := range colors {
		v := cm.Min()
		if n > 1 {
			v = math.Min(v+(cm.Max()-cm.Min())*float64(i)/float64(n-1), cm.Max())
		}
		c, err := cm.At(v)
		if err != nil {
			c = color.Transparent
		}
		colors[i] = c
	}
	return plainPalette(colors)
}

type plainPalette []color.Color

func (p plainPalette) Colors() []color.Color { return p }
