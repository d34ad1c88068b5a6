package scattermap

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot/palette"
)

// ColorScale names a colour map and the values pinned to its ends and middle.
// Nil bounds are computed from the data by a BoundsPolicy.
type ColorScale struct {
	Name   string
	Min    *float64
	Center *float64
	Max    *float64
}

// BoundsPolicy derives colour-scale bounds from the visible values.
type BoundsPolicy interface {
	Bounds(values []float64) (lo, hi float64, err error)
}

// errNoValues is returned by bounds policies given no values.
var errNoValues = errors.New("no values to scale")

// RobustPercentile bounds the scale by the Low and High percentiles (0-100)
// of the data, so a few outliers do not wash out the rest of the grid.
type RobustPercentile struct {
	Low, High float64
}

// DefaultBounds is the policy used when a Style does not set one.
var DefaultBounds BoundsPolicy = RobustPercentile{Low: 2, High: 98}

// Bounds implements BoundsPolicy.
func (r RobustPercentile) Bounds(values []float64) (float64, float64, error) {
	if len(values) == 0 {
		return 0, 0, errNoValues
	}
	if r.Low < 0 || r.High > 100 || r.Low >= r.High {
		return 0, 0, fmt.Errorf("invalid robust percentiles [%g, %g]", r.Low, r.High)
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return percentile(sorted, r.Low/100), percentile(sorted, r.High/100), nil
}

// percentile returns the p-quantile (0-1) of sorted, interpolating linearly
// between the closest ranks at h = p*(n-1).
func percentile(sorted []float64, p float64) float64 {
	h := p * float64(len(sorted)-1)
	i := int(math.Floor(h))
	if i >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-float64(i))*(sorted[i+1]-sorted[i])
}

// MinMax bounds the scale by the extreme values of the data.
type MinMax struct{}

// Bounds implements BoundsPolicy.
func (MinMax) Bounds(values []float64) (float64, float64, error) {
	if len(values) == 0 {
		return 0, 0, errNoValues
	}
	return floats.Min(values), floats.Max(values), nil
}

// Scale maps data values to colours. It implements palette.ColorMap over
// [Min(), Max()]; values outside that range take the colour of the nearest end.
// When a centre is set the underlying map spans a range symmetric about it,
// so the centre always lands on the map's midpoint.
type Scale struct {
	cmap       palette.ColorMap
	vmin, vmax float64
	center     *float64
}

// NewScale resolves cs against the visible values. Explicit bounds win;
// missing ones come from policy, falling back to the data range or [0, 1]
// when there is nothing to measure.
func NewScale(cs ColorScale, values []float64, policy BoundsPolicy) (*Scale, error) {
	cm, err := LookupColorMap(cs.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigValidation, err)
	}
	if policy == nil {
		policy = DefaultBounds
	}

	lo, hi := 0.0, 1.0
	if cs.Min == nil || cs.Max == nil {
		switch l, h, err := policy.Bounds(values); {
		case err == nil:
			lo, hi = l, h
		case errors.Is(err, errNoValues):
			if cs.Center != nil {
				lo, hi = *cs.Center-1, *cs.Center+1
			}
		default:
			return nil, fmt.Errorf("%w: %v", ErrConfigValidation, err)
		}
	}

	vmin, vmax := lo, hi
	if cs.Min != nil {
		vmin = *cs.Min
	}
	if cs.Max != nil {
		vmax = *cs.Max
	}
	// A computed bound on the wrong side of an explicit one collapses to it.
	if vmin > vmax {
		if cs.Min == nil {
			vmin = vmax
		} else {
			vmax = vmin
		}
	}
	if vmin == vmax {
		vmin, vmax = vmin-0.5, vmax+0.5
	}

	s := &Scale{cmap: cm, vmin: vmin, vmax: vmax}
	if cs.Center != nil {
		c := *cs.Center
		s.center = &c
	}
	s.apply()
	return s, nil
}

// apply sets the underlying map's range from vmin, vmax and the centre.
func (s *Scale) apply() {
	lo, hi := s.vmin, s.vmax
	if s.center != nil {
		c := *s.center
		r := math.Max(s.vmax-c, c-s.vmin)
		if r <= 0 {
			r = 0.5
		}
		lo, hi = c-r, c+r
	}
	s.cmap.SetMax(hi)
	s.cmap.SetMin(lo)
}

// Center returns the configured centre, if any.
func (s *Scale) Center() (float64, bool) {
	if s.center == nil {
		return 0, false
	}
	return *s.center, true
}

// At returns the colour for v. NaN is an error.
func (s *Scale) At(v float64) (color.Color, error) {
	if math.IsNaN(v) {
		return nil, palette.ErrNaN
	}
	v = math.Min(math.Max(v, s.vmin), s.vmax)
	v = math.Min(math.Max(v, s.cmap.Min()), s.cmap.Max())
	return s.cmap.At(v)
}

// Min implements palette.ColorMap.
func (s *Scale) Min() float64 { return s.vmin }

// Max implements palette.ColorMap.
func (s *Scale) Max() float64 { return s.vmax }

// SetMin implements palette.ColorMap.
func (s *Scale) SetMin(v float64) {
	s.vmin = v
	s.apply()
}

// SetMax implements palette.ColorMap.
func (s *Scale) SetMax(v float64) {
	s.vmax = v
	s.apply()
}

// Alpha implements palette.ColorMap.
func (s *Scale) Alpha() float64 { return s.cmap.Alpha() }

// SetAlpha implements palette.ColorMap.
func (s *Scale) SetAlpha(a float64) { s.cmap.SetAlpha(a) }

// Palette returns n colours evenly spaced over [Min, Max].
func (s *Scale) Palette(n int) palette.Palette {
	return sampledPalette(s, n)
}

// Hex returns n colours evenly spaced over [Min, Max] as #rrggbb strings.
func (s *Scale) Hex(n int) []string {
	colors := s.Palette(n).Colors()
	out := make([]string, len(colors))
	for i, c := range colors {
		nc := color.NRGBAModel.Convert(c).(color.NRGBA)
		out[i] = fmt.Sprintf("#%02x%02x%02x", nc.R, nc.G, nc.B)
	}
	return out
}
