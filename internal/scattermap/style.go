package scattermap

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/plot/vg"
)

// ErrConfigValidation is returned when a Style cannot be rendered.
var ErrConfigValidation = errors.New("invalid render configuration")

// MarkerStyle is applied to every marker in the grid.
type MarkerStyle struct {
	// Size is the marker area in square points.
	Size float64
	// LineWidth is the width of the black marker outline in points.
	LineWidth float64
}

// Radius returns the marker radius for Size.
func (m MarkerStyle) Radius() vg.Length {
	return vg.Points(math.Sqrt(m.Size) / 2)
}

// Style controls how a table is drawn.
type Style struct {
	Width, Height vg.Length
	Title         string
	Scale         ColorScale
	Marker        MarkerStyle
	// Bounds computes unset colour-scale bounds. Nil means DefaultBounds.
	Bounds   BoundsPolicy
	ColorBar bool
}

// Validate reports every problem with the style, wrapped in ErrConfigValidation.
func (s Style) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be a positive number, got %g", name, v))
		}
	}
	finite := func(name string, v *float64) {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			errs = append(errs, fmt.Errorf("%s must be finite, got %g", name, *v))
		}
	}

	positive("width", float64(s.Width))
	positive("height", float64(s.Height))
	positive("marker size", s.Marker.Size)
	positive("line width", s.Marker.LineWidth)
	finite("colormap min", s.Scale.Min)
	finite("colormap center", s.Scale.Center)
	finite("colormap max", s.Scale.Max)
	if s.Scale.Min != nil && s.Scale.Max != nil && *s.Scale.Min >= *s.Scale.Max {
		errs = append(errs, fmt.Errorf("colormap min (%g) must be below max (%g)", *s.Scale.Min, *s.Scale.Max))
	}
	if _, err := LookupColorMap(s.Scale.Name); err != nil {
		errs = append(errs, err)
	}
	if r, ok := s.Bounds.(RobustPercentile); ok {
		if r.Low < 0 || r.High > 100 || r.Low >= r.High {
			errs = append(errs, fmt.Errorf("robust percentiles must satisfy 0 <= low < high <= 100, got [%g, %g]", r.Low, r.High))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrConfigValidation, errors.Join(errs...))
}
