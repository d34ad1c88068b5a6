package scattermap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
)

func validStyle() Style {
	return Style{
		Width:    4 * vg.Inch,
		Height:   3 * vg.Inch,
		Title:    "test",
		Scale:    ColorScale{Name: "RdBu", Center: ptr(0)},
		Marker:   MarkerStyle{Size: 100, LineWidth: 1},
		ColorBar: true,
	}
}

func TestStyle_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, validStyle().Validate())

	tests := []struct {
		name   string
		modify func(*Style)
		want   string
	}{
		{"zero marker size", func(s *Style) { s.Marker.Size = 0 }, "marker size"},
		{"negative line width", func(s *Style) { s.Marker.LineWidth = -1 }, "line width"},
		{"NaN marker size", func(s *Style) { s.Marker.Size = math.NaN() }, "marker size"},
		{"zero width", func(s *Style) { s.Width = 0 }, "width"},
		{"negative height", func(s *Style) { s.Height = -vg.Inch }, "height"},
		{"infinite min", func(s *Style) { s.Scale.Min = ptr(math.Inf(-1)) }, "colormap min"},
		{"NaN center", func(s *Style) { s.Scale.Center = ptr(math.NaN()) }, "colormap center"},
		{"min equals max", func(s *Style) { s.Scale.Min, s.Scale.Max = ptr(1), ptr(1) }, "must be below max"},
		{"min above max", func(s *Style) { s.Scale.Min, s.Scale.Max = ptr(2), ptr(1) }, "must be below max"},
		{"unknown colour map", func(s *Style) { s.Scale.Name = "nope" }, "unknown colour map"},
		{"bad percentiles", func(s *Style) { s.Bounds = RobustPercentile{Low: 90, High: 10} }, "robust percentiles"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := validStyle()
			tc.modify(&s)
			err := s.Validate()
			require.ErrorIs(t, err, ErrConfigValidation)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestStyle_ValidateReportsEveryProblem(t *testing.T) {
	t.Parallel()

	s := validStyle()
	s.Marker = MarkerStyle{}
	err := s.Validate()
	require.ErrorIs(t, err, ErrConfigValidation)
	assert.Contains(t, err.Error(), "marker size")
	assert.Contains(t, err.Error(), "line width")
}

func TestMarkerStyle_Radius(t *testing.T) {
	t.Parallel()

	// A 100 pt² marker is 10 pt across.
	assert.InDelta(t, 5.0, float64(MarkerStyle{Size: 100}.Radius()), 1e-12)
}
