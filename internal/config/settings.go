// Package config holds the settings record that drives one scattermap run.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/scattermap/internal/export"
	"github.com/banshee-data/scattermap/internal/scattermap"
)

// DefaultConfigPath is the checked-in copy of DefaultSettings.
const DefaultConfigPath = "config/scattermap.defaults.json"

// maxFileSize bounds the size of a settings file.
const maxFileSize = 1 * 1024 * 1024 // 1MB

// ErrInvalidSettings is returned when a settings record fails validation.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings is the full configuration of a run: input location, how the grid
// is drawn, and where the figure is saved. Width and Height are in inches,
// marker size in square points and line width in points.
type Settings struct {
	InputFile string `json:"input_file"`
	SheetName string `json:"sheet_name"`

	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Title  string  `json:"title"`

	MaskNonSignificantValues bool `json:"mask_non_significant_values"`

	ColormapName     string   `json:"colormap_name"`
	ColormapMinValue *float64 `json:"colormap_min_value"`
	ColormapCenter   *float64 `json:"colormap_center"`
	ColormapMaxValue *float64 `json:"colormap_max_value"`
	// RobustPercentile p bounds unset colour limits by the p-th and
	// (100-p)-th percentiles of the visible values.
	RobustPercentile float64 `json:"robust_percentile"`

	MarkerSize float64 `json:"marker_size"`
	Linewidths float64 `json:"linewidths"`
	ColorBar   bool    `json:"color_bar"`

	// OutputFile is the path without extension. Empty disables saving.
	OutputFile   string `json:"output_file"`
	OutputFormat string `json:"output_format"`
}

func ptrFloat64(v float64) *float64 { return &v }

// DefaultSettings returns the settings used when no file or flag overrides them.
func DefaultSettings() *Settings {
	return &Settings{
		InputFile:                "sample_data.xlsx",
		SheetName:                "sample_data",
		Width:                    8,
		Height:                   8,
		MaskNonSignificantValues: true,
		ColormapName:             "RdBu",
		ColormapCenter:           ptrFloat64(0),
		RobustPercentile:         2,
		MarkerSize:               500,
		Linewidths:               2,
		ColorBar:                 true,
		OutputFile:               "result",
		OutputFormat:             "png",
	}
}

// LoadSettings reads a JSON settings file on top of DefaultSettings.
// The file must have a .json extension and be at most 1MB. Keys missing
// from the file keep their defaults; unknown keys are an error.
func LoadSettings(path string) (*Settings, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	s := DefaultSettings()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(s); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate reports every invalid field, wrapped in ErrInvalidSettings. Style
// problems also match scattermap.ErrConfigValidation and an unknown output
// format export.ErrUnsupportedFormat.
func (s *Settings) Validate() error {
	var errs []error
	positive := func(key string, v float64) {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be positive, got %g", scattermap.ErrConfigValidation, key, v))
		}
	}
	finite := func(key string, v *float64) {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			errs = append(errs, fmt.Errorf("%w: %s must be finite, got %g", scattermap.ErrConfigValidation, key, *v))
		}
	}

	if s.InputFile == "" {
		errs = append(errs, errors.New("input_file must be set"))
	}
	positive("width", s.Width)
	positive("height", s.Height)
	positive("marker_size", s.MarkerSize)
	positive("linewidths", s.Linewidths)

	if _, err := scattermap.LookupColorMap(s.ColormapName); err != nil {
		errs = append(errs, fmt.Errorf("%w: colormap_name: %w", scattermap.ErrConfigValidation, err))
	}
	finite("colormap_min_value", s.ColormapMinValue)
	finite("colormap_center", s.ColormapCenter)
	finite("colormap_max_value", s.ColormapMaxValue)
	if s.ColormapMinValue != nil && s.ColormapMaxValue != nil && *s.ColormapMinValue >= *s.ColormapMaxValue {
		errs = append(errs, fmt.Errorf("%w: colormap_min_value (%g) must be below colormap_max_value (%g)",
			scattermap.ErrConfigValidation, *s.ColormapMinValue, *s.ColormapMaxValue))
	}
	if !(s.RobustPercentile >= 0 && s.RobustPercentile < 50) {
		errs = append(errs, fmt.Errorf("%w: robust_percentile must be in [0, 50), got %g", scattermap.ErrConfigValidation, s.RobustPercentile))
	}

	if s.OutputFile != "" && !export.Supported(s.OutputFormat) {
		errs = append(errs, fmt.Errorf("%w: output_format %q is not one of %v", export.ErrUnsupportedFormat, s.OutputFormat, export.Formats()))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidSettings, errors.Join(errs...))
}

// Style returns the rendering part of the settings.
func (s *Settings) Style() scattermap.Style {
	return scattermap.Style{
		Width:  vg.Length(s.Width) * vg.Inch,
		Height: vg.Length(s.Height) * vg.Inch,
		Title:  s.Title,
		Scale: scattermap.ColorScale{
			Name:   s.ColormapName,
			Min:    s.ColormapMinValue,
			Center: s.ColormapCenter,
			Max:    s.ColormapMaxValue,
		},
		Marker: scattermap.MarkerStyle{
			Size:      s.MarkerSize,
			LineWidth: s.Linewidths,
		},
		Bounds:   scattermap.RobustPercentile{Low: s.RobustPercentile, High: 100 - s.RobustPercentile},
		ColorBar: s.ColorBar,
	}
}
