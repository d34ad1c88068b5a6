package scattermap

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// htmlDPI converts figure inches to CSS pixels.
const (
	htmlDPI         = 96
	vgPointsPerInch = 72
)

// visualMapStops is the number of colours handed to the ECharts visual map.
const visualMapStops = 11

// WriteHTML renders the figure as an interactive ECharts page. It shows the
// same cells, colours and labels as the static figure.
func (f *Figure) WriteHTML(w io.Writer) error {
	t := f.Table
	rows := t.Rows()

	// Category axes count from the bottom, so list rows in reverse to keep
	// the first variable at the top.
	labels := t.Labels()
	yLabels := make([]string, rows)
	for i, label := range labels {
		yLabels[rows-1-i] = label
	}

	data := make([]opts.ScatterData, 0, f.Markers)
	for i := 0; i < rows; i++ {
		for j := 0; j < t.Cols(); j++ {
			v := t.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) || f.Mask.Hidden(i, j) {
				continue
			}
			data = append(data, opts.ScatterData{
				Name:  fmt.Sprintf("%s / %s", t.Subjects[j], labels[i]),
				Value: []interface{}{j, rows - 1 - i, v},
			})
		}
	}

	width := int(f.Width.Points() / vgPointsPerInch * htmlDPI)
	height := int(f.Height.Points() / vgPointsPerInch * htmlDPI)
	title := f.Style.Title
	if title == "" {
		title = "Scattermap"
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     fmt.Sprintf("%dpx", width),
			Height:    fmt.Sprintf("%dpx", height),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("%d of %d cells shown", len(data), rows*t.Cols()),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{
			Type:         "category",
			Name:         XLabel,
			NameLocation: "middle",
			NameGap:      40,
			AxisLabel:    &opts.AxisLabel{Interval: "0", Rotate: 90},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:         "category",
			Data:         yLabels,
			Name:         YLabel,
			NameLocation: "middle",
			NameGap:      120,
			AxisLabel:    &opts.AxisLabel{Interval: "0"},
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(f.Bar != nil),
			Calculable: opts.Bool(true),
			Min:        float32(f.Scale.Min()),
			Max:        float32(f.Scale.Max()),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: f.Scale.Hex(visualMapStops)},
		}),
	)

	// ECharts sizes symbols by diameter in pixels.
	diameter := math.Sqrt(f.Style.Marker.Size) / vgPointsPerInch * htmlDPI
	scatter.SetXAxis(t.Subjects).
		AddSeries("values", data,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: diameter}),
			charts.WithItemStyleOpts(opts.ItemStyle{
				BorderColor: "#000000",
				BorderWidth: float32(f.Style.Marker.LineWidth),
			}),
		)

	return scatter.Render(w)
}
