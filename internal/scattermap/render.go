// Package scattermap draws a table as a grid of circular markers whose fill
// colour encodes the cell value.
package scattermap

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/scattermap/internal/monitoring"
	"github.com/banshee-data/scattermap/internal/table"
)

// Axis titles.
const (
	XLabel = "Patient ID"
	YLabel = "Variable"
)

// colorBarWidth is the share of the figure width given to the colour bar.
const colorBarWidth = 0.12

// TablePlotter turns a table and its mask into a figure.
type TablePlotter interface {
	Plot(t *table.Table, mask table.Mask, style Style) (*Figure, error)
}

// Plotter is the gonum/plot TablePlotter.
type Plotter struct{}

// Plot implements TablePlotter.
func (Plotter) Plot(t *table.Table, mask table.Mask, style Style) (*Figure, error) {
	return Render(t, mask, style)
}

// Figure is a rendered scattermap. It keeps the inputs it was drawn from so
// it can be encoded again in other formats.
type Figure struct {
	Main *plot.Plot
	// Bar is the colour bar legend, or nil.
	Bar *plot.Plot

	Width, Height vg.Length
	Table         *table.Table
	Mask          table.Mask
	Scale         *Scale
	Style         Style

	// Markers is the number of cells drawn.
	Markers int
}

// Size returns the figure size.
func (f *Figure) Size() (w, h vg.Length) { return f.Width, f.Height }

// Draw draws the grid, and the colour bar beside it when present.
func (f *Figure) Draw(dc draw.Canvas) {
	if f.Bar == nil {
		f.Main.Draw(dc)
		return
	}
	w := dc.Max.X - dc.Min.X
	h := dc.Max.Y - dc.Min.Y
	barW := w * colorBarWidth
	f.Main.Draw(draw.Crop(dc, 0, -barW, 0, 0))
	f.Bar.Draw(draw.Crop(dc, w-barW, 0, h*0.1, -h*0.05))
}

// Render validates style and draws t. Cells hidden by mask, and NaN cells,
// get no marker.
func Render(t *table.Table, mask table.Mask, style Style) (*Figure, error) {
	if err := style.Validate(); err != nil {
		return nil, err
	}
	if t == nil || t.Rows() == 0 || t.Cols() == 0 {
		return nil, fmt.Errorf("%w: table is empty", ErrConfigValidation)
	}
	if mask != nil {
		if len(mask) != t.Rows() {
			return nil, fmt.Errorf("%w: mask has %d rows, table has %d", ErrConfigValidation, len(mask), t.Rows())
		}
		for i, row := range mask {
			if len(row) != t.Cols() {
				return nil, fmt.Errorf("%w: mask row %d has %d cells, table has %d", ErrConfigValidation, i, len(row), t.Cols())
			}
		}
	}

	visible := t.Finite(func(i, j int) bool { return !mask.Hidden(i, j) })
	scale, err := NewScale(style.Scale, visible, style.Bounds)
	if err != nil {
		return nil, err
	}
	monitoring.Debugf("colour scale %s: [%g, %g]", style.Scale.Name, scale.Min(), scale.Max())

	grid := &markerGrid{
		table:     t,
		mask:      mask,
		scale:     scale,
		radius:    style.Marker.Radius(),
		lineWidth: vg.Points(style.Marker.LineWidth),
	}

	p := plot.New()
	p.Title.Text = style.Title
	p.X.Label.Text = XLabel
	p.Y.Label.Text = YLabel
	p.Add(grid)

	xticks := make(plot.ConstantTicks, t.Cols())
	for j, subject := range t.Subjects {
		xticks[j] = plot.Tick{Value: float64(j), Label: subject}
	}
	p.X.Tick.Marker = xticks
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter

	yticks := make(plot.ConstantTicks, t.Rows())
	for i, label := range t.Labels() {
		yticks[i] = plot.Tick{Value: grid.rowY(i), Label: label}
	}
	p.Y.Tick.Marker = yticks

	fig := &Figure{
		Main:    p,
		Width:   style.Width,
		Height:  style.Height,
		Table:   t,
		Mask:    mask,
		Scale:   scale,
		Style:   style,
		Markers: len(visible),
	}

	if style.ColorBar {
		bar := plot.New()
		bar.Add(&plotter.ColorBar{ColorMap: scale, Vertical: true, Colors: 256})
		bar.HideX()
		bar.X.Padding = 0
		bar.Y.Padding = 0
		fig.Bar = bar
	}
	return fig, nil
}

// markerGrid draws one filled, black-outlined circle per visible cell.
// Row 0 is drawn at the top.
type markerGrid struct {
	table     *table.Table
	mask      table.Mask
	scale     *Scale
	radius    vg.Length
	lineWidth vg.Length
}

var _ plot.Plotter = (*markerGrid)(nil)

func (g *markerGrid) rowY(i int) float64 {
	return float64(g.table.Rows() - 1 - i)
}

func (g *markerGrid) visible(i, j int) bool {
	v := g.table.At(i, j)
	return !math.IsNaN(v) && !math.IsInf(v, 0) && !g.mask.Hidden(i, j)
}

// Plot implements plot.Plotter.
func (g *markerGrid) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	outline := draw.LineStyle{Color: color.Black, Width: g.lineWidth}

	for i := 0; i < g.table.Rows(); i++ {
		for j := 0; j < g.table.Cols(); j++ {
			if !g.visible(i, j) {
				continue
			}
			fill, err := g.scale.At(g.table.At(i, j))
			if err != nil {
				monitoring.Logf("scattermap: no colour for %s/%s: %v", g.table.Variables[i].Label(), g.table.Subjects[j], err)
				continue
			}

			pt := vg.Point{X: trX(float64(j)), Y: trY(g.rowY(i))}
			var path vg.Path
			path.Move(vg.Point{X: pt.X + g.radius, Y: pt.Y})
			path.Arc(pt, g.radius, 0, 2*math.Pi)
			path.Close()

			c.SetColor(fill)
			c.Fill(path)
			c.SetLineStyle(outline)
			c.Stroke(path)
		}
	}
}

// DataRange implements plot.DataRanger. Each cell is one unit wide.
func (g *markerGrid) DataRange() (xmin, xmax, ymin, ymax float64) {
	return -0.5, float64(g.table.Cols()) - 0.5, -0.5, float64(g.table.Rows()) - 0.5
}

// GlyphBoxes implements plot.GlyphBoxer so markers on the edge are not clipped.
func (g *markerGrid) GlyphBoxes(plt *plot.Plot) []plot.GlyphBox {
	r := g.radius + g.lineWidth/2
	box := vg.Rectangle{Min: vg.Point{X: -r, Y: -r}, Max: vg.Point{X: r, Y: r}}
	var boxes []plot.GlyphBox
	for i := 0; i < g.table.Rows(); i++ {
		for j := 0; j < g.table.Cols(); j++ {
			if !g.visible(i, j) {
				continue
			}
			boxes = append(boxes, plot.GlyphBox{
				X:         plt.X.Norm(float64(j)),
				Y:         plt.Y.Norm(g.rowY(i)),
				Rectangle: box,
			})
		}
	}
	return boxes
}
