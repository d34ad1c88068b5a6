// Package presenter runs the load, mask, render, view and export stages
// of a scattermap in order.
package presenter

import (
	"fmt"

	"github.com/banshee-data/scattermap/internal/config"
	"github.com/banshee-data/scattermap/internal/export"
	"github.com/banshee-data/scattermap/internal/monitoring"
	"github.com/banshee-data/scattermap/internal/scattermap"
	"github.com/banshee-data/scattermap/internal/sheet"
	"github.com/banshee-data/scattermap/internal/table"
)

// Stage names used to prefix errors.
const (
	StageLoad   = "load"
	StageMask   = "mask"
	StageRender = "render"
	StageView   = "view"
	StageExport = "export"
)

// Result summarises a completed run.
type Result struct {
	Rows, Cols int
	// Masked is the number of cells hidden as non-significant.
	Masked int
	// Path is the written figure, or "" when nothing was saved.
	Path string
}

// Presenter wires the pipeline stages. Viewer may be nil, in which case
// nothing is displayed.
type Presenter struct {
	Reader   sheet.TableReader
	Plotter  scattermap.TablePlotter
	Exporter export.FigureExporter
	Viewer   export.Viewer
}

// New returns a Presenter using the OS filesystem and the gonum renderer.
// When show is set the figure is opened in the browser before it is saved.
func New(show bool) *Presenter {
	p := &Presenter{
		Reader:   sheet.NewLoader(nil),
		Plotter:  scattermap.Plotter{},
		Exporter: export.New(nil),
	}
	if show {
		p.Viewer = &export.BrowserViewer{}
	}
	return p
}

// Run executes the pipeline once with s. It stops at the first failing
// stage; the returned error names that stage and wraps its cause.
func (p *Presenter) Run(s *config.Settings) (Result, error) {
	var res Result

	t, err := p.Reader.ReadTable(s.InputFile, s.SheetName)
	if err != nil {
		return res, fmt.Errorf("%s: %w", StageLoad, err)
	}
	res.Rows, res.Cols = t.Rows(), t.Cols()
	monitoring.Logf("loaded %d variables for %d subjects from %s", res.Rows, res.Cols, s.InputFile)

	mask := table.ComputeMask(t, s.MaskNonSignificantValues)
	res.Masked = mask.Count()
	if mask != nil {
		monitoring.Debugf("%s: %d of %d cells below ±%g", StageMask, res.Masked, res.Rows*res.Cols, table.SignificanceThreshold)
	}

	fig, err := p.Plotter.Plot(t, mask, s.Style())
	if err != nil {
		return res, fmt.Errorf("%s: %w", StageRender, err)
	}

	if p.Viewer != nil {
		if err := p.Viewer.View(fig); err != nil {
			return res, fmt.Errorf("%s: %w", StageView, err)
		}
	}

	path, err := p.Exporter.Export(fig, s.OutputFile, s.OutputFormat)
	if err != nil {
		return res, fmt.Errorf("%s: %w", StageExport, err)
	}
	res.Path = path
	if path != "" {
		monitoring.Logf("saved %s", path)
	}
	return res, nil
}
