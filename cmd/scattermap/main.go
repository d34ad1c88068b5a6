// Command scattermap draws a spreadsheet of scores as a grid of coloured
// markers and saves the figure.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/banshee-data/scattermap/internal/config"
	"github.com/banshee-data/scattermap/internal/export"
	"github.com/banshee-data/scattermap/internal/monitoring"
	"github.com/banshee-data/scattermap/internal/presenter"
	"github.com/banshee-data/scattermap/internal/scattermap"
	"github.com/banshee-data/scattermap/internal/version"
)

// optionalFloat is a float flag that "none" clears.
type optionalFloat struct {
	v *float64
}

func (o *optionalFloat) String() string {
	if o == nil || o.v == nil {
		return "none"
	}
	return strconv.FormatFloat(*o.v, 'g', -1, 64)
}

func (o *optionalFloat) Set(s string) error {
	if s == "" || strings.EqualFold(s, "none") {
		o.v = nil
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("want a number or \"none\": %w", err)
	}
	o.v = &f
	return nil
}

type cli struct {
	fs *flag.FlagSet

	configPath string
	input      string
	sheet      string
	width      float64
	height     float64
	title      string
	mask       bool
	cmap       string
	vmin       optionalFloat
	vcenter    optionalFloat
	vmax       optionalFloat
	robust     float64
	markerSize float64
	linewidths float64
	colorBar   bool
	output     string
	format     string

	show      bool
	verbose   bool
	version   bool
	listCmaps bool
}

func newCLI(name string, output io.Writer) *cli {
	d := config.DefaultSettings()
	c := &cli{
		fs:      flag.NewFlagSet(name, flag.ContinueOnError),
		vmin:    optionalFloat{d.ColormapMinValue},
		vcenter: optionalFloat{d.ColormapCenter},
		vmax:    optionalFloat{d.ColormapMaxValue},
	}
	fs := c.fs
	fs.SetOutput(output)

	fs.StringVar(&c.configPath, "config", "", "JSON settings file; flags below override it")
	fs.StringVar(&c.input, "input", d.InputFile, "input spreadsheet (.xlsx or .csv)")
	fs.StringVar(&c.sheet, "sheet", d.SheetName, "worksheet name (ignored for CSV)")
	fs.Float64Var(&c.width, "width", d.Width, "figure width in inches")
	fs.Float64Var(&c.height, "height", d.Height, "figure height in inches")
	fs.StringVar(&c.title, "title", d.Title, "figure title")
	fs.BoolVar(&c.mask, "mask", d.MaskNonSignificantValues, "hide values with |v| < 1.86")
	fs.StringVar(&c.cmap, "cmap", d.ColormapName, "colour map name; append _r to reverse")
	fs.Var(&c.vmin, "vmin", "colour scale minimum, or none to compute it")
	fs.Var(&c.vcenter, "vcenter", "colour scale centre, or none")
	fs.Var(&c.vmax, "vmax", "colour scale maximum, or none to compute it")
	fs.Float64Var(&c.robust, "robust", d.RobustPercentile, "percentile used for computed colour limits")
	fs.Float64Var(&c.markerSize, "marker-size", d.MarkerSize, "marker area in square points")
	fs.Float64Var(&c.linewidths, "linewidths", d.Linewidths, "marker outline width in points")
	fs.BoolVar(&c.colorBar, "colorbar", d.ColorBar, "draw a colour bar")
	fs.StringVar(&c.output, "output", d.OutputFile, "output path without extension; empty to skip saving")
	fs.StringVar(&c.format, "format", d.OutputFormat, "output format: "+strings.Join(export.Formats(), ", "))
	fs.BoolVar(&c.show, "show", false, "open the interactive view in a browser")
	fs.BoolVar(&c.verbose, "verbose", false, "enable debug logging")
	fs.BoolVar(&c.version, "version", false, "print version and exit")
	fs.BoolVar(&c.listCmaps, "list-colormaps", false, "print the available colour maps and exit")
	return c
}

func (c *cli) parse(args []string) error {
	if err := c.fs.Parse(args); err != nil {
		return err
	}
	if c.fs.NArg() > 0 {
		err := fmt.Errorf("unexpected arguments: %s", strings.Join(c.fs.Args(), " "))
		fmt.Fprintln(c.fs.Output(), err)
		c.fs.Usage()
		return err
	}
	return nil
}

// settings loads the config file, or the defaults, and applies the flags
// that were set on the command line.
func (c *cli) settings() (*config.Settings, error) {
	s := config.DefaultSettings()
	if c.configPath != "" {
		var err error
		if s, err = config.LoadSettings(c.configPath); err != nil {
			return nil, err
		}
	}

	c.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			s.InputFile = c.input
		case "sheet":
			s.SheetName = c.sheet
		case "width":
			s.Width = c.width
		case "height":
			s.Height = c.height
		case "title":
			s.Title = c.title
		case "mask":
			s.MaskNonSignificantValues = c.mask
		case "cmap":
			s.ColormapName = c.cmap
		case "vmin":
			s.ColormapMinValue = c.vmin.v
		case "vcenter":
			s.ColormapCenter = c.vcenter.v
		case "vmax":
			s.ColormapMaxValue = c.vmax.v
		case "robust":
			s.RobustPercentile = c.robust
		case "marker-size":
			s.MarkerSize = c.markerSize
		case "linewidths":
			s.Linewidths = c.linewidths
		case "colorbar":
			s.ColorBar = c.colorBar
		case "output":
			s.OutputFile = c.output
		case "format":
			s.OutputFormat = c.format
		}
	})

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func main() {
	c := newCLI(os.Args[0], os.Stderr)
	if err := c.parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if c.version {
		fmt.Println(version.String())
		return
	}
	if c.listCmaps {
		for _, name := range scattermap.ColorMapNames() {
			fmt.Println(name)
		}
		return
	}
	monitoring.SetVerbose(c.verbose)

	s, err := c.settings()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	res, err := presenter.New(c.show).Run(s)
	if err != nil {
		log.Fatalf("scattermap: %v", err)
	}
	if res.Path != "" {
		fmt.Println(res.Path)
	}
}
