// Package export writes rendered figures to image files and opens the
// interactive view.
package export

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	_ "gonum.org/v1/plot/vg/vgeps"
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgpdf"
	_ "gonum.org/v1/plot/vg/vgsvg"
	_ "gonum.org/v1/plot/vg/vgtex"

	"github.com/banshee-data/scattermap/internal/fsutil"
	"github.com/banshee-data/scattermap/internal/monitoring"
)

// FormatHTML is the interactive page format.
const FormatHTML = "html"

var (
	// ErrUnsupportedFormat is returned for output formats with no encoder.
	ErrUnsupportedFormat = errors.New("unsupported output format")
	// ErrIOWrite is returned when the output file cannot be created or written.
	ErrIOWrite = errors.New("cannot write output")
)

// Drawable is a figure that can be drawn onto a fixed-size canvas.
type Drawable interface {
	Size() (w, h vg.Length)
	Draw(dc draw.Canvas)
}

// Interactive is a figure that can render itself as an HTML page.
type Interactive interface {
	WriteHTML(w io.Writer) error
}

// FigureExporter saves a figure under an output stub.
type FigureExporter interface {
	Export(fig Drawable, stub, format string) (string, error)
}

// Exporter writes figures through a FileSystem.
type Exporter struct {
	FS fsutil.FileSystem
}

// New returns an Exporter writing to fsys, or to the OS when fsys is nil.
func New(fsys fsutil.FileSystem) *Exporter {
	if fsys == nil {
		fsys = fsutil.OSFileSystem{}
	}
	return &Exporter{FS: fsys}
}

// Formats returns every supported output format, sorted.
func Formats() []string {
	formats := append(draw.Formats(), FormatHTML)
	slices.Sort(formats)
	return formats
}

// Supported reports whether format, in any case, can be exported.
func Supported(format string) bool {
	return slices.Contains(Formats(), strings.ToLower(format))
}

// OutputPath returns the file written for stub and format.
func OutputPath(stub, format string) string {
	return stub + "." + strings.ToLower(format)
}

// Export encodes fig in format and writes it to stub.format. An empty stub
// writes nothing and returns "". The format is checked before any file is
// created, and a partly written file is removed on failure.
func (e *Exporter) Export(fig Drawable, stub, format string) (path string, err error) {
	if stub == "" {
		monitoring.Debugf("no output file configured; skipping export")
		return "", nil
	}

	format = strings.ToLower(format)
	enc, err := encode(fig, format)
	if err != nil {
		return "", err
	}

	out := OutputPath(stub, format)
	f, err := e.FS.Create(out)
	if err != nil {
		return "", fmt.Errorf("%w: create %s: %v", ErrIOWrite, out, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: close %s: %v", ErrIOWrite, out, cerr)
		}
		if err != nil {
			if rerr := e.FS.Remove(out); rerr != nil {
				monitoring.Debugf("export: removing partial %s: %v", out, rerr)
			}
			path = ""
		}
	}()

	n, err := enc.WriteTo(f)
	if err != nil {
		return "", fmt.Errorf("%w: write %s: %v", ErrIOWrite, out, err)
	}
	monitoring.Debugf("wrote %s (%d bytes)", out, n)
	return out, nil
}

// encode prepares fig for writing in format.
func encode(fig Drawable, format string) (io.WriterTo, error) {
	if format == FormatHTML {
		page, ok := fig.(Interactive)
		if !ok {
			return nil, fmt.Errorf("%w: %T cannot be rendered as %s", ErrUnsupportedFormat, fig, format)
		}
		return htmlWriter{page}, nil
	}
	if !slices.Contains(draw.Formats(), format) {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, format, strings.Join(Formats(), ", "))
	}

	w, h := fig.Size()
	c, err := draw.NewFormattedCanvas(w, h, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	fig.Draw(draw.New(c))
	return c, nil
}

// htmlWriter adapts an Interactive figure to io.WriterTo.
type htmlWriter struct {
	page Interactive
}

func (h htmlWriter) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := h.page.WriteHTML(cw)
	return cw.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
