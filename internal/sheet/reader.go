// Package sheet loads a two-level-header table from a spreadsheet and
// returns it with variables as rows and subjects as columns.
package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/banshee-data/scattermap/internal/fsutil"
	"github.com/banshee-data/scattermap/internal/monitoring"
	"github.com/banshee-data/scattermap/internal/table"
)

// TableReader reads a table from the named sheet of the file at path.
type TableReader interface {
	ReadTable(path, sheet string) (*table.Table, error)
}

// Loader picks a reader by file extension. It is the TableReader used by
// the command line tool.
type Loader struct {
	FS fsutil.FileSystem
}

// NewLoader returns a Loader reading from fsys, or from the OS when fsys is nil.
func NewLoader(fsys fsutil.FileSystem) *Loader {
	if fsys == nil {
		fsys = fsutil.OSFileSystem{}
	}
	return &Loader{FS: fsys}
}

// Load reads sheet from the spreadsheet at path on the local filesystem.
func Load(path, sheet string) (*table.Table, error) {
	return NewLoader(nil).ReadTable(path, sheet)
}

// ReadTable implements TableReader.
func (l *Loader) ReadTable(path, sheet string) (*table.Table, error) {
	if _, err := l.FS.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrResourceNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	r, err := ReaderFor(l.FS, path)
	if err != nil {
		return nil, err
	}
	t, err := r.ReadTable(path, sheet)
	if err != nil {
		return nil, err
	}
	monitoring.Debugf("loaded %s: %d variables x %d subjects", path, t.Rows(), t.Cols())
	return t, nil
}

// ReaderFor returns the reader for the extension of path.
func ReaderFor(fsys fsutil.FileSystem, path string) (TableReader, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return &XLSXReader{FS: fsys}, nil
	case ".csv":
		return &CSVReader{FS: fsys}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported file extension %q", ErrFormat, ext)
	}
}

// XLSXReader reads Office Open XML workbooks.
type XLSXReader struct {
	FS fsutil.FileSystem
}

// ReadTable implements TableReader.
func (r *XLSXReader) ReadTable(path, sheet string) (*table.Table, error) {
	f, err := r.FS.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrResourceNotFound, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	wb, err := excelize.OpenReader(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not a readable workbook: %v", ErrFormat, path, err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if !slices.Contains(sheets, sheet) {
		return nil, fmt.Errorf("%w: %q in %s (available: %s)", ErrSheetNotFound, sheet, path, strings.Join(sheets, ", "))
	}

	rows, err := wb.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: reading sheet %q: %v", ErrFormat, sheet, err)
	}

	st, err := parseRows(rows, excelCellRef)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	return st.Transpose()
}

func excelCellRef(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return rowColRef(col, row)
	}
	return "cell " + name
}

// CSVReader reads comma-separated files laid out like a single sheet.
// The sheet name is ignored.
type CSVReader struct {
	FS fsutil.FileSystem
}

// ReadTable implements TableReader.
func (r *CSVReader) ReadTable(path, sheet string) (*table.Table, error) {
	f, err := r.FS.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrResourceNotFound, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFormat, path, err)
	}
	if sheet != "" {
		monitoring.Debugf("%s is a CSV file; ignoring sheet name %q", path, sheet)
	}

	st, err := parseRows(rows, rowColRef)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return st.Transpose()
}
