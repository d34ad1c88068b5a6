package sheet

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/banshee-data/scattermap/internal/fsutil"
	"github.com/banshee-data/scattermap/internal/testutil"
)

func TestLoader_XLSX(t *testing.T) {
	t.Parallel()

	mfs := testutil.WorkbookFS(t, "data/sample.xlsx", testutil.SampleWorkbook(t))
	tbl, err := NewLoader(mfs).ReadTable("data/sample.xlsx", "sample_data")
	require.NoError(t, err)

	// Three variable columns become rows, three patients become columns.
	assert.Equal(t, 3, tbl.Rows())
	assert.Equal(t, 3, tbl.Cols())
	assert.Equal(t, []string{"P01", "P02", "P03"}, tbl.Subjects)
	assert.Equal(t, []string{
		"Memory - Recall",
		"Memory - Recognition",
		"Attention - Span",
	}, tbl.Labels())

	assert.Equal(t, 2.5, tbl.At(0, 0))
	assert.Equal(t, -1.9, tbl.At(0, 1))
	assert.True(t, math.IsNaN(tbl.At(1, 1)))
	assert.Equal(t, 1.86, tbl.At(2, 0))
	assert.Equal(t, -4.0, tbl.At(2, 2))
}

func TestLoader_XLSXOnDisk(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sample.xlsx")
	require.NoError(t, testutil.SampleWorkbook(t).SaveAs(path))

	tbl, err := Load(path, "sample_data")
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Rows())
}

func TestLoader_SheetNotFound(t *testing.T) {
	t.Parallel()

	mfs := testutil.WorkbookFS(t, "sample.xlsx", testutil.SampleWorkbook(t))
	_, err := NewLoader(mfs).ReadTable("sample.xlsx", "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSheetNotFound)
	assert.NotErrorIs(t, err, ErrFormat)
	assert.Contains(t, err.Error(), "sample_data")
}

func TestLoader_ResourceNotFound(t *testing.T) {
	t.Parallel()

	_, err := NewLoader(fsutil.NewMemoryFileSystem()).ReadTable("nope.xlsx", "sample_data")
	assert.ErrorIs(t, err, ErrResourceNotFound)

	_, err = Load(filepath.Join(t.TempDir(), "nope.xlsx"), "sample_data")
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestLoader_NotAWorkbook(t *testing.T) {
	t.Parallel()

	mfs := fsutil.NewMemoryFileSystem()
	mfs.AddFile("broken.xlsx", []byte("this is not a zip archive"))
	_, err := NewLoader(mfs).ReadTable("broken.xlsx", "sample_data")
	assert.ErrorIs(t, err, ErrFormat)
}

func TestLoader_UnsupportedExtension(t *testing.T) {
	t.Parallel()

	mfs := fsutil.NewMemoryFileSystem()
	mfs.AddFile("data.json", []byte("{}"))
	_, err := NewLoader(mfs).ReadTable("data.json", "")
	assert.ErrorIs(t, err, ErrFormat)
}

func TestLoader_XLSXBadHeader(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"id", "G"}))

	mfs := testutil.WorkbookFS(t, "flat.xlsx", f)
	_, err := NewLoader(mfs).ReadTable("flat.xlsx", "Sheet1")
	assert.ErrorIs(t, err, ErrFormat)
}

func TestLoader_XLSXTypeConversion(t *testing.T) {
	t.Parallel()

	f := testutil.SampleWorkbook(t)
	require.NoError(t, f.SetCellValue("sample_data", "C4", "n.s."))

	mfs := testutil.WorkbookFS(t, "sample.xlsx", f)
	_, err := NewLoader(mfs).ReadTable("sample.xlsx", "sample_data")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTypeConversion)
	assert.Contains(t, err.Error(), "C4")
}

func TestLoader_CSV(t *testing.T) {
	t.Parallel()

	mfs := fsutil.NewMemoryFileSystem()
	mfs.AddFile("sample.csv", []byte(
		",Memory,,Attention\n"+
			",Recall,Recognition,Span\n"+
			"P01,2.5,-0.3,1.86\n"+
			"P02,-1.9,,0.2\n"))

	tbl, err := NewLoader(mfs).ReadTable("sample.csv", "ignored")
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Rows())
	assert.Equal(t, 2, tbl.Cols())
	assert.Equal(t, "Memory - Recognition", tbl.Variables[1].Label())
	assert.True(t, math.IsNaN(tbl.At(1, 1)))
}

func TestReaderFor(t *testing.T) {
	t.Parallel()

	mfs := fsutil.NewMemoryFileSystem()
	for path, want := range map[string]TableReader{
		"a.xlsx":     &XLSXReader{FS: mfs},
		"b.XLSM":     &XLSXReader{FS: mfs},
		"dir/c.csv":  &CSVReader{FS: mfs},
		"d.Csv":      &CSVReader{FS: mfs},
		"e.template": nil,
	} {
		r, err := ReaderFor(mfs, path)
		if want == nil {
			assert.ErrorIs(t, err, ErrFormat, path)
			continue
		}
		require.NoError(t, err, path)
		assert.IsType(t, want, r, path)
	}
}
