// Package testutil provides shared test fixtures: sample score sheets and
// in-memory workbooks built from them.
package testutil

import (
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/banshee-data/scattermap/internal/fsutil"
)

// SampleSheet is the worksheet name used by the sample fixtures.
const SampleSheet = "sample_data"

// SampleRows is a sheet with a two-level header whose first group spans two
// columns, followed by three patients. P02 has a blank Recognition score.
func SampleRows() [][]interface{} {
	return [][]interface{}{
		{nil, "Memory", nil, "Attention"},
		{nil, "Recall", "Recognition", "Span"},
		{"P01", 2.5, -0.3, 1.86},
		{"P02", -1.9, nil, 0.2},
		{"P03", 0.0, 3.1, -4.0},
	}
}

// SampleMerges are the merged header ranges of SampleRows.
var SampleMerges = []string{"B1:C1"}

// NewWorkbook returns a workbook whose only sheet is named sheet and holds
// rows starting at A1. Each merge is a cell range such as "B1:C1".
func NewWorkbook(t testing.TB, sheet string, rows [][]interface{}, merges ...string) *excelize.File {
	t.Helper()

	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("write row %d: %v", i+1, err)
		}
	}
	for _, m := range merges {
		from, to, _ := strings.Cut(m, ":")
		if err := f.MergeCell(sheet, from, to); err != nil {
			t.Fatalf("merge %s: %v", m, err)
		}
	}
	return f
}

// SampleWorkbook returns SampleRows in a workbook, with an extra empty
// "notes" sheet.
func SampleWorkbook(t testing.TB) *excelize.File {
	t.Helper()

	f := NewWorkbook(t, SampleSheet, SampleRows(), SampleMerges...)
	if _, err := f.NewSheet("notes"); err != nil {
		t.Fatalf("add sheet: %v", err)
	}
	return f
}

// WorkbookFS stores f under name in a new in-memory filesystem.
func WorkbookFS(t testing.TB, name string, f *excelize.File) *fsutil.MemoryFileSystem {
	t.Helper()

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("encode workbook: %v", err)
	}
	mfs := fsutil.NewMemoryFileSystem()
	mfs.AddFile(name, buf.Bytes())
	return mfs
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
