package testutil

import (
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestSampleWorkbook(t *testing.T) {
	t.Parallel()

	mfs := WorkbookFS(t, "data/sample.xlsx", SampleWorkbook(t))
	r, err := mfs.Open("data/sample.xlsx")
	AssertNoError(t, err)
	defer r.Close()

	f, err := excelize.OpenReader(r)
	AssertNoError(t, err)
	defer f.Close()

	if got := f.GetSheetList(); len(got) != 2 || got[0] != SampleSheet || got[1] != "notes" {
		t.Errorf("sheets = %v, want [%s notes]", got, SampleSheet)
	}

	merged, err := f.GetMergeCells(SampleSheet)
	AssertNoError(t, err)
	if len(merged) != 1 || merged[0].GetStartAxis() != "B1" || merged[0].GetEndAxis() != "C1" {
		t.Errorf("merged cells = %v, want B1:C1", merged)
	}

	v, err := f.GetCellValue(SampleSheet, "D5")
	AssertNoError(t, err)
	if v != "-4" {
		t.Errorf("D5 = %q, want -4", v)
	}
}

func TestAssertHelpers(t *testing.T) {
	t.Parallel()

	AssertNoError(t, nil)
	AssertError(t, errors.New("boom"))
}
