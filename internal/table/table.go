// Package table holds the numeric grid that feeds a scattermap and the
// significance mask derived from it.
package table

import (
	"fmt"
	"math"
)

// LabelSeparator joins the two levels of a variable key into one label.
const LabelSeparator = " - "

// VariableKey identifies a plotted variable by its two-level column header.
type VariableKey struct {
	Group string
	Name  string
}

// Label returns the display label for the key, e.g. "Group - Score".
func (k VariableKey) Label() string {
	return k.Group + LabelSeparator + k.Name
}

// Table is a grid of values with variables as rows and subjects as columns.
// Values[i][j] is variable i for subject j; blank cells are NaN.
// A Table is not modified after construction.
type Table struct {
	Variables []VariableKey
	Subjects  []string
	Values    [][]float64
}

// SubjectTable is the sheet orientation of the data: one row per subject,
// one column per variable. Values[i][j] is subject i, variable j.
type SubjectTable struct {
	Subjects  []string
	Variables []VariableKey
	Values    [][]float64
}

// Transpose swaps rows and columns so variables become rows.
func (s *SubjectTable) Transpose() (*Table, error) {
	if len(s.Values) != len(s.Subjects) {
		return nil, fmt.Errorf("table has %d rows but %d subject labels", len(s.Values), len(s.Subjects))
	}
	out := &Table{
		Variables: append([]VariableKey(nil), s.Variables...),
		Subjects:  append([]string(nil), s.Subjects...),
		Values:    make([][]float64, len(s.Variables)),
	}
	for j := range s.Variables {
		out.Values[j] = make([]float64, len(s.Subjects))
	}
	for i, row := range s.Values {
		if len(row) != len(s.Variables) {
			return nil, fmt.Errorf("row %d (%s) has %d values, want %d", i, s.Subjects[i], len(row), len(s.Variables))
		}
		for j, v := range row {
			out.Values[j][i] = v
		}
	}
	return out, nil
}

// Rows returns the number of variables.
func (t *Table) Rows() int { return len(t.Variables) }

// Cols returns the number of subjects.
func (t *Table) Cols() int { return len(t.Subjects) }

// At returns the value for variable i and subject j.
func (t *Table) At(i, j int) float64 { return t.Values[i][j] }

// Labels returns the display label of every variable, in row order.
func (t *Table) Labels() []string {
	labels := make([]string, len(t.Variables))
	for i, k := range t.Variables {
		labels[i] = k.Label()
	}
	return labels
}

// Finite returns every non-NaN, non-infinite value for which keep returns
// true. A nil keep accepts all cells.
func (t *Table) Finite(keep func(i, j int) bool) []float64 {
	var out []float64
	for i, row := range t.Values {
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			if keep != nil && !keep(i, j) {
				continue
			}
			out = append(out, v)
		}
	}
	return out
}
