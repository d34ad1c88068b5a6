package sheet

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/banshee-data/scattermap/internal/table"
)

var (
	// ErrResourceNotFound is returned when the input file does not exist.
	ErrResourceNotFound = errors.New("input file not found")
	// ErrSheetNotFound is returned when the workbook has no sheet with the requested name.
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrFormat is returned when the file cannot be read as a table with a
	// two-row column header and a one-column row index.
	ErrFormat = errors.New("unexpected table format")
	// ErrTypeConversion is returned when a data cell is not numeric.
	ErrTypeConversion = errors.New("non-numeric cell")
)

// headerRows is the number of column header levels (group, name).
const headerRows = 2

// missingValues are cell texts read as a blank (NaN) value.
var missingValues = map[string]bool{
	"":         true,
	"#N/A":     true,
	"#N/A N/A": true,
	"#NA":      true,
	"-NaN":     true,
	"-nan":     true,
	"<NA>":     true,
	"N/A":      true,
	"NA":       true,
	"NULL":     true,
	"NaN":      true,
	"None":     true,
	"n/a":      true,
	"nan":      true,
	"null":     true,
}

// cellRefFunc names a zero-based (col, row) position for error messages.
type cellRefFunc func(col, row int) string

func rowColRef(col, row int) string {
	return fmt.Sprintf("row %d, column %d", row+1, col+1)
}

func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// parseRows interprets raw rows as a table whose first column is the subject
// index and whose first two rows form the (group, name) column header.
// Blank group cells inherit the group to their left, which is how merged
// header cells read back.
func parseRows(rows [][]string, ref cellRefFunc) (*table.SubjectTable, error) {
	if ref == nil {
		ref = rowColRef
	}
	if len(rows) < headerRows {
		return nil, fmt.Errorf("%w: expected %d header rows, found %d", ErrFormat, headerRows, len(rows))
	}
	groups, names := rows[0], rows[1]

	last := 0
	for c := 1; c < max(len(groups), len(names)); c++ {
		if cell(groups, c) != "" || cell(names, c) != "" {
			last = c
		}
	}
	if last == 0 {
		return nil, fmt.Errorf("%w: no variable columns in header", ErrFormat)
	}

	st := &table.SubjectTable{}
	group := ""
	for c := 1; c <= last; c++ {
		if g := cell(groups, c); g != "" {
			group = g
		}
		if group == "" {
			return nil, fmt.Errorf("%w: %s has no group header", ErrFormat, ref(c, 0))
		}
		name := cell(names, c)
		if name == "" {
			return nil, fmt.Errorf("%w: %s has no variable name", ErrFormat, ref(c, 1))
		}
		st.Variables = append(st.Variables, table.VariableKey{Group: group, Name: name})
	}

	start := headerRows
	if len(rows) > start && isIndexNameRow(rows[start]) {
		start++
	}

	for r := start; r < len(rows); r++ {
		row := rows[r]
		if blankRow(row) {
			continue
		}
		subject := cell(row, 0)
		if subject == "" {
			return nil, fmt.Errorf("%w: %s has no subject ID", ErrFormat, ref(0, r))
		}
		values := make([]float64, 0, last)
		for c := 1; c <= last; c++ {
			v, err := parseValue(cell(row, c))
			if err != nil {
				return nil, fmt.Errorf("%w: %s (%s, %s): %q", ErrTypeConversion, ref(c, r), subject, st.Variables[c-1].Label(), cell(row, c))
			}
			values = append(values, v)
		}
		st.Subjects = append(st.Subjects, subject)
		st.Values = append(st.Values, values)
	}

	if len(st.Subjects) == 0 {
		return nil, fmt.Errorf("%w: no data rows below header", ErrFormat)
	}
	return st, nil
}

// isIndexNameRow reports whether row only carries the index column's name,
// as written by tools that export a named row index under a two-level header.
func isIndexNameRow(row []string) bool {
	if cell(row, 0) == "" {
		return false
	}
	if _, err := parseValue(cell(row, 0)); err == nil {
		return false
	}
	return len(row) == 1 || blankRow(row[1:])
}

func parseValue(s string) (float64, error) {
	if missingValues[s] {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}
