package table

import "math"

// SignificanceThreshold is the ±1.86 SD cutoff below which a value is not
// considered clinically significant.
const SignificanceThreshold = 1.86

// Mask marks cells whose marker is suppressed. A nil Mask suppresses nothing.
type Mask [][]bool

// ComputeMask returns a mask with the same shape as t in which a cell is set
// iff |value| < SignificanceThreshold. It returns nil when enabled is false.
func ComputeMask(t *Table, enabled bool) Mask {
	if !enabled {
		return nil
	}
	m := make(Mask, len(t.Values))
	for i, row := range t.Values {
		m[i] = make([]bool, len(row))
		for j, v := range row {
			m[i][j] = math.Abs(v) < SignificanceThreshold
		}
	}
	return m
}

// Hidden reports whether cell (i, j) is suppressed.
func (m Mask) Hidden(i, j int) bool {
	if m == nil {
		return false
	}
	return m[i][j]
}

// Count returns the number of suppressed cells.
func (m Mask) Count() int {
	n := 0
	for _, row := range m {
		for _, hidden := range row {
			if hidden {
				n++
			}
		}
	}
	return n
}
