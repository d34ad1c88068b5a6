package table

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gridTable(values [][]float64) *Table {
	tbl := &Table{Values: values}
	for i := range values {
		tbl.Variables = append(tbl.Variables, VariableKey{Group: "G", Name: string(rune('A' + i))})
	}
	if len(values) > 0 {
		for j := range values[0] {
			tbl.Subjects = append(tbl.Subjects, string(rune('1'+j)))
		}
	}
	return tbl
}

func TestComputeMask_Disabled(t *testing.T) {
	t.Parallel()

	tbl := gridTable([][]float64{{0, 5}})
	m := ComputeMask(tbl, false)
	assert.Nil(t, m)
	assert.False(t, m.Hidden(0, 0))
	assert.Zero(t, m.Count())
}

func TestComputeMask_Threshold(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value  float64
		hidden bool
	}{
		{0, true},
		{1.8599, true},
		{-1.8599, true},
		{1.86, false},
		{-1.86, false},
		{2.5, false},
		{-3, false},
		{math.NaN(), false},
	}

	for _, tc := range tests {
		tbl := gridTable([][]float64{{tc.value}})
		m := ComputeMask(tbl, true)
		require.Len(t, m, 1)
		assert.Equal(t, tc.hidden, m.Hidden(0, 0), "value %v", tc.value)
	}
}

func TestComputeMask_Shape(t *testing.T) {
	t.Parallel()

	tbl := gridTable([][]float64{
		{0.5, 2.0, -2.0},
		{-0.1, 1.0, 10},
	})
	m := ComputeMask(tbl, true)

	want := Mask{
		{true, false, false},
		{true, true, false},
	}
	assert.Equal(t, want, m)
	assert.Equal(t, 3, m.Count())

	// Property: mask[i][j] == |T[i][j]| < 1.86 for every cell.
	for i, row := range tbl.Values {
		for j, v := range row {
			assert.Equal(t, math.Abs(v) < SignificanceThreshold, m.Hidden(i, j))
		}
	}
}
