package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geolumen/ntl-cli/internal/grid"
)

func maskFromRows(t *testing.T, rows [][]int) *grid.Mask {
	t.Helper()
	m := grid.NewMask(len(rows), len(rows[0]))
	for r, row := range rows {
		for c, v := range row {
			m.Set(r, c, v != 0)
		}
	}
	return m
}

func TestThreshold(t *testing.T) {
	g, err := grid.FromRows([][]float64{
		{2.9, 3.0},
		{3.1, 0},
	}, 463)
	require.NoError(t, err)

	m := Threshold(g, 3.0)
	assert.False(t, m.At(0, 0))
	assert.True(t, m.At(0, 1)) // boundary value is lit
	assert.True(t, m.At(1, 0))
	assert.False(t, m.At(1, 1))
}

func TestOpenRemovesIsolatedPixels(t *testing.T) {
	m := maskFromRows(t, [][]int{
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 1, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 1},
	})
	out := Open(m)
	assert.Equal(t, 0, out.Count())
}

func TestOpenPreservesSolidBlock(t *testing.T) {
	rows := make([][]int, 5)
	for r := range rows {
		rows[r] = make([]int, 5)
	}
	for r := 1; r <= 3; r++ {
		for c := 1; c <= 3; c++ {
			rows[r][c] = 1
		}
	}
	m := maskFromRows(t, rows)
	out := Open(m)
	assert.True(t, out.Equal(m))
}

func TestClassifyZeroGrid(t *testing.T) {
	g := grid.New(10, 10, 463)
	m := Classify(g, 3.0)
	assert.Equal(t, 0, m.Count())
}
