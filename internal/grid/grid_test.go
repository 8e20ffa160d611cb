package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRows(t *testing.T) {
	g, err := FromRows([][]float64{
		{1, 2, 3},
		{4, 5, 6},
	}, 463)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Rows())
	assert.Equal(t, 3, g.Cols())
	assert.Equal(t, 463.0, g.CellSize())
	assert.Equal(t, 6.0, g.At(1, 2))

	_, err = FromRows([][]float64{{1, 2}, {3}}, 463)
	require.Error(t, err)

	_, err = FromRows(nil, 463)
	require.Error(t, err)
}

func TestGridCrop(t *testing.T) {
	g, err := FromRows([][]float64{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	}, 30)
	require.NoError(t, err)

	c := g.Crop(2, 2)
	assert.Equal(t, 2, c.Rows())
	assert.Equal(t, 2, c.Cols())
	assert.Equal(t, 1.0, c.At(0, 0))
	assert.Equal(t, 5.0, c.At(1, 1))

	// asking for more than exists clamps
	c = g.Crop(10, 10)
	assert.Equal(t, 3, c.Rows())
	assert.Equal(t, 3, c.Cols())
}

func TestMaskCountAndCrop(t *testing.T) {
	m := NewMask(3, 3)
	m.Set(0, 0, true)
	m.Set(2, 2, true)
	assert.Equal(t, 2, m.Count())
	assert.True(t, m.At(0, 0))
	assert.False(t, m.At(1, 1))

	c := m.Crop(2, 2)
	assert.Equal(t, 1, c.Count())
	assert.True(t, c.At(0, 0))
}

func TestMaskEqual(t *testing.T) {
	a := NewMask(2, 2)
	b := NewMask(2, 2)
	assert.True(t, a.Equal(b))
	b.Set(1, 0, true)
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(NewMask(2, 3)))
}

func TestCommonExtent(t *testing.T) {
	rows, cols := CommonExtent(10, 8, 7, 9)
	assert.Equal(t, 7, rows)
	assert.Equal(t, 8, cols)
}

func TestCellCenter(t *testing.T) {
	g := New(2, 2, 100)
	g.SetOrigin(1000, 5000)
	x, y := g.CellCenter(1, 0) // bottom-left cell
	assert.Equal(t, 1050.0, x)
	assert.Equal(t, 5050.0, y)
	_, y = g.CellCenter(0, 0) // top row sits higher
	assert.Equal(t, 5150.0, y)
}
