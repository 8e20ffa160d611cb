package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGrid(t *testing.T, rows [][]float64) *Grid {
	t.Helper()
	g, err := FromRows(rows, 463)
	require.NoError(t, err)
	return g
}

func TestMedianComposite(t *testing.T) {
	months := []*Grid{
		mustGrid(t, [][]float64{{10, 0}, {3, 0}}),
		mustGrid(t, [][]float64{{20, 0}, {5, 0}}),
		mustGrid(t, [][]float64{{30, 7}, {0, 0}}),
	}
	out, err := MedianComposite(months)
	require.NoError(t, err)

	// odd count: middle value
	assert.Equal(t, 20.0, out.At(0, 0))
	// single observation survives the zeros
	assert.Equal(t, 7.0, out.At(0, 1))
	// even count: mean of the two middle values
	assert.Equal(t, 4.0, out.At(1, 0))
	// missing everywhere stays zero
	assert.Equal(t, 0.0, out.At(1, 1))
}

func TestMedianCompositeShapeMismatch(t *testing.T) {
	months := []*Grid{
		mustGrid(t, [][]float64{{1, 2}, {3, 4}}),
		mustGrid(t, [][]float64{{1, 2, 3}}),
	}
	_, err := MedianComposite(months)
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestMedianCompositeEmpty(t *testing.T) {
	_, err := MedianComposite(nil)
	require.Error(t, err)
}
