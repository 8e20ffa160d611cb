package boundary

import (
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geolumen/ntl-cli/internal/grid"
)

// writeSquare writes a shapefile containing one clockwise 10x10 square at
// the origin.
func writeSquare(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aoi.shp")
	w, err := shp.Create(path, shp.POLYGON)
	require.NoError(t, err)
	w.Write(&shp.Polygon{
		NumParts:  1,
		NumPoints: 5,
		Parts:     []int32{0},
		Points: []shp.Point{
			{X: 0, Y: 0},
			{X: 0, Y: 10},
			{X: 10, Y: 10},
			{X: 10, Y: 0},
			{X: 0, Y: 0}, // closed ring
		},
	})
	w.Close()
	return path
}

func TestLoadAndContains(t *testing.T) {
	area, err := Load(writeSquare(t))
	require.NoError(t, err)

	assert.True(t, area.Contains(5, 5))
	assert.False(t, area.Contains(15, 5))
	assert.False(t, area.Contains(5, -1))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.shp"))
	require.Error(t, err)
}

func TestClip(t *testing.T) {
	area, err := Load(writeSquare(t))
	require.NoError(t, err)

	g, err := grid.FromRows([][]float64{
		{1, 2},
		{3, 4},
	}, 10)
	require.NoError(t, err)
	g.SetOrigin(0, 0)

	out := area.Clip(g)
	// only the bottom-left cell center (5, 5) lies inside the square
	assert.Equal(t, 0.0, out.At(0, 0))
	assert.Equal(t, 0.0, out.At(0, 1))
	assert.Equal(t, 3.0, out.At(1, 0))
	assert.Equal(t, 0.0, out.At(1, 1))

	// input untouched
	assert.Equal(t, 1.0, g.At(0, 0))
}

func TestSignedArea(t *testing.T) {
	cw := []float64{0, 0, 0, 10, 10, 10, 10, 0}
	assert.Negative(t, signedArea(cw))
	ccw := []float64{0, 0, 10, 0, 10, 10, 0, 10}
	assert.Positive(t, signedArea(ccw))
	assert.Zero(t, signedArea([]float64{0, 0, 1, 1}))
}
