package raster

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geolumen/ntl-cli/internal/grid"
)

func TestReadASC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viirs_2020_01.asc")
	data := `ncols 3
nrows 2
xllcorner 100.5
yllcorner 20.25
cellsize 463
NODATA_value -9999
1.5 -9999 3
0 4 5.25
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	g, err := ReadASC(path)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Rows())
	assert.Equal(t, 3, g.Cols())
	assert.Equal(t, 463.0, g.CellSize())
	x, y := g.Origin()
	assert.Equal(t, 100.5, x)
	assert.Equal(t, 20.25, y)
	assert.Equal(t, 1.5, g.At(0, 0))
	assert.Equal(t, 0.0, g.At(0, 1)) // NODATA maps to the missing sentinel
	assert.Equal(t, 5.25, g.At(1, 2))
}

func TestReadASCErrors(t *testing.T) {
	dir := t.TempDir()

	short := filepath.Join(dir, "short_2020.asc")
	require.NoError(t, os.WriteFile(short, []byte("ncols 2\nnrows 2\ncellsize 30\n1 2 3\n"), 0o644))
	_, err := ReadASC(short)
	require.Error(t, err)

	missing := filepath.Join(dir, "noheader_2020.asc")
	require.NoError(t, os.WriteFile(missing, []byte("ncols 1\n5\n"), 0o644))
	_, err = ReadASC(missing)
	require.Error(t, err)

	_, err = ReadASC(filepath.Join(dir, "absent.asc"))
	require.Error(t, err)
}

func TestWriteReadRoundTrip(t *testing.T) {
	g, err := grid.FromRows([][]float64{
		{1, 2.5, math.NaN()},
		{0, 7, 8},
	}, 30)
	require.NoError(t, err)
	g.SetOrigin(10, 20)

	path := filepath.Join(t.TempDir(), "out_2021.asc")
	require.NoError(t, WriteASC(path, g))

	back, err := ReadASC(path)
	require.NoError(t, err)
	assert.Equal(t, 2.5, back.At(0, 1))
	// NaN round-trips through NODATA to the zero sentinel
	assert.Equal(t, 0.0, back.At(0, 2))
	x, y := back.Origin()
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 20.0, y)
}

func TestYearFromName(t *testing.T) {
	y, ok := YearFromName("VNL_v21_npp_2014_global.asc")
	require.True(t, ok)
	assert.Equal(t, 2014, y)

	y, ok = YearFromName("dmsp1998.asc")
	require.True(t, ok)
	assert.Equal(t, 1998, y)

	_, ok = YearFromName("composite.asc")
	assert.False(t, ok)
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	write("viirs_2020_02.asc")
	write("viirs_2020_01.asc")
	write("viirs_2021_01.asc")
	write("undated.asc")
	write("notes_2020.txt")

	byYear, err := ScanDir(dir)
	require.NoError(t, err)
	require.Len(t, byYear, 2)
	assert.Equal(t, []int{2020, 2021}, Years(byYear))
	require.Len(t, byYear[2020], 2)
	// sorted within a year
	assert.Equal(t, filepath.Join(dir, "viirs_2020_01.asc"), byYear[2020][0])
}

func TestScanDirEmpty(t *testing.T) {
	_, err := ScanDir(t.TempDir())
	require.Error(t, err)
}
