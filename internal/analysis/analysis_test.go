package analysis

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geolumen/ntl-cli/internal/grid"
	"github.com/geolumen/ntl-cli/internal/raster"
)

func writeYear(t *testing.T, dir, name string, fill func(g *grid.Grid)) {
	t.Helper()
	g := grid.New(5, 5, 463)
	fill(g)
	require.NoError(t, raster.WriteASC(filepath.Join(dir, name), g))
}

func blockOf(v float64) func(g *grid.Grid) {
	return func(g *grid.Grid) {
		for r := 1; r <= 3; r++ {
			for c := 1; c <= 3; c++ {
				g.Set(r, c, v)
			}
		}
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	// 2020: two months whose median is a 3x3 block of 15
	writeYear(t, dir, "viirs_2020_01.asc", blockOf(10))
	writeYear(t, dir, "viirs_2020_02.asc", blockOf(20))
	// 2021: fully lit scene
	writeYear(t, dir, "viirs_2021_01.asc", func(g *grid.Grid) {
		for r := 0; r < 5; r++ {
			for c := 0; c < 5; c++ {
				g.Set(r, c, 10)
			}
		}
	})

	byYear, err := raster.ScanDir(dir)
	require.NoError(t, err)

	p := Params{
		Threshold:             3,
		SensitivityThresholds: []float64{5, 20},
		RingWidthsM:           []float64{1000, 2000},
		Sectors:               8,
		PixelSizeM:            463,
		Concurrency:           2,
	}
	res, outputs, err := Run(context.Background(), byYear, p)
	require.NoError(t, err)

	require.Len(t, outputs, 2)
	assert.Equal(t, 9, outputs[0].Mask.Count())
	require.Equal(t, []int{2020, 2021}, res.Years)
	require.Len(t, res.Metrics, 2)

	m2020 := res.Metrics[0]
	assert.Equal(t, 9, m2020.PixelCount)
	assert.InDelta(t, 9*0.463*0.463, m2020.LitAreaKm2, 1e-9)
	assert.Equal(t, 1.0, m2020.Compactness)
	require.NotNil(t, m2020.CentroidRow)
	assert.Equal(t, 2.0, *m2020.CentroidRow)
	assert.Nil(t, m2020.AnnualGrowthPct)

	m2021 := res.Metrics[1]
	assert.Equal(t, 25, m2021.PixelCount)
	require.NotNil(t, m2021.AnnualGrowthPct)
	assert.InDelta(t, 100*(25.0-9)/9, *m2021.AnnualGrowthPct, 1e-9)

	// composite median shows up in the DN summary
	assert.Equal(t, 15.0, res.DNStats[0].MedianDN)
	assert.Equal(t, 15.0, res.DNStats[0].MeanDN)

	// both centroids sit at the grid center
	require.Len(t, res.Displacements, 1)
	assert.Equal(t, 0.0, res.Displacements[0].DisplacementM)

	// two thresholds per year
	require.Len(t, res.Sensitivity, 4)
	assert.Equal(t, 9, res.Sensitivity[0].PixelCount)  // 2020 @ 5
	assert.Equal(t, 0, res.Sensitivity[1].PixelCount)  // 2020 @ 20
	assert.Equal(t, 25, res.Sensitivity[2].PixelCount) // 2021 @ 5

	// rings and sectors emitted for every year with a centroid
	assert.Len(t, res.Rings, 4)
	assert.Len(t, res.Sectors, 16)
}

func TestRunDarkScene(t *testing.T) {
	dir := t.TempDir()
	writeYear(t, dir, "viirs_2019_01.asc", func(*grid.Grid) {})

	byYear, err := raster.ScanDir(dir)
	require.NoError(t, err)

	res, _, err := Run(context.Background(), byYear, Params{
		Threshold: 3, Sectors: 8, RingWidthsM: []float64{1000}, PixelSizeM: 463,
	})
	require.NoError(t, err)
	require.Len(t, res.Metrics, 1)

	m := res.Metrics[0]
	assert.Equal(t, 0, m.PixelCount)
	assert.Equal(t, 0.0, m.LitAreaKm2)
	assert.Equal(t, 0.0, m.Compactness)
	assert.Nil(t, m.CentroidRow)
	assert.Nil(t, m.CentroidCol)
	assert.Empty(t, res.Rings)
	assert.Empty(t, res.Displacements)
	assert.Equal(t, 0.0, res.DNStats[0].MaxDN)
}

func TestProcessYearShapeMismatch(t *testing.T) {
	dir := t.TempDir()
	writeYear(t, dir, "a_2020_01.asc", blockOf(10))
	g := grid.New(4, 4, 463)
	require.NoError(t, raster.WriteASC(filepath.Join(dir, "a_2020_02.asc"), g))

	_, err := ProcessYear(2020, []string{
		filepath.Join(dir, "a_2020_01.asc"),
		filepath.Join(dir, "a_2020_02.asc"),
	}, Params{Threshold: 3, PixelSizeM: 463})
	require.ErrorIs(t, err, grid.ErrShapeMismatch)
}
