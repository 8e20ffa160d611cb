package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/geolumen/ntl-cli/internal/model"
)

func sampleResult() *model.AnalysisResult {
	growth := 12.5
	row, col := 40.2, 61.7
	return &model.AnalysisResult{
		Years: []int{2019, 2020},
		Metrics: []model.YearMetrics{
			{Year: 2019, LitAreaKm2: 410.8, Compactness: 0.42, PixelCount: 1916},
			{Year: 2020, LitAreaKm2: 462.1, Compactness: 0.44, PixelCount: 2155,
				CentroidRow: &row, CentroidCol: &col, AnnualGrowthPct: &growth},
		},
		DNStats: []model.DNStats{
			{Year: 2019, MinDN: 0.3, MaxDN: 61.2, MeanDN: 4.1, MedianDN: 1.9},
		},
		Rings: []model.RingStat{
			{Year: 2019, Ring: "Core", OuterM: 1000, AreaKm2: 88.5, PercentOfTotal: 21.5},
		},
		Sectors: []model.SectorStat{
			{Year: 2019, Sector: 0, Direction: "N", AngleMax: 45, AreaKm2: 52.1, PercentOfTotal: 12.7},
		},
		Displacements: []model.Displacement{
			{YearFrom: 2019, YearTo: 2020, DisplacementM: 820, BearingDegrees: 101.2, Direction: "ESE"},
		},
		Sensitivity: []model.SensitivityRow{
			{Year: 2019, Threshold: 1, LitAreaKm2: 702.3, PixelCount: 3276},
			{Year: 2019, Threshold: 5, LitAreaKm2: 231.0, PixelCount: 1078},
			{Year: 2020, Threshold: 1, LitAreaKm2: 745.9, PixelCount: 3479},
			{Year: 2020, Threshold: 5, LitAreaKm2: 266.8, PixelCount: 1245},
		},
		Validation: &model.ValidationResult{
			Year: 2020, CoarseThreshold: 3, FineThreshold: 0.1,
			TruePositive: 847, FalsePositive: 156, FalseNegative: 189, TrueNegative: 1808,
			TotalPixels: 3000, OverallAccuracy: 0.885,
			ProducersAccuracy: 0.8176, UsersAccuracy: 0.8445, Kappa: 0.7437,
		},
	}
}

func TestWriteCSVTables(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteCSVTables(dir, sampleResult()))

	data, err := os.ReadFile(filepath.Join(dir, "expansion_metrics.csv"))
	require.NoError(t, err)
	body := string(data)
	assert.Contains(t, body, "year,lit_area_km2,compactness")
	assert.Contains(t, body, "2020,462.1")

	for _, name := range []string{
		"dn_statistics.csv", "ring_areas.csv", "sector_areas.csv",
		"centroid_displacement.csv", "threshold_sensitivity.csv", "validation.csv",
	} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestWriteCSVTablesSkipsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteCSVTables(dir, &model.AnalysisResult{}))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteWorkbook(path, sampleResult()))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 7)

	sheet, ok := f.Sheet["Expansion Metrics"]
	require.True(t, ok)
	require.GreaterOrEqual(t, len(sheet.Rows), 3)
	assert.Equal(t, "Year", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "2019", sheet.Rows[1].Cells[0].String())
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, sampleResult()))
	out := buf.String()

	assert.Contains(t, out, "Years analyzed: 2 (2019-2020)")
	assert.Contains(t, out, "2019")
	assert.Contains(t, out, "820 m toward ESE")
	assert.Contains(t, out, "Cohen's kappa:       0.744")
	assert.True(t, strings.HasPrefix(out, "NIGHTTIME LIGHTS"))
}

func TestWritePlots(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WritePlots(dir, sampleResult()))

	for _, name := range []string{"lit_area.png", "annual_growth.png", "threshold_sensitivity.png"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size())
	}
}

func TestWritePlotsEmptyResult(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WritePlots(dir, &model.AnalysisResult{}))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
