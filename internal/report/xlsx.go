package report

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/geolumen/ntl-cli/internal/model"
)

// WriteWorkbook writes the whole result as one XLSX workbook with a sheet
// per table.
func WriteWorkbook(path string, res *model.AnalysisResult) error {
	f := xlsx.NewFile()

	if err := metricsSheet(f, res.Metrics); err != nil {
		return err
	}
	if err := dnSheet(f, res.DNStats); err != nil {
		return err
	}
	if err := ringSheet(f, res.Rings); err != nil {
		return err
	}
	if err := sectorSheet(f, res.Sectors); err != nil {
		return err
	}
	if err := displacementSheet(f, res.Displacements); err != nil {
		return err
	}
	if err := sensitivitySheet(f, res.Sensitivity); err != nil {
		return err
	}
	if res.Validation != nil {
		if err := validationSheet(f, res.Validation); err != nil {
			return err
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "report: save workbook %s", path)
	}
	return nil
}

func addSheet(f *xlsx.File, name string, header ...string) (*xlsx.Sheet, error) {
	sheet, err := f.AddSheet(name)
	if err != nil {
		return nil, eris.Wrapf(err, "report: add sheet %s", name)
	}
	row := sheet.AddRow()
	for _, h := range header {
		row.AddCell().SetString(h)
	}
	return sheet, nil
}

func metricsSheet(f *xlsx.File, metrics []model.YearMetrics) error {
	sheet, err := addSheet(f, "Expansion Metrics",
		"Year", "Lit Area (km2)", "Compactness", "Centroid Row", "Centroid Col",
		"Lit Pixels", "Annual Growth (%)")
	if err != nil {
		return err
	}
	for _, m := range metrics {
		row := sheet.AddRow()
		row.AddCell().SetInt(m.Year)
		row.AddCell().SetFloat(m.LitAreaKm2)
		row.AddCell().SetFloat(m.Compactness)
		addOptFloat(row, m.CentroidRow)
		addOptFloat(row, m.CentroidCol)
		row.AddCell().SetInt(m.PixelCount)
		addOptFloat(row, m.AnnualGrowthPct)
	}
	return nil
}

func dnSheet(f *xlsx.File, stats []model.DNStats) error {
	sheet, err := addSheet(f, "DN Statistics", "Year", "Min", "Max", "Mean", "Median")
	if err != nil {
		return err
	}
	for _, s := range stats {
		row := sheet.AddRow()
		row.AddCell().SetInt(s.Year)
		row.AddCell().SetFloat(s.MinDN)
		row.AddCell().SetFloat(s.MaxDN)
		row.AddCell().SetFloat(s.MeanDN)
		row.AddCell().SetFloat(s.MedianDN)
	}
	return nil
}

func ringSheet(f *xlsx.File, rings []model.RingStat) error {
	sheet, err := addSheet(f, "Ring Areas",
		"Year", "Ring", "Inner (m)", "Outer (m)", "Area (km2)", "% of Total")
	if err != nil {
		return err
	}
	for _, r := range rings {
		row := sheet.AddRow()
		row.AddCell().SetInt(r.Year)
		row.AddCell().SetString(r.Ring)
		row.AddCell().SetFloat(r.InnerM)
		row.AddCell().SetFloat(r.OuterM)
		row.AddCell().SetFloat(r.AreaKm2)
		row.AddCell().SetFloat(r.PercentOfTotal)
	}
	return nil
}

func sectorSheet(f *xlsx.File, sectors []model.SectorStat) error {
	sheet, err := addSheet(f, "Sector Areas",
		"Year", "Sector", "Direction", "From (deg)", "To (deg)", "Area (km2)", "% of Total")
	if err != nil {
		return err
	}
	for _, s := range sectors {
		row := sheet.AddRow()
		row.AddCell().SetInt(s.Year)
		row.AddCell().SetInt(s.Sector)
		row.AddCell().SetString(s.Direction)
		row.AddCell().SetFloat(s.AngleMin)
		row.AddCell().SetFloat(s.AngleMax)
		row.AddCell().SetFloat(s.AreaKm2)
		row.AddCell().SetFloat(s.PercentOfTotal)
	}
	return nil
}

func displacementSheet(f *xlsx.File, moves []model.Displacement) error {
	sheet, err := addSheet(f, "Centroid Displacement",
		"From", "To", "Distance (m)", "Bearing (deg)", "Direction")
	if err != nil {
		return err
	}
	for _, d := range moves {
		row := sheet.AddRow()
		row.AddCell().SetInt(d.YearFrom)
		row.AddCell().SetInt(d.YearTo)
		row.AddCell().SetFloat(d.DisplacementM)
		row.AddCell().SetFloat(d.BearingDegrees)
		row.AddCell().SetString(d.Direction)
	}
	return nil
}

func sensitivitySheet(f *xlsx.File, rows []model.SensitivityRow) error {
	sheet, err := addSheet(f, "Threshold Sensitivity",
		"Year", "Threshold", "Lit Area (km2)", "Compactness", "Lit Pixels")
	if err != nil {
		return err
	}
	for _, r := range rows {
		row := sheet.AddRow()
		row.AddCell().SetInt(r.Year)
		row.AddCell().SetFloat(r.Threshold)
		row.AddCell().SetFloat(r.LitAreaKm2)
		row.AddCell().SetFloat(r.Compactness)
		row.AddCell().SetInt(r.PixelCount)
	}
	return nil
}

func validationSheet(f *xlsx.File, v *model.ValidationResult) error {
	sheet, err := addSheet(f, "Validation", "Metric", "Value")
	if err != nil {
		return err
	}
	add := func(name string, val float64) {
		row := sheet.AddRow()
		row.AddCell().SetString(name)
		row.AddCell().SetFloat(val)
	}
	add("Year", float64(v.Year))
	add("Coarse Threshold", v.CoarseThreshold)
	add("Fine Threshold", v.FineThreshold)
	add("True Positives", float64(v.TruePositive))
	add("False Positives", float64(v.FalsePositive))
	add("False Negatives", float64(v.FalseNegative))
	add("True Negatives", float64(v.TrueNegative))
	add("Overall Accuracy", v.OverallAccuracy)
	add("Producer's Accuracy", v.ProducersAccuracy)
	add("User's Accuracy", v.UsersAccuracy)
	add("Cohen's Kappa", v.Kappa)
	return nil
}

func addOptFloat(row *xlsx.Row, v *float64) {
	cell := row.AddCell()
	if v != nil {
		cell.SetFloat(*v)
	}
}
