// Package report renders an analysis result to the output formats the
// project publishes: CSV tables, an XLSX workbook, a plain-text summary
// and PNG figures.
package report

import (
	"os"
	"path/filepath"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/geolumen/ntl-cli/internal/model"
)

// WriteCSVTables writes one CSV file per result table into dir. Empty
// tables are skipped.
func WriteCSVTables(dir string, res *model.AnalysisResult) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "report: create %s", dir)
	}

	if err := writeCSV(filepath.Join(dir, "expansion_metrics.csv"), res.Metrics); err != nil {
		return err
	}
	if err := writeCSV(filepath.Join(dir, "dn_statistics.csv"), res.DNStats); err != nil {
		return err
	}
	if err := writeCSV(filepath.Join(dir, "ring_areas.csv"), res.Rings); err != nil {
		return err
	}
	if err := writeCSV(filepath.Join(dir, "sector_areas.csv"), res.Sectors); err != nil {
		return err
	}
	if err := writeCSV(filepath.Join(dir, "centroid_displacement.csv"), res.Displacements); err != nil {
		return err
	}
	if err := writeCSV(filepath.Join(dir, "threshold_sensitivity.csv"), res.Sensitivity); err != nil {
		return err
	}
	if res.Validation != nil {
		if err := writeCSV(filepath.Join(dir, "validation.csv"), []model.ValidationResult{*res.Validation}); err != nil {
			return err
		}
	}
	zap.L().Info("wrote CSV tables", zap.String("dir", dir))
	return nil
}

func writeCSV[T any](path string, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	data, err := csvutil.Marshal(rows)
	if err != nil {
		return eris.Wrapf(err, "report: marshal %s", filepath.Base(path))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "report: write %s", path)
	}
	return nil
}
