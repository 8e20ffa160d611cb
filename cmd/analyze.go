package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geolumen/ntl-cli/internal/analysis"
	"github.com/geolumen/ntl-cli/internal/boundary"
	"github.com/geolumen/ntl-cli/internal/model"
	"github.com/geolumen/ntl-cli/internal/raster"
	"github.com/geolumen/ntl-cli/internal/report"
)

var (
	analyzeInput    string
	analyzeBoundary string
	analyzeNoMasks  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full multi-year expansion analysis",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		inputDir := cfg.Analysis.InputDir
		if analyzeInput != "" {
			inputDir = analyzeInput
		}
		boundaryPath := cfg.Analysis.BoundaryPath
		if analyzeBoundary != "" {
			boundaryPath = analyzeBoundary
		}

		byYear, err := raster.ScanDir(inputDir)
		if err != nil {
			return err
		}

		p := analysis.Params{
			Threshold:             cfg.Analysis.Threshold,
			SensitivityThresholds: cfg.Analysis.SensitivityThresholds,
			RingWidthsM:           cfg.Analysis.RingWidthsM,
			Sectors:               cfg.Analysis.Sectors,
			PixelSizeM:            cfg.Analysis.PixelSizeM,
			Concurrency:           cfg.Analysis.Concurrency,
		}
		if boundaryPath != "" {
			area, err := boundary.Load(boundaryPath)
			if err != nil {
				return err
			}
			p.Area = area
		}

		run, err := st.CreateRun(ctx, model.RunKindAnalyze, runParams(inputDir, boundaryPath))
		if err != nil {
			return err
		}
		if err := st.UpdateRunStatus(ctx, run.ID, model.RunStatusRunning); err != nil {
			return err
		}

		res, outputs, err := analysis.Run(ctx, byYear, p)
		if err != nil {
			if failErr := st.FailRun(ctx, run.ID, err); failErr != nil {
				zap.L().Warn("record failure", zap.Error(failErr))
			}
			return eris.Wrap(err, "analyze")
		}

		if err := st.UpdateRunResult(ctx, run.ID, res); err != nil {
			return err
		}

		if err := writeReports(cfg.Output.Dir, res); err != nil {
			return err
		}
		if !analyzeNoMasks {
			if err := writeMasks(cfg.Output.Dir, outputs, p.PixelSizeM); err != nil {
				return err
			}
		}

		zap.L().Info("analysis complete",
			zap.String("run_id", run.ID),
			zap.Ints("years", res.Years),
			zap.String("output_dir", cfg.Output.Dir),
		)

		return report.WriteSummary(os.Stdout, res)
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeInput, "input", "", "directory of .asc grids (overrides config)")
	analyzeCmd.Flags().StringVar(&analyzeBoundary, "boundary", "", "study-area polygon shapefile (overrides config)")
	analyzeCmd.Flags().BoolVar(&analyzeNoMasks, "no-masks", false, "skip writing per-year urban masks")
	rootCmd.AddCommand(analyzeCmd)
}

// writeReports emits every report format into dir.
func writeReports(dir string, res *model.AnalysisResult) error {
	if err := report.WriteCSVTables(dir, res); err != nil {
		return err
	}
	if err := report.WriteWorkbook(filepath.Join(dir, "results.xlsx"), res); err != nil {
		return err
	}
	if err := report.WriteSummaryFile(filepath.Join(dir, "summary.txt"), res); err != nil {
		return err
	}
	return report.WritePlots(dir, res)
}

// writeMasks exports each year's urban mask as an .asc grid.
func writeMasks(dir string, outputs []*analysis.YearOutput, cellSizeM float64) error {
	for _, out := range outputs {
		if out.Mask == nil {
			continue
		}
		path := filepath.Join(dir, fmt.Sprintf("urban_mask_%d.asc", out.Metrics.Year))
		if err := raster.WriteMaskASC(path, out.Mask, cellSizeM); err != nil {
			return err
		}
	}
	return nil
}
