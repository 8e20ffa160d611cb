package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geolumen/ntl-cli/internal/model"
	"github.com/geolumen/ntl-cli/internal/raster"
	"github.com/geolumen/ntl-cli/internal/report"
	"github.com/geolumen/ntl-cli/internal/validate"
)

var validateYear int

var validateCmd = &cobra.Command{
	Use:   "validate <coarse.asc> <fine.asc>",
	Short: "Validate a coarse urban mask against a fine-resolution index",
	Long:  "Block-averages the fine grid to the coarse resolution, classifies both, and reports the confusion matrix with overall, producer's, and user's accuracy plus Cohen's kappa.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		coarse, err := raster.ReadASC(args[0])
		if err != nil {
			return err
		}
		fine, err := raster.ReadASC(args[1])
		if err != nil {
			return err
		}

		year := validateYear
		if year == 0 {
			if y, ok := raster.YearFromName(filepath.Base(args[0])); ok {
				year = y
			}
		}

		run, err := st.CreateRun(ctx, model.RunKindValidate, runParams("", ""))
		if err != nil {
			return err
		}
		if err := st.UpdateRunStatus(ctx, run.ID, model.RunStatusRunning); err != nil {
			return err
		}

		v := validate.Run(coarse, fine, validate.Params{
			Year:            year,
			CoarseThreshold: cfg.Analysis.Threshold,
			FineThreshold:   cfg.Validate.FineThreshold,
		})
		res := &model.AnalysisResult{Validation: v}

		if err := st.UpdateRunResult(ctx, run.ID, res); err != nil {
			return err
		}
		if err := report.WriteCSVTables(cfg.Output.Dir, res); err != nil {
			return err
		}

		zap.L().Info("validation complete",
			zap.String("run_id", run.ID),
			zap.Int("year", year),
			zap.Float64("kappa", v.Kappa),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	},
}

func init() {
	validateCmd.Flags().IntVar(&validateYear, "year", 0, "year of the coarse grid (default: parsed from filename)")
	rootCmd.AddCommand(validateCmd)
}
