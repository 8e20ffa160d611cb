package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geolumen/ntl-cli/internal/config"
	"github.com/geolumen/ntl-cli/internal/model"
	"github.com/geolumen/ntl-cli/internal/store"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "ntl-cli",
	Short: "Nighttime-lights urban expansion analysis",
	Long:  "Composites annual satellite nighttime-lights grids, classifies urban extent, and reports expansion metrics, spatial partitions, and cross-resolution validation.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initStore opens the configured backend and applies migrations.
func initStore(ctx context.Context) (store.Store, error) {
	var (
		st  store.Store
		err error
	)
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "ntl.db"
		}
		st, err = store.NewSQLite(dsn)
	case "postgres":
		st, err = store.NewPostgres(ctx, cfg.Store.DatabaseURL, cfg.Store.Pool)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}

// runParams snapshots the effective configuration for persistence.
func runParams(inputDir, boundaryPath string) model.RunParams {
	return model.RunParams{
		Threshold:             cfg.Analysis.Threshold,
		SensitivityThresholds: cfg.Analysis.SensitivityThresholds,
		RingWidthsM:           cfg.Analysis.RingWidthsM,
		Sectors:               cfg.Analysis.Sectors,
		PixelSizeM:            cfg.Analysis.PixelSizeM,
		FinePixelSizeM:        cfg.Validate.FinePixelSizeM,
		FineThreshold:         cfg.Validate.FineThreshold,
		InputDir:              inputDir,
		BoundaryPath:          boundaryPath,
	}
}
