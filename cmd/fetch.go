package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geolumen/ntl-cli/internal/fetch"
)

var (
	fetchManifest string
	fetchDest     string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download source grids listed in a manifest",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		manifestPath := cfg.Fetch.Manifest
		if fetchManifest != "" {
			manifestPath = fetchManifest
		}
		destDir := cfg.Fetch.DestDir
		if fetchDest != "" {
			destDir = fetchDest
		}

		m, err := fetch.LoadManifest(manifestPath)
		if err != nil {
			return err
		}

		f := fetch.New(m)
		if err := f.FetchAll(ctx, m, destDir, cfg.Fetch.Concurrency); err != nil {
			return err
		}

		zap.L().Info("fetch complete",
			zap.Int("sources", len(m.Sources)),
			zap.String("dest", destDir),
		)
		return nil
	},
}

func init() {
	fetchCmd.Flags().StringVar(&fetchManifest, "manifest", "", "source manifest YAML (overrides config)")
	fetchCmd.Flags().StringVar(&fetchDest, "dest", "", "download directory (overrides config)")
	rootCmd.AddCommand(fetchCmd)
}
