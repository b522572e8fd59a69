package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roofingmaterials/roofserve/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "roofserve",
	Short:   "Read-only file server for roofing materials images and company data",
	Long: `roofserve publishes a directory of product images and the aggregated
all-companies.json document over HTTP under /RoofingMaterials.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFiles, _ := cmd.Flags().GetStringSlice("config")

		cfg, err := config.Load(configFiles, cmd.Flags())
		if err != nil {
			return err
		}

		if err := setupLogging(cfg); err != nil {
			return err
		}
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringSlice("config", nil, "config file path, repeat to merge (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("images-root", "", "images directory (default: output/images, env: ROOFSERVE_STORAGE_IMAGES_ROOT)")
	rootCmd.PersistentFlags().String("companies-file", "", "companies document path (default: output/all-companies.json, env: ROOFSERVE_STORAGE_COMPANIES_FILE)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (env: ROOFSERVE_LOG_LEVEL)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
