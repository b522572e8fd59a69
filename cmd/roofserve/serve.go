package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roofingmaterials/roofserve"
	"github.com/roofingmaterials/roofserve/config"
	"github.com/roofingmaterials/roofserve/filesystem"
	roofhttp "github.com/roofingmaterials/roofserve/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the roofserve HTTP server.

Routes:
  GET /                                      information page
  GET /RoofingMaterials/Images/{filename}    image files
  GET /RoofingMaterials/all-companies.json   companies document`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 3000, "HTTP server port (env: ROOFSERVE_SERVER_PORT)")
	serveCmd.Flags().String("prefix", roofhttp.DefaultPrefix, "URL prefix for both resources (env: ROOFSERVE_ROUTES_PREFIX)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	service, err := newService(cfg)
	if err != nil {
		return fmt.Errorf("create service: %w", err)
	}

	handler := roofhttp.NewHandler(&roofhttp.HandlerConfig{
		Prefix:         cfg.Routes.Prefix,
		Port:           cfg.Server.Port,
		RequestTimeout: cfg.Server.RequestTimeoutDuration(),
	}, service)

	server := roofhttp.NewServer(roofhttp.ServerConfig{
		Port:            cfg.Server.Port,
		Prefix:          cfg.Routes.Prefix,
		ReadTimeout:     cfg.Server.ReadTimeoutDuration(),
		WriteTimeout:    cfg.Server.WriteTimeoutDuration(),
		IdleTimeout:     cfg.Server.IdleTimeoutDuration(),
		ShutdownTimeout: cfg.Server.ShutdownTimeoutDuration(),
	}, handler.Router())

	slog.Debug("serving files",
		"images_root", cfg.Storage.ImagesRoot,
		"companies_file", cfg.Storage.CompaniesFile,
	)

	if err := server.ListenAndServe(ctx); err != nil {
		return err
	}

	slog.Info("server stopped")
	return nil
}

func newService(cfg *config.Config) (*roofserve.Service, error) {
	images := filesystem.NewFileStorage(cfg.Storage.ImagesRoot)
	companies := filesystem.NewDocument(cfg.Storage.CompaniesFile)

	return roofserve.NewService(images, companies)
}
