package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roofingmaterials/roofserve/cli"
	"github.com/roofingmaterials/roofserve/config"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the images that would be served",
	Long: `Walk the images directory and print every file with its size and the
content type it will be served with.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	service, err := newService(cfg)
	if err != nil {
		return fmt.Errorf("create service: %w", err)
	}

	entries, err := service.ListImages(ctx)
	if err != nil {
		return fmt.Errorf("list %s: %w", cfg.Storage.ImagesRoot, err)
	}

	return cli.NewFormatter(listJSON).FormatImages(os.Stdout, entries)
}
