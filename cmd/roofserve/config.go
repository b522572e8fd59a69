package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roofingmaterials/roofserve/cli"
	"github.com/roofingmaterials/roofserve/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after merging defaults, config files,
environment variables and flags, as YAML.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file interactively",
	Long: `Prompt for the port, the images directory, the companies document and
the URL prefix, then write them to a config file.

The current effective configuration provides the defaults.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var (
	initOutput string
	initYes    bool
	initForce  bool
)

func init() {
	configInitCmd.Flags().StringVarP(&initOutput, "output", "o", "config.yaml", "config file to write")
	configInitCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "write the current configuration without prompting")
	configInitCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing file without asking")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	data, err := cli.MarshalConfig(cfg)
	if err != nil {
		return err
	}

	_, err = os.Stdout.Write(data)
	return err
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	prompter := cli.TerminalPrompter{}

	if !initYes {
		cfg, err = cli.PromptConfig(prompter, cfg)
		if errors.Is(err, cli.ErrCancelled) {
			fmt.Println("Cancelled.")
			return nil
		}
		if err != nil {
			return err
		}
	}

	err = cli.WriteConfigFile(initOutput, cfg, initForce)
	if errors.Is(err, cli.ErrConfigExists) && !initYes {
		ok, promptErr := prompter.Confirm(fmt.Sprintf("%s already exists. Overwrite it", initOutput))
		if promptErr != nil && !errors.Is(promptErr, cli.ErrCancelled) {
			return promptErr
		}
		if !ok {
			fmt.Println("Cancelled.")
			return nil
		}
		err = cli.WriteConfigFile(initOutput, cfg, true)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", initOutput)
	return nil
}
