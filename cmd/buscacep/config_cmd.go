package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/buscacep/internal/config"
	"github.com/muurk/buscacep/internal/ui"
)

var forceInit bool

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)

	configInitCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing config file without asking")
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with default values",
	Long: `Write a configuration file holding every default value.

An existing file is only replaced after confirmation, or with --force.`,
	PersistentPreRunE: setupLogging,
	Args:              cobra.NoArgs,
	RunE:              runConfigInit,
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := resolvedConfigPath()
	if err != nil {
		return err
	}

	force := forceInit
	if _, err := os.Stat(path); err == nil && !force {
		if !stdinIsTerminal() {
			return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
		}
		if !ui.ConfirmOverwrite(cmd.InOrStdin(), cmd.OutOrStdout(), path) {
			return nil
		}
		force = true
	}

	if err := config.CreateDefaultConfig(path, force); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration in effect: the file's values with any
command-line overrides applied.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configPathCmd = &cobra.Command{
	Use:               "path",
	Short:             "Print the config file location",
	PersistentPreRunE: setupLogging,
	Args:              cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolvedConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}
