// Buscacep looks up Brazilian postal codes (CEP) in the ViaCEP directory.
//
// It provides an interactive search screen and one-shot commands for
// scripting: single and batch CEP lookups, and address search by state,
// city and street.
//
// Usage:
//
//	buscacep [command] [flags]
//
// Running without arguments launches the interactive search screen.
// See 'buscacep --help' for available commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/muurk/buscacep/internal/logging"
	"github.com/muurk/buscacep/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logging.Sync()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "buscacep",
	Short: "Brazilian postal code (CEP) lookup",
	Long: `Look up Brazilian postal codes (CEP) in the ViaCEP directory.

Type a CEP of up to eight digits and get the street, district, city and
state it belongs to. Lookups can also be run non-interactively, one or many
at a time, and addresses can be searched by state, city and street name.

If no command is specified, the interactive search screen launches.`,
	Version:           version.Version,
	PersistentPreRunE: setup,
	RunE:              runTUI,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// No config needed
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "buscacep %s\n", version.Full())
	},
}
