package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"searchops/keeper/pkg/config"
	"searchops/keeper/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile   string
	verbose   bool
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "keeper",
	Short: "Keeper - OpenSearch template and ISM policy synchronization",
	Long: `Keeper synchronizes OpenSearch index templates and ISM policies between
a cluster and local YAML files.

Local files are the durable record of desired state; the cluster holds the
live copy. Keeper lists, downloads, diffs and publishes both entity kinds
across named environments:
  - templates      index template management
  - ism-policies   ISM policy management with optimistic concurrency
  - environments   configured cluster environments

Changes are shown as a field-level diff and confirmed per entity before
anything is written to the cluster.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: keeper.yaml, ~/.keeper/config.yaml, /etc/keeper/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text, json")

	rootCmd.CompletionOptions.DisableDefaultCmd = false
}

// loadConfig loads the configuration honoring the --config flag.
func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}

// newLogger builds the command logger honoring --verbose and --log-format.
func newLogger() (*slog.Logger, error) {
	level := "info"
	if verbose {
		level = "debug"
	}
	return logging.New(logging.Config{Level: level, Format: logFormat})
}
